package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidInput = errors.New("invalid input")

// FieldError describe un campo que no pasó validación, con el nombre JSON del campo.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (f FieldError) Message() string {
	switch f.Tag {
	case "required", "required_with", "notblank":
		return fmt.Sprintf("%s is required", f.Field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", f.Field)
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid url", f.Field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", f.Field, f.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", f.Field, f.Param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", f.Field, f.Param)
	case "gte":
		return fmt.Sprintf("%s must be >= %s", f.Field, f.Param)
	case "lte":
		return fmt.Sprintf("%s must be <= %s", f.Field, f.Param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", f.Field, f.Param)
	default:
		return fmt.Sprintf("%s is invalid (%s)", f.Field, f.Tag)
	}
}

// Error agrupa los campos inválidos de una estructura.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message())
	}
	return strings.Join(msgs, "; ")
}

func (e *Error) Is(target error) bool { return target == ErrInvalidInput }

// Field construye un Error de un solo campo para reglas que no caben en tags.
func Field(field, tag, param string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Tag: tag, Param: param}}}
}

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "yaml"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
	return v
}

// Struct valida s con sus tags `validate` y devuelve *Error o nil.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
