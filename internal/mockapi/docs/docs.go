// Package docs registra el documento OpenAPI del backend de reservas en swag,
// que http-swagger sirve en /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {
            "post": {
                "summary": "Registrar usuario",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "summary": "Iniciar sesión",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/mascotas": {
            "get": {
                "security": [{"Bearer": []}],
                "summary": "Listar mis mascotas",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Mascota"}}}}
            },
            "post": {
                "security": [{"Bearer": []}],
                "summary": "Crear mascota",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/MascotaRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Mascota"}}}
            }
        },
        "/mascotas/{id}": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer"}],
            "get": {
                "security": [{"Bearer": []}],
                "summary": "Detalle de mascota",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Mascota"}}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"Bearer": []}],
                "summary": "Actualizar mascota",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/MascotaRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Mascota"}}}
            },
            "delete": {
                "security": [{"Bearer": []}],
                "summary": "Eliminar mascota",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/sucursales": {
            "get": {
                "summary": "Listar sucursales",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Sucursal"}}}}
            }
        },
        "/sucursales/{id}": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer"}],
            "get": {
                "summary": "Detalle de sucursal con veterinarios",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Sucursal"}}}
            }
        },
        "/sucursales/{id}/veterinarios": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer"}],
            "get": {
                "summary": "Veterinarios de la sucursal",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Veterinario"}}}}
            }
        },
        "/citas": {
            "get": {
                "security": [{"Bearer": []}],
                "summary": "Listar mis citas",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Cita"}}}}
            },
            "post": {
                "security": [{"Bearer": []}],
                "summary": "Agendar cita",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CitaRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Cita"}}}
            }
        },
        "/citas/{id}": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer"}],
            "get": {
                "security": [{"Bearer": []}],
                "summary": "Detalle de cita",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Cita"}}}
            },
            "delete": {
                "security": [{"Bearer": []}],
                "summary": "Cancelar cita (solo PENDIENTE o CONFIRMADA)",
                "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/resenas": {
            "post": {
                "security": [{"Bearer": []}],
                "summary": "Crear reseña (cita COMPLETADA, una por cita)",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ResenaRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Resena"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/resenas/veterinario/{id}": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer"}],
            "get": {
                "summary": "Reseñas de un veterinario",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Resena"}}}}
            }
        }
    },
    "definitions": {
        "Error": {"type": "object", "properties": {"message": {"type": "string"}}},
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "LoginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "userId": {"type": "integer"}, "message": {"type": "string"}}
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["nombre", "apellido", "email", "password", "telefono", "direccion"],
            "properties": {
                "nombre": {"type": "string"}, "apellido": {"type": "string"}, "email": {"type": "string"},
                "password": {"type": "string"}, "telefono": {"type": "string"}, "direccion": {"type": "string"}
            }
        },
        "MascotaRequest": {
            "type": "object",
            "required": ["nombre", "especie", "raza", "edad", "peso", "color"],
            "properties": {
                "nombre": {"type": "string"}, "especie": {"type": "string"}, "raza": {"type": "string"},
                "edad": {"type": "string"}, "peso": {"type": "number"}, "color": {"type": "string"},
                "vacunas": {"type": "string"}, "alergias": {"type": "string"}
            }
        },
        "Mascota": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "nombre": {"type": "string"}, "especie": {"type": "string"},
                "raza": {"type": "string"}, "edad": {"type": "string"}, "peso": {"type": "number"},
                "color": {"type": "string"}, "vacunas": {"type": "string"}, "alergias": {"type": "string"},
                "usuarioId": {"type": "integer"}
            }
        },
        "Sucursal": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "nombre": {"type": "string"}, "direccion": {"type": "string"},
                "telefono": {"type": "string"}, "horarioAtencion": {"type": "string"},
                "serviciosDisponibles": {"type": "string"}, "ciudad": {"type": "string"}, "activo": {"type": "boolean"},
                "veterinarios": {"type": "array", "items": {"$ref": "#/definitions/Veterinario"}}
            }
        },
        "Veterinario": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "nombre": {"type": "string"}, "email": {"type": "string"},
                "telefono": {"type": "string"}, "especialidad": {"type": "string"}, "licencia": {"type": "string"},
                "sucursalId": {"type": "integer"}, "promResenas": {"type": "number"}, "totalResenas": {"type": "integer"}
            }
        },
        "CitaRequest": {
            "type": "object",
            "required": ["mascotaId", "sucursalId", "veterinarioId", "fechaHora", "motivoCita"],
            "properties": {
                "mascotaId": {"type": "integer"}, "sucursalId": {"type": "integer"}, "veterinarioId": {"type": "integer"},
                "fechaHora": {"type": "string", "example": "2025-03-14T09:30:00"},
                "motivoCita": {"type": "string"}, "mensajeCliente": {"type": "string"}
            }
        },
        "Cita": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "mascotaId": {"type": "integer"}, "sucursalId": {"type": "integer"},
                "veterinarioId": {"type": "integer"}, "usuarioId": {"type": "integer"},
                "fechaHora": {"type": "string"}, "motivoCita": {"type": "string"}, "mensajeCliente": {"type": "string"},
                "estado": {"type": "string", "enum": ["PENDIENTE", "CONFIRMADA", "COMPLETADA", "CANCELADA"]},
                "diagnostico": {"type": "string"}, "tratamiento": {"type": "string"}, "observaciones": {"type": "string"},
                "resenaVeterinario": {"type": "string"}, "mascotaNombre": {"type": "string"},
                "veterinarioNombre": {"type": "string"}, "veterinarioEspecialidad": {"type": "string"},
                "sucursalNombre": {"type": "string"}
            }
        },
        "ResenaRequest": {
            "type": "object",
            "required": ["citaId", "estrellas", "comentario"],
            "properties": {
                "citaId": {"type": "integer"},
                "estrellas": {"type": "integer", "minimum": 1, "maximum": 5},
                "comentario": {"type": "string", "minLength": 10, "maxLength": 500}
            }
        },
        "Resena": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "estrellas": {"type": "integer"}, "comentario": {"type": "string"},
                "fechaCreacion": {"type": "string"},
                "usuario": {"type": "object", "properties": {"id": {"type": "integer"}, "nombre": {"type": "string"}, "apellido": {"type": "string"}}},
                "veterinario": {"type": "object", "properties": {"id": {"type": "integer"}, "nombre": {"type": "string"}, "especialidad": {"type": "string"}}},
                "cita": {"type": "object", "properties": {"id": {"type": "integer"}, "fechaHora": {"type": "string"}}}
            }
        }
    }
}`

// SwaggerInfo contiene la metadata exportada del documento.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Vet Booking API",
	Description:      "Backend de reservas veterinarias: mascotas, sucursales, citas y reseñas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
