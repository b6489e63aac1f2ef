// Package observable expone un valor actual con suscripción a cambios.
//
// Cada suscriptor recibe el valor vigente al suscribirse y luego cada
// actualización. El canal tiene buffer 1 y se sobreescribe: un lector lento
// pierde valores intermedios pero siempre ve el último.
package observable

import "sync"

type Value[T any] struct {
	mu   sync.Mutex
	cur  T
	subs   map[int]chan T
	next   int
	closed bool
}

func New[T any](initial T) *Value[T] {
	return &Value[T]{cur: initial, subs: map[int]chan T{}}
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

func (v *Value[T]) Set(x T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = x
	v.broadcast()
}

// Update aplica fn sobre el valor actual bajo lock y publica el resultado.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = fn(v.cur)
	v.broadcast()
	return v.cur
}

// Subscribe devuelve un canal con el valor actual y los siguientes cambios.
// cancel cierra el canal; es seguro llamarlo más de una vez.
// Tras Close el canal entrega el último valor y ya viene cerrado.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan T, 1)
	ch <- v.cur
	if v.closed {
		close(ch)
		return ch, func() {}
	}

	id := v.next
	v.next++
	v.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			if c, ok := v.subs[id]; ok {
				delete(v.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// Close cierra todos los canales de suscripción.
func (v *Value[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	for id, c := range v.subs {
		delete(v.subs, id)
		close(c)
	}
}

func (v *Value[T]) broadcast() {
	for _, c := range v.subs {
		select {
		case <-c:
		default:
		}
		c <- v.cur
	}
}
