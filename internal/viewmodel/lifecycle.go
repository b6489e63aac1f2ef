package viewmodel

import "context"

// lifecycle ata los requests de un view-model a su vida útil: Close cancela
// todo lo que esté en vuelo y a partir de ahí el estado ya no cambia.
type lifecycle struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newLifecycle() lifecycle {
	ctx, cancel := context.WithCancel(context.Background())
	return lifecycle{ctx: ctx, cancel: cancel}
}

// bind devuelve un ctx que se cancela con parent o con el view-model.
func (l lifecycle) bind(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(l.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (l lifecycle) closed() bool { return l.ctx.Err() != nil }

func (l lifecycle) close() { l.cancel() }
