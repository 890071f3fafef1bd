package memory

import "sync"

// Pool recycles domain objects so the steady-state hot path stays
// allocation free.
type Pool[T any] struct {
	pool *sync.Pool
}

func NewPool[T any](constructor func() *T) *Pool[T] {
	return &Pool[T]{
		pool: &sync.Pool{
			New: func() any { return constructor() },
		},
	}
}

func (p *Pool[T]) Get() *T {
	return p.pool.Get().(*T)
}

func (p *Pool[T]) Put(obj *T) {
	p.pool.Put(obj)
}

// PutAny satisfies ReclaimablePool. Objects of the wrong type are dropped
// rather than poisoning the pool.
func (p *Pool[T]) PutAny(obj any) {
	if v, ok := obj.(*T); ok {
		p.pool.Put(v)
	}
}
