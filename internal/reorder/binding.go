package reorder

// Binding is a read-write handle to caller-owned state.
type Binding[T any] interface {
	Get() T
	Set(T)
}

// Ref binds directly to a variable owned by the caller.
type Ref[T any] struct {
	p *T
}

func NewRef[T any](p *T) *Ref[T] { return &Ref[T]{p: p} }

func (r *Ref[T]) Get() T  { return *r.p }
func (r *Ref[T]) Set(v T) { *r.p = v }

// Const is a read-only binding; Set is ignored.
type Const[T any] struct{ V T }

func (c Const[T]) Get() T { return c.V }
func (Const[T]) Set(T)    {}
