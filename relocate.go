package egbase

import (
	"reflect"
	"sync"
)

// Relocatable is an opt-in marker: a type whose *T has this method is moved
// between slots by plain copy even if it also defines lifecycle hooks.
type Relocatable interface {
	TriviallyRelocatable()
}

// Mover is implemented by *T when moving a value needs more than a copy.
// MoveTo transfers the receiver's state into dst and leaves the receiver in
// a state that Destroy (if any) can safely release.
type Mover[T any] interface {
	MoveTo(dst *T)
}

// Cloner is implemented by *T when copying a value must deep-clone it.
type Cloner[T any] interface {
	Clone() T
}

// Destroyer is implemented by *T when a value holds resources to release on
// removal from a container.
type Destroyer interface {
	Destroy()
}

// soleOwner is the carve-out for Unique: it defines MoveTo, yet its bits alone
// are enough to relocate it.
type soleOwner interface {
	soleOwner()
}

// Relocation classifies how elements of a type move between slots.
type Relocation uint8

const (
	NotRelocatable Relocation = iota
	MarkedRelocatable
	TriviallyCopyable
	SoleOwnerPointer
)

func (r Relocation) String() string {
	switch r {
	case MarkedRelocatable:
		return "marked"
	case TriviallyCopyable:
		return "trivially-copyable"
	case SoleOwnerPointer:
		return "sole-owner"
	default:
		return "not-relocatable"
	}
}

// Trivial reports whether the classification allows byte-copy relocation.
func (r Relocation) Trivial() bool { return r != NotRelocatable }

// RelocationOf classifies T. Rules apply in order: explicit marker, no
// lifecycle hooks, sole-owner pointer.
func RelocationOf[T any]() Relocation {
	return opsFor[T]().relocation
}

// IsTriviallyRelocatable reports whether T can be relocated by plain copy.
func IsTriviallyRelocatable[T any]() bool {
	return opsFor[T]().relocation.Trivial()
}

// elemOps is the per-type operation table, resolved once and shared by every
// container of that element type.
type elemOps[T any] struct {
	relocation Relocation
	mover      bool
	cloner     bool
	destroyer  bool
}

var opsCache sync.Map // reflect.Type -> any(*elemOps[T])

func opsFor[T any]() *elemOps[T] {
	key := reflect.TypeFor[T]()
	if v, ok := opsCache.Load(key); ok {
		return v.(*elemOps[T])
	}
	ops := classify[T]()
	v, _ := opsCache.LoadOrStore(key, ops)
	return v.(*elemOps[T])
}

func classify[T any]() *elemOps[T] {
	var p any = (*T)(nil)
	ops := &elemOps[T]{}
	_, ops.mover = p.(Mover[T])
	_, ops.cloner = p.(Cloner[T])
	_, ops.destroyer = p.(Destroyer)
	_, marked := p.(Relocatable)
	_, unique := p.(soleOwner)

	switch {
	case marked:
		ops.relocation = MarkedRelocatable
	case !ops.mover && !ops.cloner && !ops.destroyer:
		ops.relocation = TriviallyCopyable
	case unique:
		ops.relocation = SoleOwnerPointer
	default:
		ops.relocation = NotRelocatable
	}
	return ops
}

// copyInto copy-constructs src into dst, which must not hold live elements.
func (o *elemOps[T]) copyInto(dst, src []T) {
	if !o.cloner {
		copy(dst, src)
		return
	}
	for i := range src {
		dst[i] = any(&src[i]).(Cloner[T]).Clone()
	}
}

// copyOne copy-constructs a single value.
func (o *elemOps[T]) copyOne(v *T) T {
	if !o.cloner {
		return *v
	}
	return any(v).(Cloner[T]).Clone()
}

// moveOne move-constructs *src into *dst and destroys the moved-from slot.
func (o *elemOps[T]) moveOne(dst, src *T) {
	if o.mover {
		any(src).(Mover[T]).MoveTo(dst)
		o.destroy(src)
		return
	}
	*dst = *src
	var zero T
	*src = zero
}

// relocate moves len(src) live elements into dst and leaves src dead. dst and
// src must not overlap.
func (o *elemOps[T]) relocate(dst, src []T) {
	if o.relocation.Trivial() {
		copy(dst, src)
		clear(src)
		return
	}
	for i := range src {
		o.moveOne(&dst[i], &src[i])
	}
}

// relocateOne moves a single element between slots of the same buffer.
func (o *elemOps[T]) relocateOne(dst, src *T) {
	if o.relocation.Trivial() {
		*dst = *src
		var zero T
		*src = zero
		return
	}
	o.moveOne(dst, src)
}

func (o *elemOps[T]) destroy(v *T) {
	if o.destroyer {
		any(v).(Destroyer).Destroy()
	}
	var zero T
	*v = zero
}

func (o *elemOps[T]) destroyAll(s []T) {
	if o.destroyer {
		for i := range s {
			any(&s[i]).(Destroyer).Destroy()
		}
	}
	clear(s)
}

// Unique is a sole-ownership box. It defines move semantics, but its single
// pointer is safe to relocate by copy.
type Unique[T any] struct {
	p *T
}

// NewUnique boxes v.
func NewUnique[T any](v T) Unique[T] {
	return Unique[T]{p: &v}
}

// Get returns the owned value, or nil after the box was moved or released.
func (u *Unique[T]) Get() *T { return u.p }

// MoveTo hands ownership to dst.
func (u *Unique[T]) MoveTo(dst *Unique[T]) {
	dst.p = u.p
	u.p = nil
}

// Release gives up ownership and returns the value.
func (u *Unique[T]) Release() *T {
	p := u.p
	u.p = nil
	return p
}

func (u *Unique[T]) soleOwner() {}
