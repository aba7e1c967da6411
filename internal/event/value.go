package event

// Change carries the previous and the new value of an observable.
type Change[T any] struct {
	Old T
	New T
}

// Value is an observable value. Every Set notifies subscribers,
// even when the value did not change.
type Value[T any] struct {
	v       T
	changed Signal[Change[T]]
}

// NewValue creates an observable holding v.
func NewValue[T any](v T) *Value[T] {
	return &Value[T]{v: v}
}

// Get returns the current value.
func (o *Value[T]) Get() T {
	return o.v
}

// Set stores v and notifies subscribers.
func (o *Value[T]) Set(v T) {
	old := o.v
	o.v = v
	o.changed.Emit(Change[T]{Old: old, New: v})
}

// SetSilently stores v without notifying.
func (o *Value[T]) SetSilently(v T) {
	o.v = v
}

// Subscribe registers fn. With notifyNow the handler is called at once
// with the current value as both Old and New.
func (o *Value[T]) Subscribe(fn func(Change[T]), notifyNow bool) Subscription {
	sub := o.changed.Subscribe(fn)
	if notifyNow {
		fn(Change[T]{Old: o.v, New: o.v})
	}
	return sub
}

// Notify re-sends the current value to all subscribers.
func (o *Value[T]) Notify() {
	o.changed.Emit(Change[T]{Old: o.v, New: o.v})
}
