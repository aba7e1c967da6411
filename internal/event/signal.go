// Package event provides observer lists with explicit unsubscribe.
//
// All types are used from the single simulation goroutine and are not
// safe for concurrent use.
package event

// Subscription cancels a handler registration. Calling Unsubscribe more than
// once is a no-op.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the handler.
func (s Subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type handler[T any] struct {
	id uint64
	fn func(T)
}

// Signal is a multicast notification.
type Signal[T any] struct {
	handlers []handler[T]
	nextID   uint64
}

// Subscribe registers fn and returns its subscription.
func (s *Signal[T]) Subscribe(fn func(T)) Subscription {
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, handler[T]{id: id, fn: fn})
	return Subscription{cancel: func() { s.remove(id) }}
}

func (s *Signal[T]) remove(id uint64) {
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
			return
		}
	}
}

// Emit calls every handler registered at the moment of the call.
// Handlers may subscribe or unsubscribe while being notified.
func (s *Signal[T]) Emit(v T) {
	if len(s.handlers) == 0 {
		return
	}
	snapshot := append([]handler[T](nil), s.handlers...)
	for _, h := range snapshot {
		h.fn(v)
	}
}

// Len returns the number of registered handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}

// Clear drops all handlers.
func (s *Signal[T]) Clear() {
	s.handlers = nil
}
