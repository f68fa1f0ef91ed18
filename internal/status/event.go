package status

// Subscription identifies one handler registered on an Event.
// The zero value never identifies a live handler.
type Subscription uint64

// Event is an explicit observer list. Every Subscribe must be paired with an
// Unsubscribe; hooks and proc effects tie that pairing to enable/disable.
type Event[T any] struct {
	next     Subscription
	handlers []eventHandler[T]
}

type eventHandler[T any] struct {
	id Subscription
	fn func(T)
}

// Subscribe registers fn and returns the handle to unsubscribe it with.
func (e *Event[T]) Subscribe(fn func(T)) Subscription {
	e.next++
	e.handlers = append(e.handlers, eventHandler[T]{id: e.next, fn: fn})
	return e.next
}

// Unsubscribe removes the handler. Returns false if it was not registered.
func (e *Event[T]) Unsubscribe(id Subscription) bool {
	for i, h := range e.handlers {
		if h.id == id {
			e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Raise calls every handler registered at the time of the call, in
// subscription order. Handlers added by a handler are not called in this raise.
func (e *Event[T]) Raise(v T) {
	if len(e.handlers) == 0 {
		return
	}
	snapshot := make([]eventHandler[T], len(e.handlers))
	copy(snapshot, e.handlers)
	for _, h := range snapshot {
		h.fn(v)
	}
}

// Len returns the number of registered handlers.
func (e *Event[T]) Len() int {
	return len(e.handlers)
}
