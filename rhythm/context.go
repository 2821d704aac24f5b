package rhythm

// ContextKind classifies a rhythm leaf.
type ContextKind int

const (
	// KindContinuation ties a leaf to the sounding leaf before it.
	KindContinuation ContextKind = iota + 1
	// KindAbsence is a rest.
	KindAbsence
	// KindEvent carries a payload.
	KindEvent
)

func (k ContextKind) String() string {
	switch k {
	case KindContinuation:
		return "continuation"
	case KindAbsence:
		return "absence"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// AbsenceOrEvent is either a rest or an event carrying a value of type T.
type AbsenceOrEvent[T any] struct {
	isEvent bool
	value   T
}

func Absence[T any]() AbsenceOrEvent[T] {
	return AbsenceOrEvent[T]{}
}

func Occurrence[T any](value T) AbsenceOrEvent[T] {
	return AbsenceOrEvent[T]{isEvent: true, value: value}
}

func (a AbsenceOrEvent[T]) IsEvent() bool {
	return a.isEvent
}

// Value returns the event payload; ok is false for an absence.
func (a AbsenceOrEvent[T]) Value() (value T, ok bool) {
	return a.value, a.isEvent
}

// MapInstance leaves an absence alone and transforms an event's payload.
func MapInstance[T, U any](a AbsenceOrEvent[T], transform func(T) U) AbsenceOrEvent[U] {
	if !a.isEvent {
		return Absence[U]()
	}
	return Occurrence(transform(a.value))
}

// MetricalContext is the per-leaf classification of a rhythm: a continuation,
// or an instance that is either an absence or an event.
type MetricalContext[T any] struct {
	continuation bool
	instance     AbsenceOrEvent[T]
}

func Continuation[T any]() MetricalContext[T] {
	return MetricalContext[T]{continuation: true}
}

func Instance[T any](instance AbsenceOrEvent[T]) MetricalContext[T] {
	return MetricalContext[T]{instance: instance}
}

// Rest is shorthand for Instance(Absence()).
func Rest[T any]() MetricalContext[T] {
	return Instance(Absence[T]())
}

// Event is shorthand for Instance(Occurrence(value)).
func Event[T any](value T) MetricalContext[T] {
	return Instance(Occurrence(value))
}

func (c MetricalContext[T]) Kind() ContextKind {
	switch {
	case c.continuation:
		return KindContinuation
	case c.instance.isEvent:
		return KindEvent
	default:
		return KindAbsence
	}
}

func (c MetricalContext[T]) IsContinuation() bool {
	return c.continuation
}

// Instance returns the absence-or-event of c; ok is false for a continuation.
func (c MetricalContext[T]) Instance() (instance AbsenceOrEvent[T], ok bool) {
	return c.instance, !c.continuation
}

// Value returns the event payload; ok is false unless c is an event.
func (c MetricalContext[T]) Value() (value T, ok bool) {
	if c.continuation {
		var zero T
		return zero, false
	}
	return c.instance.Value()
}

func (c MetricalContext[T]) String() string {
	return c.Kind().String()
}

// MapContext keeps continuations and absences as they are and transforms the
// payload of an event.
func MapContext[T, U any](c MetricalContext[T], transform func(T) U) MetricalContext[U] {
	switch c.Kind() {
	case KindContinuation:
		return Continuation[U]()
	case KindAbsence:
		return Rest[U]()
	case KindEvent:
		return Instance(MapInstance(c.instance, transform))
	}
	panic("rhythm: unknown context kind")
}
