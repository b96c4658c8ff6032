package model

// EventKind labels which aspect of the model changed.
type EventKind int

const (
	// EventSelection fires after SelectRow or SelectAll.
	EventSelection EventKind = iota
	// EventData fires after SetData replaces the row set.
	EventData
	// EventSortRequested fires after RequestSort. The model never sorts its
	// own data; the application is expected to respond by replacing data
	// with a sorted copy.
	EventSortRequested
	// EventExpansion fires after ExpandRow.
	EventExpansion
	// EventStructure fires after MoveColumn.
	EventStructure
	// EventPage fires when the pagination cursor fields have been rewritten
	// by the fetch collaborator.
	EventPage
	// EventContext fires after SetRowContext.
	EventContext
)

// String returns a stable name for logging.
func (k EventKind) String() string {
	switch k {
	case EventSelection:
		return "selection"
	case EventData:
		return "data"
	case EventSortRequested:
		return "sort-requested"
	case EventExpansion:
		return "expansion"
	case EventStructure:
		return "structure"
	case EventPage:
		return "page"
	case EventContext:
		return "context"
	}
	return "unknown"
}

// Event is delivered to listeners after a mutation completes. Listeners run
// synchronously on the mutating goroutine and always observe fully-consistent
// model state.
type Event struct {
	Kind  EventKind
	Model *TableModel

	// Column is the affected column index for EventSortRequested and
	// EventStructure (the destination index for a move); -1 otherwise.
	Column int

	// Row is the affected top-level row index for EventSelection (single-row
	// form), EventExpansion and EventContext; -1 otherwise, including bulk
	// SelectAll.
	Row int
}

// Listener receives change events. Listeners must not assume any particular
// goroutine beyond "whichever one mutated the model".
type Listener func(Event)

// Subscribe registers a listener and returns a function that removes it.
// Listeners are invoked in registration order.
func (m *TableModel) Subscribe(fn Listener) func() {
	m.listenerSeq++
	id := m.listenerSeq
	m.listeners = append(m.listeners, registration{id: id, fn: fn})
	return func() {
		for i, reg := range m.listeners {
			if reg.id == id {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

type registration struct {
	id int
	fn Listener
}

// emit delivers an event to every listener, synchronously and in
// registration order. Mutations must fully update state before calling emit.
func (m *TableModel) emit(kind EventKind, row, column int) {
	ev := Event{Kind: kind, Model: m, Row: row, Column: column}
	for _, reg := range m.listeners {
		reg.fn(ev)
	}
}
