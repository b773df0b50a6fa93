package editor

import (
	"fmt"
	"log/slog"

	"wireroute/diagram"
)

// DefaultCapacity is the number of undo entries kept when none is configured.
const DefaultCapacity = 64

// EventKind says what happened to an action.
type EventKind int

const (
	ActionDone EventKind = iota
	ActionUndone
	ActionRedone
)

func (k EventKind) String() string {
	switch k {
	case ActionDone:
		return "done"
	case ActionUndone:
		return "undone"
	case ActionRedone:
		return "redone"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is passed to listeners after every do, undo and redo.
type Event struct {
	Kind   EventKind
	Action Action
}

// ListenerID identifies a registered listener.
type ListenerID int

type listener struct {
	id ListenerID
	fn func(Event)
}

// ActionLog records applied actions for undo and redo. It is single-writer: callers
// serialise access together with the diagram it mutates.
type ActionLog struct {
	d        *diagram.Diagram
	undo     []Action
	redo     []Action
	capacity int
	modCount int

	listeners []listener
	nextID    ListenerID
	logger    *slog.Logger
}

// NewActionLog creates a log over d holding at most capacity undo entries.
func NewActionLog(d *diagram.Diagram, capacity int, logger *slog.Logger) *ActionLog {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ActionLog{
		d:        d,
		capacity: capacity,
		logger:   logger.With(slog.String("component", "action_log")),
	}
}

// DoAction applies a and logs it. A failed action is not logged.
func (l *ActionLog) DoAction(a Action) error {
	if err := a.Do(l.d); err != nil {
		return fmt.Errorf("%s: %w", a.Name(), err)
	}
	l.LogAction(a)
	return nil
}

// LogAction records an action that has already been applied. The redo stack is
// cleared. An action targeting the same thing as the newest entry merges into it, and
// a pair that cancels out leaves no entry at all.
func (l *ActionLog) LogAction(a Action) {
	l.redo = nil
	if n := len(l.undo); n > 0 {
		prev := l.undo[n-1]
		if combined, merged := tryMerge(prev, a); merged {
			l.undo = l.undo[:n-1]
			if prev.IsModification() {
				l.modCount--
			}
			if combined != nil {
				l.undo = append(l.undo, combined)
				if combined.IsModification() {
					l.modCount++
				}
			}
			l.logger.Debug("Merged action", slog.String("action", describe(a)),
				slog.Bool("cancelled", combined == nil))
			l.notify(Event{Kind: ActionDone, Action: a})
			return
		}
	}

	l.undo = append(l.undo, a)
	if a.IsModification() {
		l.modCount++
	}
	if len(l.undo) > l.capacity {
		l.undo[0] = nil
		l.undo = l.undo[1:]
	}
	l.logger.Debug("Logged action", slog.String("action", describe(a)), slog.Int("undo", len(l.undo)))
	l.notify(Event{Kind: ActionDone, Action: a})
}

// UndoAction reverses the newest entry. It does nothing when there is nothing to undo.
// When the reversal fails both stacks are left as they were.
func (l *ActionLog) UndoAction() error {
	n := len(l.undo)
	if n == 0 {
		return nil
	}
	a := l.undo[n-1]
	if err := a.Undo(l.d); err != nil {
		return fmt.Errorf("undo %s: %w", a.Name(), err)
	}
	l.undo = l.undo[:n-1]
	l.redo = append(l.redo, a)
	if a.IsModification() {
		l.modCount--
	}
	l.notify(Event{Kind: ActionUndone, Action: a})
	return nil
}

// RedoAction re-applies the newest undone entry. It does nothing when there is nothing
// to redo.
func (l *ActionLog) RedoAction() error {
	n := len(l.redo)
	if n == 0 {
		return nil
	}
	a := l.redo[n-1]
	if err := a.Do(l.d); err != nil {
		return fmt.Errorf("redo %s: %w", a.Name(), err)
	}
	l.redo = l.redo[:n-1]
	l.undo = append(l.undo, a)
	if a.IsModification() {
		l.modCount++
	}
	l.notify(Event{Kind: ActionRedone, Action: a})
	return nil
}

// IsModified reports whether the diagram differs from the last ClearModified.
func (l *ActionLog) IsModified() bool {
	return l.modCount != 0
}

// ClearModified marks the current state as unmodified, typically after saving.
func (l *ActionLog) ClearModified() {
	l.modCount = 0
}

// CanUndo returns true if undo is possible
func (l *ActionLog) CanUndo() bool {
	return len(l.undo) > 0
}

// CanRedo returns true if redo is possible
func (l *ActionLog) CanRedo() bool {
	return len(l.redo) > 0
}

// UndoName is the name of the action UndoAction would reverse.
func (l *ActionLog) UndoName() string {
	if len(l.undo) == 0 {
		return ""
	}
	return l.undo[len(l.undo)-1].Name()
}

// RedoName is the name of the action RedoAction would re-apply.
func (l *ActionLog) RedoName() string {
	if len(l.redo) == 0 {
		return ""
	}
	return l.redo[len(l.redo)-1].Name()
}

// Stats returns the depth of both stacks for display
func (l *ActionLog) Stats() (undo, redo int) {
	return len(l.undo), len(l.redo)
}

// Capacity is the maximum undo depth.
func (l *ActionLog) Capacity() int {
	return l.capacity
}

// Clear forgets all entries. The modification state is kept.
func (l *ActionLog) Clear() {
	l.undo = nil
	l.redo = nil
}

// AddListener registers fn for every later event.
func (l *ActionLog) AddListener(fn func(Event)) ListenerID {
	l.nextID++
	l.listeners = append(l.listeners, listener{id: l.nextID, fn: fn})
	return l.nextID
}

// RemoveListener unregisters a listener. Unknown IDs are ignored.
func (l *ActionLog) RemoveListener(id ListenerID) {
	for i, ls := range l.listeners {
		if ls.id == id {
			l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
			return
		}
	}
}

func (l *ActionLog) notify(e Event) {
	for _, ls := range l.listeners {
		ls.fn(e)
	}
}
