package listview

// EventKind identifies a user gesture on the list.
type EventKind int

const (
	EventTap EventKind = iota
	EventLongPress
	EventDismiss
)

// Event is a gesture, optionally targeting a note.
type Event struct {
	Kind EventKind
	ID   int64
}

// Tap is a click on note id.
func Tap(id int64) Event { return Event{Kind: EventTap, ID: id} }

// LongPress is a long click on note id.
func LongPress(id int64) Event { return Event{Kind: EventLongPress, ID: id} }

// Dismiss closes the selection action bar.
func Dismiss() Event { return Event{Kind: EventDismiss} }

// EffectKind tells the caller what to do after an event.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectOpenEditor
	EffectEnteredMultiSelect
	EffectSelectionChanged
	EffectExitedMultiSelect
)

func (k EffectKind) String() string {
	switch k {
	case EffectOpenEditor:
		return "open_editor"
	case EffectEnteredMultiSelect:
		return "entered_multi_select"
	case EffectSelectionChanged:
		return "selection_changed"
	case EffectExitedMultiSelect:
		return "exited_multi_select"
	}
	return "none"
}

// Effect is the outcome of Dispatch. ID is set for EffectOpenEditor.
type Effect struct {
	Kind EffectKind
	ID   int64
}

// Dispatch applies ev to the selection state machine.
// Events for notes that are not listed are ignored.
func (m *Model) Dispatch(ev Event) Effect {
	if ev.Kind != EventDismiss && m.indexOf(ev.ID) < 0 {
		return Effect{}
	}

	switch m.mode {
	case ModeNormal:
		switch ev.Kind {
		case EventTap:
			return Effect{Kind: EffectOpenEditor, ID: ev.ID}
		case EventLongPress:
			m.clearPending()
			m.mode = ModeMultiSelect
			m.selected[ev.ID] = true
			return Effect{Kind: EffectEnteredMultiSelect}
		}

	case ModeMultiSelect:
		switch ev.Kind {
		case EventTap:
			if m.selected[ev.ID] {
				delete(m.selected, ev.ID)
			} else {
				m.selected[ev.ID] = true
			}
			if m.SelectedCount() == 0 {
				m.exitMultiSelect()
				return Effect{Kind: EffectExitedMultiSelect}
			}
			return Effect{Kind: EffectSelectionChanged}
		case EventDismiss:
			m.exitMultiSelect()
			return Effect{Kind: EffectExitedMultiSelect}
		}
	}
	return Effect{}
}
