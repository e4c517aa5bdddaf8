// Package listview holds the in-memory state of the note list screen:
// a mirror of the store's notes, the multi-select state machine and the
// pending swipe delete.
package listview

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/starford/quicknote/internal/models"
)

// ErrWrongMode is returned by actions that are not available in the current mode.
var ErrWrongMode = errors.New("listview: action not available in current mode")

// Mode is the selection state of the list.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMultiSelect
)

func (m Mode) String() string {
	if m == ModeMultiSelect {
		return "multi_select"
	}
	return "normal"
}

// MarshalText lets Mode render as its name in JSON.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a Mode name.
func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "normal":
		*m = ModeNormal
	case "multi_select":
		*m = ModeMultiSelect
	default:
		return fmt.Errorf("listview: unknown mode %q", b)
	}
	return nil
}

// Item is one rendered row: a note merged with its selection state.
type Item struct {
	models.Note
	Checked bool `json:"checked"`
}

// Model is the list view-model. It is not safe for concurrent use.
type Model struct {
	notes    []models.Note
	mode     Mode
	selected map[int64]bool

	pendingID  int64
	hasPending bool
}

// New returns a Model in normal mode showing notes.
func New(notes []models.Note) *Model {
	m := &Model{selected: make(map[int64]bool)}
	m.Reload(notes)
	return m
}

// Reload replaces the whole list. Selection and pending-delete entries for
// notes that are gone are dropped; multi-select ends if nothing stays selected.
func (m *Model) Reload(notes []models.Note) {
	m.notes = append(m.notes[:0:0], notes...)

	present := make(map[int64]struct{}, len(m.notes))
	for _, n := range m.notes {
		present[n.ID] = struct{}{}
	}
	for id := range m.selected {
		if _, ok := present[id]; !ok {
			delete(m.selected, id)
		}
	}
	if m.hasPending {
		if _, ok := present[m.pendingID]; !ok {
			m.clearPending()
		}
	}
	if m.mode == ModeMultiSelect && len(m.selected) == 0 {
		m.exitMultiSelect()
	}
}

// Mode returns the current selection mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Notes returns a copy of the notes in display order.
func (m *Model) Notes() []models.Note {
	return append([]models.Note(nil), m.notes...)
}

// Note returns the listed note with id.
func (m *Model) Note(id int64) (models.Note, bool) {
	i := m.indexOf(id)
	if i < 0 {
		return models.Note{}, false
	}
	return m.notes[i], true
}

// Total is the number of listed notes.
func (m *Model) Total() int {
	return len(m.notes)
}

// IsEmpty reports whether the empty-list placeholder should be shown.
func (m *Model) IsEmpty() bool {
	return len(m.notes) == 0
}

// Checked reports whether id is selected. Always false outside multi-select.
func (m *Model) Checked(id int64) bool {
	return m.selected[id]
}

// SelectedCount is derived from the selection map.
func (m *Model) SelectedCount() int {
	n := 0
	for _, v := range m.selected {
		if v {
			n++
		}
	}
	return n
}

// CountLabel renders the action bar counter, "<checked>/<total>".
func (m *Model) CountLabel() string {
	return strconv.Itoa(m.SelectedCount()) + "/" + strconv.Itoa(m.Total())
}

// CanShare reports whether the share action is enabled.
func (m *Model) CanShare() bool {
	return m.mode == ModeMultiSelect && m.SelectedCount() == 1
}

// Selected returns the checked notes in display order.
func (m *Model) Selected() []models.Note {
	var out []models.Note
	for _, n := range m.notes {
		if m.selected[n.ID] {
			out = append(out, n)
		}
	}
	return out
}

// Items merges notes with their checked flag for rendering.
func (m *Model) Items() []Item {
	out := make([]Item, len(m.notes))
	for i, n := range m.notes {
		out[i] = Item{Note: n, Checked: m.selected[n.ID]}
	}
	return out
}

func (m *Model) indexOf(id int64) int {
	for i, n := range m.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) remove(id int64) {
	if i := m.indexOf(id); i >= 0 {
		m.notes = append(m.notes[:i], m.notes[i+1:]...)
	}
	delete(m.selected, id)
}

func (m *Model) exitMultiSelect() {
	m.mode = ModeNormal
	clear(m.selected)
}
