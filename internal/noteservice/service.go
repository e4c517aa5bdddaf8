// Package noteservice runs the list and edit screens against the note store.
// All operations are serialized, standing in for the UI's single main flow.
package noteservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/starford/quicknote/internal/apperr"
	"github.com/starford/quicknote/internal/checksum"
	"github.com/starford/quicknote/internal/editor"
	"github.com/starford/quicknote/internal/listview"
	"github.com/starford/quicknote/internal/models"
	"github.com/starford/quicknote/internal/share"
	"github.com/starford/quicknote/internal/sse"
	"github.com/starford/quicknote/internal/store"
)

// Notifier receives change notifications. *sse.Broker implements it.
type Notifier interface {
	PublishNoteEvent(kind string, id int64)
	PublishSelection(mode, count string)
}

type nopNotifier struct{}

func (nopNotifier) PublishNoteEvent(string, int64)  {}
func (nopNotifier) PublishSelection(string, string) {}

// Option configures a Service.
type Option func(*Service)

// WithNotifier publishes changes to n.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.events = n
		}
	}
}

// WithAppName sets the name appended to shared notes.
func WithAppName(name string) Option {
	return func(s *Service) { s.appName = name }
}

// WithLocation sets the time zone used to format dates.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithClock overrides the time source used to stamp saves.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// ItemView is one row of the list screen.
type ItemView struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	ModifiedAt int64  `json:"modified_at"`
	Date       string `json:"date"`
	Checked    bool   `json:"checked"`
}

// Screen is a snapshot of the list screen.
type Screen struct {
	Mode          listview.Mode `json:"mode"`
	Count         string        `json:"count"`
	SelectedCount int           `json:"selected_count"`
	CanShare      bool          `json:"can_share"`
	Empty         bool          `json:"empty"`
	PendingDelete *int64        `json:"pending_delete,omitempty"`
	Items         []ItemView    `json:"items"`
}

// NoteDetail is a note as shown on the edit screen.
type NoteDetail struct {
	models.Note
	Date string `json:"date"`
	ETag string `json:"etag"`
}

// Service coordinates the store, the list view-model and edit sessions.
type Service struct {
	mu     sync.Mutex
	store  store.Store
	list   *listview.Model
	events Notifier

	appName string
	loc     *time.Location
	now     func() time.Time
	logger  *slog.Logger
}

// NewService loads the list from st and returns a ready service.
func NewService(ctx context.Context, st store.Store, opts ...Option) (*Service, error) {
	s := &Service{
		store:   st,
		events:  nopNotifier{},
		appName: "QuickNote",
		loc:     time.Local,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	notes, err := st.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("noteservice: load notes: %w", err)
	}
	s.list = listview.New(notes)
	return s, nil
}

// Screen returns the current list screen.
func (s *Service) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screenLocked()
}

func (s *Service) screenLocked() Screen {
	items := s.list.Items()
	views := make([]ItemView, len(items))
	for i, it := range items {
		views[i] = ItemView{
			ID:         it.ID,
			Text:       it.Text,
			ModifiedAt: it.ModifiedAt,
			Date:       share.DateFromMillis(it.ModifiedAt, s.loc),
			Checked:    it.Checked,
		}
	}
	sc := Screen{
		Mode:          s.list.Mode(),
		Count:         s.list.CountLabel(),
		SelectedCount: s.list.SelectedCount(),
		CanShare:      s.list.CanShare(),
		Empty:         s.list.IsEmpty(),
		Items:         views,
	}
	if n, ok := s.list.PendingDelete(); ok {
		id := n.ID
		sc.PendingDelete = &id
	}
	return sc
}

// Reload rebuilds the list from the store.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked(ctx)
}

func (s *Service) reloadLocked(ctx context.Context) error {
	notes, err := s.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("noteservice: reload: %w", err)
	}
	before := s.list.Mode()
	s.list.Reload(notes)
	if s.list.Mode() != before {
		s.publishSelectionLocked()
	}
	return nil
}

func (s *Service) publishSelectionLocked() {
	s.events.PublishSelection(s.list.Mode().String(), s.list.CountLabel())
}

func (s *Service) detail(n models.Note) NoteDetail {
	return NoteDetail{
		Note: n,
		Date: share.DateFromMillis(n.ModifiedAt, s.loc),
		ETag: checksum.Note(n),
	}
}

func (s *Service) sessionOpts() []editor.Option {
	return []editor.Option{editor.WithClock(s.now)}
}

// GetNote opens note id for editing. A stale id yields apperr.ErrNotFound.
func (s *Service) GetNote(ctx context.Context, id int64) (*NoteDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := editor.OpenExisting(ctx, s.store, id, s.sessionOpts()...)
	if err != nil {
		return nil, err
	}
	d := s.detail(sess.Note())
	return &d, nil
}

// CreateNote saves text as a new note. Empty text is a no-op and returns
// (nil, nil).
func (s *Service) CreateNote(ctx context.Context, text string) (*NoteDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := editor.OpenNew(s.store, s.sessionOpts()...)
	saved, err := sess.Save(ctx, text)
	if err != nil || !saved {
		return nil, err
	}
	n := sess.Note()
	s.logger.Debug("note created", slog.Int64("id", n.ID))
	s.events.PublishNoteEvent(sse.KindCreated, n.ID)
	if err := s.reloadLocked(ctx); err != nil {
		return nil, err
	}
	d := s.detail(n)
	return &d, nil
}

// UpdateNote saves text over note id. Empty text is a no-op and returns
// the unchanged note with saved=false. A non-empty ifMatch must equal the
// note's current ETag, otherwise apperr.ErrConflict.
func (s *Service) UpdateNote(ctx context.Context, id int64, text, ifMatch string) (d *NoteDetail, saved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := editor.OpenExisting(ctx, s.store, id, s.sessionOpts()...)
	if err != nil {
		return nil, false, err
	}
	if ifMatch != "" && ifMatch != checksum.Note(sess.Note()) {
		return nil, false, fmt.Errorf("noteservice: note %d changed: %w", id, apperr.ErrConflict)
	}
	saved, err = sess.Save(ctx, text)
	if err != nil {
		return nil, false, err
	}
	detail := s.detail(sess.Note())
	if !saved {
		return &detail, false, nil
	}
	s.logger.Debug("note updated", slog.Int64("id", id))
	s.events.PublishNoteEvent(sse.KindUpdated, id)
	if err := s.reloadLocked(ctx); err != nil {
		return nil, false, err
	}
	return &detail, true, nil
}

// DeleteNotes deletes ids directly. Unknown ids are ignored.
func (s *Service) DeleteNotes(ctx context.Context, ids ...int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, ids...); err != nil {
		return err
	}
	for _, id := range ids {
		s.events.PublishNoteEvent(sse.KindDeleted, id)
	}
	return s.reloadLocked(ctx)
}

// ShareNote returns the share payload for note id.
func (s *Service) ShareNote(ctx context.Context, id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.store.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return share.Format(n, s.appName, s.loc), nil
}
