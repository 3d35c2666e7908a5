// Package session owns the authoritative in-memory skin document and its
// durable snapshot. Every mutation goes through Merge or Update, which hold
// a single lock for the whole read-modify-persist cycle.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bianoble/skin-studio/internal/logging"
	"github.com/bianoble/skin-studio/internal/skin"
	"github.com/bianoble/skin-studio/internal/store"
)

// ErrNotInitialized is returned when a document is required but neither a
// loaded document nor a stored snapshot exists.
var ErrNotInitialized = errors.New("session not initialized — load a document first")

// Fetcher reads the template document from a location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Options configures a Session.
type Options struct {
	// Store persists the snapshot. Required.
	Store store.Store

	// Fetcher and Template locate the reference template used by Load.
	// Either may be empty, in which case Load uses the embedded default.
	Fetcher  Fetcher
	Template string

	Log *logging.Logger
}

// Session is the single authoritative document for one editing session.
type Session struct {
	mu       sync.Mutex
	doc      *skin.Document
	store    store.Store
	fetcher  Fetcher
	template string
	log      *logging.Logger
}

// New creates a session. No document is loaded until Load or Current.
func New(opts Options) *Session {
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	return &Session{
		store:    opts.Store,
		fetcher:  opts.Fetcher,
		template: opts.Template,
		log:      log,
	}
}

// Load starts a new session from the reference template, or from the
// embedded default when the template cannot be fetched or parsed. The
// result always replaces any stored snapshot. Only a persistence failure
// is returned as an error.
func (s *Session) Load(ctx context.Context) (*skin.Document, error) {
	doc := s.loadTemplate(ctx)
	skin.AssignIDs(doc)
	for _, problem := range skin.Validate(doc) {
		s.log.Warn("template: %s", problem)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistLocked(doc); err != nil {
		return nil, err
	}
	s.doc = doc
	return doc.Clone(), nil
}

func (s *Session) loadTemplate(ctx context.Context) *skin.Document {
	if s.fetcher == nil || s.template == "" {
		s.log.Msg("no template configured, starting from the embedded default")
		return skin.Default()
	}
	data, err := s.fetcher.Fetch(ctx, s.template)
	if err != nil {
		s.log.Warn("falling back to embedded default config: %v", err)
		return skin.Default()
	}
	doc, err := skin.Decode(data)
	if err != nil {
		s.log.Warn("falling back to embedded default config: template %s: %v", s.template, err)
		return skin.Default()
	}
	s.log.Dbg("loaded template %s", s.template)
	return doc
}

// Current returns a copy of the document. When nothing is loaded it is
// rehydrated from the snapshot; with no snapshot it returns nil, nil.
func (s *Session) Current() (*skin.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.currentLocked()
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.Clone(), nil
}

func (s *Session) currentLocked() (*skin.Document, error) {
	if s.doc != nil {
		return s.doc, nil
	}
	data, err := s.store.Load()
	if errors.Is(err, store.ErrNoSnapshot) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	doc, err := skin.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("rehydrating snapshot: %w", err)
	}
	// Snapshots written without ids get them once, persisted, so ids stay
	// stable across processes.
	if skin.AssignIDs(doc) {
		if err := s.persistLocked(doc); err != nil {
			return nil, err
		}
	}
	s.doc = doc
	return doc, nil
}

// Merge applies patch to the current document, persists the result and
// returns a copy of it. On failure the document is left unchanged.
func (s *Session) Merge(patch skin.Patch) (*skin.Document, error) {
	return s.Update(func(*skin.Document) (skin.Patch, error) {
		return patch, nil
	})
}

// Update runs fn against a working copy of the current document and merges
// the patch it returns. fn runs under the session lock, so no other
// mutation can interleave. If fn fails nothing is changed.
func (s *Session) Update(fn func(doc *skin.Document) (skin.Patch, error)) (*skin.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.currentLocked()
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, ErrNotInitialized
	}

	patch, err := fn(cur.Clone())
	if err != nil {
		return nil, err
	}

	merged := skin.Merge(cur, patch)
	skin.AssignIDs(merged)
	if err := s.persistLocked(merged); err != nil {
		return nil, err
	}
	s.doc = merged
	return merged.Clone(), nil
}

// ExportView returns the document as it is exported: a deep copy without
// thumbstick image data or editor ids.
func (s *Session) ExportView() (*skin.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, err := s.currentLocked()
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, ErrNotInitialized
	}
	return skin.ExportView(cur), nil
}

// ExportJSON returns the export view as indented JSON.
func (s *Session) ExportJSON() ([]byte, error) {
	view, err := s.ExportView()
	if err != nil {
		return nil, err
	}
	return skin.EncodeIndent(view)
}

// Reset drops the in-memory document. The next read rehydrates from the
// snapshot.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = nil
}

// Log returns the session's logger.
func (s *Session) Log() *logging.Logger {
	return s.log
}

func (s *Session) persistLocked(doc *skin.Document) error {
	data, err := skin.Encode(doc)
	if err != nil {
		return err
	}
	if err := s.store.Save(data); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}
	return nil
}
