package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kdduha/chiliguard/internal/metrics"
	"github.com/kdduha/chiliguard/internal/models"
)

const (
	DefaultMaxHistory = 50

	persistTimeout = 5 * time.Second
)

type Options struct {
	MaxHistory int
}

// Store holds the application state. Every operation is one atomic
// transition; only the history is written to Storage.
type Store struct {
	storage    Storage
	logger     *zap.Logger
	maxHistory int

	// saveMu orders writes to storage; saved is the newest persisted revision.
	saveMu sync.Mutex
	saved  uint64

	mu         sync.Mutex
	revision   uint64
	capture    *models.Capture
	processing bool
	result     *models.PredictionResult
	history    []models.HistoryEntry
	messages   []models.ChatMessage
	typing     bool
}

// New loads persisted history. Storage failures are logged and the store
// continues with in-memory history only.
func New(ctx context.Context, storage Storage, logger *zap.Logger, opts Options) *Store {
	if storage == nil {
		storage = MemoryStorage{}
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = DefaultMaxHistory
	}

	s := &Store{
		storage:    storage,
		logger:     logger,
		maxHistory: opts.MaxHistory,
	}
	s.resetLocked()

	history, err := storage.Load(ctx)
	if err != nil {
		logger.Warn("Failed to load history, continuing in memory", zap.Error(err))
	}
	if len(history) > s.maxHistory {
		history = history[:s.maxHistory]
	}
	if history != nil {
		s.history = history
	}
	metrics.HistorySize(len(s.history))
	return s
}

func (s *Store) resetLocked() {
	s.capture = nil
	s.processing = false
	s.result = nil
	s.history = []models.HistoryEntry{}
	s.messages = []models.ChatMessage{}
	s.typing = false
}

func (s *Store) SetCapture(c *models.Capture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c != nil {
		cp := *c
		s.capture = &cp
		return
	}
	s.capture = nil
}

func (s *Store) SetProcessing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = v
}

// TryBeginProcessing sets the processing flag unless it is already set.
func (s *Store) TryBeginProcessing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing {
		return false
	}
	s.processing = true
	return true
}

func (s *Store) SetResult(r *models.PredictionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r != nil {
		cp := r.Clone()
		s.result = &cp
		return
	}
	s.result = nil
}

// AddHistory prepends the entry and keeps the newest maxHistory entries.
func (s *Store) AddHistory(entry models.HistoryEntry) {
	s.mu.Lock()
	history := make([]models.HistoryEntry, 0, min(len(s.history)+1, s.maxHistory))
	history = append(history, entry)
	history = append(history, s.history...)
	if len(history) > s.maxHistory {
		history = history[:s.maxHistory]
	}
	s.history = history
	pending := s.stageLocked()
	s.mu.Unlock()

	s.persist(pending)
}

// RemoveHistory drops the entry with the given id. Unknown ids are a no-op.
func (s *Store) RemoveHistory(id string) {
	s.mu.Lock()
	history := make([]models.HistoryEntry, 0, len(s.history))
	for _, entry := range s.history {
		if entry.ID != id {
			history = append(history, entry)
		}
	}
	if len(history) == len(s.history) {
		s.mu.Unlock()
		return
	}
	s.history = history
	pending := s.stageLocked()
	s.mu.Unlock()

	s.persist(pending)
}

func (s *Store) ClearHistory() {
	s.mu.Lock()
	s.history = []models.HistoryEntry{}
	pending := s.stageLocked()
	s.mu.Unlock()

	s.persist(pending)
}

func (s *Store) AppendMessage(m models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}

// AppendIfEmpty appends m only when the conversation has no messages yet.
func (s *Store) AppendIfEmpty(m models.ChatMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) > 0 {
		return false
	}
	s.messages = append(s.messages, m)
	return true
}

func (s *Store) SetTyping(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typing = v
}

// TryBeginTyping sets the typing flag unless a reply is already pending.
func (s *Store) TryBeginTyping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.typing {
		return false
	}
	s.typing = true
	return true
}

func (s *Store) ClearChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = []models.ChatMessage{}
}

// Reset restores every field to its initial value, history included.
func (s *Store) Reset() {
	s.mu.Lock()
	s.resetLocked()
	pending := s.stageLocked()
	s.mu.Unlock()

	s.persist(pending)
}

func (s *Store) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

func (s *Store) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

func (s *Store) Capture() *models.Capture {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capture == nil {
		return nil
	}
	cp := *s.capture
	return &cp
}

func (s *Store) Result() *models.PredictionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil
	}
	cp := s.result.Clone()
	return &cp
}

func (s *Store) History() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.HistoryEntry{}, s.history...)
}

func (s *Store) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage{}, s.messages...)
}

func (s *Store) Snapshot() models.StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.StateSnapshot{
		Processing: s.processing,
		History:    append([]models.HistoryEntry{}, s.history...),
		Messages:   append([]models.ChatMessage{}, s.messages...),
		Typing:     s.typing,
	}
	if s.capture != nil {
		snap.Capture = &models.CaptureInfo{
			Name:     s.capture.Name,
			MIMEType: s.capture.MIMEType,
			Size:     s.capture.Size(),
		}
	}
	if s.result != nil {
		cp := s.result.Clone()
		snap.Result = &cp
	}
	return snap
}

type pendingSave struct {
	revision uint64
	history  []models.HistoryEntry
}

// stageLocked copies the history for persist so storage I/O runs without mu.
func (s *Store) stageLocked() pendingSave {
	s.revision++
	metrics.HistorySize(len(s.history))
	return pendingSave{
		revision: s.revision,
		history:  append([]models.HistoryEntry{}, s.history...),
	}
}

// persist writes a staged history. A revision older than the last one written
// is dropped. A failing backend is logged and the in-memory state stays
// authoritative.
func (s *Store) persist(p pendingSave) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if p.revision <= s.saved {
		return
	}
	s.saved = p.revision

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.storage.Save(ctx, p.history); err != nil {
		s.logger.Warn("Failed to persist history", zap.Error(err))
	}
}

func (s *Store) Close() error {
	return s.storage.Close()
}
