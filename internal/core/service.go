package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Defaults applied by NewService for zero SessionConfig fields.
const (
	DefaultIdleTimeout = 2 * time.Hour
	DefaultMaxSessions = 100
)

// SessionConfig bounds the number and lifetime of review sessions and how
// many uploads are parsed at once.
type SessionConfig struct {
	IdleTimeout        time.Duration
	MaxSessions        int
	MaxConcurrentLoads int
	LoadWait           time.Duration
}

// Service owns the review sessions. Each session holds its own BatchStore,
// and all access to one session is serialized by the session's mutex.
type Service struct {
	audit AuditStore
	cfg   SessionConfig
	loads *LoadLimiter
	now   func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	id        string
	createdAt time.Time

	mu         sync.Mutex
	store      BatchStore
	fileName   string
	lastActive time.Time
}

// NewService creates a Service. audit may be nil to disable the journal.
func NewService(audit AuditStore, cfg SessionConfig) *Service {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	return &Service{
		audit:    audit,
		cfg:      cfg,
		loads:    NewLoadLimiter(cfg.MaxConcurrentLoads, cfg.LoadWait),
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// CreateSession starts an empty review session.
func (s *Service) CreateSession(ctx context.Context) (SessionInfo, error) {
	now := s.now()
	sess := &session{
		id:         uuid.NewString(),
		createdAt:  now,
		lastActive: now,
	}

	s.mu.Lock()
	if len(s.sessions) >= s.cfg.MaxSessions {
		s.mu.Unlock()
		return SessionInfo{}, ErrTooManySessions
	}
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	slog.Debug("session created", "session_id", sess.id)
	return sess.info(), nil
}

// LoadBatch parses raw and makes it the session's batch, replacing any
// previous one. On error the previous batch is kept.
func (s *Service) LoadBatch(ctx context.Context, sessionID, fileName string, raw []byte) (SessionInfo, error) {
	if err := s.loads.Acquire(ctx); err != nil {
		return SessionInfo{}, err
	}
	defer s.loads.Release()

	var info SessionInfo
	err := s.withSession(sessionID, func(sess *session) error {
		b, err := sess.store.Load(fileName, raw)
		if err != nil {
			return err
		}
		sess.fileName = fileName

		entry := newAuditEntry(ctx, sessionID, ActionLoad)
		entry.FileName = fileName
		entry.NewValue = fmt.Sprintf("%d records", b.Len())
		s.record(ctx, entry)

		info = sess.info()
		return nil
	})
	return info, err
}

// Session returns the summary of a session.
func (s *Service) Session(sessionID string) (SessionInfo, error) {
	var info SessionInfo
	err := s.withSession(sessionID, func(sess *session) error {
		info = sess.info()
		return nil
	})
	return info, err
}

// SessionCount returns the number of live sessions.
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// LoadStatus reports how many uploads are being parsed.
func (s *Service) LoadStatus() LoadLimiterStatus {
	return s.loads.Status()
}

// WaitForLoads blocks until in-flight uploads are parsed or ctx ends.
func (s *Service) WaitForLoads(ctx context.Context) error {
	return s.loads.WaitForDrain(ctx)
}

// CloseSession discards a session and its batch.
func (s *Service) CloseSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	sess.mu.Lock()
	entry := newAuditEntry(ctx, sessionID, ActionSessionClose)
	entry.FileName = sess.fileName
	sess.store.Reset()
	sess.mu.Unlock()

	s.record(ctx, entry)
	return nil
}

// UpdateField overwrites one editable free-text field of a record.
func (s *Service) UpdateField(ctx context.Context, sessionID string, index int, field, value string) error {
	return s.withRecord(sessionID, index, func(sess *session, rec *Record) error {
		return s.setField(ctx, sess, index, rec, field, value)
	})
}

// UpdateOption overwrites one translated option of a record.
func (s *Service) UpdateOption(ctx context.Context, sessionID string, index int, key, value string) error {
	return s.withRecord(sessionID, index, func(sess *session, rec *Record) error {
		return s.setOption(ctx, sess, index, rec, key, value)
	})
}

// UpdateLabels canonicalizes raw and stores it under a label field.
func (s *Service) UpdateLabels(ctx context.Context, sessionID string, index int, field, raw string) ([]string, error) {
	var tags []string
	err := s.withRecord(sessionID, index, func(sess *session, rec *Record) error {
		var err error
		tags, err = s.setLabels(ctx, sess, index, rec, field, raw)
		return err
	})
	return tags, err
}

// SaveRecord applies a whole review form to one record. Individual edits
// that fail (unknown option key, non-editable field) are skipped and
// reported; the remaining edits are still applied.
func (s *Service) SaveRecord(ctx context.Context, sessionID string, index int, edit RecordEdit) (SaveResult, error) {
	result := SaveResult{Labels: make(map[string][]string)}

	err := s.withRecord(sessionID, index, func(sess *session, rec *Record) error {
		for _, field := range sortedKeys(edit.Fields) {
			if err := s.setField(ctx, sess, index, rec, field, edit.Fields[field]); err != nil {
				result.Skipped = append(result.Skipped, err.Error())
			}
		}

		for _, key := range optionOrder(rec, edit.Options) {
			if err := s.setOption(ctx, sess, index, rec, key, edit.Options[key]); err != nil {
				result.Skipped = append(result.Skipped, err.Error())
			}
		}

		for _, field := range sortedKeys(edit.Labels) {
			tags, err := s.setLabels(ctx, sess, index, rec, field, edit.Labels[field])
			if err != nil {
				result.Skipped = append(result.Skipped, err.Error())
				continue
			}
			result.Labels[field] = tags
		}
		return nil
	})
	if err != nil {
		return SaveResult{}, err
	}

	if len(result.Skipped) > 0 {
		slog.Warn("record saved with skipped edits",
			"session_id", sessionID,
			"record", index,
			"skipped", len(result.Skipped),
		)
	}
	return result, nil
}

// Record returns a copy of one record.
func (s *Service) Record(sessionID string, index int) (*Record, error) {
	var out *Record
	err := s.withRecord(sessionID, index, func(_ *session, rec *Record) error {
		out = rec.Clone()
		return nil
	})
	return out, err
}

// View snapshots one record together with the session summary.
func (s *Service) View(sessionID string, index int) (ReviewView, error) {
	var view ReviewView
	err := s.withRecord(sessionID, index, func(sess *session, rec *Record) error {
		b, _ := sess.store.Current()
		view.Session = sess.info()
		view.Record = newRecordView(index, rec, func(field string) []string {
			return Vocabulary(b, field)
		})
		return nil
	})
	return view, err
}

// UniqueLabels returns the sorted tags used under field in the session's batch.
func (s *Service) UniqueLabels(sessionID, field string) ([]string, error) {
	var tags []string
	err := s.withBatch(sessionID, func(_ *session, b *Batch) error {
		if !IsLabelField(field) {
			return fmt.Errorf("%w: %s", ErrNotLabelField, field)
		}
		tags = CollectUniqueLabels(b, field).Sorted()
		return nil
	})
	return tags, err
}

// Vocabulary returns the reference tags for field merged with those in use.
func (s *Service) Vocabulary(sessionID, field string) ([]string, error) {
	var tags []string
	err := s.withBatch(sessionID, func(_ *session, b *Batch) error {
		if !IsLabelField(field) {
			return fmt.Errorf("%w: %s", ErrNotLabelField, field)
		}
		tags = Vocabulary(b, field)
		return nil
	})
	return tags, err
}

// Export serializes the session's batch. The batch stays loaded.
func (s *Service) Export(ctx context.Context, sessionID string) (string, []byte, error) {
	var (
		name string
		data []byte
	)
	err := s.withSession(sessionID, func(sess *session) error {
		var err error
		name, data, err = sess.store.Export()
		if err != nil {
			return err
		}

		entry := newAuditEntry(ctx, sessionID, ActionExport)
		entry.FileName = name
		entry.NewValue = fmt.Sprintf("%d bytes", len(data))
		s.record(ctx, entry)
		return nil
	})
	return name, data, err
}

// AuditLog returns the newest journal entries of a session.
// It returns an empty list when the journal is disabled.
func (s *Service) AuditLog(ctx context.Context, sessionID string, limit int) ([]AuditEntry, error) {
	if _, err := s.Session(sessionID); err != nil {
		return nil, err
	}
	if s.audit == nil {
		return []AuditEntry{}, nil
	}
	entries, err := s.audit.ListAudit(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	return entries, nil
}

func (s *Service) setField(ctx context.Context, sess *session, index int, rec *Record, field, value string) error {
	old := rec.Text(field)
	if err := SetTranslatedField(rec, field, value); err != nil {
		return err
	}
	if old != value {
		s.recordEdit(ctx, sess, ActionFieldEdit, index, field, old, value)
	}
	return nil
}

func (s *Service) setOption(ctx context.Context, sess *session, index int, rec *Record, key, value string) error {
	old, _ := rec.OptionPersianText(key)
	if err := SetTranslatedOption(rec, key, value); err != nil {
		return err
	}
	if old != value {
		s.recordEdit(ctx, sess, ActionOptionEdit, index, FieldOptionsPersian+"."+key, old, value)
	}
	return nil
}

func (s *Service) setLabels(ctx context.Context, sess *session, index int, rec *Record, field, raw string) ([]string, error) {
	old := rec.Label(field).String()
	tags, err := SetLabelField(rec, field, raw)
	if err != nil {
		return nil, err
	}
	if joined := strings.Join(tags, LabelSeparator); joined != old {
		s.recordEdit(ctx, sess, ActionLabelEdit, index, field, old, joined)
	}
	return tags, nil
}

func (s *Service) recordEdit(ctx context.Context, sess *session, action AuditAction, index int, field, old, value string) {
	entry := newAuditEntry(ctx, sess.id, action)
	entry.FileName = sess.fileName
	entry.RecordIndex = index
	entry.Field = field
	entry.OldValue = old
	entry.NewValue = value
	s.record(ctx, entry)
}

// record writes a journal entry. Journal failures are logged and never
// fail the edit that produced them.
func (s *Service) record(ctx context.Context, entry AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.InsertAudit(ctx, entry); err != nil {
		slog.Error("journal write failed",
			"session_id", entry.SessionID,
			"action", entry.Action,
			"error", err,
		)
	}
}

// withSession runs fn while holding the session lock and marks the
// session as active.
func (s *Service) withSession(sessionID string, fn func(*session) error) error {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastActive = s.now()
	return fn(sess)
}

func (s *Service) withBatch(sessionID string, fn func(*session, *Batch) error) error {
	return s.withSession(sessionID, func(sess *session) error {
		b, err := sess.store.Current()
		if err != nil {
			return err
		}
		return fn(sess, b)
	})
}

func (s *Service) withRecord(sessionID string, index int, fn func(*session, *Record) error) error {
	return s.withBatch(sessionID, func(sess *session, b *Batch) error {
		rec, err := b.Record(index)
		if err != nil {
			return err
		}
		return fn(sess, rec)
	})
}

// reapIdle removes sessions inactive since before cutoff and returns how
// many were removed.
func (s *Service) reapIdle(ctx context.Context, cutoff time.Time) int {
	s.mu.Lock()
	var expired []*session
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastActive.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		entry := newAuditEntry(ctx, sess.id, ActionSessionClose)
		entry.FileName = sess.fileName
		entry.NewValue = "expired"
		s.record(ctx, entry)
	}
	return len(expired)
}

func (sess *session) info() SessionInfo {
	info := SessionInfo{
		ID:         sess.id,
		FileName:   sess.fileName,
		CreatedAt:  sess.createdAt,
		LastActive: sess.lastActive,
	}
	if b, err := sess.store.Current(); err == nil {
		info.Loaded = true
		info.Records = b.Len()
		info.ExportName = b.ExportName()
	}
	return info
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// optionOrder lists the submitted option keys in the record's option order,
// followed by unknown keys in lexical order.
func optionOrder(rec *Record, submitted map[string]string) []string {
	keys := make([]string, 0, len(submitted))
	seen := make(map[string]bool, len(submitted))
	for _, opt := range rec.Options() {
		if _, ok := submitted[opt.Key]; ok {
			keys = append(keys, opt.Key)
			seen[opt.Key] = true
		}
	}
	for _, k := range sortedKeys(submitted) {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// IsNotFound reports whether err means a session or record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrRecordNotFound)
}
