package chatsession

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "deal-pulse/internal/common/errors"
	"deal-pulse/internal/common/logger"
	"deal-pulse/internal/common/metrics"
	"deal-pulse/internal/common/observability"
	"deal-pulse/internal/models"
	synthesizeresponse "deal-pulse/internal/pulse/synthesize-response"
)

var (
	ErrInvalidSubmission = errors.New("INVALID_SUBMISSION")
	ErrSessionBusy       = errors.New("SESSION_BUSY")
	ErrSessionClosed     = errors.New("SESSION_CLOSED")
)

// Session sequences user queries and assistant replies. It is idle or
// composing; while composing, further submissions are rejected.
type Session struct {
	id      string
	config  *Config
	engine  *Engine
	dataset []models.Startup
	logger  logger.Logger
	obs     *observability.Observability

	mu         sync.Mutex
	messages   []Message
	nextID     int64
	composing  bool
	closed     bool
	generation uint64
	timer      *time.Timer
	idle       chan struct{}
	observers  []Observer

	// serializes mutations with their notifications; taken before mu
	notifyMu sync.Mutex
}

// NewSession seeds the log with the greeting. The dataset is shared and
// never modified.
func NewSession(cfg *Config, engine *Engine, dataset []models.Startup, log logger.Logger, obs *observability.Observability) *Session {
	if cfg == nil {
		cfg = LoadConfig(nil)
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if obs == nil {
		obs = &observability.Observability{}
	}
	id := uuid.NewString()
	s := &Session{
		id:      id,
		config:  cfg,
		engine:  engine,
		dataset: dataset,
		logger:  log.With(map[string]interface{}{"component": "chat-session", "sessionId": id}),
		obs:     obs,
	}
	s.messages = []Message{s.newMessage(RoleAssistant, cfg.Greeting, nil)}
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Subscribe registers an observer for subsequent changes.
func (s *Session) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Messages returns a copy of the log in conversation order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

func (s *Session) Composing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composing
}

// Submit appends a user message and schedules the reply. Blank text, a
// pending reply and a closed session are rejected without touching the log.
func (s *Session) Submit(text string) error {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if err := s.admit(text); err != nil {
		s.mu.Unlock()
		se := apperrors.AsStandardError(err)
		metrics.SubmissionsRejected.WithLabelValues(string(se.Code)).Inc()
		s.logger.Debug("submission rejected", map[string]interface{}{"code": se.Code})
		return err
	}

	userMsg := s.newMessage(RoleUser, text, nil)
	s.messages = append(s.messages, userMsg)
	s.composing = true
	s.generation++
	gen := s.generation
	s.idle = make(chan struct{})
	s.timer = time.AfterFunc(s.config.ThinkingDelay, func() { s.complete(gen, text) })
	metrics.SessionsComposing.Inc()
	observers := s.snapshotObservers()
	s.mu.Unlock()

	for _, o := range observers {
		o.MessageAppended(userMsg)
		o.ComposingChanged(true)
	}

	s.logger.Info("query submitted", map[string]interface{}{"messageId": userMsg.ID})
	return nil
}

func (s *Session) admit(text string) error {
	switch {
	case s.closed:
		return apperrors.NewSessionClosedError().WithCause(ErrSessionClosed)
	case strings.TrimSpace(text) == "":
		return apperrors.NewInvalidSubmissionError().WithCause(ErrInvalidSubmission)
	case s.composing:
		return apperrors.NewSessionBusyError().WithCause(ErrSessionBusy)
	}
	return nil
}

// complete runs when the thinking delay elapses. Stale generations belong to
// a reset or closed session and are dropped.
func (s *Session) complete(gen uint64, query string) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if gen != s.generation || s.closed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	start := time.Now()
	ctx, end := s.obs.StartSpan(context.Background(), "pulse.synthesize", map[string]string{
		"session.id": s.id,
	})
	answer := s.engine.Answer(query, s.dataset)
	end()
	elapsed := time.Since(start)
	intent := answer.Intent.String()

	// generation only moves under notifyMu, which is still held
	s.mu.Lock()
	reply := s.newMessage(RoleAssistant, answer.Response.Text, answer.Response.Data)
	s.messages = append(s.messages, reply)
	idle := s.finishComposing()
	observers := s.snapshotObservers()
	s.mu.Unlock()
	// Wait returns only once the reply is fully reported
	defer close(idle)

	metrics.QueriesTotal.WithLabelValues(intent).Inc()
	metrics.SynthesisDuration.WithLabelValues(intent).Observe(elapsed.Seconds())
	s.obs.RecordQueryProcessed(ctx, intent)
	s.obs.RecordQueryDuration(ctx, elapsed, intent)

	for _, o := range observers {
		o.MessageAppended(reply)
		o.ComposingChanged(false)
	}

	s.logger.Info("reply appended", map[string]interface{}{
		"messageId": reply.ID,
		"intent":    intent,
		"sector":    answer.Entities.Sector,
		"kind":      string(reply.Kind()),
	})
}

// Reset discards any pending reply and reseeds the greeting.
func (s *Session) Reset() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	wasComposing := s.cancelPending()
	s.messages = []Message{s.newMessage(RoleAssistant, s.config.Greeting, nil)}
	snapshot := append([]Message(nil), s.messages...)
	observers := s.snapshotObservers()
	s.mu.Unlock()

	for _, o := range observers {
		if wasComposing {
			o.ComposingChanged(false)
		}
		o.SessionReset(snapshot)
	}
	s.logger.Info("session reset", map[string]interface{}{"discardedPending": wasComposing})
}

// Close tears the session down. A pending reply is discarded and later
// submissions fail with ErrSessionClosed.
func (s *Session) Close() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	wasComposing := s.cancelPending()
	s.closed = true
	observers := s.snapshotObservers()
	s.mu.Unlock()

	if wasComposing {
		for _, o := range observers {
			o.ComposingChanged(false)
		}
	}
	s.logger.Info("session closed", map[string]interface{}{"discardedPending": wasComposing})
}

// Wait blocks until no reply is pending or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()
	if idle == nil {
		return nil
	}
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cancelPending must be called with mu held.
func (s *Session) cancelPending() bool {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if !s.composing {
		return false
	}
	close(s.finishComposing())
	return true
}

// finishComposing must be called with mu held. The caller closes the
// returned channel to release waiters; it stays in place until the next
// submission so late waiters return at once.
func (s *Session) finishComposing() chan struct{} {
	s.composing = false
	s.timer = nil
	metrics.SessionsComposing.Dec()
	return s.idle
}

func (s *Session) snapshotObservers() []Observer {
	return append([]Observer(nil), s.observers...)
}

func (s *Session) newMessage(role Role, text string, payload synthesizeresponse.Payload) Message {
	s.nextID++
	return Message{
		ID:        s.nextID,
		Role:      role,
		Text:      text,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
}
