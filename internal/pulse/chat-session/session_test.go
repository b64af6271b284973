package chatsession

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "deal-pulse/internal/common/errors"
	"deal-pulse/internal/common/logger"
	"deal-pulse/internal/common/metrics"
	"deal-pulse/internal/models"
	synthesizeresponse "deal-pulse/internal/pulse/synthesize-response"
)

func testDataset() []models.Startup {
	return []models.Startup{
		{ID: "1", Name: "Neuron Labs", Sector: "AI", Stage: "Seed", Founders: []models.Founder{{Name: "Sarah Chen", Background: "Ex-Google Brain"}}},
		{ID: "2", Name: "PayFlow", Sector: "Fintech", Stage: "Series A"},
		{ID: "3", Name: "MedSight", Sector: "HealthTech", Stage: "Seed"},
		{ID: "4", Name: "CloudDesk", Sector: "SaaS", Stage: "Series A"},
		{ID: "5", Name: "CarbonTrack", Sector: "Climate", Stage: "Seed"},
		{ID: "6", Name: "VectorMind", Sector: "AI", Stage: "Series A"},
	}
}

func newTestSession(t *testing.T, delay time.Duration) *Session {
	t.Helper()
	engine, err := NewEngine(nil)
	require.NoError(t, err)
	s := NewSession(&Config{ThinkingDelay: delay, Greeting: "hello"}, engine, testDataset(), logger.NewTestLogger(t), nil)
	t.Cleanup(s.Close)
	return s
}

func waitIdle(t *testing.T, s *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
}

type recordingObserver struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingObserver) record(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) MessageAppended(msg Message) { r.record("append:" + string(msg.Role)) }

func (r *recordingObserver) ComposingChanged(composing bool) {
	if composing {
		r.record("composing")
		return
	}
	r.record("idle")
}

func (r *recordingObserver) SessionReset(messages []Message) { r.record("reset") }

func (r *recordingObserver) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func TestNewSession_SeedsGreeting(t *testing.T) {
	s := newTestSession(t, time.Millisecond)

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleAssistant, msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Text)
	assert.Equal(t, synthesizeresponse.KindNone, msgs[0].Kind())
	assert.False(t, s.Composing())
	assert.NotEmpty(t, s.ID())
}

func TestSubmit_BlankIsRejectedWithoutSideEffects(t *testing.T) {
	s := newTestSession(t, time.Millisecond)

	for _, text := range []string{"", "   ", "\t\n"} {
		err := s.Submit(text)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSubmission))
		assert.Equal(t, apperrors.ErrCodeInvalidSubmission, apperrors.AsStandardError(err).Code)
	}
	assert.Len(t, s.Messages(), 1)
	assert.False(t, s.Composing())
}

func TestSubmit_SuccessQueryAppendsUserThenAssistant(t *testing.T) {
	s := newTestSession(t, 20*time.Millisecond)
	before := len(s.Messages())

	require.NoError(t, s.Submit("Which founders are likely to succeed?"))

	msgs := s.Messages()
	require.Len(t, msgs, before+1)
	assert.Equal(t, RoleUser, msgs[before].Role)
	assert.Equal(t, "Which founders are likely to succeed?", msgs[before].Text)
	assert.True(t, s.Composing())

	waitIdle(t, s)

	msgs = s.Messages()
	require.Len(t, msgs, before+2)
	reply := msgs[before+1]
	assert.Equal(t, RoleAssistant, reply.Role)
	assert.Equal(t, synthesizeresponse.KindSuccess, reply.Kind())
	payload, ok := reply.Payload.(synthesizeresponse.SuccessPayload)
	require.True(t, ok)
	assert.Len(t, payload.Predictions, 5)
	assert.False(t, s.Composing())
}

func TestSubmit_RejectsWhileComposing(t *testing.T) {
	s := newTestSession(t, time.Hour)

	require.NoError(t, s.Submit("Which startups are at risk?"))
	err := s.Submit("Detect outliers in our deal flow")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionBusy))
	se := apperrors.AsStandardError(err)
	assert.Equal(t, apperrors.ErrCodeSessionBusy, se.Code)
	assert.True(t, se.Retryable)
	assert.Len(t, s.Messages(), 2)
	assert.True(t, s.Composing())
}

func TestSubmit_BusyRejectionIsCounted(t *testing.T) {
	s := newTestSession(t, time.Hour)
	counter := metrics.SubmissionsRejected.WithLabelValues(string(apperrors.ErrCodeSessionBusy))
	before := testutil.ToFloat64(counter)

	require.NoError(t, s.Submit("Which startups are at risk?"))
	require.Error(t, s.Submit("again"))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestReset_DiscardsPendingReply(t *testing.T) {
	s := newTestSession(t, 30*time.Millisecond)
	obs := &recordingObserver{}
	s.Subscribe(obs)

	require.NoError(t, s.Submit("Show me companies raising next quarter"))
	s.Reset()

	assert.False(t, s.Composing())
	require.Len(t, s.Messages(), 1)
	assert.Equal(t, "hello", s.Messages()[0].Text)

	time.Sleep(100 * time.Millisecond)
	assert.Len(t, s.Messages(), 1)
	assert.Equal(t, []string{"append:user", "composing", "idle", "reset"}, obs.Events())

	require.NoError(t, s.Submit("Show me companies raising next quarter"))
	waitIdle(t, s)
	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, synthesizeresponse.KindFundraising, msgs[2].Kind())
}

func TestClose_DiscardsPendingReplyAndRejectsFurtherInput(t *testing.T) {
	s := newTestSession(t, 30*time.Millisecond)

	require.NoError(t, s.Submit("Which startups are at risk?"))
	s.Close()
	waitIdle(t, s)

	time.Sleep(100 * time.Millisecond)
	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[1].Role)
	assert.False(t, s.Composing())

	err := s.Submit("Detect outliers in our deal flow")
	assert.True(t, errors.Is(err, ErrSessionClosed))
	assert.Len(t, s.Messages(), 2)

	// idempotent
	s.Close()
	s.Reset()
	assert.Len(t, s.Messages(), 2)
}

func TestSession_AlternatesUserAndAssistant(t *testing.T) {
	s := newTestSession(t, time.Millisecond)

	for _, q := range SuggestedQueries {
		require.NoError(t, s.Submit(q))
		waitIdle(t, s)
	}

	msgs := s.Messages()
	require.Len(t, msgs, 1+2*len(SuggestedQueries))
	for i := 1; i < len(msgs); i++ {
		assert.Greater(t, msgs[i].ID, msgs[i-1].ID)
		assert.False(t, msgs[i].Role == RoleAssistant && msgs[i-1].Role == RoleAssistant, "two assistant messages at %d", i)
		if msgs[i].Role == RoleUser {
			require.Less(t, i+1, len(msgs))
			assert.Equal(t, RoleAssistant, msgs[i+1].Role)
		}
	}
}

func TestSession_SuggestedQueryKinds(t *testing.T) {
	expected := []synthesizeresponse.Kind{
		synthesizeresponse.KindFundraising,
		synthesizeresponse.KindSuccess,
		synthesizeresponse.KindRisk,
		synthesizeresponse.KindConviction,
		synthesizeresponse.KindNetwork,
		synthesizeresponse.KindOutliers,
	}
	require.Len(t, SuggestedQueries, len(expected))

	s := newTestSession(t, time.Millisecond)
	for i, q := range SuggestedQueries {
		require.NoError(t, s.Submit(q))
		waitIdle(t, s)
		msgs := s.Messages()
		assert.Equal(t, expected[i], msgs[len(msgs)-1].Kind(), q)
	}
}

func TestSession_ObserverSeesOrderedEvents(t *testing.T) {
	s := newTestSession(t, 5*time.Millisecond)
	obs := &recordingObserver{}
	s.Subscribe(obs)

	require.NoError(t, s.Submit("Anything unusual?"))
	waitIdle(t, s)

	assert.Equal(t, []string{"append:user", "composing", "append:assistant", "idle"}, obs.Events())
}

func TestSession_MessagesReturnsCopy(t *testing.T) {
	s := newTestSession(t, time.Millisecond)

	msgs := s.Messages()
	msgs[0].Text = "mutated"

	assert.Equal(t, "hello", s.Messages()[0].Text)
}

func TestWait_HonoursContext(t *testing.T) {
	s := newTestSession(t, time.Hour)
	require.NoError(t, s.Submit("Who knows the founders?"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, s.Wait(ctx), context.DeadlineExceeded)
}

func TestSession_LogsAndCountsReplies(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	engine, err := NewEngine(nil)
	require.NoError(t, err)
	s := NewSession(&Config{ThinkingDelay: time.Millisecond, Greeting: "hello"}, engine, testDataset(), logger.NewZapAdapter(zap.New(core)), nil)
	defer s.Close()

	counter := metrics.QueriesTotal.WithLabelValues("success_prediction")
	before := testutil.ToFloat64(counter)

	require.NoError(t, s.Submit("Pick the winners in AI"))
	waitIdle(t, s)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	replies := logs.FilterMessage("reply appended").All()
	require.Len(t, replies, 1)
	fields := replies[0].ContextMap()
	assert.Equal(t, "success_prediction", fields["intent"])
	assert.Equal(t, "ai", fields["sector"])
	assert.Equal(t, s.ID(), fields["sessionId"])
}

func TestSessions_ShareEngineAndDataset(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)
	dataset := testDataset()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := NewSession(&Config{ThinkingDelay: time.Millisecond, Greeting: "hi"}, engine, dataset, nil, nil)
			defer s.Close()
			for _, q := range SuggestedQueries {
				if err := s.Submit(q); err != nil {
					t.Error(err)
					return
				}
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				err := s.Wait(ctx)
				cancel()
				if err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, testDataset(), dataset)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig(nil)
	assert.Equal(t, 700*time.Millisecond, cfg.ThinkingDelay)
	assert.NotEmpty(t, cfg.Greeting)
}
