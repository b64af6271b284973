package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestObservability_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs, err := New("pulse-test", sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, err)
	defer obs.Shutdown()

	ctx, end := obs.StartSpan(context.Background(), "pulse.synthesize", map[string]string{"intent": "risk_prediction"})
	obs.RecordQueryProcessed(ctx, "risk_prediction")
	obs.RecordQueryDuration(ctx, 3*time.Millisecond, "risk_prediction")
	end()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "pulse.synthesize", spans[0].Name())
	require.Len(t, spans[0].Attributes(), 1)
	assert.Equal(t, "risk_prediction", spans[0].Attributes()[0].Value.AsString())
}

func TestObservability_ZeroValueIsSafe(t *testing.T) {
	var obs Observability
	assert.NotPanics(t, func() {
		ctx, end := obs.StartSpan(context.Background(), "noop", nil)
		obs.RecordQueryProcessed(ctx, "general")
		obs.RecordQueryDuration(ctx, time.Millisecond, "general")
		end()
		obs.Shutdown()
	})
}
