// internal/common/observability/observability_test.go
package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutJaeger(t *testing.T) {
	o := New("matching-workers-test", "")
	defer o.Shutdown()

	assert.Nil(t, o.tracerProvider)

	ctx, span := o.StartSpan(context.Background(), "generate-matches")
	require.NotNil(t, span)
	require.NotNil(t, ctx)
	span.End()

	o.RecordJobProcessed(ctx, "generate-matches", "success")
	o.RecordJobDuration(ctx, "generate-matches", 25*time.Millisecond, "success")
}

func TestNew_WithJaegerEndpoint(t *testing.T) {
	o := New("matching-workers-test", "http://localhost:14268/api/traces")
	defer o.Shutdown()

	require.NotNil(t, o.tracerProvider)

	_, span := o.StartSpan(context.Background(), "get-matches")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
}

func TestStartSpan_ZeroValue(t *testing.T) {
	var o Observability
	_, span := o.StartSpan(context.Background(), "match-analytics")
	require.NotNil(t, span)
	span.End()
}
