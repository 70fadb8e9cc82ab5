package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)

	assert.Len(t, traceID, TraceIDLength*2, "trace ID is hex-encoded")
	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(context.Background())),
		"trace IDs are unique per request")
}

func TestGetTraceIDWithoutValue(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}
