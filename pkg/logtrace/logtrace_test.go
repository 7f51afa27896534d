package logtrace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrelationIDRoundTrip(t *testing.T) {
	ctx := CtxWithCorrelationID(context.Background(), "notarize-doc-1")
	assert.Equal(t, "notarize-doc-1", CorrelationIDFromCtx(ctx))
}

func TestCorrelationIDGeneratedWhenEmpty(t *testing.T) {
	ctx := CtxWithCorrelationID(context.Background(), "")
	assert.NotEmpty(t, CorrelationIDFromCtx(ctx))
}

func TestCorrelationIDMissing(t *testing.T) {
	assert.Empty(t, CorrelationIDFromCtx(context.Background()))
	assert.Empty(t, CorrelationIDFromCtx(nil))
}

func TestWithFieldsMergesWithoutMutatingBase(t *testing.T) {
	base := Fields{FieldMethod: "StoreDocumentHash"}
	merged := WithFields(base, Fields{FieldTxID: "ABC"})

	assert.Equal(t, "StoreDocumentHash", merged[FieldMethod])
	assert.Equal(t, "ABC", merged[FieldTxID])
	assert.NotContains(t, base, FieldTxID)
}
