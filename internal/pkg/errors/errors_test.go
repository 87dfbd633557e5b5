package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	base := fmt.Errorf("connection refused")

	err := Wrap(base, KindRetrieval, "search call failed")
	assert.Equal(t, KindRetrieval, err.Kind)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "retrieval")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, KindSynthesis, "should stay nil"))
}

func TestWrap_KeepsExistingKind(t *testing.T) {
	inner := New(KindSynthesis, "completion failed")
	outer := Wrap(fmt.Errorf("pipeline: %w", inner), KindRetrieval, "ignored")
	assert.Equal(t, KindSynthesis, outer.Kind)
}

func TestIsAndExtractKind(t *testing.T) {
	err := New(KindValidation, "empty question")
	wrapped := fmt.Errorf("handler: %w", err)

	assert.True(t, Is(wrapped, KindValidation))
	assert.False(t, Is(wrapped, KindSynthesis))
	assert.Equal(t, KindValidation, ExtractKind(wrapped))
	assert.Equal(t, KindUnknown, ExtractKind(fmt.Errorf("plain")))
}

func TestKindHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindValidation.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, KindSynthesis.HTTPStatus())
}
