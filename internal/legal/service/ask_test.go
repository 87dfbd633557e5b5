package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/qanunai/legal-advisor-backend/internal/legal/pipeline"
	"github.com/qanunai/legal-advisor-backend/internal/legal/types"
)

type stubClassifier struct {
	tag   types.LanguageTag
	legal bool
}

func (s *stubClassifier) Classify(context.Context, string, string) types.LanguageTag { return s.tag }
func (s *stubClassifier) IsLegalQuestion(context.Context, string) (bool, error)      { return s.legal, nil }

type stubRetriever struct{}

func (stubRetriever) Retrieve(context.Context, []string) *types.SourceSet {
	return types.NewSourceSet()
}

type stubExtractor struct{}

func (stubExtractor) ExtractAll(_ context.Context, urls []string) []types.ExtractedDocument {
	return make([]types.ExtractedDocument, len(urls))
}

type stubSynthesizer struct{}

func (stubSynthesizer) Synthesize(context.Context, string, []types.ExtractedDocument) (types.SynthesizedAnswer, error) {
	return types.SynthesizedAnswer{Body: "cavab"}, nil
}

type stubChatter struct{ reply string }

func (s stubChatter) Chat(context.Context, string, string) (string, error) { return s.reply, nil }

func newTestRouter(t *testing.T, classifier *stubClassifier, chatter stubChatter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	p := pipeline.New(classifier, stubRetriever{}, stubExtractor{}, stubSynthesizer{}, chatter,
		map[string]string{"de": "gesetze-im-internet.de"}, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/v1")
	NewLegalService(p, zap.NewNop()).RegisterRoutes(api)
	return router
}

func TestAskCasualQuestion(t *testing.T) {
	router := newTestRouter(t,
		&stubClassifier{tag: types.LanguageTag{Code: "az"}, legal: false},
		stubChatter{reply: "Salam!"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask",
		strings.NewReader(`{"question":"Salam, necəsən?"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	answer := gjson.Get(w.Body.String(), "data.answer").String()
	assert.Equal(t, `<div class="casual-answer">Salam!</div>`, answer)
}

func TestAskReferral(t *testing.T) {
	router := newTestRouter(t,
		&stubClassifier{tag: types.LanguageTag{Code: "de"}, legal: true},
		stubChatter{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask",
		strings.NewReader(`{"question":"Darf ein Kind ein Telefon kaufen?"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	answer := gjson.Get(w.Body.String(), "data.answer").String()
	assert.Equal(t, "Please consult the official legal source: gesetze-im-internet.de", answer)
}

func TestAskMissingQuestion(t *testing.T) {
	router := newTestRouter(t, &stubClassifier{}, stubChatter{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskBlankQuestionRejected(t *testing.T) {
	router := newTestRouter(t, &stubClassifier{}, stubChatter{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask",
		strings.NewReader(`{"question":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
