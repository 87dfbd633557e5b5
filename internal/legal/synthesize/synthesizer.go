package synthesize

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"

	"github.com/qanunai/legal-advisor-backend/internal/legal/types"
	apperrors "github.com/qanunai/legal-advisor-backend/internal/pkg/errors"
)

// Apology is returned instead of an answer when the grounded completion
// call fails. It must never be mistaken for synthesized content.
const Apology = "Cavab yaradılarkən xəta baş verdi."

// noSourcesAnswer is the degraded answer when no source text could be
// collected. It is a terminal success, not an error.
const noSourcesAnswer = "Üzr istəyirik, uyğun rəsmi hüquqi mənbə tapılmadı. " +
	"https://e-qanun.az saytında əl ilə axtarış edə bilərsiniz.\n" +
	"Əlavə olaraq, Mülki Məcəlləyə baxa bilərsiniz: https://e-qanun.az/framework/8"

const groundingPrompt = "You are a legal assistant. Only explain based on the provided " +
	"Azerbaijani legal content. Do not invent facts. Answer in Azerbaijani. " +
	"Reference the sources you rely on with bracket indices such as [1] or [2], " +
	"matching the numbering of the supplied sources."

const maxPromptTokens = 12000

// Completer is the completion-service contract for grounded generation.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Synthesizer asks the completion service to answer strictly from the
// extracted source texts, binding bracket citations to them.
type Synthesizer struct {
	completer Completer
	encoder   *tiktoken.Tiktoken
	logger    *zap.Logger
}

// NewSynthesizer creates a synthesizer.
func NewSynthesizer(completer Completer, logger *zap.Logger) *Synthesizer {
	encoder, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		logger.Warn("token encoder unavailable, using rune estimate", zap.Error(err))
		encoder = nil
	}
	return &Synthesizer{completer: completer, encoder: encoder, logger: logger}
}

// Synthesize produces a grounded answer from the present documents.
// Citation index i always refers to the i-th present document in input
// order, so the index set is exactly 1..k.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, docs []types.ExtractedDocument) (types.SynthesizedAnswer, error) {
	var present []types.ExtractedDocument
	for _, doc := range docs {
		if doc.Present && doc.Text != "" {
			present = append(present, doc)
		}
	}

	if len(present) == 0 {
		return types.SynthesizedAnswer{Body: noSourcesAnswer}, nil
	}

	citations := make([]types.Citation, len(present))
	var sources strings.Builder
	budget := maxPromptTokens / len(present)
	for i, doc := range present {
		citations[i] = types.Citation{Index: i + 1, URL: doc.SourceURL}
		fmt.Fprintf(&sources, "[%d] %s\n\n", i+1, s.capTokens(doc.Text, budget))
	}

	userPrompt := fmt.Sprintf("Sual: %s\n\nMənbələr:\n%s", question, sources.String())

	body, err := s.completer.Complete(ctx, groundingPrompt, userPrompt)
	if err != nil {
		return types.SynthesizedAnswer{}, apperrors.Wrap(err, apperrors.KindSynthesis, "grounded completion failed")
	}

	return types.SynthesizedAnswer{Body: body, Citations: citations}, nil
}

// capTokens bounds one document's share of the prompt.
func (s *Synthesizer) capTokens(text string, budget int) string {
	if s.encoder == nil {
		// Rough rune estimate when the encoder could not be loaded.
		runes := []rune(text)
		if len(runes) > budget*4 {
			return string(runes[:budget*4])
		}
		return text
	}

	ids := s.encoder.Encode(text, nil, nil)
	if len(ids) <= budget {
		return text
	}
	return s.encoder.Decode(ids[:budget])
}
