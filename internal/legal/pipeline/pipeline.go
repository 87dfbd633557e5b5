// Package pipeline orchestrates one question through classification,
// decomposition, retrieval, extraction, synthesis and formatting.
// Invocations are independent; no state is shared between questions.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qanunai/legal-advisor-backend/internal/legal/decompose"
	"github.com/qanunai/legal-advisor-backend/internal/legal/extract"
	"github.com/qanunai/legal-advisor-backend/internal/legal/format"
	"github.com/qanunai/legal-advisor-backend/internal/legal/synthesize"
	"github.com/qanunai/legal-advisor-backend/internal/legal/types"
	apperrors "github.com/qanunai/legal-advisor-backend/internal/pkg/errors"
)

const unsupportedLanguageAnswer = "Sorry, I can only handle Azerbaijani, English, German, and Russian legal questions."

// Classifier decides the question's language and whether it is legal.
type Classifier interface {
	Classify(ctx context.Context, text, localeHint string) types.LanguageTag
	IsLegalQuestion(ctx context.Context, text string) (bool, error)
}

// Retriever turns sub-queries into a deduplicated, ordered source set.
type Retriever interface {
	Retrieve(ctx context.Context, subqueries []string) *types.SourceSet
}

// Synthesizer produces a grounded answer from extracted documents.
type Synthesizer interface {
	Synthesize(ctx context.Context, question string, docs []types.ExtractedDocument) (types.SynthesizedAnswer, error)
}

// Chatter handles questions outside the legal domain.
type Chatter interface {
	Chat(ctx context.Context, question, languageTag string) (string, error)
}

// Pipeline answers one legal question end to end.
type Pipeline struct {
	classifier     Classifier
	retriever      Retriever
	extractor      extract.DocumentExtractor
	synthesizer    Synthesizer
	chatter        Chatter
	trustedSources map[string]string
	logger         *zap.Logger
}

// New creates a pipeline. trustedSources maps a language code to the
// official legal domain used in referral messages.
func New(classifier Classifier, retriever Retriever, extractor extract.DocumentExtractor,
	synthesizer Synthesizer, chatter Chatter, trustedSources map[string]string, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		classifier:     classifier,
		retriever:      retriever,
		extractor:      extractor,
		synthesizer:    synthesizer,
		chatter:        chatter,
		trustedSources: trustedSources,
		logger:         logger,
	}
}

// Answer runs the full pipeline for one question and returns rendered
// answer markup. localeHint is the caller's locale, used only as a
// classification tiebreaker.
func (p *Pipeline) Answer(ctx context.Context, question, localeHint string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", apperrors.New(apperrors.KindValidation, "question must not be empty")
	}

	log := p.logger.With(zap.String("invocation_id", uuid.NewString()))

	tag := p.classifier.Classify(ctx, question, localeHint)
	log.Info("language classified", zap.String("language", tag.Code))

	legal, err := p.classifier.IsLegalQuestion(ctx, question)
	if err != nil {
		// Everything past boundary validation degrades to an answer.
		log.Error("eligibility gate failed", zap.Error(err))
		return format.Legal(types.SynthesizedAnswer{Body: synthesize.Apology}), nil
	}

	if !legal {
		reply, err := p.chatter.Chat(ctx, question, tag.Code)
		if err != nil {
			log.Error("general chat failed", zap.Error(err))
			return format.Casual(synthesize.Apology), nil
		}
		return format.Casual(reply), nil
	}

	if !tag.Azerbaijani() {
		return p.referral(tag), nil
	}

	subqueries := decompose.Decompose(question)
	log.Info("question decomposed", zap.Strings("subqueries", subqueries))

	sources := p.retriever.Retrieve(ctx, subqueries)
	log.Info("sources retrieved", zap.Int("count", sources.Len()))

	docs := p.extractor.ExtractAll(ctx, sources.URLs())

	answer, err := p.synthesizer.Synthesize(ctx, question, docs)
	if err != nil {
		// The apology is the terminal user-visible answer for a failed
		// grounding call. It carries no citations and never resembles
		// synthesized content.
		log.Error("synthesis failed", zap.Error(err))
		return format.Legal(types.SynthesizedAnswer{Body: synthesize.Apology}), nil
	}
	log.Info("answer synthesized", zap.Int("citations", len(answer.Citations)))

	return format.Legal(answer), nil
}

// referral names the official legal source for a supported non-Azerbaijani
// language, or the generic unsupported-language message otherwise.
func (p *Pipeline) referral(tag types.LanguageTag) string {
	if source, ok := p.trustedSources[tag.Code]; ok && tag.Supported() {
		return fmt.Sprintf("Please consult the official legal source: %s", source)
	}
	return unsupportedLanguageAnswer
}
