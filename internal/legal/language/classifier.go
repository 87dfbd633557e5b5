package language

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/qanunai/legal-advisor-backend/internal/legal/types"
	"github.com/qanunai/legal-advisor-backend/internal/llm"
	apperrors "github.com/qanunai/legal-advisor-backend/internal/pkg/errors"
)

// azDiacritics are the Azerbaijani-specific letters that make external
// detection unnecessary.
const azDiacritics = "əğıöçşü"

// Completer is the completion-service contract the classifier needs.
type Completer interface {
	Classify(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Lexicon confirms whether a word is an Azerbaijani dictionary entry.
type Lexicon interface {
	Exists(ctx context.Context, word string) (bool, error)
}

// Classifier determines a question's language and legal eligibility.
type Classifier struct {
	completer Completer
	lexicon   Lexicon // nil disables the regional fallback
	logger    *zap.Logger
}

// NewClassifier creates a classifier. lexicon may be nil.
func NewClassifier(completer Completer, lexicon Lexicon, logger *zap.Logger) *Classifier {
	return &Classifier{completer: completer, lexicon: lexicon, logger: logger}
}

// Classify determines the question's language. It never returns an
// error: detector failures degrade to a locale-derived fallback tag.
func (c *Classifier) Classify(ctx context.Context, text, localeHint string) types.LanguageTag {
	if strings.ContainsAny(strings.ToLower(text), azDiacritics) {
		return types.LanguageTag{Code: "az"}
	}

	detected, err := c.completer.Classify(ctx, llm.DetectLanguagePrompt, text)
	if err != nil {
		fallback := "en"
		if isAzerbaijanRegion(localeHint) {
			fallback = "az"
		}
		c.logger.Warn("language detection failed, using fallback",
			zap.String("fallback", fallback),
			zap.Error(err))
		return types.LanguageTag{Code: fallback}
	}

	tag := types.LanguageTag{Code: normalizeTag(detected)}
	if tag.Supported() {
		return tag
	}

	if c.lexicon != nil && isAzerbaijanRegion(localeHint) && c.anyWordAzerbaijani(ctx, text) {
		return types.LanguageTag{Code: "az"}
	}

	// Unsupported language: keep the raw detector output so callers can
	// report what was actually seen.
	return tag
}

// IsLegalQuestion runs the binary eligibility gate. Anything that is not
// a "yes"-prefixed reply counts as "no". A failed completion call is a
// synthesis error, not a silent "no".
func (c *Classifier) IsLegalQuestion(ctx context.Context, text string) (bool, error) {
	reply, err := c.completer.Classify(ctx, llm.LegalGatePrompt, text)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.KindSynthesis, "eligibility gate call failed")
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(reply)), "yes"), nil
}

// anyWordAzerbaijani checks words against the lexicon, short-circuiting
// on the first confirmed match. Lookup failures skip to the next word.
func (c *Classifier) anyWordAzerbaijani(ctx context.Context, text string) bool {
	for _, word := range tokenizeWords(text) {
		found, err := c.lexicon.Exists(ctx, word)
		if err != nil {
			c.logger.Debug("lexicon lookup failed", zap.String("word", word), zap.Error(err))
			continue
		}
		if found {
			return true
		}
	}
	return false
}

// tokenizeWords splits text into lowercase letter runs.
func tokenizeWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// normalizeTag lowercases detector output and strips everything that is
// not a letter, so replies like "AZ." or "az\n" normalize cleanly.
func normalizeTag(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		if unicode.IsLetter(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAzerbaijanRegion(localeHint string) bool {
	switch strings.ToLower(strings.TrimSpace(localeHint)) {
	case "az", "aze", "az-az", "azerbaijan":
		return true
	default:
		return false
	}
}
