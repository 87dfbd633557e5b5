package llm

import "fmt"

// DetectLanguagePrompt instructs the model to act as a language detector.
// The reply is normalized by the caller, so the prompt pins the shape hard.
const DetectLanguagePrompt = "You are a language identification system. " +
	"Reply with only the two-letter ISO 639-1 code of the language the user's text is written in, " +
	"in lowercase, with no punctuation and no explanation."

// LegalGatePrompt is the fixed instruction for the binary eligibility gate.
const LegalGatePrompt = "You are a classifier for a legal assistance service. " +
	"Decide whether the user's message is a legal question, that is, a question about laws, " +
	"rights, obligations, contracts, courts, or legal procedures. " +
	"Answer with exactly one word: yes or no."

// chatSystemPrompt pins the reply language for general (non-legal) chat.
func chatSystemPrompt(languageTag string) string {
	language := languageName(languageTag)
	return fmt.Sprintf("You are a friendly assistant for a legal advice service. "+
		"The user's message is not a legal question. Reply helpfully in %s, "+
		"and gently encourage the user to ask a legal question. "+
		"Use plain text without HTML tags.", language)
}

func languageName(tag string) string {
	switch tag {
	case "az":
		return "Azerbaijani"
	case "de":
		return "German"
	case "ru":
		return "Russian"
	default:
		return "English"
	}
}
