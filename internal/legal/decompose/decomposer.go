package decompose

import (
	"regexp"
	"strings"
)

// rule maps trigger substrings to the canonical search string for one
// legal topic. Rules are evaluated in order and each can fire
// independently; new topics are added to the table, not to control flow.
type rule struct {
	triggers []string
	query    string
}

var rules = []rule{
	{triggers: []string{"yaş", "uşaq"}, query: "14 yaşında uşağın əməliyyat qabiliyyəti"},
	{triggers: []string{"icazə", "valideyn"}, query: "valideyn icazəsi olmadan əqd"},
	{triggers: []string{"pul", "telefon"}, query: "azyaşlının hədiyyə ilə telefon alması"},
	{triggers: []string{"geri qaytar"}, query: "uşağın etdiyi əqdin ləğvi və geri qaytarılması"},
}

// stopwords are filler words dropped by the keyword fallback.
var stopwords = map[string]bool{
	"nədir": true, "olaraq": true, "buna": true, "üçün": true,
	"kimi": true, "belə": true, "amma": true, "çünki": true, "var": true,
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]{4,}`)

// Decompose expands a legal question into canonical sub-queries. The
// result is never empty: when no rule matches it falls back to a single
// keyword string, and when even that is empty, to the lowercased
// question itself.
func Decompose(text string) []string {
	lowered := strings.ToLower(text)

	var queries []string
	for _, r := range rules {
		for _, trigger := range r.triggers {
			if strings.Contains(lowered, trigger) {
				queries = append(queries, r.query)
				break
			}
		}
	}

	if len(queries) > 0 {
		return queries
	}

	if keywords := extractKeywords(lowered); keywords != "" {
		return []string{keywords}
	}
	return []string{lowered}
}

// extractKeywords keeps word tokens of at least four runes that are not
// stopwords, joined with spaces.
func extractKeywords(lowered string) string {
	words := wordPattern.FindAllString(lowered, -1)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !stopwords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
