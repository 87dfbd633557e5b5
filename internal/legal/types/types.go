package types

// Question is the immutable pipeline input.
type Question struct {
	Text       string
	LocaleHint string // optional country code, e.g. "AZ"
}

// SupportedLanguages is the closed set the service can answer in.
var SupportedLanguages = map[string]bool{
	"az": true,
	"en": true,
	"de": true,
	"ru": true,
}

// LanguageTag is the normalized detection result. Code is a lowercase
// ISO-639-1 code when the language is supported, otherwise the raw
// detector output is preserved for diagnostics.
type LanguageTag struct {
	Code string
}

// Supported reports whether the tag is in the closed supported set.
func (t LanguageTag) Supported() bool {
	return SupportedLanguages[t.Code]
}

// Azerbaijani reports whether legal retrieval can run for this tag.
func (t LanguageTag) Azerbaijani() bool {
	return t.Code == "az"
}

// SearchHit is one provider result. Rank is the provider's return order
// within its sub-query and is not comparable across sub-queries.
type SearchHit struct {
	URL   string
	Title string
	Rank  int
}

// SourceSet is an insertion-ordered set of unique URLs. The first
// sub-query to surface a URL wins its position.
type SourceSet struct {
	urls []string
	seen map[string]struct{}
}

// NewSourceSet creates an empty SourceSet.
func NewSourceSet() *SourceSet {
	return &SourceSet{seen: make(map[string]struct{})}
}

// Add inserts a URL, reporting whether it was new.
func (s *SourceSet) Add(url string) bool {
	if url == "" {
		return false
	}
	if _, ok := s.seen[url]; ok {
		return false
	}
	s.seen[url] = struct{}{}
	s.urls = append(s.urls, url)
	return true
}

// URLs returns the URLs in insertion order.
func (s *SourceSet) URLs() []string {
	return s.urls
}

// Len returns the number of unique URLs.
func (s *SourceSet) Len() int {
	return len(s.urls)
}

// ExtractedDocument is the bounded text pulled from one source URL.
// Present=false means the source is dropped from synthesis and never
// receives a citation index.
type ExtractedDocument struct {
	SourceURL string
	Text      string
	Present   bool
}

// Citation binds a 1-based contiguous index to a present source URL.
type Citation struct {
	Index int
	URL   string
}

// SynthesizedAnswer is the grounded completion output before formatting.
type SynthesizedAnswer struct {
	Body      string
	Citations []Citation
}
