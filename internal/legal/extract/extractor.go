package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/qanunai/legal-advisor-backend/internal/legal/types"
	"github.com/qanunai/legal-advisor-backend/internal/pkg/workerpool"
)

// e-qanun.az serves an empty shell to clients without a browser UA.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/113.0.0.0 Safari/537.36"

const maxBodyBytes = 8 << 20

// containerSelectors are tried in order before the generic containers.
// The first three are the content wrappers used by e-qanun.az.
var containerSelectors = []string{"#zoomDocumentContainer", "#sectonText", "#__next"}

var genericSelectors = []string{"main", "article"}

// minParagraphRunes filters boilerplate out of the paragraph fallback.
const minParagraphRunes = 50

var whitespacePattern = regexp.MustCompile(`\s+`)

// DocumentExtractor is the contract the pipeline depends on, so the
// cached and plain extractors are interchangeable.
type DocumentExtractor interface {
	ExtractAll(ctx context.Context, urls []string) []types.ExtractedDocument
}

// Extractor fetches source URLs and extracts bounded plain text from
// HTML or PDF payloads.
type Extractor struct {
	client       *http.Client
	limiter      *rate.Limiter
	pool         *workerpool.Pool
	snippetLimit int
	logger       *zap.Logger
}

// NewExtractor creates an extractor. fetchRate bounds outbound requests
// per second across all URLs of an invocation.
func NewExtractor(pool *workerpool.Pool, timeout time.Duration, fetchRate float64, snippetLimit int, logger *zap.Logger) *Extractor {
	if timeout == 0 {
		timeout = 8 * time.Second
	}
	if fetchRate <= 0 {
		fetchRate = 2
	}
	if snippetLimit <= 0 {
		snippetLimit = 2000
	}
	return &Extractor{
		client:       &http.Client{Timeout: timeout},
		limiter:      rate.NewLimiter(rate.Limit(fetchRate), 1),
		pool:         pool,
		snippetLimit: snippetLimit,
		logger:       logger,
	}
}

// ExtractAll extracts every URL concurrently. Results land in per-URL
// indexed slots, so the output order always matches the input order.
func (e *Extractor) ExtractAll(ctx context.Context, urls []string) []types.ExtractedDocument {
	docs := make([]types.ExtractedDocument, len(urls))
	e.pool.Each(len(urls), func(i int) {
		docs[i] = e.Extract(ctx, urls[i])
	})
	return docs
}

// Extract fetches one URL and returns its bounded text. Any transport
// error, parse failure, or empty extraction yields Present=false; the
// source is then excluded from synthesis and citation.
func (e *Extractor) Extract(ctx context.Context, url string) types.ExtractedDocument {
	text, err := e.fetch(ctx, url)
	if err != nil {
		e.logger.Warn("source extraction failed", zap.String("url", url), zap.Error(err))
		return types.ExtractedDocument{SourceURL: url}
	}

	text = truncateRunes(collapseWhitespace(text), e.snippetLimit)
	if text == "" {
		e.logger.Warn("source yielded no text", zap.String("url", url))
		return types.ExtractedDocument{SourceURL: url}
	}

	return types.ExtractedDocument{SourceURL: url, Text: text, Present: true}
}

func (e *Extractor) fetch(ctx context.Context, url string) (string, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}

	if isPDF(resp.Header.Get("Content-Type"), body) {
		return extractPDF(body)
	}
	return extractHTML(body)
}

func isPDF(contentType string, body []byte) bool {
	return strings.Contains(contentType, "application/pdf") || bytes.HasPrefix(body, []byte("%PDF"))
}

// extractPDF concatenates the text of all pages.
func extractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			// Unreadable pages are skipped, not fatal.
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// extractHTML tries the domain container selectors, then generic
// main/article containers, then long paragraphs, then the document body.
func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, selector := range containerSelectors {
		if text := strings.TrimSpace(doc.Find(selector).Text()); text != "" {
			return text, nil
		}
	}
	for _, selector := range genericSelectors {
		if text := strings.TrimSpace(doc.Find(selector).Text()); text != "" {
			return text, nil
		}
	}
	if text := longParagraphs(doc); text != "" {
		return text, nil
	}
	return doc.Find("body").Text(), nil
}

// longParagraphs joins the text of paragraph-like elements that carry a
// meaningful amount of text, skipping navigation and boilerplate.
func longParagraphs(doc *goquery.Document) string {
	var chunks []string
	doc.Find("p, span").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); utf8.RuneCountInString(text) > minParagraphRunes {
			chunks = append(chunks, text)
		}
	})
	return strings.TrimSpace(strings.Join(chunks, "\n"))
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

func truncateRunes(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit])
}
