package ingestion

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// fetchTimeout bounds a single HTTP fetch of a job posting page.
	fetchTimeout = 30 * time.Second
	userAgent    = "Mozilla/5.0 (compatible; JobKit/1.0)"

	// minContentLength is the minimum extracted text length to trust a
	// plain HTTP fetch. Anything shorter is likely a JavaScript-rendered
	// page that needs browser rendering.
	minContentLength = 500
)

// jobPostingSelectors are tried in order to find the posting body before
// falling back to the whole document body.
var jobPostingSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// FetchOptions configures URL ingestion.
type FetchOptions struct {
	UseBrowser bool
	Verbose    bool
}

// FromURL fetches a job posting page, extracts the posting text, and
// returns it cleaned. When UseBrowser is set and the plain HTTP fetch
// yields too little text, the page is re-rendered in a headless browser
// before extraction.
func FromURL(ctx context.Context, urlStr string, opts FetchOptions) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid URL %q", urlStr)
	}

	html, err := fetchHTML(ctx, urlStr)
	if err != nil {
		return "", err
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(html))
	}

	text, err := ExtractMainText(html)
	if err != nil {
		return "", err
	}

	if opts.UseBrowser && len(strings.TrimSpace(text)) < minContentLength {
		if opts.Verbose {
			log.Printf("[VERBOSE] Content too short (%d chars), falling back to browser rendering...", len(text))
		}
		browserHTML, browserErr := renderWithBrowser(ctx, urlStr, opts.Verbose)
		if browserErr != nil {
			if opts.Verbose {
				log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", browserErr)
			}
		} else if rendered, extractErr := ExtractMainText(browserHTML); extractErr == nil {
			text = rendered
		}
	}

	return CleanText(text), nil
}

// fetchHTML retrieves the raw HTML of a page over plain HTTP.
func fetchHTML(ctx context.Context, urlStr string) (string, error) {
	client := &http.Client{Timeout: fetchTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", urlStr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch of %s returned HTTP %d", urlStr, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

// ExtractMainText parses HTML and returns the main posting text, with
// navigation, scripts, and other noise removed.
func ExtractMainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .ads, .sidebar, .cookie-banner, .popup").Remove()

	var main *goquery.Selection
	for _, selector := range jobPostingSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	var lines []string
	for _, line := range strings.Split(main.Text(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n"), nil
}
