package webprofile

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"CompetitorScout/internal/domain"
	"CompetitorScout/internal/ports"
)

// maxHeadingKeywords caps hints taken from page headings when no keyword
// meta tag is present.
const maxHeadingKeywords = 10

// Fetcher scrapes a business homepage for the title, description, and
// keyword hints used to backfill sparse website records.
type Fetcher struct {
	client *http.Client
}

var _ ports.ProfileFetcher = (*Fetcher)(nil)

// NewFetcher wires an HTTP client; a nil client gets a 20s-timeout default.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Fetcher{client: client}
}

// Fetch downloads the homepage and extracts profile hints from it.
func (f *Fetcher) Fetch(ctx context.Context, siteURL string) (domain.SiteProfile, error) {
	doc, err := f.fetchDocument(ctx, siteURL)
	if err != nil {
		return domain.SiteProfile{}, err
	}
	return extractProfile(doc), nil
}

func (f *Fetcher) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "CompetitorScout/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request homepage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("homepage returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func extractProfile(doc *goquery.Document) domain.SiteProfile {
	profile := domain.SiteProfile{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		profile.Description = strings.TrimSpace(desc)
	}

	if raw, ok := doc.Find(`meta[name="keywords"]`).Attr("content"); ok {
		for _, kw := range strings.Split(raw, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				profile.Keywords = append(profile.Keywords, kw)
			}
		}
	}

	// Headings are a weaker signal; use them only when the page declares no
	// keyword meta tag.
	if len(profile.Keywords) == 0 {
		doc.Find("h1, h2").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				profile.Keywords = append(profile.Keywords, text)
			}
			return len(profile.Keywords) < maxHeadingKeywords
		})
	}

	return profile
}
