package webprofile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func servePage(t *testing.T, status int, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchExtractsMetaProfile(t *testing.T) {
	t.Parallel()

	srv := servePage(t, http.StatusOK, `<!doctype html>
<html>
<head>
<title>  Blooms &amp; Co  </title>
<meta name="description" content=" Fresh flowers delivered same day in Portland. ">
<meta name="keywords" content="flower delivery, wedding bouquets, , florist portland">
</head>
<body><h1>Should be ignored</h1></body>
</html>`)

	fetcher := NewFetcher(srv.Client())
	profile, err := fetcher.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if profile.Title != "Blooms & Co" {
		t.Fatalf("unexpected title: %q", profile.Title)
	}
	if profile.Description != "Fresh flowers delivered same day in Portland." {
		t.Fatalf("unexpected description: %q", profile.Description)
	}
	want := []string{"flower delivery", "wedding bouquets", "florist portland"}
	if len(profile.Keywords) != len(want) {
		t.Fatalf("unexpected keywords: %v", profile.Keywords)
	}
	for i, kw := range want {
		if profile.Keywords[i] != kw {
			t.Fatalf("keyword %d = %q, want %q", i, profile.Keywords[i], kw)
		}
	}
}

func TestFetchFallsBackToHeadings(t *testing.T) {
	t.Parallel()

	srv := servePage(t, http.StatusOK, `<!doctype html>
<html>
<head><title>Blooms</title></head>
<body>
<h1>Flower Delivery</h1>
<h2>Wedding Bouquets</h2>
<h2></h2>
<h2>Corporate Events</h2>
</body>
</html>`)

	fetcher := NewFetcher(srv.Client())
	profile, err := fetcher.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	want := []string{"Flower Delivery", "Wedding Bouquets", "Corporate Events"}
	if len(profile.Keywords) != len(want) {
		t.Fatalf("unexpected keywords: %v", profile.Keywords)
	}
	for i, kw := range want {
		if profile.Keywords[i] != kw {
			t.Fatalf("keyword %d = %q, want %q", i, profile.Keywords[i], kw)
		}
	}
}

func TestFetchCapsHeadingKeywords(t *testing.T) {
	t.Parallel()

	body := "<html><head><title>t</title></head><body>"
	for i := 0; i < 20; i++ {
		body += "<h2>Heading</h2>"
	}
	body += "</body></html>"
	srv := servePage(t, http.StatusOK, body)

	fetcher := NewFetcher(srv.Client())
	profile, err := fetcher.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(profile.Keywords) != maxHeadingKeywords {
		t.Fatalf("expected %d keywords, got %d", maxHeadingKeywords, len(profile.Keywords))
	}
}

func TestFetchRejectsNonOKStatus(t *testing.T) {
	t.Parallel()

	srv := servePage(t, http.StatusServiceUnavailable, "maintenance")

	fetcher := NewFetcher(srv.Client())
	if _, err := fetcher.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestFetchRejectsUnreachableHost(t *testing.T) {
	t.Parallel()

	srv := servePage(t, http.StatusOK, "<html></html>")
	url := srv.URL
	srv.Close()

	fetcher := NewFetcher(nil)
	if _, err := fetcher.Fetch(context.Background(), url); err == nil {
		t.Fatal("expected error for closed server")
	}
}
