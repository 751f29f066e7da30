package artprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestAICProvider(handler http.HandlerFunc) (*AICProvider, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &AICProvider{
		baseURL:  srv.URL,
		imageURL: "https://www.artic.edu/iiif/2",
		client:   srv.Client(),
	}, srv
}

func TestAICFetchRandomSkipsImagelessArtworks(t *testing.T) {
	provider, srv := newTestAICProvider(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [
			{"id": 1, "title": "No Image", "image_id": ""},
			{"id": 2, "title": "Has Image", "image_id": "abc-123", "artist_display": "Jane Doe"}
		]}`))
	})
	defer srv.Close()

	art, err := provider.FetchRandomArtwork(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if art.Id != "2" {
		t.Fatalf("picked artwork %s, want the only image-bearing one", art.Id)
	}
	if art.ImageUrl != "https://www.artic.edu/iiif/2/abc-123/full/843,/0/default.jpg" {
		t.Fatalf("image url = %q", art.ImageUrl)
	}
	if art.ThumbnailUrl != "https://www.artic.edu/iiif/2/abc-123/full/200,/0/default.jpg" {
		t.Fatalf("thumbnail url = %q", art.ThumbnailUrl)
	}
}

func TestAICFetchRandomNoUsableArtworks(t *testing.T) {
	provider, srv := newTestAICProvider(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"id": 1, "title": "No Image", "image_id": ""}]}`))
	})
	defer srv.Close()

	if _, err := provider.FetchRandomArtwork(context.Background()); err == nil {
		t.Fatal("expected an error for an image-less listing")
	}
}

func TestAICFetchByIdFillsDefaults(t *testing.T) {
	provider, srv := newTestAICProvider(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"id": 129884, "title": "", "image_id": "img-1", "artist_display": "", "medium_display": "", "credit_line": ""}}`))
	})
	defer srv.Close()

	art, err := provider.FetchArtworkById(context.Background(), "129884")
	if err != nil {
		t.Fatal(err)
	}
	if art.Title != "Untitled" || art.Artist != "Unknown Artist" || art.Medium != "N/A" || art.Credit != "N/A" {
		t.Fatalf("defaults not applied: %+v", art)
	}
	if art.Source != aicSourceName {
		t.Fatalf("source = %q", art.Source)
	}
}

func TestAICFetchStatusError(t *testing.T) {
	provider, srv := newTestAICProvider(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer srv.Close()

	if _, err := provider.FetchRandomArtwork(context.Background()); err == nil {
		t.Fatal("expected an error for a 503 response")
	}
}
