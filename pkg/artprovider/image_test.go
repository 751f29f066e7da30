package artprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchAsDataURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("fake png bytes"))
	}))
	defer srv.Close()

	fetcher := NewHTTPImageFetcher(srv.Client())
	dataURL, err := fetcher.FetchAsDataURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(dataURL, "data:image/png;base64,") {
		t.Fatalf("data url = %q", dataURL)
	}
}

func TestFetchAsDataURLSniffsMissingContentType(t *testing.T) {
	// A minimal JPEG header so content sniffing has something to work with.
	jpegHeader := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		w.Write(jpegHeader)
	}))
	defer srv.Close()

	fetcher := NewHTTPImageFetcher(srv.Client())
	dataURL, err := fetcher.FetchAsDataURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(dataURL, "data:image/jpeg;base64,") {
		t.Fatalf("data url = %q", dataURL)
	}
}

func TestFetchAsDataURLStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	fetcher := NewHTTPImageFetcher(srv.Client())
	if _, err := fetcher.FetchAsDataURL(context.Background(), srv.URL); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}
