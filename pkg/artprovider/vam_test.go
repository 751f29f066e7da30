package artprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestVAMProvider(handler http.HandlerFunc) (*VAMProvider, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &VAMProvider{
		searchURL: srv.URL,
		client:    srv.Client(),
	}, srv
}

func TestVAMFetchRandomTakesFirstUsableRecord(t *testing.T) {
	provider, srv := newTestVAMProvider(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records": [
			{"systemNumber": "O1", "_primaryTitle": "No Image", "_primaryImageId": ""},
			{"systemNumber": "O2", "_primaryTitle": "The Painting", "_primaryImageId": "2006AM7786",
			 "objectType": "Oil painting", "accessionNumber": "FA.33",
			 "_primaryDate": "1855", "_primaryPlace": "London",
			 "_primaryMaker": {"name": "John Constable"},
			 "_images": {"_iiif_image_base_url": "https://framemark.vam.ac.uk/collections/2006AM7786/"}}
		]}`))
	})
	defer srv.Close()

	art, err := provider.FetchRandomArtwork(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if art.Id != "O2" {
		t.Fatalf("picked record %s, want the first usable one", art.Id)
	}
	if art.Artist != "John Constable" {
		t.Fatalf("artist = %q", art.Artist)
	}
	if art.ImageUrl != "https://framemark.vam.ac.uk/collections/2006AM7786/full/768,/0/default.jpg" {
		t.Fatalf("image url = %q", art.ImageUrl)
	}
	if art.ThumbnailUrl != "https://framemark.vam.ac.uk/collections/2006AM7786/full/!200,200/0/default.jpg" {
		t.Fatalf("thumbnail url = %q", art.ThumbnailUrl)
	}
	if art.Date != "1855" || art.Place != "London" {
		t.Fatalf("date/place = %q/%q", art.Date, art.Place)
	}
}

func TestVAMFetchRandomNoUsableRecords(t *testing.T) {
	provider, srv := newTestVAMProvider(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records": [{"systemNumber": "O1", "_primaryImageId": ""}]}`))
	})
	defer srv.Close()

	if _, err := provider.FetchRandomArtwork(context.Background()); err == nil {
		t.Fatal("expected an error for a listing with no usable images")
	}
}

func TestVAMFetchByIdNotFound(t *testing.T) {
	provider, srv := newTestVAMProvider(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records": []}`))
	})
	defer srv.Close()

	if _, err := provider.FetchArtworkById(context.Background(), "O999"); err == nil {
		t.Fatal("expected an error for an unknown id")
	}
}

func TestVAMFetchByIdUnknownMakerDefaults(t *testing.T) {
	provider, srv := newTestVAMProvider(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records": [
			{"systemNumber": "O3", "_primaryImageId": "img",
			 "_images": {"_iiif_image_base_url": "https://framemark.vam.ac.uk/collections/img/"}}
		]}`))
	})
	defer srv.Close()

	art, err := provider.FetchArtworkById(context.Background(), "O3")
	if err != nil {
		t.Fatal(err)
	}
	if art.Artist != "Unknown Artist" {
		t.Fatalf("artist = %q", art.Artist)
	}
	if art.Title != "Untitled" {
		t.Fatalf("title = %q", art.Title)
	}
}
