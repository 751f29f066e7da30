package service

import (
	"context"
	"errors"
	"testing"

	"ai-artpoet-be/internal/constant"
	"ai-artpoet-be/internal/model"
	"ai-artpoet-be/internal/session"
	"ai-artpoet-be/pkg/analytics"
	"ai-artpoet-be/pkg/artprovider"
)

type fakeProvider struct {
	name      string
	fetchFunc func(ctx context.Context) (*model.Artwork, error)
}

func (p *fakeProvider) SourceName() string { return p.name }

func (p *fakeProvider) FetchRandomArtwork(ctx context.Context) (*model.Artwork, error) {
	return p.fetchFunc(ctx)
}

func (p *fakeProvider) FetchArtworkById(ctx context.Context, id string) (*model.Artwork, error) {
	return p.fetchFunc(ctx)
}

type fakeImageFetcher struct {
	dataURL string
	err     error
}

func (f *fakeImageFetcher) FetchAsDataURL(ctx context.Context, url string) (string, error) {
	return f.dataURL, f.err
}

func artworkFixture(id string) *model.Artwork {
	return &model.Artwork{
		Id:       id,
		Title:    "Water Lilies",
		Artist:   "Claude Monet",
		Source:   "The Art Institute of Chicago",
		ImageUrl: "https://example.com/" + id + ".jpg",
	}
}

func newArtService(provider artprovider.Provider, images artprovider.ImageFetcher) IArtService {
	registry := artprovider.NewRegistry(provider, provider)
	return NewArtService(registry, images, analytics.NopTracker{})
}

func TestFetchRandomPublishesBothPhases(t *testing.T) {
	svc := newArtService(
		&fakeProvider{name: "AIC", fetchFunc: func(context.Context) (*model.Artwork, error) {
			return artworkFixture("16568"), nil
		}},
		&fakeImageFetcher{dataURL: "data:image/jpeg;base64,abc"},
	)
	state := session.NewState("s1")

	svc.FetchRandom(context.Background(), state)

	snap := state.Snapshot()
	if snap.Artwork == nil || snap.Artwork.Id != "16568" {
		t.Fatalf("artwork = %+v", snap.Artwork)
	}
	if snap.CapturedImage != "data:image/jpeg;base64,abc" {
		t.Fatalf("captured image = %q", snap.CapturedImage)
	}
	if snap.IsFetchingArt {
		t.Fatal("fetching flag still raised")
	}
	if snap.Phase != session.PhaseEditor {
		t.Fatalf("phase = %s, want EDITOR", snap.Phase)
	}
}

func TestFetchErrorSurfacesToSession(t *testing.T) {
	svc := newArtService(
		&fakeProvider{name: "AIC", fetchFunc: func(context.Context) (*model.Artwork, error) {
			return nil, errors.New("museum API unreachable")
		}},
		&fakeImageFetcher{},
	)
	state := session.NewState("s1")

	svc.FetchRandom(context.Background(), state)

	snap := state.Snapshot()
	if snap.Error != "museum API unreachable" {
		t.Fatalf("error = %q", snap.Error)
	}
	if snap.Artwork != nil {
		t.Fatal("failed fetch left an artwork behind")
	}
}

func TestImageFailureKeepsMetadata(t *testing.T) {
	svc := newArtService(
		&fakeProvider{name: "AIC", fetchFunc: func(context.Context) (*model.Artwork, error) {
			return artworkFixture("16568"), nil
		}},
		&fakeImageFetcher{err: errors.New("timeout")},
	)
	state := session.NewState("s1")

	svc.FetchRandom(context.Background(), state)

	snap := state.Snapshot()
	if snap.Artwork == nil {
		t.Fatal("image failure dropped the already published metadata")
	}
	if snap.CapturedImage != "" {
		t.Fatalf("captured image = %q, want empty", snap.CapturedImage)
	}
	if snap.Error != constant.MsgImageLoadFailed {
		t.Fatalf("error = %q, want image load message", snap.Error)
	}
}

// A fetch that is overtaken mid-flight must not publish anything; only the
// newest fetch's results reach the session.
func TestSupersededFetchIsDiscarded(t *testing.T) {
	state := session.NewState("s1")
	images := &fakeImageFetcher{dataURL: "data:image/jpeg;base64,new"}

	var svc IArtService
	overtaken := false
	provider := &fakeProvider{name: "AIC"}
	provider.fetchFunc = func(ctx context.Context) (*model.Artwork, error) {
		if !overtaken {
			overtaken = true
			// A second fetch starts and completes while this one is still
			// waiting on the provider.
			svc.FetchRandom(ctx, state)
			return artworkFixture("stale"), nil
		}
		return artworkFixture("fresh"), nil
	}
	svc = newArtService(provider, images)

	svc.FetchRandom(context.Background(), state)

	snap := state.Snapshot()
	if snap.Artwork == nil || snap.Artwork.Id != "fresh" {
		t.Fatalf("artwork = %+v, want the newer fetch's result", snap.Artwork)
	}
	if snap.IsFetchingArt {
		t.Fatal("fetching flag still raised after both pipelines finished")
	}
}

func TestChangeArtworkKeepsThemes(t *testing.T) {
	svc := newArtService(
		&fakeProvider{name: "AIC", fetchFunc: func(context.Context) (*model.Artwork, error) {
			return artworkFixture("2"), nil
		}},
		&fakeImageFetcher{dataURL: "data:image/jpeg;base64,x"},
	)
	state := session.NewState("s1")
	svc.FetchRandom(context.Background(), state)
	state.SetThemeLines([]string{"dawn", "river", "stone"})

	svc.ChangeArtwork(context.Background(), state)

	snap := state.Snapshot()
	if snap.ThemeLines[0] != "dawn" {
		t.Fatalf("theme lines = %v, change artwork must preserve them", snap.ThemeLines)
	}
	if len(snap.Keywords) != 0 {
		t.Fatalf("keywords = %v, change artwork must clear them", snap.Keywords)
	}
}
