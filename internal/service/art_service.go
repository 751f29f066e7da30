package service

import (
	"context"

	"ai-artpoet-be/internal/constant"
	"ai-artpoet-be/internal/model"
	"ai-artpoet-be/internal/session"
	"ai-artpoet-be/pkg/analytics"
	"ai-artpoet-be/pkg/artprovider"
)

// IArtService drives the two-phase artwork retrieval: provider metadata
// first, then the image bytes as a data URL. Every mutation of the session is
// guarded by the token allocated when the fetch began, so a fetch that was
// superseded mid-flight silently drops its results.
type IArtService interface {
	FetchRandom(ctx context.Context, state *session.State)
	FetchById(ctx context.Context, state *session.State, id, sourceName string)
	// ChangeArtwork swaps the artwork while preserving the user's theme
	// lines and request count; only inspiration state is reset.
	ChangeArtwork(ctx context.Context, state *session.State)
	Sources() []artprovider.Source
}

type artService struct {
	registry *artprovider.Registry
	images   artprovider.ImageFetcher
	tracker  analytics.Tracker
}

func NewArtService(
	registry *artprovider.Registry,
	images artprovider.ImageFetcher,
	tracker analytics.Tracker,
) IArtService {
	return &artService{
		registry: registry,
		images:   images,
		tracker:  tracker,
	}
}

func (s *artService) Sources() []artprovider.Source {
	return s.registry.Sources()
}

func (s *artService) FetchRandom(ctx context.Context, state *session.State) {
	provider := s.registry.ById(state.SelectedSource())
	s.fetch(ctx, state, session.ResetAll, func() (*artworkResult, error) {
		art, err := provider.FetchRandomArtwork(ctx)
		return &artworkResult{art: art, source: provider.SourceName()}, err
	})
}

func (s *artService) FetchById(ctx context.Context, state *session.State, id, sourceName string) {
	provider := s.registry.ByName(sourceName)
	s.fetch(ctx, state, session.ResetAll, func() (*artworkResult, error) {
		art, err := provider.FetchArtworkById(ctx, id)
		return &artworkResult{art: art, source: provider.SourceName()}, err
	})
}

func (s *artService) ChangeArtwork(ctx context.Context, state *session.State) {
	s.tracker.Track("artwork_changed", map[string]interface{}{"currentArtwork": state.Artwork()})
	provider := s.registry.ById(state.SelectedSource())
	s.fetch(ctx, state, session.ResetInspiration, func() (*artworkResult, error) {
		art, err := provider.FetchRandomArtwork(ctx)
		return &artworkResult{art: art, source: provider.SourceName()}, err
	})
}

type artworkResult struct {
	art    *model.Artwork
	source string
}

// fetch runs one full pipeline. The token is allocated once up front; phase 2
// re-checks it independently because the image download can complete long
// after a newer fetch invalidated this one.
func (s *artService) fetch(
	ctx context.Context,
	state *session.State,
	mode session.ResetMode,
	load func() (*artworkResult, error),
) {
	token := state.BeginFetch(mode)
	defer state.FinishFetch(token)

	result, err := load()
	if err != nil {
		if state.SetErrorIfCurrent(token, err.Error()) {
			s.tracker.Track("error", map[string]interface{}{
				"context": "fetchArt",
				"message": err.Error(),
				"source":  result.source,
			})
		}
		return
	}

	if !state.PublishArtwork(token, result.art) {
		return
	}
	s.tracker.Track("artwork_displayed", map[string]interface{}{
		"artwork":  result.art,
		"imageUrl": result.art.ImageUrl,
	})

	dataURL, err := s.images.FetchAsDataURL(ctx, result.art.ImageUrl)
	if err != nil {
		// Phase-2 failure keeps the already-published metadata in place.
		state.SetErrorIfCurrent(token, constant.MsgImageLoadFailed)
		return
	}

	state.PublishImage(token, dataURL)
}
