package service

import (
	"context"
	"errors"
	"time"

	"ai-artpoet-be/internal/entity"
	"ai-artpoet-be/internal/model"
	"ai-artpoet-be/internal/repository/contract"
	"ai-artpoet-be/pkg/analytics"

	"github.com/google/uuid"
)

var ErrNothingToLike = errors.New("session has no finished poem to like")

// IPersistenceService stores the per-client collections that outlive a
// session: bookmarked artworks and liked poems. Clients are identified by an
// opaque id they mint themselves.
type IPersistenceService interface {
	// ToggleBookmark adds the artwork to the client's bookmarks, or removes
	// it when already present. Returns true when the artwork ends up
	// bookmarked.
	ToggleBookmark(ctx context.Context, clientId string, art *model.Artwork) (bool, error)
	Bookmarks(ctx context.Context, clientId string) ([]*entity.Bookmark, error)

	// ToggleLike saves the poem, or deletes the existing like for the same
	// (artwork, poem) pair. Returns true when the poem ends up liked.
	ToggleLike(ctx context.Context, clientId string, art *model.Artwork, poem string, themeLines []string) (bool, error)
	LikedPoems(ctx context.Context, clientId string) ([]*entity.LikedPoem, error)
	DeleteLikedPoem(ctx context.Context, id uuid.UUID) error
}

type persistenceService struct {
	bookmarks  contract.BookmarkRepository
	likedPoems contract.LikedPoemRepository
	tracker    analytics.Tracker
}

func NewPersistenceService(
	bookmarks contract.BookmarkRepository,
	likedPoems contract.LikedPoemRepository,
	tracker analytics.Tracker,
) IPersistenceService {
	return &persistenceService{
		bookmarks:  bookmarks,
		likedPoems: likedPoems,
		tracker:    tracker,
	}
}

func (s *persistenceService) ToggleBookmark(ctx context.Context, clientId string, art *model.Artwork) (bool, error) {
	exists, err := s.bookmarks.Exists(ctx, clientId, art.Id, art.Source)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.bookmarks.DeleteByArtwork(ctx, clientId, art.Id, art.Source); err != nil {
			return false, err
		}
		s.tracker.Track("bookmark_removed", map[string]interface{}{"artworkId": art.Id, "source": art.Source})
		return false, nil
	}

	bookmark := &entity.Bookmark{
		Id:           uuid.New(),
		ClientId:     clientId,
		ArtworkId:    art.Id,
		Title:        art.Title,
		ImageId:      art.ImageId,
		Source:       art.Source,
		ThumbnailUrl: art.ThumbnailUrl,
		DateAdded:    time.Now(),
	}
	if err := s.bookmarks.Create(ctx, bookmark); err != nil {
		return false, err
	}
	s.tracker.Track("bookmark_added", map[string]interface{}{"artworkId": art.Id, "source": art.Source})
	return true, nil
}

func (s *persistenceService) Bookmarks(ctx context.Context, clientId string) ([]*entity.Bookmark, error) {
	return s.bookmarks.FindByClient(ctx, clientId)
}

func (s *persistenceService) ToggleLike(ctx context.Context, clientId string, art *model.Artwork, poem string, themeLines []string) (bool, error) {
	if poem == "" {
		return false, ErrNothingToLike
	}

	artworkId := entity.ArtlessSource
	title := ""
	imageId := ""
	source := entity.ArtlessSource
	thumbnail := ""
	if art != nil {
		artworkId = art.Id
		title = art.Title
		imageId = art.ImageId
		source = art.Source
		thumbnail = art.ThumbnailUrl
	}

	existing, err := s.likedPoems.FindByPoem(ctx, clientId, artworkId, poem)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.likedPoems.Delete(ctx, existing.Id); err != nil {
			return false, err
		}
		s.tracker.Track("poem_unliked", map[string]interface{}{"artworkId": artworkId, "source": source})
		return false, nil
	}

	liked := &entity.LikedPoem{
		Id:           uuid.New(),
		ClientId:     clientId,
		ArtworkId:    artworkId,
		ArtworkTitle: title,
		ImageId:      imageId,
		Poem:         poem,
		Source:       source,
		ThumbnailUrl: thumbnail,
		UserInputs:   themeLines,
		DateAdded:    time.Now(),
	}
	if err := s.likedPoems.Create(ctx, liked); err != nil {
		return false, err
	}
	s.tracker.Track("poem_liked", map[string]interface{}{"artworkId": artworkId, "source": source})
	return true, nil
}

func (s *persistenceService) LikedPoems(ctx context.Context, clientId string) ([]*entity.LikedPoem, error) {
	return s.likedPoems.FindByClient(ctx, clientId)
}

func (s *persistenceService) DeleteLikedPoem(ctx context.Context, id uuid.UUID) error {
	return s.likedPoems.Delete(ctx, id)
}
