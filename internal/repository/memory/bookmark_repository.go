package memory

import (
	"context"
	"sync"

	"ai-artpoet-be/internal/entity"
	"ai-artpoet-be/internal/repository/contract"
)

// BookmarkRepository is the in-memory fallback used when no database is
// configured. Contents live as long as the process.
type BookmarkRepository struct {
	mu        sync.Mutex
	bookmarks []*entity.Bookmark
}

func NewBookmarkRepository() contract.BookmarkRepository {
	return &BookmarkRepository{}
}

func (r *BookmarkRepository) Create(ctx context.Context, bookmark *entity.Bookmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *bookmark
	r.bookmarks = append(r.bookmarks, &copied)
	return nil
}

func (r *BookmarkRepository) DeleteByArtwork(ctx context.Context, clientId, artworkId, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.bookmarks[:0]
	for _, b := range r.bookmarks {
		if b.ClientId == clientId && b.ArtworkId == artworkId && b.Source == source {
			continue
		}
		kept = append(kept, b)
	}
	r.bookmarks = kept
	return nil
}

func (r *BookmarkRepository) FindByClient(ctx context.Context, clientId string) ([]*entity.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Bookmark
	for _, b := range r.bookmarks {
		if b.ClientId == clientId {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *BookmarkRepository) Exists(ctx context.Context, clientId, artworkId, source string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookmarks {
		if b.ClientId == clientId && b.ArtworkId == artworkId && b.Source == source {
			return true, nil
		}
	}
	return false, nil
}
