package contract

import (
	"context"

	"ai-artpoet-be/internal/entity"
)

type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *entity.Bookmark) error
	// DeleteByArtwork removes the client's bookmark for one artwork.
	DeleteByArtwork(ctx context.Context, clientId, artworkId, source string) error
	FindByClient(ctx context.Context, clientId string) ([]*entity.Bookmark, error)
	Exists(ctx context.Context, clientId, artworkId, source string) (bool, error)
}
