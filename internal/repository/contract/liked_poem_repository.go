package contract

import (
	"context"

	"ai-artpoet-be/internal/entity"

	"github.com/google/uuid"
)

type LikedPoemRepository interface {
	Create(ctx context.Context, poem *entity.LikedPoem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.LikedPoem, error)
	FindByClient(ctx context.Context, clientId string) ([]*entity.LikedPoem, error)
	// FindByPoem locates a like by its identity triple: the client, the
	// artwork and the exact poem text.
	FindByPoem(ctx context.Context, clientId, artworkId, poem string) (*entity.LikedPoem, error)
}
