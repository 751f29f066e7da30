package memory

import (
	"context"
	"sync"

	"ai-artpoet-be/internal/entity"
	"ai-artpoet-be/internal/repository/contract"

	"github.com/google/uuid"
)

// LikedPoemRepository is the in-memory fallback used when no database is
// configured.
type LikedPoemRepository struct {
	mu    sync.Mutex
	poems []*entity.LikedPoem
}

func NewLikedPoemRepository() contract.LikedPoemRepository {
	return &LikedPoemRepository{}
}

func (r *LikedPoemRepository) Create(ctx context.Context, poem *entity.LikedPoem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *poem
	r.poems = append(r.poems, &copied)
	return nil
}

func (r *LikedPoemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.poems[:0]
	for _, p := range r.poems {
		if p.Id == id {
			continue
		}
		kept = append(kept, p)
	}
	r.poems = kept
	return nil
}

func (r *LikedPoemRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.LikedPoem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.poems {
		if p.Id == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *LikedPoemRepository) FindByClient(ctx context.Context, clientId string) ([]*entity.LikedPoem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.LikedPoem
	for _, p := range r.poems {
		if p.ClientId == clientId {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *LikedPoemRepository) FindByPoem(ctx context.Context, clientId, artworkId, poem string) (*entity.LikedPoem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.poems {
		if p.ClientId == clientId && p.ArtworkId == artworkId && p.Poem == poem {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}
