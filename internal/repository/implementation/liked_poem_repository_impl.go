package implementation

import (
	"context"
	"errors"

	"ai-artpoet-be/internal/entity"
	"ai-artpoet-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikedPoemRepositoryImpl struct {
	db *gorm.DB
}

func NewLikedPoemRepository(db *gorm.DB) contract.LikedPoemRepository {
	return &LikedPoemRepositoryImpl{db: db}
}

func (r *LikedPoemRepositoryImpl) Create(ctx context.Context, poem *entity.LikedPoem) error {
	return r.db.WithContext(ctx).Create(poem).Error
}

func (r *LikedPoemRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.LikedPoem{}, id).Error
}

func (r *LikedPoemRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.LikedPoem, error) {
	var liked entity.LikedPoem
	err := r.db.WithContext(ctx).First(&liked, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &liked, nil
}

func (r *LikedPoemRepositoryImpl) FindByClient(ctx context.Context, clientId string) ([]*entity.LikedPoem, error) {
	var poems []*entity.LikedPoem
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientId).
		Order("date_added ASC").
		Find(&poems).Error
	if err != nil {
		return nil, err
	}
	return poems, nil
}

func (r *LikedPoemRepositoryImpl) FindByPoem(ctx context.Context, clientId, artworkId, poem string) (*entity.LikedPoem, error) {
	var liked entity.LikedPoem
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND artwork_id = ? AND poem = ?", clientId, artworkId, poem).
		First(&liked).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &liked, nil
}
