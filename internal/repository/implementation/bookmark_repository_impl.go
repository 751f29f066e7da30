package implementation

import (
	"context"

	"ai-artpoet-be/internal/entity"
	"ai-artpoet-be/internal/repository/contract"

	"gorm.io/gorm"
)

type BookmarkRepositoryImpl struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) contract.BookmarkRepository {
	return &BookmarkRepositoryImpl{db: db}
}

func (r *BookmarkRepositoryImpl) Create(ctx context.Context, bookmark *entity.Bookmark) error {
	return r.db.WithContext(ctx).Create(bookmark).Error
}

func (r *BookmarkRepositoryImpl) DeleteByArtwork(ctx context.Context, clientId, artworkId, source string) error {
	return r.db.WithContext(ctx).
		Where("client_id = ? AND artwork_id = ? AND source = ?", clientId, artworkId, source).
		Delete(&entity.Bookmark{}).Error
}

func (r *BookmarkRepositoryImpl) FindByClient(ctx context.Context, clientId string) ([]*entity.Bookmark, error) {
	var bookmarks []*entity.Bookmark
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientId).
		Order("date_added ASC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (r *BookmarkRepositoryImpl) Exists(ctx context.Context, clientId, artworkId, source string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Bookmark{}).
		Where("client_id = ? AND artwork_id = ? AND source = ?", clientId, artworkId, source).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
