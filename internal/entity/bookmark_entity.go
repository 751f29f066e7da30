package entity

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark marks an artwork a client wants to revisit. (ArtworkId, Source)
// identifies the artwork; ids are only unique within one provider.
type Bookmark struct {
	Id           uuid.UUID `gorm:"primaryKey" json:"id"`
	ClientId     string    `gorm:"index" json:"clientId"`
	ArtworkId    string    `json:"artworkId"`
	Title        string    `json:"title"`
	ImageId      string    `json:"imageId"`
	Source       string    `json:"source"`
	ThumbnailUrl string    `json:"thumbnailUrl"`
	DateAdded    time.Time `json:"dateAdded"`
}
