package entity

import (
	"time"

	"github.com/google/uuid"

	"gorm.io/datatypes"
)

// LikedPoem links a finished poem to the artwork it was written for. Artless
// poems use ArtworkId/Source "artless". UserInputs keeps the theme lines so
// the poem can be recreated later.
type LikedPoem struct {
	Id           uuid.UUID                   `gorm:"primaryKey" json:"id"`
	ClientId     string                      `gorm:"index" json:"clientId"`
	ArtworkId    string                      `json:"artworkId"`
	ArtworkTitle string                      `json:"artworkTitle"`
	ImageId      string                      `json:"artworkImageId"`
	Poem         string                      `json:"poem"`
	Source       string                      `json:"source"`
	ThumbnailUrl string                      `json:"thumbnailUrl"`
	UserInputs   datatypes.JSONSlice[string] `json:"userInputs"`
	DateAdded    time.Time                   `json:"dateAdded"`
}

// ArtlessSource is the sentinel source for poems written without artwork.
const ArtlessSource = "artless"
