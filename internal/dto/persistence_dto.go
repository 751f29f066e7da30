package dto

import "ai-artpoet-be/internal/model"

type ToggleBookmarkRequest struct {
	Artwork model.Artwork `json:"artwork" validate:"required"`
}

type ToggleLikeRequest struct {
	Artwork    *model.Artwork `json:"artwork"`
	Poem       string         `json:"poem" validate:"required"`
	ThemeLines []string       `json:"theme_lines"`
}

type ToggleResponse struct {
	Active bool `json:"active"`
}
