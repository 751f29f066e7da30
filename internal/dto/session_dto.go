package dto

import "ai-artpoet-be/internal/model"

type FetchArtworkByIdRequest struct {
	ArtworkId string `json:"artwork_id" validate:"required"`
	Source    string `json:"source" validate:"required"`
}

type SelectSourceRequest struct {
	Source string `json:"source" validate:"required"`
}

type UpdateThemeLinesRequest struct {
	Lines []string `json:"lines" validate:"required,max=10,dive,max=500"`
}

type UpdateEditablePoemRequest struct {
	Text string `json:"text"`
}

// GeneratePoemRequest carries the restriction toggle: strict theme adherence
// when true, loose inspiration when false. The body is optional; its absence
// means unrestricted.
type GeneratePoemRequest struct {
	Restricted bool `json:"restricted"`
}

type LikedPoemActionRequest struct {
	LikedPoemId string `json:"liked_poem_id" validate:"required,uuid4"`
}

// GenerationLogsResponse exposes the raw prompt/response pairs behind the
// session's current keywords and poem.
type GenerationLogsResponse struct {
	KeywordLog *model.LogEntry `json:"keywordLog"`
	PoemLog    *model.LogEntry `json:"poemLog"`
}
