package model

// Artwork is the normalized record every art provider maps its raw API
// response into. (Id, Source) identifies an artwork; providers do not share
// an ID namespace.
type Artwork struct {
	Id           string `json:"id"`
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	Medium       string `json:"medium"`
	Credit       string `json:"credit"`
	Source       string `json:"source"`
	ImageId      string `json:"imageId"`
	ImageUrl     string `json:"imageUrl"`
	ThumbnailUrl string `json:"thumbnailUrl"`
	Date         string `json:"date,omitempty"`
	Place        string `json:"place,omitempty"`
}

// LogEntry records one prompt/response exchange with the generation service.
type LogEntry struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}
