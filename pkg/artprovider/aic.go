package artprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"

	"ai-artpoet-be/internal/model"
)

const (
	aicAPIBaseURL   = "https://api.artic.edu/api/v1/artworks"
	aicImageBaseURL = "https://www.artic.edu/iiif/2"
	aicSourceName   = "The Art Institute of Chicago"
	aicFields       = "id,title,image_id,artist_display,medium_display,credit_line"
)

// AICProvider talks to the Art Institute of Chicago public API.
type AICProvider struct {
	baseURL  string
	imageURL string
	client   *http.Client
}

func NewAICProvider(client *http.Client) *AICProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &AICProvider{
		baseURL:  aicAPIBaseURL,
		imageURL: aicImageBaseURL,
		client:   client,
	}
}

type aicArtworkData struct {
	Id            json.Number `json:"id"`
	Title         string      `json:"title"`
	ImageId       string      `json:"image_id"`
	ArtistDisplay string      `json:"artist_display"`
	MediumDisplay string      `json:"medium_display"`
	CreditLine    string      `json:"credit_line"`
}

func (p *AICProvider) SourceName() string {
	return aicSourceName
}

func (p *AICProvider) FetchRandomArtwork(ctx context.Context) (*model.Artwork, error) {
	url := fmt.Sprintf("%s?fields=%s&limit=100", p.baseURL, aicFields)
	body, err := p.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artwork list from the museum: %w", err)
	}

	var result struct {
		Data []aicArtworkData `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch artwork list from the museum: %w", err)
	}

	withImages := make([]aicArtworkData, 0, len(result.Data))
	for _, art := range result.Data {
		if art.ImageId != "" {
			withImages = append(withImages, art)
		}
	}
	if len(withImages) == 0 {
		return nil, ErrNoArtworks
	}

	return p.parse(withImages[rand.Intn(len(withImages))])
}

func (p *AICProvider) FetchArtworkById(ctx context.Context, id string) (*model.Artwork, error) {
	url := fmt.Sprintf("%s/%s?fields=%s", p.baseURL, id, aicFields)
	body, err := p.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artwork with ID %s: %w", id, err)
	}

	var result struct {
		Data aicArtworkData `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch artwork with ID %s: %w", id, err)
	}

	return p.parse(result.Data)
}

func (p *AICProvider) parse(data aicArtworkData) (*model.Artwork, error) {
	if data.ImageId == "" {
		return nil, fmt.Errorf("artwork with ID %s has no image", data.Id.String())
	}
	return &model.Artwork{
		Id:           data.Id.String(),
		Title:        orDefault(data.Title, "Untitled"),
		Artist:       orDefault(data.ArtistDisplay, "Unknown Artist"),
		Medium:       orDefault(data.MediumDisplay, "N/A"),
		Credit:       orDefault(data.CreditLine, "N/A"),
		Source:       aicSourceName,
		ImageId:      data.ImageId,
		ImageUrl:     fmt.Sprintf("%s/%s/full/843,/0/default.jpg", p.imageURL, data.ImageId),
		ThumbnailUrl: fmt.Sprintf("%s/%s/full/200,/0/default.jpg", p.imageURL, data.ImageId),
	}, nil
}

func (p *AICProvider) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status error, got status %d", res.StatusCode)
	}
	return body, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
