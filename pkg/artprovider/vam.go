package artprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ai-artpoet-be/internal/model"
)

const (
	vamSearchURL  = "https://api.vam.ac.uk/v2/objects/search"
	vamSourceName = "Victoria and Albert Museum"
)

// VAMProvider talks to the Victoria and Albert Museum public API. The search
// endpoint supports random=true, so random fetches take the first usable
// record of a randomized page.
type VAMProvider struct {
	searchURL string
	client    *http.Client
}

func NewVAMProvider(client *http.Client) *VAMProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &VAMProvider{
		searchURL: vamSearchURL,
		client:    client,
	}
}

type vamRecord struct {
	SystemNumber    string `json:"systemNumber"`
	PrimaryTitle    string `json:"_primaryTitle"`
	PrimaryImageId  string `json:"_primaryImageId"`
	ObjectType      string `json:"objectType"`
	AccessionNumber string `json:"accessionNumber"`
	PrimaryDate     string `json:"_primaryDate"`
	PrimaryPlace    string `json:"_primaryPlace"`
	PrimaryMaker    *struct {
		Name string `json:"name"`
	} `json:"_primaryMaker"`
	Images *struct {
		IIIFImageBaseURL string `json:"_iiif_image_base_url"`
	} `json:"_images"`
}

func (p *VAMProvider) SourceName() string {
	return vamSourceName
}

func (p *VAMProvider) FetchRandomArtwork(ctx context.Context) (*model.Artwork, error) {
	url := fmt.Sprintf("%s?q_object_type=painting&page_size=50&random=true", p.searchURL)
	records, err := p.search(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artwork list from the V&A museum: %w", err)
	}

	for _, record := range records {
		if record.PrimaryImageId != "" && record.Images != nil && record.Images.IIIFImageBaseURL != "" {
			return p.parse(record)
		}
	}
	return nil, ErrNoArtworks
}

func (p *VAMProvider) FetchArtworkById(ctx context.Context, id string) (*model.Artwork, error) {
	url := fmt.Sprintf("%s?id_system_number=%s", p.searchURL, id)
	records, err := p.search(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artwork with ID %s from V&A: %w", id, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("artwork with ID %s not found at V&A", id)
	}
	return p.parse(records[0])
}

func (p *VAMProvider) search(ctx context.Context, url string) ([]vamRecord, error) {
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

	var result struct {
		Records []vamRecord `json:"records"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return result.Records, nil
}

func (p *VAMProvider) parse(record vamRecord) (*model.Artwork, error) {
	if record.PrimaryImageId == "" || record.Images == nil || record.Images.IIIFImageBaseURL == "" {
		return nil, fmt.Errorf("artwork with ID %s has no image data", record.SystemNumber)
	}

	artist := "Unknown Artist"
	if record.PrimaryMaker != nil && record.PrimaryMaker.Name != "" {
		artist = record.PrimaryMaker.Name
	}

	base := record.Images.IIIFImageBaseURL
	return &model.Artwork{
		Id:           record.SystemNumber,
		Title:        orDefault(record.PrimaryTitle, "Untitled"),
		Artist:       artist,
		Medium:       orDefault(record.ObjectType, "N/A"),
		Credit:       orDefault(record.AccessionNumber, "N/A"),
		Source:       vamSourceName,
		ImageId:      record.PrimaryImageId,
		ImageUrl:     base + "full/768,/0/default.jpg",
		ThumbnailUrl: base + "full/!200,200/0/default.jpg",
		Date:         record.PrimaryDate,
		Place:        record.PrimaryPlace,
	}, nil
}
