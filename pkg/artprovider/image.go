package artprovider

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

// ImageFetcher downloads raw image bytes and encodes them into a data URL.
// This is the second, independently asynchronous phase of an artwork fetch.
type ImageFetcher interface {
	FetchAsDataURL(ctx context.Context, url string) (string, error)
}

type HTTPImageFetcher struct {
	client *http.Client
}

func NewHTTPImageFetcher(client *http.Client) *HTTPImageFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPImageFetcher{client: client}
}

func (f *HTTPImageFetcher) FetchAsDataURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	res, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch the artwork image: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch the artwork image: status %d", res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to fetch the artwork image: %w", err)
	}

	mimeType := res.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(raw)
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
