package artprovider

import (
	"context"
	"errors"

	"ai-artpoet-be/internal/model"
)

// Provider is one museum API, normalized. Implementations fetch and parse
// only; all sequencing and state publication stays with the caller.
type Provider interface {
	SourceName() string
	FetchRandomArtwork(ctx context.Context) (*model.Artwork, error)
	FetchArtworkById(ctx context.Context, id string) (*model.Artwork, error)
}

// ErrNoArtworks is returned when a provider's listing contained no usable
// (image-bearing) items. Surfaced to the user verbatim by the orchestrator.
var ErrNoArtworks = errors.New("no artworks with images were found")

// Source describes a selectable museum in the UI source picker.
type Source struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Enabled  bool   `json:"enabled"`
}

// Registry maps source ids to providers and carries the picker metadata.
type Registry struct {
	sources   []Source
	providers map[string]Provider
	fallback  Provider
}

func NewRegistry(aic, vam Provider) *Registry {
	return &Registry{
		sources: []Source{
			{Id: SourceIdAIC, Name: aic.SourceName(), Initials: "AIC", Enabled: true},
			{Id: SourceIdVAM, Name: vam.SourceName(), Initials: "VA", Enabled: true},
			{Id: SourceIdBM, Name: "British Museum", Initials: "BM", Enabled: false},
		},
		providers: map[string]Provider{
			SourceIdAIC: aic,
			SourceIdVAM: vam,
		},
		fallback: aic,
	}
}

const (
	SourceIdAIC = "aic"
	SourceIdVAM = "va"
	SourceIdBM  = "bm"
)

func (r *Registry) Sources() []Source {
	return r.sources
}

// ById resolves a source id to its provider, defaulting to AIC the way the
// source picker does.
func (r *Registry) ById(id string) Provider {
	if p, ok := r.providers[id]; ok {
		return p
	}
	return r.fallback
}

// ByName resolves a provider from the display name recorded in bookmarks and
// liked poems.
func (r *Registry) ByName(name string) Provider {
	for id, p := range r.providers {
		if p.SourceName() == name {
			return r.providers[id]
		}
	}
	return r.fallback
}
