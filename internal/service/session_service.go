package service

import (
	"context"
	"errors"

	"ai-artpoet-be/internal/entity"
	"ai-artpoet-be/internal/repository/contract"
	"ai-artpoet-be/internal/repository/memory"
	"ai-artpoet-be/internal/session"
	"ai-artpoet-be/pkg/analytics"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrLikedPoemNotFound = errors.New("liked poem not found")
	ErrNoPreviousPoem    = errors.New("no previous poem to view")
)

// ISessionService owns session lifecycle and the synchronous user intents
// that mutate a session directly. The asynchronous flows live in the art,
// inspiration and poem services.
type ISessionService interface {
	Create() session.Snapshot
	Get(id string) (*session.State, error)
	Snapshot(id string) (session.Snapshot, error)
	Delete(id string)

	SetThemeLines(id string, lines []string) error
	ClearThemeLines(id string) error
	SetEditablePoem(id, text string) error
	SelectSource(id, source string) error
	StartArtlessMode(id string) error
	FlipBackToEditor(id string) error
	FlipToViewLastPoem(id string) error

	// LoadLikedPoem restores a previously liked poem into the final view,
	// re-fetching its artwork when it has one.
	LoadLikedPoem(ctx context.Context, id string, likedPoemId uuid.UUID) error
	// RecreatePoem primes the editor with a liked poem's original theme
	// lines so it can be regenerated.
	RecreatePoem(ctx context.Context, id string, likedPoemId uuid.UUID) error
}

type sessionService struct {
	sessions   *memory.SessionRepository
	likedPoems contract.LikedPoemRepository
	artService IArtService
	tracker    analytics.Tracker
}

func NewSessionService(
	sessions *memory.SessionRepository,
	likedPoems contract.LikedPoemRepository,
	artService IArtService,
	tracker analytics.Tracker,
) ISessionService {
	return &sessionService{
		sessions:   sessions,
		likedPoems: likedPoems,
		artService: artService,
		tracker:    tracker,
	}
}

func (s *sessionService) Create() session.Snapshot {
	state := session.NewState(uuid.NewString())
	s.sessions.Save(state)
	s.tracker.Track("session_started", map[string]interface{}{"sessionId": state.Id()})
	return state.Snapshot()
}

func (s *sessionService) Get(id string) (*session.State, error) {
	state, found := s.sessions.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}
	return state, nil
}

func (s *sessionService) Snapshot(id string) (session.Snapshot, error) {
	state, err := s.Get(id)
	if err != nil {
		return session.Snapshot{}, err
	}
	return state.Snapshot(), nil
}

func (s *sessionService) Delete(id string) {
	s.sessions.Delete(id)
}

func (s *sessionService) SetThemeLines(id string, lines []string) error {
	state, err := s.Get(id)
	if err != nil {
		return err
	}
	state.SetThemeLines(lines)
	return nil
}

func (s *sessionService) ClearThemeLines(id string) error {
	state, err := s.Get(id)
	if err != nil {
		return err
	}
	state.ClearThemeLines()
	return nil
}

func (s *sessionService) SetEditablePoem(id, text string) error {
	state, err := s.Get(id)
	if err != nil {
		return err
	}
	state.SetEditablePoem(text)
	return nil
}

func (s *sessionService) SelectSource(id, source string) error {
	state, err := s.Get(id)
	if err != nil {
		return err
	}
	state.SetSelectedSource(source)
	return nil
}

func (s *sessionService) StartArtlessMode(id string) error {
	state, err := s.Get(id)
	if err != nil {
		return err
	}
	state.StartArtlessMode()
	s.tracker.Track("artless_mode_started", map[string]interface{}{"sessionId": id})
	return nil
}

func (s *sessionService) FlipBackToEditor(id string) error {
	state, err := s.Get(id)
	if err != nil {
		return err
	}
	state.FlipBackToEditor()
	return nil
}

func (s *sessionService) FlipToViewLastPoem(id string) error {
	state, err := s.Get(id)
	if err != nil {
		return err
	}
	if !state.FlipToViewLastPoem() {
		return ErrNoPreviousPoem
	}
	return nil
}

func (s *sessionService) LoadLikedPoem(ctx context.Context, id string, likedPoemId uuid.UUID) error {
	state, liked, err := s.resolve(ctx, id, likedPoemId)
	if err != nil {
		return err
	}
	if liked.Source == entity.ArtlessSource {
		state.StartArtlessMode()
	} else {
		s.artService.FetchById(ctx, state, liked.ArtworkId, liked.Source)
	}
	state.LoadPoem(liked.Poem)
	s.tracker.Track("liked_poem_loaded", map[string]interface{}{"likedPoemId": likedPoemId})
	return nil
}

func (s *sessionService) RecreatePoem(ctx context.Context, id string, likedPoemId uuid.UUID) error {
	state, liked, err := s.resolve(ctx, id, likedPoemId)
	if err != nil {
		return err
	}
	if liked.Source == entity.ArtlessSource {
		state.StartArtlessMode()
	} else {
		s.artService.FetchById(ctx, state, liked.ArtworkId, liked.Source)
	}
	state.RestoreThemeLines(liked.UserInputs)
	s.tracker.Track("poem_recreated", map[string]interface{}{"likedPoemId": likedPoemId})
	return nil
}

func (s *sessionService) resolve(ctx context.Context, id string, likedPoemId uuid.UUID) (*session.State, *entity.LikedPoem, error) {
	state, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	liked, err := s.likedPoems.FindById(ctx, likedPoemId)
	if err != nil {
		return nil, nil, err
	}
	if liked == nil {
		return nil, nil, ErrLikedPoemNotFound
	}
	return state, liked, nil
}
