package memory

import (
	"time"

	"ai-artpoet-be/internal/session"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Sessions expire after an hour of inactivity; expired items are purged
	// every 10 minutes. A purge is the "full session restart" that resets the
	// request quota.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(state *session.State) {
	r.cache.Set(state.Id(), state, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*session.State, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*session.State), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
