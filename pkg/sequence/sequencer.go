package sequence

import "sync/atomic"

// Sequencer hands out monotonically increasing tokens that identify the
// current logical operation for a session. An async continuation compares the
// token it captured at start against the current one before publishing its
// result; a mismatch means a newer operation superseded it and the result
// must be dropped.
type Sequencer struct {
	current atomic.Int64
}

// Next atomically advances the counter and returns the new current token.
// Call it exactly once per operation that can race with another of its kind.
// Continuations of an already-started operation reuse the original token.
func (s *Sequencer) Next() int64 {
	return s.current.Add(1)
}

// IsCurrent reports whether token still identifies the latest operation.
func (s *Sequencer) IsCurrent(token int64) bool {
	return s.current.Load() == token
}

// Current returns the latest token without advancing the counter.
func (s *Sequencer) Current() int64 {
	return s.current.Load()
}
