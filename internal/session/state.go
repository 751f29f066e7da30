package session

import (
	"strings"
	"sync"
	"time"

	"ai-artpoet-be/internal/constant"
	"ai-artpoet-be/internal/model"
	"ai-artpoet-be/pkg/sequence"
)

// ResetMode selects how much session state a new artwork fetch clears.
type ResetMode int

const (
	// ResetAll clears everything except the request count: artwork, image,
	// poem, keywords, theme lines, logs and error.
	ResetAll ResetMode = iota
	// ResetInspiration clears only keywords and the keyword log. Theme lines
	// and the request count survive, so a user can swap artworks without
	// losing a poem in progress.
	ResetInspiration
)

// State is the mutable aggregate for one poem-writing session. All access
// goes through its methods; every check-then-act sequence holds the lock for
// its whole duration, which is what makes the token comparison a sufficient
// mutual-exclusion mechanism for async continuations.
type State struct {
	mu  sync.Mutex
	seq sequence.Sequencer
	now func() time.Time

	id             string
	selectedSource string

	artwork       *model.Artwork
	artworkImage  string // provider image URL
	capturedImage string // base64 data URL, arrives strictly after artwork

	keywords   []string
	themeLines []string

	poem          string
	editablePoem  string
	lastFinalPoem string

	requestCount  int
	cooldownUntil time.Time

	isFetchingArt        bool
	isGeneratingKeywords bool
	isGeneratingPoem     bool
	userWantsToGenerate  bool
	isKeywordsReady      bool
	isArtlessMode        bool

	keywordLog *model.LogEntry
	poemLog    *model.LogEntry

	currentError string
}

func NewState(id string) *State {
	return &State{
		id:         id,
		now:        time.Now,
		themeLines: emptyThemeLines(),
	}
}

// SetClock replaces the wall clock. Tests use this to drive the cooldown
// window deterministically.
func (s *State) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *State) Id() string { return s.id }

func emptyThemeLines() []string {
	return make([]string, constant.DefaultThemeLineCount)
}

// --- Artwork fetch lifecycle ---

// BeginFetch allocates a fresh token, applies the requested reset and raises
// the fetching flag. The returned token guards every later mutation of this
// pipeline, including the second (image) phase.
func (s *State) BeginFetch(mode ResetMode) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentError = ""
	s.artwork = nil
	s.artworkImage = ""
	s.capturedImage = ""
	s.keywords = nil
	s.keywordLog = nil

	if mode == ResetAll {
		s.poem = ""
		s.editablePoem = ""
		s.lastFinalPoem = ""
		s.themeLines = emptyThemeLines()
		s.poemLog = nil
		s.isKeywordsReady = false
		s.userWantsToGenerate = false
		s.isArtlessMode = false
	}

	s.isFetchingArt = true
	return s.seq.Next()
}

// PublishArtwork records phase-1 output if token is still current.
func (s *State) PublishArtwork(token int64, art *model.Artwork) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seq.IsCurrent(token) {
		return false
	}
	s.artwork = art
	s.artworkImage = art.ImageUrl
	return true
}

// PublishImage records phase-2 output. The token is re-checked here because
// the image download can outlive phase 1's currency check.
func (s *State) PublishImage(token int64, dataURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seq.IsCurrent(token) {
		return false
	}
	s.capturedImage = dataURL
	return true
}

// FinishFetch lowers the fetching flag, and only for the pipeline that is
// still current; a superseded pipeline must not clobber its successor's flag.
// When the fetch produced an artwork (or artless mode is on) the editor is
// opened immediately.
func (s *State) FinishFetch(token int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seq.IsCurrent(token) {
		return
	}
	s.isFetchingArt = false
	if s.artwork != nil || s.isArtlessMode {
		s.userWantsToGenerate = true
		s.isKeywordsReady = true
	}
}

// --- Keyword inspiration lifecycle ---

// CurrentImageAndToken returns the captured image together with the token it
// was published under, so a keyword request triggered right after a fetch can
// continue the same logical operation.
func (s *State) CurrentImageAndToken() (string, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capturedImage, s.seq.Current()
}

// NextToken starts a new logical operation (e.g. manual keyword
// regeneration), invalidating all in-flight continuations.
func (s *State) NextToken() int64 {
	return s.seq.Next()
}

func (s *State) BeginKeywordGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isGeneratingKeywords = true
	s.currentError = ""
	s.userWantsToGenerate = true
	s.isKeywordsReady = false
}

func (s *State) PublishKeywords(token int64, keywords []string, log *model.LogEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seq.IsCurrent(token) {
		return false
	}
	s.keywords = keywords
	s.keywordLog = log
	s.isKeywordsReady = true
	return true
}

// FailKeywords publishes the recoverable keyword error and still marks
// keywords ready: generation failure never blocks writing a poem by hand.
func (s *State) FailKeywords(token int64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seq.IsCurrent(token) {
		return false
	}
	s.currentError = message
	s.isKeywordsReady = true
	return true
}

func (s *State) EndKeywordGeneration(token int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seq.IsCurrent(token) {
		return
	}
	s.isGeneratingKeywords = false
}

// --- Poem generation gate ---

// GateVerdict is the outcome of the poem gate's pre-flight checks.
type GateVerdict int

const (
	GateCommitted GateVerdict = iota
	GateQuotaExceeded
	GateCoolingDown
	GateNoImage
)

// CommitPoemAttempt runs the pre-flight checks and, if they pass, atomically
// consumes quota, starts the cooldown window and raises the generating flag.
// Count and cooldown are committed before any network call and are never
// rolled back, even when the call later fails.
func (s *State) CommitPoemAttempt(maxRequests int, cooldown time.Duration) GateVerdict {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.requestCount >= maxRequests {
		s.currentError = constant.MsgRequestLimitReached
		return GateQuotaExceeded
	}
	if s.now().Before(s.cooldownUntil) {
		s.currentError = constant.MsgCoolingDown
		return GateCoolingDown
	}
	if s.capturedImage == "" && !s.isArtlessMode {
		s.currentError = constant.MsgNoImageForPoem
		return GateNoImage
	}

	s.requestCount++
	s.cooldownUntil = s.now().Add(cooldown)
	s.isGeneratingPoem = true
	s.currentError = ""
	s.poem = ""
	return GateCommitted
}

// PublishPoem records a successful generation. The editable copy is re-derived
// from the poem here and nowhere else; later edits to it never flow back.
func (s *State) PublishPoem(text string, log *model.LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.poem = text
	s.editablePoem = text
	s.poemLog = log
	s.isGeneratingPoem = false
}

func (s *State) FailPoem(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentError = message
	s.isGeneratingPoem = false
}

// FinalizeManualPoem joins the theme lines into a poem directly, bypassing
// the gate: no quota, no cooldown, no external call.
func (s *State) FinalizeManualPoem() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	final := strings.TrimSpace(strings.Join(s.themeLines, "\n"))
	if final == "" {
		s.currentError = constant.MsgEmptyManualPoem
		return false
	}
	s.poem = final
	s.editablePoem = final
	s.poemLog = &model.LogEntry{
		Prompt:   constant.ManualPoemLogPrompt,
		Response: final,
	}
	return true
}

// --- User edits & modes ---

func (s *State) SetThemeLines(lines []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themeLines = append([]string(nil), lines...)
}

func (s *State) ClearThemeLines() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themeLines = emptyThemeLines()
}

// SetEditablePoem applies a user edit. It deliberately does not touch poem.
func (s *State) SetEditablePoem(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editablePoem = text
}

func (s *State) SetSelectedSource(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedSource = source
}

func (s *State) SelectedSource() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedSource
}

// StartArtlessMode resets the session and opens the editor with no backing
// artwork. The keyword list stays empty.
func (s *State) StartArtlessMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetAllLocked()
	s.isArtlessMode = true
	s.userWantsToGenerate = true
	s.isKeywordsReady = true
}

// RestoreThemeLines primes the editor with a previous poem's inputs (the
// recreate flow) without touching the request count.
func (s *State) RestoreThemeLines(lines []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.poem = ""
	s.editablePoem = ""
	s.poemLog = nil
	s.themeLines = append([]string(nil), lines...)
	s.keywords = nil
	s.userWantsToGenerate = true
	s.isKeywordsReady = true
}

// LoadPoem places a previously liked poem straight into the final view.
func (s *State) LoadPoem(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.poem = text
	s.editablePoem = text
	s.userWantsToGenerate = true
	s.isKeywordsReady = true
}

// FlipBackToEditor remembers the current final poem and returns to the
// editor, keeping the theme lines in place.
func (s *State) FlipBackToEditor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFinalPoem = s.editablePoem
	s.poem = ""
	s.editablePoem = ""
	s.userWantsToGenerate = true
	s.isKeywordsReady = true
}

// FlipToViewLastPoem restores the poem remembered by FlipBackToEditor.
func (s *State) FlipToViewLastPoem() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastFinalPoem == "" {
		return false
	}
	s.poem = s.lastFinalPoem
	s.editablePoem = s.lastFinalPoem
	return true
}

func (s *State) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentError = message
}

// SetErrorIfCurrent publishes an error only when the failing operation is
// still the current one; a superseded pipeline's failure is irrelevant.
func (s *State) SetErrorIfCurrent(token int64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seq.IsCurrent(token) {
		return false
	}
	s.currentError = message
	return true
}

func (s *State) resetAllLocked() {
	s.currentError = ""
	s.artwork = nil
	s.artworkImage = ""
	s.capturedImage = ""
	s.keywords = nil
	s.keywordLog = nil
	s.poem = ""
	s.editablePoem = ""
	s.lastFinalPoem = ""
	s.themeLines = emptyThemeLines()
	s.poemLog = nil
	s.isKeywordsReady = false
	s.userWantsToGenerate = false
	s.isArtlessMode = false
	s.isFetchingArt = false
}

// ThemeLines returns a copy of the current theme lines.
func (s *State) ThemeLines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.themeLines...)
}

func (s *State) Artwork() *model.Artwork {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artwork
}

func (s *State) IsArtlessMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isArtlessMode
}

// Snapshot returns a read-only copy of the aggregate for observers.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Id:                   s.id,
		SelectedSource:       s.selectedSource,
		Artwork:              s.artwork,
		ArtworkImageUrl:      s.artworkImage,
		CapturedImage:        s.capturedImage,
		Keywords:             append([]string(nil), s.keywords...),
		ThemeLines:           append([]string(nil), s.themeLines...),
		Poem:                 s.poem,
		EditablePoem:         s.editablePoem,
		LastFinalPoem:        s.lastFinalPoem,
		RequestCount:         s.requestCount,
		IsCoolingDown:        s.now().Before(s.cooldownUntil),
		IsFetchingArt:        s.isFetchingArt,
		IsGeneratingKeywords: s.isGeneratingKeywords,
		IsGeneratingPoem:     s.isGeneratingPoem,
		UserWantsToGenerate:  s.userWantsToGenerate,
		IsKeywordsReady:      s.isKeywordsReady,
		IsArtlessMode:        s.isArtlessMode,
		KeywordLog:           s.keywordLog,
		PoemLog:              s.poemLog,
		Error:                s.currentError,
	}
	snap.Phase = PhaseOf(snap)
	return snap
}
