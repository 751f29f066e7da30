package session

import "ai-artpoet-be/internal/model"

// Phase is the single UI phase derived from the underlying flags. Exactly one
// phase is active at any time.
type Phase string

const (
	// PhaseChoice shows the "inspire me / write without keywords" choice.
	PhaseChoice Phase = "CHOICE"
	// PhaseKeywordLoading shows the spinner while keywords are requested.
	PhaseKeywordLoading Phase = "KEYWORD_LOADING"
	// PhaseEditor shows the theme line editor.
	PhaseEditor Phase = "EDITOR"
	// PhaseGenerating shows the spinner while a poem is generated.
	PhaseGenerating Phase = "GENERATING"
	// PhaseFinal shows the finished poem.
	PhaseFinal Phase = "FINAL"
)

// Snapshot is a read-only copy of a session's state.
type Snapshot struct {
	Id                   string          `json:"id"`
	SelectedSource       string          `json:"selectedSource"`
	Artwork              *model.Artwork  `json:"artwork,omitempty"`
	ArtworkImageUrl      string          `json:"artworkImageUrl,omitempty"`
	CapturedImage        string          `json:"capturedImage,omitempty"`
	Keywords             []string        `json:"keywords"`
	ThemeLines           []string        `json:"themeLines"`
	Poem                 string          `json:"poem,omitempty"`
	EditablePoem         string          `json:"editablePoem,omitempty"`
	LastFinalPoem        string          `json:"lastFinalPoem,omitempty"`
	RequestCount         int             `json:"requestCount"`
	IsCoolingDown        bool            `json:"isCoolingDown"`
	IsFetchingArt        bool            `json:"isFetchingArt"`
	IsGeneratingKeywords bool            `json:"isGeneratingKeywords"`
	IsGeneratingPoem     bool            `json:"isGeneratingPoem"`
	UserWantsToGenerate  bool            `json:"userWantsToGenerate"`
	IsKeywordsReady      bool            `json:"isKeywordsReady"`
	IsArtlessMode        bool            `json:"isArtlessMode"`
	KeywordLog           *model.LogEntry `json:"keywordLog,omitempty"`
	PoemLog              *model.LogEntry `json:"poemLog,omitempty"`
	Error                string          `json:"error,omitempty"`
	Phase                Phase           `json:"phase"`
}

// PhaseOf computes the active UI phase from the flags. It is the only place
// that combines them, so inconsistent flag combinations cannot leak out.
func PhaseOf(s Snapshot) Phase {
	switch {
	case s.EditablePoem != "" && !s.IsGeneratingPoem:
		return PhaseFinal
	case s.IsGeneratingPoem:
		return PhaseGenerating
	case !s.UserWantsToGenerate:
		return PhaseChoice
	case !s.IsKeywordsReady:
		return PhaseKeywordLoading
	default:
		return PhaseEditor
	}
}
