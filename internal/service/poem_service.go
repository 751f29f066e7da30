package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"ai-artpoet-be/internal/config"
	"ai-artpoet-be/internal/constant"
	"ai-artpoet-be/internal/model"
	"ai-artpoet-be/internal/session"
	"ai-artpoet-be/pkg/analytics"
	"ai-artpoet-be/pkg/genai"
)

// IPoemService runs the gated poem generation flow and the manual finalize
// path that bypasses the gate.
type IPoemService interface {
	// Generate validates the theme lines, commits a quota/cooldown attempt
	// and calls the model. restricted switches the prompt from loose
	// inspiration to strict theme adherence. A committed attempt that fails
	// downstream still consumed its quota and cooldown.
	Generate(ctx context.Context, state *session.State, restricted bool)
	// FinalizeManually turns the theme lines themselves into the poem. No
	// quota, no cooldown, no model call.
	FinalizeManually(state *session.State)
}

type poemService struct {
	generator genai.Generator
	apiKeySet bool
	poemCfg   config.PoemConfig
	tracker   analytics.Tracker
}

func NewPoemService(
	generator genai.Generator,
	apiKeySet bool,
	poemCfg config.PoemConfig,
	tracker analytics.Tracker,
) IPoemService {
	return &poemService{
		generator: generator,
		apiKeySet: apiKeySet,
		poemCfg:   poemCfg,
		tracker:   tracker,
	}
}

// themeSanitizer strips characters with prompt-structure meaning from user
// theme lines before they are embedded in the prompt.
var themeSanitizer = regexp.MustCompile(`[<>{}\[\]()]`)

func (s *poemService) Generate(ctx context.Context, state *session.State, restricted bool) {
	lines := state.ThemeLines()

	if word, ok := findForbiddenKeyword(lines); ok {
		state.SetError(fmt.Sprintf(constant.MsgForbiddenThemeFormat, word))
		s.tracker.Track("error", map[string]interface{}{
			"context": "generatePoem",
			"message": "forbidden theme keyword",
			"keyword": word,
		})
		return
	}

	verdict := state.CommitPoemAttempt(s.poemCfg.MaxRequests, s.poemCfg.Cooldown)
	if verdict != session.GateCommitted {
		return
	}

	if !s.apiKeySet {
		state.FailPoem(constant.MsgMissingAPIKey)
		return
	}

	artless := state.IsArtlessMode()
	prompt := buildPoemPrompt(lines, artless, restricted)

	req := &genai.Request{
		Prompt:              prompt,
		ApplySafetySettings: true,
		MaxOutputTokens:     s.poemCfg.MaxOutputTokens,
	}
	if !artless {
		image, _ := state.CurrentImageAndToken()
		mime, data, ok := splitDataURL(image)
		if !ok {
			state.FailPoem(constant.MsgPoemFailed)
			return
		}
		req.Image = &genai.ImagePart{MimeType: mime, Data: data}
	}

	text, err := s.generator.Generate(ctx, req)
	if err != nil {
		state.FailPoem(constant.MsgPoemFailed)
		s.tracker.Track("error", map[string]interface{}{
			"context": "generatePoem",
			"message": err.Error(),
		})
		return
	}

	poem := strings.TrimSpace(text)
	state.PublishPoem(poem, &model.LogEntry{Prompt: prompt, Response: poem})
	s.tracker.Track("poem_generated", map[string]interface{}{
		"themes":     lines,
		"artless":    artless,
		"restricted": restricted,
	})
}

func (s *poemService) FinalizeManually(state *session.State) {
	if state.FinalizeManualPoem() {
		s.tracker.Track("poem_finalized_manually", map[string]interface{}{
			"themes": state.ThemeLines(),
		})
	}
}

// findForbiddenKeyword reports the first blocked word appearing in any theme
// line, matched case-insensitively as a substring.
func findForbiddenKeyword(lines []string) (string, bool) {
	for _, line := range lines {
		lowered := strings.ToLower(line)
		for _, word := range constant.ForbiddenThemeKeywords {
			if strings.Contains(lowered, word) {
				return word, true
			}
		}
	}
	return "", false
}

// buildPoemPrompt assembles the full generation prompt. Exactly one steering
// clause follows the base instruction: strict theme adherence when requested,
// otherwise artwork or artless inspiration. Theme lines are sanitized and
// truncated; an empty line falls back to the "anything" placeholder so the
// model always receives one theme per poem line.
func buildPoemPrompt(lines []string, artless, restricted bool) string {
	var sb strings.Builder
	lineCount := len(lines)
	if lineCount == 0 {
		lineCount = constant.DefaultThemeLineCount
	}
	sb.WriteString(fmt.Sprintf(constant.PoemPromptBase, lineCount, lineCount))
	sb.WriteString(" ")
	switch {
	case restricted:
		sb.WriteString(constant.PoemPromptRestriction)
	case artless:
		sb.WriteString(constant.PoemPromptArtlessInspiration)
	default:
		sb.WriteString(constant.PoemPromptInspiration)
	}
	for i := 0; i < lineCount; i++ {
		theme := constant.PoemPromptAnythingPlaceholder
		if i < len(lines) {
			if cleaned := sanitizeThemeLine(lines[i]); cleaned != "" {
				theme = cleaned
			}
		}
		sb.WriteString(fmt.Sprintf("\nLine %d theme: %s", i+1, theme))
	}
	return sb.String()
}

func sanitizeThemeLine(line string) string {
	cleaned := themeSanitizer.ReplaceAllString(line, "")
	cleaned = strings.TrimSpace(cleaned)
	if len(cleaned) > constant.MaxThemeLineLength {
		cleaned = cleaned[:constant.MaxThemeLineLength]
	}
	return cleaned
}
