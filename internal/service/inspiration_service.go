package service

import (
	"context"
	"strings"

	"ai-artpoet-be/internal/constant"
	"ai-artpoet-be/internal/model"
	"ai-artpoet-be/internal/session"
	"ai-artpoet-be/pkg/analytics"
	"ai-artpoet-be/pkg/genai"
)

// IInspirationService produces the keyword suggestions shown next to the
// theme editor. Keywords are advisory: a failure here surfaces a message but
// never blocks the editor.
type IInspirationService interface {
	// InspireMe generates keywords for the image captured by the current
	// fetch, continuing that fetch's logical operation.
	InspireMe(ctx context.Context, state *session.State)
	// Regenerate discards in-flight work by allocating a new token, then
	// generates a fresh keyword set for the same image.
	Regenerate(ctx context.Context, state *session.State)
}

type inspirationService struct {
	generator genai.Generator
	apiKeySet bool
	tracker   analytics.Tracker
}

func NewInspirationService(generator genai.Generator, apiKeySet bool, tracker analytics.Tracker) IInspirationService {
	return &inspirationService{
		generator: generator,
		apiKeySet: apiKeySet,
		tracker:   tracker,
	}
}

func (s *inspirationService) InspireMe(ctx context.Context, state *session.State) {
	image, token := state.CurrentImageAndToken()
	s.generate(ctx, state, image, token)
}

func (s *inspirationService) Regenerate(ctx context.Context, state *session.State) {
	image, _ := state.CurrentImageAndToken()
	token := state.NextToken()
	s.generate(ctx, state, image, token)
}

func (s *inspirationService) generate(ctx context.Context, state *session.State, image string, token int64) {
	state.BeginKeywordGeneration()
	defer state.EndKeywordGeneration(token)

	if !s.apiKeySet {
		state.FailKeywords(token, constant.MsgMissingAPIKey)
		return
	}
	if image == "" {
		state.FailKeywords(token, constant.MsgKeywordsFailed)
		return
	}

	mime, data, ok := splitDataURL(image)
	if !ok {
		state.FailKeywords(token, constant.MsgKeywordsFailed)
		return
	}

	text, err := s.generator.Generate(ctx, &genai.Request{
		Prompt: constant.KeywordPrompt,
		Image:  &genai.ImagePart{MimeType: mime, Data: data},
	})
	if err != nil {
		if state.FailKeywords(token, constant.MsgKeywordsFailed) {
			s.tracker.Track("error", map[string]interface{}{
				"context": "generateKeywords",
				"message": err.Error(),
			})
		}
		return
	}

	keywords := ParseKeywords(text)
	if state.PublishKeywords(token, keywords, &model.LogEntry{
		Prompt:   constant.KeywordPrompt,
		Response: text,
	}) {
		s.tracker.Track("keywords_generated", map[string]interface{}{"keywords": keywords})
	}
}

// ParseKeywords splits raw model output into a clean keyword list. Asterisks
// and newlines are treated as commas so lightly formatted responses (bullet
// lists, bold markers) still parse; order is preserved and empties dropped.
func ParseKeywords(raw string) []string {
	normalized := strings.NewReplacer("*", ",", "\n", ",").Replace(raw)
	parts := strings.Split(normalized, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// splitDataURL pulls the mime type and base64 payload out of a data URL.
func splitDataURL(dataURL string) (mime, data string, ok bool) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", "", false
	}
	rest := strings.TrimPrefix(dataURL, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", "", false
	}
	return rest[:sep], rest[sep+len(";base64,"):], true
}
