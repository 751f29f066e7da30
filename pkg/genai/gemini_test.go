package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func geminiResponse(text string) string {
	return `{"candidates": [{"content": {"parts": [{"text": "` + text + `"}]}}]}`
}

func newTestGenerator(handler http.HandlerFunc) (*GeminiGenerator, *httptest.Server) {
	srv := httptest.NewServer(handler)
	g := NewGeminiGenerator("test-key", "gemini-2.5-flash", srv.Client())
	g.endpoint = srv.URL
	return g, srv
}

func TestGenerateSendsPromptAndImage(t *testing.T) {
	var captured GeminiRequest
	var apiKey string
	g, srv := newTestGenerator(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Error(err)
		}
		w.Write([]byte(geminiResponse("six, evocative, words")))
	})
	defer srv.Close()

	text, err := g.Generate(context.Background(), &Request{
		Prompt:              "describe this image",
		Image:               &ImagePart{MimeType: "image/jpeg", Data: "aGVsbG8="},
		ApplySafetySettings: true,
		MaxOutputTokens:     100,
	})
	if err != nil {
		t.Fatal(err)
	}
	if text != "six, evocative, words" {
		t.Fatalf("text = %q", text)
	}
	if apiKey != "test-key" {
		t.Fatalf("api key header = %q", apiKey)
	}

	if len(captured.Contents) != 1 || len(captured.Contents[0].Parts) != 2 {
		t.Fatalf("contents = %+v", captured.Contents)
	}
	if captured.Contents[0].Parts[0].InlineData == nil {
		t.Fatal("image part missing")
	}
	if captured.Contents[0].Parts[1].Text != "describe this image" {
		t.Fatalf("prompt part = %+v", captured.Contents[0].Parts[1])
	}
	if len(captured.SafetySettings) != 4 {
		t.Fatalf("safety settings = %+v", captured.SafetySettings)
	}
	if captured.GenerationConfig == nil || captured.GenerationConfig.MaxOutputTokens != 100 {
		t.Fatalf("generation config = %+v", captured.GenerationConfig)
	}
}

func TestGenerateOmitsOptionalSections(t *testing.T) {
	var captured GeminiRequest
	g, srv := newTestGenerator(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Error(err)
		}
		w.Write([]byte(geminiResponse("ok")))
	})
	defer srv.Close()

	if _, err := g.Generate(context.Background(), &Request{Prompt: "just text"}); err != nil {
		t.Fatal(err)
	}
	if len(captured.SafetySettings) != 0 {
		t.Fatal("safety settings sent without being requested")
	}
	if captured.GenerationConfig != nil {
		t.Fatal("generation config sent without a token cap")
	}
	if len(captured.Contents[0].Parts) != 1 {
		t.Fatalf("parts = %+v", captured.Contents[0].Parts)
	}
}

func TestGenerateMissingAPIKey(t *testing.T) {
	g := NewGeminiGenerator("", "gemini-2.5-flash", nil)
	if _, err := g.Generate(context.Background(), &Request{Prompt: "x"}); err != ErrMissingAPIKey {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestGenerateEmptyCandidates(t *testing.T) {
	g, srv := newTestGenerator(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})
	defer srv.Close()

	if _, err := g.Generate(context.Background(), &Request{Prompt: "x"}); err == nil {
		t.Fatal("expected an error for an empty candidate list")
	}
}

func TestGenerateStatusError(t *testing.T) {
	g, srv := newTestGenerator(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota"}}`))
	})
	defer srv.Close()

	if _, err := g.Generate(context.Background(), &Request{Prompt: "x"}); err == nil {
		t.Fatal("expected an error for a 429 response")
	}
}
