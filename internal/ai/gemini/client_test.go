package gemini

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type stubCall struct {
	text string
	err  error
}

type stubModels struct {
	calls   []stubCall
	current int
	prompts []string
}

func (s *stubModels) GenerateContent(_ context.Context, _ string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	for _, content := range contents {
		for _, part := range content.Parts {
			if part != nil {
				s.prompts = append(s.prompts, part.Text)
			}
		}
	}

	call := s.calls[s.current]
	if s.current < len(s.calls)-1 {
		s.current++
	}
	if call.err != nil {
		return nil, call.err
	}
	return textResponse(call.text), nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func newTestGenerator(models *stubModels, maxRetries int) *Generator {
	return &Generator{
		models:     models,
		model:      "test-model",
		maxRetries: maxRetries,
		logger:     zap.NewNop(),
	}
}

func stubWait(t *testing.T, delays *[]time.Duration) func() {
	t.Helper()
	original := wait
	wait = func(_ context.Context, d time.Duration) error {
		if delays != nil {
			*delays = append(*delays, d)
		}
		return nil
	}
	return func() { wait = original }
}

func TestGenerateContentFirstTry(t *testing.T) {
	models := &stubModels{calls: []stubCall{{text: "  réponse  "}}}
	g := newTestGenerator(models, 3)

	got, err := g.GenerateContent(context.Background(), "question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "réponse" {
		t.Fatalf("got %q", got)
	}
	if len(models.prompts) != 1 || models.prompts[0] != "question" {
		t.Fatalf("prompts sent: %v", models.prompts)
	}
}

func TestGenerateContentRetriesRateLimit(t *testing.T) {
	var delays []time.Duration
	restore := stubWait(t, &delays)
	defer restore()

	models := &stubModels{calls: []stubCall{
		{err: genai.APIError{Code: 429, Message: "rate limited"}},
		{err: genai.APIError{Code: 503, Message: "overloaded"}},
		{text: "ok"},
	}}
	g := newTestGenerator(models, 3)

	got, err := g.GenerateContent(context.Background(), "question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Fatalf("got %q", got)
	}
	if len(delays) != 2 {
		t.Fatalf("waited %d times, want 2", len(delays))
	}
	if delays[0] != 2*time.Second || delays[1] != 4*time.Second {
		t.Fatalf("backoff delays = %v, want doubling from 2s", delays)
	}
}

func TestGenerateContentStopsOnNonRetryableError(t *testing.T) {
	restore := stubWait(t, nil)
	defer restore()

	models := &stubModels{calls: []stubCall{
		{err: genai.APIError{Code: 400, Message: "bad request"}},
		{text: "jamais atteint"},
	}}
	g := newTestGenerator(models, 3)

	if _, err := g.GenerateContent(context.Background(), "question"); err == nil {
		t.Fatalf("expected an error")
	}
	if len(models.prompts) != 1 {
		t.Fatalf("non-retryable errors must not be retried, %d calls made", len(models.prompts))
	}
}

func TestGenerateContentExhaustsRetries(t *testing.T) {
	restore := stubWait(t, nil)
	defer restore()

	models := &stubModels{calls: []stubCall{
		{err: genai.APIError{Code: 500, Message: "boom"}},
	}}
	g := newTestGenerator(models, 2)

	if _, err := g.GenerateContent(context.Background(), "question"); err == nil {
		t.Fatalf("expected an error after exhausting retries")
	}
	if len(models.prompts) != 2 {
		t.Fatalf("made %d calls, want maxRetries=2", len(models.prompts))
	}
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	g := newTestGenerator(&stubModels{calls: []stubCall{{text: "x"}}}, 1)
	if _, err := g.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatalf("expected an error for an empty prompt")
	}
}

func TestFlattenResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "première"}, {Text: ""}}}},
			nil,
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "seconde"}}}},
		},
	}

	got, err := flattenResponse(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "première\nseconde" {
		t.Fatalf("got %q", got)
	}

	if _, err := flattenResponse(nil); err == nil {
		t.Fatalf("nil response must error")
	}
	if _, err := flattenResponse(&genai.GenerateContentResponse{}); err == nil {
		t.Fatalf("empty response must error")
	}
}
