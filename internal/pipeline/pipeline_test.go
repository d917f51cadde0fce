package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kestrel-labs/grounder/internal/llm"
	"github.com/kestrel-labs/grounder/internal/retrieval"
)

func newIndexServer(t *testing.T, contents []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		items := make([]map[string]string, len(contents))
		for i, c := range contents {
			items[i] = map[string]string{"Content": c}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"ResultItems": items})
	}))
}

func newTestPipeline(t *testing.T, indexURL string, dispatcher *llm.Dispatcher) *Pipeline {
	t.Helper()
	retriever, err := retrieval.NewRetriever(retrieval.Config{Endpoint: indexURL, IndexID: "idx-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := New(retriever, dispatcher, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestPipeline_Answer_EndToEnd(t *testing.T) {
	index := newIndexServer(t, []string{"P1", "P2", "P3"})
	defer index.Close()

	// Titan-style provider behind the gateway.
	gatewaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"outputText":"Central location for configuration."}]}`))
	}))
	defer gatewaySrv.Close()

	gateway, err := llm.NewGateway(llm.GatewayConfig{Endpoint: gatewaySrv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	backend, err := gateway.Backend(llm.ProviderTitan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dispatcher := llm.NewDispatcher()
	dispatcher.Register(llm.ProviderTitan, backend)

	p := newTestPipeline(t, index.URL, dispatcher)
	answer, err := p.Answer(context.Background(), "What are the benefits of using X?")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Text != "Central location for configuration." {
		t.Errorf("unexpected answer text: %q", answer.Text)
	}
	if answer.Passages != 3 {
		t.Errorf("expected 3 passages, got %d", answer.Passages)
	}
	if answer.Provider != llm.ProviderTitan {
		t.Errorf("unexpected provider: %q", answer.Provider)
	}
}

func TestPipeline_Answer_PromptContainsOrderedContext(t *testing.T) {
	index := newIndexServer(t, []string{"P1", "P2", "P3"})
	defer index.Close()

	mock := llm.NewMock("answer")
	dispatcher := llm.NewDispatcher()
	dispatcher.Register(llm.ProviderTitan, mock)

	p := newTestPipeline(t, index.URL, dispatcher)
	if _, err := p.Answer(context.Background(), "What are the benefits of using X?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := mock.LastPrompt
	if !strings.Contains(got, "P1\nP2\nP3") {
		t.Errorf("prompt missing newline-joined passages: %q", got)
	}

	contextIdx := strings.Index(got, "P1\nP2\nP3")
	questionIdx := strings.Index(got, "What are the benefits of using X?")
	cueIdx := strings.LastIndex(got, "Answer:")
	if contextIdx < 0 || questionIdx < 0 || cueIdx < 0 {
		t.Fatalf("prompt missing expected segments: %q", got)
	}
	if !(contextIdx < questionIdx && questionIdx < cueIdx) {
		t.Error("prompt segments out of order: expected context, question, answer cue")
	}
	if contextIdx == 0 {
		t.Error("instruction preamble missing before the context block")
	}
}

func TestPipeline_Answer_EmptyRetrievalProceeds(t *testing.T) {
	index := newIndexServer(t, nil)
	defer index.Close()

	mock := llm.NewMock("no answer found")
	dispatcher := llm.NewDispatcher()
	dispatcher.Register(llm.ProviderTitan, mock)

	p := newTestPipeline(t, index.URL, dispatcher)
	answer, err := p.Answer(context.Background(), "unanswerable question")

	if err != nil {
		t.Fatalf("expected empty retrieval to be recoverable, got %v", err)
	}
	if answer.Passages != 0 {
		t.Errorf("expected 0 passages, got %d", answer.Passages)
	}
	if !strings.Contains(mock.LastPrompt, "unanswerable question") {
		t.Error("prompt missing the question")
	}
}

func TestPipeline_Answer_RetrievalDown(t *testing.T) {
	index := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer index.Close()

	dispatcher := llm.NewDispatcher()
	dispatcher.Register(llm.ProviderTitan, llm.NewMock("never"))

	p := newTestPipeline(t, index.URL, dispatcher)
	_, err := p.Answer(context.Background(), "question")

	if !errors.Is(err, retrieval.ErrRetrievalUnavailable) {
		t.Errorf("expected ErrRetrievalUnavailable, got %v", err)
	}
}

func TestPipeline_Answer_UnsupportedProvider(t *testing.T) {
	index := newIndexServer(t, []string{"P1"})
	defer index.Close()

	p := newTestPipeline(t, index.URL, llm.NewDispatcher())
	_, err := p.AnswerWith(context.Background(), "question", llm.Provider("unknown"))

	if !errors.Is(err, llm.ErrUnsupportedProvider) {
		t.Errorf("expected ErrUnsupportedProvider, got %v", err)
	}
}

func TestPipeline_AnswerAll(t *testing.T) {
	index := newIndexServer(t, []string{"P1", "P2"})
	defer index.Close()

	dispatcher := llm.NewDispatcher()
	dispatcher.Register(llm.ProviderClaude, llm.NewMock("claude says"))
	dispatcher.Register(llm.ProviderTitan, llm.NewMock("titan says"))
	dispatcher.Register(llm.ProviderJurassic, llm.NewMockWithError(llm.ErrProviderUnavailable))

	p := newTestPipeline(t, index.URL, dispatcher)
	providers := []llm.Provider{llm.ProviderClaude, llm.ProviderJurassic, llm.ProviderTitan}
	results, err := p.AnswerAll(context.Background(), "question", providers)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Err != nil || results[0].Answer.Text != "claude says" {
		t.Errorf("unexpected claude result: %+v", results[0])
	}
	if !errors.Is(results[1].Err, llm.ErrProviderUnavailable) {
		t.Errorf("expected jurassic failure, got %+v", results[1])
	}
	if results[2].Err != nil || results[2].Answer.Text != "titan says" {
		t.Errorf("unexpected titan result: %+v", results[2])
	}

	for i, r := range results {
		if r.Provider != providers[i] {
			t.Errorf("result %d: expected provider %q, got %q", i, providers[i], r.Provider)
		}
	}
}

func TestPipeline_AnswerAll_NoProviders(t *testing.T) {
	index := newIndexServer(t, []string{"P1"})
	defer index.Close()

	p := newTestPipeline(t, index.URL, llm.NewDispatcher())
	if _, err := p.AnswerAll(context.Background(), "question", nil); err == nil {
		t.Error("expected error for empty provider list")
	}
}

func TestPipeline_Answer_EmptyQuestion(t *testing.T) {
	index := newIndexServer(t, []string{"P1"})
	defer index.Close()

	p := newTestPipeline(t, index.URL, llm.NewDispatcher())
	if _, err := p.Answer(context.Background(), ""); err == nil {
		t.Error("expected error for empty question")
	}
}

func TestNew_Validation(t *testing.T) {
	retriever, err := retrieval.NewRetriever(retrieval.Config{Endpoint: "http://localhost:1", IndexID: "idx"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := New(nil, llm.NewDispatcher(), DefaultConfig(), nil); err == nil {
		t.Error("expected error for nil retriever")
	}
	if _, err := New(retriever, nil, DefaultConfig(), nil); err == nil {
		t.Error("expected error for nil dispatcher")
	}
}
