package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brebribre/notulen/internal/backend"
	"github.com/brebribre/notulen/internal/limiter"
	"github.com/brebribre/notulen/internal/logger"
)

// fieldTokenizer treats every whitespace-separated word as one token, so
// token budgets can be controlled exactly without a live encoding.
type fieldTokenizer struct{}

func (fieldTokenizer) Encode(text string) []int {
	return make([]int, len(strings.Fields(text)))
}

func (fieldTokenizer) Decode(ids []int) string {
	words := make([]string, len(ids))
	for i := range words {
		words[i] = "w"
	}
	return strings.Join(words, " ")
}

func (fieldTokenizer) Count(text string) int {
	return len(strings.Fields(text))
}

type stubCompleter struct {
	mu          sync.Mutex
	mapCalls    int
	reduceCalls int
	plainCalls  int
	inFlight    int
	maxSeen     int
	delay       time.Duration
	refuse      bool
	err         error
}

func (s *stubCompleter) CompleteStructured(ctx context.Context, req backend.StructuredRequest, out any) (*backend.Refusal, error) {
	isReduce := strings.HasPrefix(req.User, "These are partial summaries:")

	s.mu.Lock()
	if isReduce {
		s.reduceCalls++
	} else {
		s.mapCalls++
	}
	s.inFlight++
	if s.inFlight > s.maxSeen {
		s.maxSeen = s.inFlight
	}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if s.err != nil {
		return nil, s.err
	}
	if s.refuse {
		return &backend.Refusal{Reason: "declined by policy"}, nil
	}

	summary := out.(*MeetingSummary)
	*summary = MeetingSummary{
		Summary:      fmt.Sprintf("summary of %d tokens", len(strings.Fields(req.User))),
		ActionItems:  []string{"follow up"},
		Participants: []string{"Ada Lovelace"},
	}
	return nil, nil
}

func (s *stubCompleter) Complete(ctx context.Context, req backend.CompletionRequest) (string, error) {
	s.mu.Lock()
	s.plainCalls++
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return "  the answer  ", nil
}

func words(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(out, " ")
}

func newTestSummarizer(t *testing.T, stub *stubCompleter, cfg Config, permits int) Summarizer {
	t.Helper()
	s, err := New(stub, fieldTokenizer{}, limiter.New(permits), cfg, logger.New("error", "text"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestSummarizeShortInputSingleCall(t *testing.T) {
	stub := &stubCompleter{}
	s := newTestSummarizer(t, stub, Config{MaxInputTokens: 4096, TargetChunkTokens: 3500, OverlapTokens: 200}, 5)

	// 3595 tokens, just under the 4096-500 threshold.
	res, err := s.Summarize(context.Background(), words(3595))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if res.Refused() || res.Summary == nil {
		t.Fatalf("Summarize() = %+v, want summary", res)
	}
	if stub.mapCalls != 1 || stub.reduceCalls != 0 {
		t.Errorf("calls = %d map + %d reduce, want 1 + 0", stub.mapCalls, stub.reduceCalls)
	}
}

func TestSummarizeLongInputMapReduce(t *testing.T) {
	stub := &stubCompleter{}
	s := newTestSummarizer(t, stub, Config{MaxInputTokens: 4096, TargetChunkTokens: 3500, OverlapTokens: 200}, 5)

	// 10000 tokens with step 3300: chunk starts 0, 3300, 6600, 9900.
	res, err := s.Summarize(context.Background(), words(10000))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if res.Summary == nil {
		t.Fatal("Summarize() returned no summary")
	}
	if stub.mapCalls != 4 {
		t.Errorf("map calls = %d, want 4", stub.mapCalls)
	}
	if stub.reduceCalls != 1 {
		t.Errorf("reduce calls = %d, want 1", stub.reduceCalls)
	}
}

func TestSummarizeThresholdBoundary(t *testing.T) {
	stub := &stubCompleter{}
	s := newTestSummarizer(t, stub, Config{MaxInputTokens: 4096, TargetChunkTokens: 3500, OverlapTokens: 200}, 5)

	// Exactly at max-margin routes through the chunked path.
	if _, err := s.Summarize(context.Background(), words(3596)); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if stub.reduceCalls != 1 {
		t.Errorf("reduce calls = %d, want 1 at threshold", stub.reduceCalls)
	}
}

func TestSummarizeConcurrencyBound(t *testing.T) {
	stub := &stubCompleter{delay: 10 * time.Millisecond}
	s := newTestSummarizer(t, stub, Config{MaxInputTokens: 600, TargetChunkTokens: 100, OverlapTokens: 0}, 5)

	// 2000 tokens in 100-token chunks: 20 map calls.
	if _, err := s.Summarize(context.Background(), words(2000)); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if stub.mapCalls != 20 {
		t.Errorf("map calls = %d, want 20", stub.mapCalls)
	}
	if stub.maxSeen > 5 {
		t.Errorf("observed %d concurrent calls, limit is 5", stub.maxSeen)
	}
}

func TestSummarizeRefusalSinglePath(t *testing.T) {
	stub := &stubCompleter{refuse: true}
	s := newTestSummarizer(t, stub, Config{MaxInputTokens: 4096, TargetChunkTokens: 3500, OverlapTokens: 200}, 5)

	res, err := s.Summarize(context.Background(), words(10))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !res.Refused() {
		t.Fatal("expected refusal result")
	}
	if res.Summary != nil {
		t.Error("refusal must not carry a fabricated summary")
	}
}

func TestSummarizeRefusalConcurrentPath(t *testing.T) {
	stub := &stubCompleter{refuse: true, delay: 5 * time.Millisecond}
	s := newTestSummarizer(t, stub, Config{MaxInputTokens: 600, TargetChunkTokens: 100, OverlapTokens: 0}, 3)

	res, err := s.Summarize(context.Background(), words(1000))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !res.Refused() {
		t.Fatal("expected refusal result from map phase")
	}
	if stub.reduceCalls != 0 {
		t.Errorf("reduce calls = %d, want 0 after refusal", stub.reduceCalls)
	}
}

func TestSummarizeBackendErrorPropagates(t *testing.T) {
	backendErr := &backend.Error{Provider: "stub", Op: "complete", Err: errors.New("quota")}
	stub := &stubCompleter{err: backendErr}
	s := newTestSummarizer(t, stub, Config{MaxInputTokens: 600, TargetChunkTokens: 100, OverlapTokens: 0}, 3)

	if _, err := s.Summarize(context.Background(), words(1000)); !errors.Is(err, backendErr) {
		t.Errorf("error = %v, want %v", err, backendErr)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"overlap equals target", Config{MaxInputTokens: 4096, TargetChunkTokens: 200, OverlapTokens: 200}},
		{"overlap exceeds target", Config{MaxInputTokens: 4096, TargetChunkTokens: 200, OverlapTokens: 300}},
		{"budget below margin", Config{MaxInputTokens: 400, TargetChunkTokens: 200, OverlapTokens: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&stubCompleter{}, fieldTokenizer{}, limiter.New(1), tt.cfg, logger.New("error", "text"))
			if err == nil {
				t.Error("New() expected error")
			}
		})
	}
}

func TestAsk(t *testing.T) {
	stub := &stubCompleter{}
	s := newTestSummarizer(t, stub, Config{MaxInputTokens: 4096, TargetChunkTokens: 3500, OverlapTokens: 200}, 5)

	answer, err := s.Ask(context.Background(), "transcript text", "who attended?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if answer != "the answer" {
		t.Errorf("Ask() = %q, want trimmed answer", answer)
	}
	if stub.plainCalls != 1 {
		t.Errorf("plain calls = %d, want 1", stub.plainCalls)
	}
}
