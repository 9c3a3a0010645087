package summarizer

import "context"

// Summarizer turns transcripts into structured meeting summaries and
// answers ad-hoc questions about them.
type Summarizer interface {
	// Summarize produces one MeetingSummary for the transcript, chunking
	// and merging internally when the transcript exceeds the model's
	// input budget.
	Summarize(ctx context.Context, transcript string) (Result, error)

	// Ask answers a free-form question against the transcript.
	Ask(ctx context.Context, transcript, question string) (string, error)
}
