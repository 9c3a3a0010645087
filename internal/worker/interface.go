package worker

import "context"

// Worker processes one dropped-off audio file end to end: decode, run the
// pipeline, persist the results and archive the source file.
type Worker interface {
	Handle(ctx context.Context, path string) error
}
