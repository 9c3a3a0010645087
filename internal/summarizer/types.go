package summarizer

// MeetingSummary is the structured record the completion model is held to.
// The ≤150-word summary bound is part of the model's output contract, not
// validated locally.
type MeetingSummary struct {
	Summary      string   `json:"summary"`
	ActionItems  []string `json:"action_items"`
	Participants []string `json:"participants"`
}

// Result is the outcome of a summarization call: a structured summary, or
// the model's refusal. Refusals are surfaced this way on every code path,
// never as errors and never as a fabricated summary.
type Result struct {
	Summary *MeetingSummary
	Refusal string
}

// Refused reports whether the model declined to produce a summary.
func (r Result) Refused() bool {
	return r.Refusal != ""
}
