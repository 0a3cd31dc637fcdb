package ai

import "context"

// Question is one generated multiple-choice question. Answer must match one
// of Options verbatim; analytics compare by exact string equality.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// Summary is the structured result of summarizing a full class transcript.
type Summary struct {
	KeyTopics        []string `json:"keyTopics"`
	MainInsights     []string `json:"mainInsights"`
	AverageSentiment string   `json:"averageSentiment"`
	EngagementScore  int      `json:"engagementScore"`
}

// Service is the external generative backend. Implementations must degrade
// to local deterministic output rather than leave a request unanswered:
// Transcribe returns a mock transcription on upstream failure and
// GenerateQuiz falls back to the canned question banks. SummarizeClass is
// the only method allowed to fail outright; callers keep their existing
// summary when it does.
type Service interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	SummarizeClass(ctx context.Context, transcripts []string) (*Summary, error)
	GenerateQuiz(ctx context.Context, topic, difficulty string, count int) ([]Question, error)
}
