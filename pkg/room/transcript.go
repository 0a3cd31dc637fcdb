package room

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"classroom-ws-server/pkg/ai"
)

// summaryWindow bounds how many recent fragments feed the key-topics list.
const summaryWindow = 5

// AppendFragment stores a transcript fragment, filling in id, timestamp and
// speaker defaults, and returns the stored copy plus the running count.
func (r *Room) AppendFragment(f TranscriptFragment) (TranscriptFragment, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.Id == "" {
		f.Id = uuid.NewString()
	}
	if f.Timestamp.IsZero() {
		f.Timestamp = time.Now()
	}
	if f.Speaker == "" {
		f.Speaker = "Instructor"
	}
	r.fragments = append(r.fragments, f)
	return f, len(r.fragments)
}

func (r *Room) FragmentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fragments)
}

// TranscriptTexts returns every fragment's text in order, for the final
// summarization call.
func (r *Room) TranscriptTexts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	texts := make([]string, len(r.fragments))
	for i, f := range r.fragments {
		texts[i] = f.Text
	}
	return texts
}

// RecentFragmentTexts returns the last n fragment texts, oldest first.
func (r *Room) RecentFragmentTexts(n int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	start := len(r.fragments) - n
	if start < 0 {
		start = 0
	}
	texts := make([]string, 0, len(r.fragments)-start)
	for _, f := range r.fragments[start:] {
		texts = append(texts, f.Text)
	}
	return texts
}

// Insights returns the current summary's insight list.
func (r *Room) Insights() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.summary.MainInsights...)
}

func (r *Room) SummarySnapshot() ClassSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary
}

// RecomputeSummary rebuilds the class summary as a pure function of the
// current fragments and sentiment distribution: key topics from the most
// recent fragment window, an engagement score blending sentiment and
// activity, and templated insights. The summary is replaced wholesale.
func (r *Room) RecomputeSummary() ClassSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	topics := make([]string, 0, summaryWindow)
	start := len(r.fragments) - summaryWindow
	if start < 0 {
		start = 0
	}
	for _, f := range r.fragments[start:] {
		if f.Summary != "" {
			topics = append(topics, f.Summary)
		} else {
			topics = append(topics, f.Text)
		}
	}

	r.summary = ClassSummary{
		TotalTranscripts: len(r.fragments),
		KeyTopics:        topics,
		AverageSentiment: sentimentLabel(r.sentiment),
		EngagementScore:  engagementScore(r.sentiment, len(r.fragments)),
		MainInsights:     buildInsights(len(r.fragments), r.sentiment, r.totalQuizResponsesLocked()),
	}
	return r.summary
}

// MergeFinalSummary folds the structured summarization result into the
// room's summary, keeping the fragment count authoritative.
func (r *Room) MergeFinalSummary(s ai.Summary) ClassSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.summary.TotalTranscripts = len(r.fragments)
	if len(s.KeyTopics) > 0 {
		r.summary.KeyTopics = s.KeyTopics
	}
	if len(s.MainInsights) > 0 {
		r.summary.MainInsights = s.MainInsights
	}
	if s.AverageSentiment != "" {
		r.summary.AverageSentiment = s.AverageSentiment
	}
	if s.EngagementScore > 0 {
		r.summary.EngagementScore = s.EngagementScore
	}
	return r.summary
}

// sentimentLabel maps the distribution to its dominant label, leaning
// neutral on ties.
func sentimentLabel(d Distribution) string {
	switch {
	case d.Good > d.Neutral && d.Good > d.Negative:
		return "positive"
	case d.Negative > d.Neutral && d.Negative > d.Good:
		return "negative"
	default:
		return "neutral"
	}
}

// engagementScore blends the positivity of the sentiment distribution
// (70% weight) with transcript activity (up to 30 points), clamped 0-100.
func engagementScore(d Distribution, fragments int) int {
	base := 0
	if total := d.Total(); total > 0 {
		base = (d.Good*100 + d.Neutral*50) / total
	}

	activity := fragments * 2
	if activity > 30 {
		activity = 30
	}

	score := base*7/10 + activity
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func buildInsights(fragments int, d Distribution, quizResponses int) []string {
	insights := []string{}

	if fragments > 0 {
		insights = append(insights, fmt.Sprintf("%d transcript segments captured so far.", fragments))
	}

	if total := d.Total(); total == 0 {
		insights = append(insights, "No sentiment feedback submitted yet.")
	} else {
		switch sentimentLabel(d) {
		case "positive":
			insights = append(insights, fmt.Sprintf("Class mood is positive (%d of %d responses good).", d.Good, total))
		case "negative":
			insights = append(insights, fmt.Sprintf("Class mood is trending negative (%d of %d responses negative).", d.Negative, total))
		default:
			insights = append(insights, fmt.Sprintf("Class mood is neutral across %d responses.", total))
		}
	}

	if quizResponses > 0 {
		insights = append(insights, fmt.Sprintf("%d quiz responses collected.", quizResponses))
	}
	return insights
}

// ClassAnalysis is the on-demand full analysis payload.
type ClassAnalysis struct {
	RoomId         string               `json:"roomId"`
	ClassSummary   ClassSummary         `json:"classSummary"`
	Transcripts    []TranscriptFragment `json:"transcripts"`
	Participants   []Participant        `json:"participants"`
	Sentiment      Distribution         `json:"sentiment"`
	TotalMCQs      int                  `json:"totalMCQs"`
	TotalResponses int                  `json:"totalResponses"`
}

// Analysis captures the room's derived state in one consistent read.
func (r *Room) Analysis() ClassAnalysis {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.snapshotLocked()
	return ClassAnalysis{
		RoomId:         r.Code,
		ClassSummary:   r.summary,
		Transcripts:    append([]TranscriptFragment(nil), r.fragments...),
		Participants:   snap.Participants,
		Sentiment:      snap.Sentiment,
		TotalMCQs:      len(r.quizSessions),
		TotalResponses: r.totalQuizResponsesLocked(),
	}
}
