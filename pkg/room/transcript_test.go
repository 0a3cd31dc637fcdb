package room

import (
	"fmt"
	"testing"

	"classroom-ws-server/pkg/ai"
)

func TestAppendFragmentDefaults(t *testing.T) {
	r := newRoom("R1")
	frag, total := r.AppendFragment(TranscriptFragment{Text: "hello class"})

	if frag.Id == "" {
		t.Error("fragment should get an id")
	}
	if frag.Timestamp.IsZero() {
		t.Error("fragment should get a timestamp")
	}
	if frag.Speaker != "Instructor" {
		t.Errorf("Speaker = %q, want Instructor default", frag.Speaker)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
}

func TestSummaryWindowBounded(t *testing.T) {
	r := newRoom("R1")
	for i := 0; i < 8; i++ {
		r.AppendFragment(TranscriptFragment{Text: fmt.Sprintf("fragment %d", i)})
	}

	summary := r.RecomputeSummary()
	if summary.TotalTranscripts != 8 {
		t.Errorf("TotalTranscripts = %d, want 8", summary.TotalTranscripts)
	}
	if len(summary.KeyTopics) != summaryWindow {
		t.Fatalf("KeyTopics has %d entries, want %d", len(summary.KeyTopics), summaryWindow)
	}
	if summary.KeyTopics[0] != "fragment 3" || summary.KeyTopics[4] != "fragment 7" {
		t.Errorf("KeyTopics window = %v, want last %d fragments", summary.KeyTopics, summaryWindow)
	}
}

func TestKeyTopicsPreferPerChunkSummary(t *testing.T) {
	r := newRoom("R1")
	r.AppendFragment(TranscriptFragment{Text: "raw text", Summary: "digest"})

	summary := r.RecomputeSummary()
	if summary.KeyTopics[0] != "digest" {
		t.Errorf("KeyTopics[0] = %q, want the per-chunk summary", summary.KeyTopics[0])
	}
}

func TestEngagementScoreBounds(t *testing.T) {
	tests := []struct {
		name      string
		dist      Distribution
		fragments int
	}{
		{"empty", Distribution{}, 0},
		{"all good, heavy activity", Distribution{Good: 50}, 1000},
		{"all negative", Distribution{Negative: 50}, 0},
		{"mixed", Distribution{Good: 3, Neutral: 2, Negative: 1}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := engagementScore(tt.dist, tt.fragments)
			if score < 0 || score > 100 {
				t.Errorf("engagementScore(%+v, %d) = %d, out of [0,100]", tt.dist, tt.fragments, score)
			}
		})
	}
}

func TestSentimentLabel(t *testing.T) {
	tests := []struct {
		name string
		dist Distribution
		want string
	}{
		{"empty", Distribution{}, "neutral"},
		{"good dominates", Distribution{Good: 3, Neutral: 1}, "positive"},
		{"negative dominates", Distribution{Negative: 4, Good: 1}, "negative"},
		{"tie leans neutral", Distribution{Good: 2, Negative: 2}, "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sentimentLabel(tt.dist); got != tt.want {
				t.Errorf("sentimentLabel(%+v) = %q, want %q", tt.dist, got, tt.want)
			}
		})
	}
}

func TestDefaultSummaryUntouchedWithoutFragments(t *testing.T) {
	r := newRoom("R1")
	summary := r.SummarySnapshot()

	if summary.TotalTranscripts != 0 || summary.EngagementScore != 0 {
		t.Errorf("fresh room summary not at defaults: %+v", summary)
	}
	if summary.AverageSentiment != SentimentNeutral {
		t.Errorf("AverageSentiment = %q, want neutral", summary.AverageSentiment)
	}
}

func TestMergeFinalSummary(t *testing.T) {
	r := newRoom("R1")
	r.AppendFragment(TranscriptFragment{Text: "a"})
	r.AppendFragment(TranscriptFragment{Text: "b"})

	final := r.MergeFinalSummary(ai.Summary{
		KeyTopics:        []string{"topic"},
		MainInsights:     []string{"insight"},
		AverageSentiment: "positive",
		EngagementScore:  77,
	})

	if final.TotalTranscripts != 2 {
		t.Errorf("TotalTranscripts = %d, want 2 (fragment count stays authoritative)", final.TotalTranscripts)
	}
	if final.EngagementScore != 77 || final.AverageSentiment != "positive" {
		t.Errorf("merged summary = %+v", final)
	}

	// empty fields keep existing values
	again := r.MergeFinalSummary(ai.Summary{})
	if again.EngagementScore != 77 || len(again.MainInsights) != 1 {
		t.Errorf("merge with empty summary overwrote existing state: %+v", again)
	}
}

func TestRecentFragmentTexts(t *testing.T) {
	r := newRoom("R1")
	if got := r.RecentFragmentTexts(10); len(got) != 0 {
		t.Errorf("empty room returned %v", got)
	}
	for i := 0; i < 3; i++ {
		r.AppendFragment(TranscriptFragment{Text: fmt.Sprintf("f%d", i)})
	}
	got := r.RecentFragmentTexts(2)
	if len(got) != 2 || got[0] != "f1" || got[1] != "f2" {
		t.Errorf("RecentFragmentTexts(2) = %v", got)
	}
}

func TestAnalysisCounts(t *testing.T) {
	r := newRoom("R1")
	r.Join("admin", "Teacher", true)
	r.Join("s1", "Student", false)
	r.AppendFragment(TranscriptFragment{Text: "a"})

	s := NewQuizSession("p", sampleQuestions(), false)
	r.AddQuizSession(s)
	r.RecordResponse(s.Id, "s1", 0, "B")

	analysis := r.Analysis()
	if analysis.TotalMCQs != 1 {
		t.Errorf("TotalMCQs = %d, want 1", analysis.TotalMCQs)
	}
	if analysis.TotalResponses != 1 {
		t.Errorf("TotalResponses = %d, want 1", analysis.TotalResponses)
	}
	if len(analysis.Transcripts) != 1 || len(analysis.Participants) != 2 {
		t.Errorf("analysis = %+v", analysis)
	}
}
