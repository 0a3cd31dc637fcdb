package room

import (
	"testing"

	"classroom-ws-server/pkg/ai"
)

func sampleQuestions() []ai.Question {
	return []ai.Question{
		{Question: "Q1", Options: []string{"A", "B", "C", "D"}, Answer: "B", Explanation: "because"},
		{Question: "Q2", Options: []string{"W", "X", "Y", "Z"}, Answer: "Z", Explanation: "because"},
	}
}

func TestRecordResponseLastWriteWins(t *testing.T) {
	r := newRoom("R1")
	r.Join("admin", "Teacher", true)
	r.Join("s1", "Student", false)

	s := NewQuizSession("go (Medium)", sampleQuestions(), false)
	r.AddQuizSession(s)

	r.RecordResponse(s.Id, "s1", 0, "A")
	total, participants, ok := r.RecordResponse(s.Id, "s1", 0, "B")
	if !ok {
		t.Fatal("record failed")
	}
	if total != 1 {
		t.Errorf("totalResponses = %d, want 1 (same participant)", total)
	}
	if participants != 1 {
		t.Errorf("totalParticipants = %d, want 1 (admin excluded)", participants)
	}

	analytics, _ := r.Analytics(s.Id)
	q0 := analytics.QuestionAnalytics[0]
	if q0.Responses["A"] != 0 {
		t.Error("overwritten answer still counted")
	}
	if q0.Responses["B"] != 1 {
		t.Errorf("Responses[B] = %d, want 1", q0.Responses["B"])
	}
}

func TestAnalyticsExactMatchCorrectCount(t *testing.T) {
	r := newRoom("R1")
	r.Join("admin", "Teacher", true)
	r.Join("s1", "S1", false)
	r.Join("s2", "S2", false)
	r.Join("s3", "S3", false)

	s := NewQuizSession("go (Medium)", sampleQuestions(), false)
	r.AddQuizSession(s)

	r.RecordResponse(s.Id, "s1", 0, "B")
	r.RecordResponse(s.Id, "s2", 0, "b") // case differs: not a match
	r.RecordResponse(s.Id, "s3", 0, "C")
	r.RecordResponse(s.Id, "s1", 1, "Z")

	analytics, ok := r.Analytics(s.Id)
	if !ok {
		t.Fatal("analytics failed")
	}
	if analytics.TotalResponses != 3 {
		t.Errorf("TotalResponses = %d, want 3", analytics.TotalResponses)
	}
	if analytics.TotalParticipants != 3 {
		t.Errorf("TotalParticipants = %d, want 3", analytics.TotalParticipants)
	}

	q0 := analytics.QuestionAnalytics[0]
	if q0.CorrectCount != 1 {
		t.Errorf("q0 CorrectCount = %d, want 1 (exact string match only)", q0.CorrectCount)
	}
	wantHist := map[string]int{"B": 1, "b": 1, "C": 1}
	for answer, count := range wantHist {
		if q0.Responses[answer] != count {
			t.Errorf("q0 Responses[%q] = %d, want %d", answer, q0.Responses[answer], count)
		}
	}

	q1 := analytics.QuestionAnalytics[1]
	if q1.CorrectCount != 1 {
		t.Errorf("q1 CorrectCount = %d, want 1", q1.CorrectCount)
	}
}

func TestRecordResponseUnknownSession(t *testing.T) {
	r := newRoom("R1")
	r.Join("s1", "Student", false)
	if _, _, ok := r.RecordResponse("missing", "s1", 0, "A"); ok {
		t.Error("response against a missing session should be ignored")
	}
	if _, ok := r.Analytics("missing"); ok {
		t.Error("analytics for a missing session should report not found")
	}
}
