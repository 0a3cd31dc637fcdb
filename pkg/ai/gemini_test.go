package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseQuizJSON(t *testing.T) {
	valid := `[{"question":"Q?","options":["A","B","C","D"],"answer":"B","explanation":"e"}]`

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"plain array", valid, 1, false},
		{"fenced array", "```json\n" + valid + "\n```", 1, false},
		{"not json", "sorry, here are your questions:", 0, true},
		{"empty array", `[]`, 0, true},
		{"invalid entries filtered", `[{"question":"","options":["A","B"],"answer":"A"},{"question":"Q","options":["A","B"],"answer":"A","explanation":"e"}]`, 1, false},
		{"one option rejected", `[{"question":"Q","options":["A"],"answer":"A"}]`, 0, true},
		{"missing answer rejected", `[{"question":"Q","options":["A","B"],"answer":""}]`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuizJSON(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseQuizJSON(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseQuizJSON error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d questions, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseSummaryJSONClampsScore(t *testing.T) {
	tests := []struct {
		name  string
		score string
		want  int
	}{
		{"in range", "42.7", 42},
		{"above", "250", 100},
		{"below", "-3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parseSummaryJSON(`{"keyTopics":["t"],"mainInsights":["i"],"averageSentiment":"neutral","engagementScore":` + tt.score + `}`)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if s.EngagementScore != tt.want {
				t.Errorf("EngagementScore = %d, want %d", s.EngagementScore, tt.want)
			}
		})
	}
}

func TestMockQuizTopicBanks(t *testing.T) {
	tests := []struct {
		topic   string
		mention string
	}{
		{"React hooks deep dive", "useEffect"},
		{"intro to javascript", "JavaScript"},
		{"photosynthesis", "Photosynthesis"},
		{"ökologie und klima", "Ökologie und klima"},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			questions := MockQuiz(tt.topic, 5)
			if len(questions) == 0 {
				t.Fatal("mock quiz is empty")
			}
			for _, q := range questions {
				matched := false
				for _, opt := range q.Options {
					if opt == q.Answer {
						matched = true
					}
				}
				if !matched {
					t.Errorf("answer %q not among options %v", q.Answer, q.Options)
				}
			}
			joined := ""
			for _, q := range questions {
				joined += q.Question + " " + q.Explanation + " "
			}
			if !strings.Contains(joined, tt.mention) {
				t.Errorf("bank for %q does not mention %q", tt.topic, tt.mention)
			}
		})
	}
}

func TestMockQuizCount(t *testing.T) {
	if got := len(MockQuiz("react", 3)); got != 3 {
		t.Errorf("got %d questions, want 3", got)
	}
	if got := len(MockQuiz("react", 0)); got != 5 {
		t.Errorf("count 0 should keep the full bank, got %d", got)
	}
}

func TestGenerateQuizWithoutKeyFallsBack(t *testing.T) {
	g := NewGemini("", "gemini-1.5-flash")
	questions, err := g.GenerateQuiz(context.Background(), "react", "Medium", 5)
	if err != nil {
		t.Fatalf("GenerateQuiz must not fail: %v", err)
	}
	if len(questions) != 5 {
		t.Errorf("got %d questions, want 5", len(questions))
	}
}

func TestTranscribeWithoutKeyReturnsMock(t *testing.T) {
	g := NewGemini("", "gemini-1.5-flash")
	text, err := g.Transcribe(context.Background(), []byte{1, 2, 3}, "audio/webm")
	if err != nil {
		t.Fatalf("Transcribe must not fail: %v", err)
	}
	if !strings.Contains(text, "Mock Transcription") {
		t.Errorf("text = %q, want a mock transcription", text)
	}
}

func TestSummarizeWithoutKeyFails(t *testing.T) {
	g := NewGemini("", "gemini-1.5-flash")
	if _, err := g.SummarizeClass(context.Background(), []string{"a"}); err == nil {
		t.Error("SummarizeClass without a key should fail so callers keep their summary")
	}
}

// candidateResponse wraps text the way the generateContent endpoint does.
func candidateResponse(text string) []byte {
	payload := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
	raw, _ := json.Marshal(payload)
	return raw
}

func TestGenerateQuizFromUpstream(t *testing.T) {
	quizJSON := `[{"question":"Q?","options":["A","B","C","D"],"answer":"C","explanation":"e"}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateResponse("```json\n" + quizJSON + "\n```"))
	}))
	defer srv.Close()

	g := NewGemini("test-key", "gemini-1.5-flash")
	g.baseURL = srv.URL

	questions, err := g.GenerateQuiz(context.Background(), "anything", "Hard", 5)
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if len(questions) != 1 || questions[0].Answer != "C" {
		t.Errorf("questions = %+v", questions)
	}
}

func TestGenerateQuizUpstreamErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGemini("test-key", "gemini-1.5-flash")
	g.baseURL = srv.URL

	questions, err := g.GenerateQuiz(context.Background(), "react", "Medium", 5)
	if err != nil {
		t.Fatalf("GenerateQuiz must fall back, got error: %v", err)
	}
	if len(questions) != 5 {
		t.Errorf("fallback returned %d questions, want 5", len(questions))
	}
}

func TestSummarizeClassFromUpstream(t *testing.T) {
	summaryJSON := `{"keyTopics":["goroutines"],"mainInsights":["active class"],"averageSentiment":"positive","engagementScore":80}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateResponse(summaryJSON))
	}))
	defer srv.Close()

	g := NewGemini("test-key", "gemini-1.5-flash")
	g.baseURL = srv.URL

	s, err := g.SummarizeClass(context.Background(), []string{"we covered goroutines"})
	if err != nil {
		t.Fatalf("SummarizeClass: %v", err)
	}
	if s.EngagementScore != 80 || s.AverageSentiment != "positive" {
		t.Errorf("summary = %+v", s)
	}
}

func TestTranscribeUpstreamErrorYieldsMock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewGemini("test-key", "gemini-1.5-flash")
	g.baseURL = srv.URL

	text, err := g.Transcribe(context.Background(), []byte("audio"), "audio/webm")
	if err != nil {
		t.Fatalf("Transcribe must not fail: %v", err)
	}
	if !strings.Contains(text, "Mock Transcription") {
		t.Errorf("text = %q, want mock fallback", text)
	}
}
