package room

import (
	"time"

	"github.com/google/uuid"

	"classroom-ws-server/pkg/ai"
)

// NewQuizSession builds a session around the generated questions.
func NewQuizSession(prompt string, questions []ai.Question, fromSummary bool) *QuizSession {
	return &QuizSession{
		Id:                   uuid.NewString(),
		Prompt:               prompt,
		Questions:            questions,
		CreatedAt:            time.Now(),
		GeneratedFromSummary: fromSummary,
		Responses:            make(map[string]map[int]string),
	}
}

// AddQuizSession appends a session to the room's ordered list.
func (r *Room) AddQuizSession(s *QuizSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quizSessions = append(r.quizSessions, s)
}

func (r *Room) findSessionLocked(sessionId string) *QuizSession {
	for _, s := range r.quizSessions {
		if s.Id == sessionId {
			return s
		}
	}
	return nil
}

// RecordResponse stores a participant's answer, last write wins per
// (participant, question index). It returns the respondent count and the
// non-admin participant count for the live progress broadcast; individual
// answers stay private until analytics are requested.
func (r *Room) RecordResponse(sessionId, connId string, questionIndex int, answer string) (totalResponses, totalParticipants int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.findSessionLocked(sessionId)
	if s == nil {
		return 0, 0, false
	}

	if s.Responses[connId] == nil {
		s.Responses[connId] = make(map[int]string)
	}
	s.Responses[connId][questionIndex] = answer

	return len(s.Responses), r.nonAdminCountLocked(), true
}

// QuestionAnalytics is the per-question breakdown: a histogram of submitted
// answers keyed by the literal answer string, and the count of responses
// exactly string-equal to the canonical answer.
type QuestionAnalytics struct {
	QuestionIndex int            `json:"questionIndex"`
	Question      string         `json:"question"`
	CorrectAnswer string         `json:"correctAnswer"`
	Responses     map[string]int `json:"responses"`
	CorrectCount  int            `json:"correctCount"`
}

type QuizAnalytics struct {
	McqSessionId      string              `json:"mcqSessionId"`
	TotalParticipants int                 `json:"totalParticipants"`
	TotalResponses    int                 `json:"totalResponses"`
	QuestionAnalytics []QuestionAnalytics `json:"questionAnalytics"`
}

// Analytics computes the full per-question breakdown for a session.
func (r *Room) Analytics(sessionId string) (QuizAnalytics, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.findSessionLocked(sessionId)
	if s == nil {
		return QuizAnalytics{}, false
	}

	result := QuizAnalytics{
		McqSessionId:      sessionId,
		TotalParticipants: r.nonAdminCountLocked(),
		TotalResponses:    len(s.Responses),
	}

	for idx, q := range s.Questions {
		qa := QuestionAnalytics{
			QuestionIndex: idx,
			Question:      q.Question,
			CorrectAnswer: q.Answer,
			Responses:     make(map[string]int),
		}
		for _, userResponses := range s.Responses {
			answer, answered := userResponses[idx]
			if !answered {
				continue
			}
			qa.Responses[answer]++
			if answer == q.Answer {
				qa.CorrectCount++
			}
		}
		result.QuestionAnalytics = append(result.QuestionAnalytics, qa)
	}
	return result, true
}

func (r *Room) QuizSessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.quizSessions)
}

func (r *Room) totalQuizResponsesLocked() int {
	n := 0
	for _, s := range r.quizSessions {
		n += len(s.Responses)
	}
	return n
}
