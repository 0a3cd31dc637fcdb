package room

import (
	"sync"
	"time"

	"classroom-ws-server/pkg/ai"
)

const (
	SentimentGood     = "good"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Distribution counts the non-null participant sentiments. It is derived
// state: every sentiment-affecting mutation recomputes it from the current
// participant set rather than adjusting it incrementally.
type Distribution struct {
	Good     int `json:"good"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

func (d Distribution) Total() int {
	return d.Good + d.Neutral + d.Negative
}

// Participant is one connected client inside a room. Id is the connection
// identifier. Sentiment is empty until the participant submits one.
type Participant struct {
	Id          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	IsAdmin     bool      `json:"isAdmin"`
	JoinedAt    time.Time `json:"joinedAt"`
	Sentiment   string    `json:"sentiment,omitempty"`
}

// QuizSession is one generated question set plus collected responses.
// Responses maps participant conn id -> question index -> chosen option;
// last write wins per (participant, question) pair.
type QuizSession struct {
	Id                   string                    `json:"id"`
	Prompt               string                    `json:"prompt"`
	Questions            []ai.Question             `json:"mcqs"`
	CreatedAt            time.Time                 `json:"createdAt"`
	GeneratedFromSummary bool                      `json:"generatedFromSummary,omitempty"`
	Responses            map[string]map[int]string `json:"-"`
}

// TranscriptFragment is one unit of transcribed speech. Duration and
// MimeType are only set for audio-chunk-derived fragments.
type TranscriptFragment struct {
	Id        string    `json:"id,omitempty"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Speaker   string    `json:"speaker"`
	Summary   string    `json:"summary,omitempty"`
	Duration  float64   `json:"duration,omitempty"`
	MimeType  string    `json:"mimeType,omitempty"`
}

// ClassSummary is the derived digest of the room's transcript and sentiment
// state. It is replaced wholesale on every recompute.
type ClassSummary struct {
	TotalTranscripts int      `json:"totalTranscripts"`
	KeyTopics        []string `json:"keyTopics"`
	AverageSentiment string   `json:"averageSentiment"`
	EngagementScore  int      `json:"engagementScore"`
	MainInsights     []string `json:"mainInsights"`
}

func defaultSummary() ClassSummary {
	return ClassSummary{
		KeyTopics:        []string{},
		AverageSentiment: SentimentNeutral,
		MainInsights:     []string{},
	}
}

// ChatMessage is one chat entry. Reactions maps reaction kind -> reactor
// display names; a kind with no reactors is removed from the map entirely.
type ChatMessage struct {
	Id        string              `json:"id"`
	UserId    string              `json:"userId"`
	UserName  string              `json:"userName"`
	UserRole  string              `json:"userRole"`
	Text      string              `json:"text"`
	Timestamp time.Time           `json:"timestamp"`
	Reactions map[string][]string `json:"reactions"`
}

// Room is the authoritative in-memory state of one live session. Every
// mutation helper takes the room mutex; callers never touch fields
// directly. The mutex is never held across an AI call.
type Room struct {
	mu sync.Mutex

	Code      string
	CreatedAt time.Time

	admin        *Participant
	participants []*Participant
	sentiment    Distribution
	quizSessions []*QuizSession
	fragments    []TranscriptFragment
	summary      ClassSummary
	messages     []*ChatMessage
	pending      map[string]string // conn id -> display name, awaiting admin decision
}

func newRoom(code string) *Room {
	return &Room{
		Code:      code,
		CreatedAt: time.Now(),
		summary:   defaultSummary(),
		pending:   make(map[string]string),
	}
}

// Snapshot is the room-state broadcast payload: the participant list and
// the current sentiment distribution.
type Snapshot struct {
	Participants []Participant `json:"participants"`
	Sentiment    Distribution  `json:"sentiment"`
}

func (r *Room) snapshotLocked() Snapshot {
	participants := make([]Participant, len(r.participants))
	for i, p := range r.participants {
		participants[i] = *p
	}
	return Snapshot{Participants: participants, Sentiment: r.sentiment}
}

func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}
