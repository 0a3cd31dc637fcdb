package connections

import (
	"context"
	"fmt"
	"log"
	"strings"

	"classroom-ws-server/pkg/room"
	"classroom-ws-server/pkg/types"
)

// handleGenerateMCQ runs on its own goroutine: the room is read to build
// the request, no lock is held across the AI call, and the result is
// applied only if the room still exists.
func (h *Hub) handleGenerateMCQ(c *types.Client, p generateMCQPayload) {
	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		return
	}
	if !rm.IsAdmin(c.ConnId) {
		h.sendError(c, "Only admins can generate MCQs")
		return
	}

	topic := p.Topic
	if topic == "" {
		topic = p.Prompt
	}
	difficulty := p.Difficulty
	if difficulty == "" {
		difficulty = "Medium"
	}
	log.Printf("[mcq] %s generating questions, topic %q difficulty %s", p.RoomId, topic, difficulty)

	questions, err := h.ai.GenerateQuiz(context.Background(), topic, difficulty, 5)
	if err != nil {
		// GenerateQuiz falls back internally; an error here is unexpected
		h.sendError(c, "Failed to generate MCQs: "+err.Error())
		return
	}

	session := room.NewQuizSession(fmt.Sprintf("%s (%s)", topic, difficulty), questions, false)
	h.storeAndBroadcastSession(p.RoomId, session)
}

// handleGenerateFromSummary builds the generation prompt from the room's
// accumulated insights, falling back to recent raw fragments.
func (h *Hub) handleGenerateFromSummary(c *types.Client, p roomPayload) {
	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		h.send(c, types.OutboundEvent{
			Event:   "question-generation-error",
			Payload: types.ErrorPayload{Message: "Meeting not found"},
		})
		return
	}
	if !rm.IsAdmin(c.ConnId) {
		h.sendError(c, "Only instructors can generate questions")
		return
	}

	var prompt string
	if insights := rm.Insights(); len(insights) > 0 {
		summary := rm.SummarySnapshot()
		prompt = fmt.Sprintf("Class discussion insights: %q. Class engagement level: %d/100.",
			strings.Join(insights, ". "), summary.EngagementScore)
	} else if recent := rm.RecentFragmentTexts(10); len(recent) > 0 {
		prompt = fmt.Sprintf("Recent class discussion: %q.", strings.Join(recent, " "))
	} else {
		h.send(c, types.OutboundEvent{
			Event:   "question-generation-error",
			Payload: types.ErrorPayload{Message: "No class content available yet. Please wait for initial transcription."},
		})
		return
	}

	questions, err := h.ai.GenerateQuiz(context.Background(), prompt, "Medium", 3)
	if err != nil {
		h.send(c, types.OutboundEvent{
			Event:   "question-generation-error",
			Payload: types.ErrorPayload{Message: "Failed to generate question"},
		})
		return
	}

	session := room.NewQuizSession("Generated from class summary", questions, true)
	h.storeAndBroadcastSession(p.RoomId, session)
}

// storeAndBroadcastSession applies a generated session if the room is still
// present, then broadcasts and mirrors it.
func (h *Hub) storeAndBroadcastSession(roomId string, session *room.QuizSession) {
	rm := h.registry.Get(roomId)
	if rm == nil {
		return
	}
	rm.AddQuizSession(session)

	h.broadcastRoom(roomId, types.OutboundEvent{Event: "mcq-broadcast", Payload: session})
	go h.store.SaveQuizSession(context.Background(), roomId, session)
	log.Printf("[mcq] %s broadcast session %s with %d questions", roomId, session.Id, len(session.Questions))
}

func (h *Hub) handleSubmitResponse(c *types.Client, p mcqResponsePayload) {
	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		return
	}
	total, participants, ok := rm.RecordResponse(p.McqSessionId, c.ConnId, p.QuestionIndex, p.Answer)
	if !ok {
		return
	}

	// counts only — individual answers stay private until analytics
	h.broadcastRoom(p.RoomId, types.OutboundEvent{
		Event: "mcq-response-update",
		Payload: map[string]any{
			"mcqSessionId":      p.McqSessionId,
			"totalResponses":    total,
			"totalParticipants": participants,
		},
	})
}

func (h *Hub) handleGetAnalytics(c *types.Client, p mcqAnalyticsPayload) {
	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		return
	}
	if !rm.IsAdmin(c.ConnId) {
		return
	}
	analytics, ok := rm.Analytics(p.McqSessionId)
	if !ok {
		return
	}
	h.send(c, types.OutboundEvent{Event: "mcq-analytics", Payload: analytics})
}
