package connections

import (
	"encoding/json"
	"log"

	"classroom-ws-server/pkg/types"
)

// Wire payloads. Field names mirror the client protocol.
type roomPayload struct {
	RoomId string `json:"roomId"`
}

type requestToJoinPayload struct {
	RoomId      string `json:"roomId"`
	DisplayName string `json:"displayName"`
}

type decidePayload struct {
	RoomId   string `json:"roomId"`
	SocketId string `json:"socketId"`
}

type joinRoomPayload struct {
	RoomId      string `json:"roomId"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
}

type updateNamePayload struct {
	RoomId  string `json:"roomId"`
	NewName string `json:"newName"`
}

type sentimentPayload struct {
	RoomId    string `json:"roomId"`
	Sentiment string `json:"sentiment"`
}

type targetUserPayload struct {
	RoomId        string `json:"roomId"`
	ParticipantId string `json:"participantId"`
}

type signalPayload struct {
	RoomId    string          `json:"roomId"`
	To        string          `json:"to"`
	From      string          `json:"from"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

type generateMCQPayload struct {
	RoomId     string `json:"roomId"`
	Prompt     string `json:"prompt,omitempty"`
	Topic      string `json:"topic,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

type mcqResponsePayload struct {
	RoomId        string `json:"roomId"`
	McqSessionId  string `json:"mcqSessionId"`
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
}

type mcqAnalyticsPayload struct {
	RoomId       string `json:"roomId"`
	McqSessionId string `json:"mcqSessionId"`
}

type transcriptChunkPayload struct {
	RoomId  string `json:"roomId"`
	Text    string `json:"text"`
	Speaker string `json:"speaker,omitempty"`
}

type audioChunkPayload struct {
	RoomId      string  `json:"roomId"`
	AudioBase64 string  `json:"audioBase64"`
	MimeType    string  `json:"mimeType,omitempty"`
	Duration    float64 `json:"duration,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
}

type sendMessagePayload struct {
	RoomId   string `json:"roomId"`
	UserId   string `json:"userId"`
	UserName string `json:"userName"`
	UserRole string `json:"userRole"`
	Text     string `json:"text"`
}

type reactPayload struct {
	RoomId       string `json:"roomId"`
	MessageId    string `json:"messageId"`
	ReactionType string `json:"reactionType"`
	UserName     string `json:"userName"`
}

// dispatch is the single choke point every inbound event passes through.
// Handlers that await the AI backend run in their own goroutine so a slow
// upstream call never stalls this connection's other events — and they
// hold no room lock across the await.
func (h *Hub) dispatch(c *types.Client, ev types.InboundEvent) {
	switch ev.Event {
	case "request-to-join":
		var p requestToJoinPayload
		if decode(ev.Payload, &p) {
			h.handleRequestToJoin(c, p)
		}
	case "approve-participant":
		var p decidePayload
		if decode(ev.Payload, &p) {
			h.handleDecide(c, p, true)
		}
	case "deny-participant":
		var p decidePayload
		if decode(ev.Payload, &p) {
			h.handleDecide(c, p, false)
		}
	case "join-room":
		var p joinRoomPayload
		if decode(ev.Payload, &p) {
			h.handleJoinRoom(c, p)
		}
	case "update-name":
		var p updateNamePayload
		if decode(ev.Payload, &p) {
			h.handleUpdateName(c, p)
		}
	case "submit-sentiment":
		var p sentimentPayload
		if decode(ev.Payload, &p) {
			h.handleSubmitSentiment(c, p)
		}
	case "remove-user":
		var p targetUserPayload
		if decode(ev.Payload, &p) {
			h.handleRemoveUser(c, p)
		}
	case "mute-user":
		var p targetUserPayload
		if decode(ev.Payload, &p) {
			h.handleMuteUser(c, p)
		}
	case "offer", "answer", "ice-candidate":
		var p signalPayload
		if decode(ev.Payload, &p) {
			h.handleSignal(ev.Event, p)
		}
	case "generate-mcq":
		var p generateMCQPayload
		if decode(ev.Payload, &p) {
			go h.handleGenerateMCQ(c, p)
		}
	case "submit-mcq-response":
		var p mcqResponsePayload
		if decode(ev.Payload, &p) {
			h.handleSubmitResponse(c, p)
		}
	case "get-mcq-analytics":
		var p mcqAnalyticsPayload
		if decode(ev.Payload, &p) {
			h.handleGetAnalytics(c, p)
		}
	case "generate-from-summary":
		var p roomPayload
		if decode(ev.Payload, &p) {
			go h.handleGenerateFromSummary(c, p)
		}
	case "send-transcript-chunk":
		var p transcriptChunkPayload
		if decode(ev.Payload, &p) {
			h.handleTranscriptChunk(c, p)
		}
	case "audio-chunk-recorded":
		var p audioChunkPayload
		if decode(ev.Payload, &p) {
			go h.handleAudioChunk(c, p)
		}
	case "end-meeting":
		var p roomPayload
		if decode(ev.Payload, &p) {
			go h.handleEndMeeting(c, p)
		}
	case "get-class-analysis":
		var p roomPayload
		if decode(ev.Payload, &p) {
			h.handleGetClassAnalysis(c, p)
		}
	case "send-message":
		var p sendMessagePayload
		if decode(ev.Payload, &p) {
			h.handleSendMessage(c, p)
		}
	case "react-to-message":
		var p reactPayload
		if decode(ev.Payload, &p) {
			h.handleReactToMessage(c, p)
		}
	default:
		log.Printf("[ws] unknown event %q from %s", ev.Event, c.ConnId)
	}
}

func decode(raw json.RawMessage, out any) bool {
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("[ws] bad payload: %v", err)
		return false
	}
	return true
}
