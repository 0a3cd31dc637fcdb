package connections

import (
	"context"
	"encoding/base64"
	"log"
	"strings"
	"time"

	"classroom-ws-server/pkg/room"
	"classroom-ws-server/pkg/types"
)

// appendAndBroadcastFragment is the shared tail of both ingestion paths:
// store, broadcast, mirror, and kick off the summary recompute.
func (h *Hub) appendAndBroadcastFragment(roomId string, rm *room.Room, f room.TranscriptFragment) {
	frag, total := rm.AppendFragment(f)

	h.broadcastRoom(roomId, types.OutboundEvent{
		Event: "transcript-created",
		Payload: map[string]any{
			"transcript":       frag,
			"totalTranscripts": total,
		},
	})
	go h.store.SaveTranscript(context.Background(), roomId, frag)

	// summary recompute is off the hot path; broadcasts must not wait on it
	go func() {
		current := h.registry.Get(roomId)
		if current == nil {
			return
		}
		summary := current.RecomputeSummary()
		h.broadcastRoom(roomId, types.OutboundEvent{Event: "class-summary-updated", Payload: summary})
		h.store.UpsertClassSummary(context.Background(), roomId, summary, current.SentimentDistribution())
	}()
}

// handleTranscriptChunk ingests pre-transcribed text pushed by a
// client-side recognizer.
func (h *Hub) handleTranscriptChunk(c *types.Client, p transcriptChunkPayload) {
	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		return
	}
	log.Printf("[transcript] text chunk for %s (%d chars)", p.RoomId, len(p.Text))

	h.appendAndBroadcastFragment(p.RoomId, rm, room.TranscriptFragment{
		Text:     p.Text,
		Speaker:  p.Speaker,
		MimeType: "text/plain",
	})
}

// handleAudioChunk runs on its own goroutine: the audio is transcribed with
// no room lock held, then the fragment is applied only if the room still
// exists. An upstream failure yields mock text from the AI layer; an empty
// or silent result is dropped without creating a fragment.
func (h *Hub) handleAudioChunk(c *types.Client, p audioChunkPayload) {
	if h.registry.Get(p.RoomId) == nil {
		return
	}

	audio, err := base64.StdEncoding.DecodeString(p.AudioBase64)
	if err != nil {
		h.send(c, types.OutboundEvent{
			Event:   "transcription-error",
			Payload: types.ErrorPayload{Message: "Failed to process audio chunk"},
		})
		return
	}

	text, err := h.ai.Transcribe(context.Background(), audio, p.MimeType)
	if err != nil {
		h.send(c, types.OutboundEvent{
			Event:   "transcription-error",
			Payload: types.ErrorPayload{Message: "Failed to process audio chunk"},
		})
		return
	}
	if strings.TrimSpace(text) == "" {
		log.Printf("[transcript] empty or silent audio chunk for %s", p.RoomId)
		return
	}

	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		return
	}

	var ts time.Time
	if p.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, p.Timestamp)
		if err != nil {
			log.Printf("[transcript] bad chunk timestamp %q for %s, using server time", p.Timestamp, p.RoomId)
		} else {
			ts = parsed
		}
	}
	h.appendAndBroadcastFragment(p.RoomId, rm, room.TranscriptFragment{
		Text:      text,
		Timestamp: ts,
		Duration:  p.Duration,
		MimeType:  p.MimeType,
	})
}

// handleEndMeeting runs on its own goroutine. With fragments present it
// makes the single summarization call (no lock held across it) and merges
// the structured result; a failed call keeps the best existing summary.
// With zero fragments the summarization service is never invoked. The room
// is evicted after the terminal broadcast.
func (h *Hub) handleEndMeeting(c *types.Client, p roomPayload) {
	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		return
	}
	log.Printf("[meeting] ending %s", p.RoomId)

	texts := rm.TranscriptTexts()
	if len(texts) > 0 {
		summary, err := h.ai.SummarizeClass(context.Background(), texts)
		rm = h.registry.Get(p.RoomId)
		if rm == nil {
			return
		}
		if err != nil {
			log.Printf("[meeting] summarization failed for %s, keeping existing summary: %v", p.RoomId, err)
		} else if summary != nil {
			final := rm.MergeFinalSummary(*summary)
			go h.store.UpsertClassSummary(context.Background(), p.RoomId, final, rm.SentimentDistribution())
		}
	}

	go h.store.CompleteMeeting(context.Background(), p.RoomId)

	h.broadcastRoom(p.RoomId, types.OutboundEvent{
		Event:   "meeting-ended",
		Payload: map[string]any{"summary": rm.SummarySnapshot()},
	})
	h.registry.Remove(p.RoomId)
}

func (h *Hub) handleGetClassAnalysis(c *types.Client, p roomPayload) {
	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		h.send(c, types.OutboundEvent{
			Event:   "class-analysis-error",
			Payload: types.ErrorPayload{Message: "Meeting not found"},
		})
		return
	}
	h.send(c, types.OutboundEvent{Event: "class-analysis-received", Payload: rm.Analysis()})
}
