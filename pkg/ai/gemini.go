package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Gemini calls the Gemini generateContent REST endpoint. A missing API key
// short-circuits every method to its local fallback.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate sends the given parts and returns the first candidate's text.
func (g *Gemini) generate(ctx context.Context, parts []geminiPart) (string, error) {
	reqBody := geminiRequest{}
	reqBody.Contents = append(reqBody.Contents, struct {
		Parts []geminiPart `json:"parts"`
	}{Parts: parts})

	raw, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// Transcribe sends the audio bytes inline and asks for a verbatim
// transcription. Upstream failures produce a mock transcription instead of
// an error so the pipeline always has text to append; a genuinely silent
// chunk comes back as an empty string and is dropped by the caller.
func (g *Gemini) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "audio/webm"
	}
	if g.apiKey == "" {
		return MockTranscription(), nil
	}

	parts := []geminiPart{
		{InlineData: &geminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(audio),
		}},
		{Text: "Transcribe this audio exactly as spoken. Do not add any descriptions or timestamps. If the audio is silent or unintelligible, return an empty string."},
	}

	text, err := g.generate(ctx, parts)
	if err != nil {
		log.Printf("[ai] transcription failed, using mock text: %v", err)
		return MockTranscription(), nil
	}
	return text, nil
}

// SummarizeClass asks for a structured JSON digest of the full transcript.
// This is the one Service method with no local fallback; the caller keeps
// its existing summary on error.
func (g *Gemini) SummarizeClass(ctx context.Context, transcripts []string) (*Summary, error) {
	if g.apiKey == "" {
		return nil, errors.New("gemini: no API key configured")
	}

	prompt := fmt.Sprintf(`Analyze the following class transcript and provide a structured summary.

Transcript:
%s

Return the response in valid JSON format with the following structure:
{
  "keyTopics": ["topic1", "topic2"],
  "mainInsights": ["insight1", "insight2"],
  "averageSentiment": "positive" | "neutral" | "negative",
  "engagementScore": number (0-100)
}`, strings.Join(transcripts, "\n"))

	text, err := g.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		return nil, err
	}
	return parseSummaryJSON(text)
}

// GenerateQuiz never returns an error: any transport or schema failure
// falls back to the deterministic mock banks.
func (g *Gemini) GenerateQuiz(ctx context.Context, topic, difficulty string, count int) ([]Question, error) {
	if difficulty == "" {
		difficulty = "Medium"
	}
	if count <= 0 {
		count = 5
	}
	if g.apiKey == "" {
		return MockQuiz(topic, count), nil
	}

	prompt := fmt.Sprintf(`You are an expert educational content generator.

TASK: Generate EXACTLY %d multiple-choice questions (MCQs) for a student assessment.

TOPIC: "%s"
DIFFICULTY LEVEL: %s

OUTPUT FORMAT:
Return a raw JSON array of objects.

JSON STRUCTURE:
[
  {
    "question": "Question text",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "answer": "Option B",
    "explanation": "Brief explanation"
  }
]

REQUIREMENTS:
1. "answer" must be an EXACT STRING MATCH to one of the "options".
2. Provide 4 distinct options.
3. Ensure content is accurate and educational.`, count, topic, difficulty)

	text, err := g.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		log.Printf("[ai] quiz generation failed, using mock questions: %v", err)
		return MockQuiz(topic, count), nil
	}

	questions, err := parseQuizJSON(text)
	if err != nil {
		log.Printf("[ai] quiz response rejected, using mock questions: %v", err)
		return MockQuiz(topic, count), nil
	}
	if len(questions) > count {
		questions = questions[:count]
	}
	return questions, nil
}

// stripFences removes markdown code fences the model sometimes wraps JSON in.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// parseQuizJSON validates the strict quiz schema: a non-empty array where
// every kept entry has question text, at least two options, and a non-empty
// answer. Entries failing the schema are dropped; zero valid entries is an
// error.
func parseQuizJSON(text string) ([]Question, error) {
	var questions []Question
	if err := json.Unmarshal([]byte(stripFences(text)), &questions); err != nil {
		return nil, fmt.Errorf("invalid quiz JSON: %w", err)
	}
	if len(questions) == 0 {
		return nil, errors.New("quiz response is empty")
	}

	valid := questions[:0]
	for _, q := range questions {
		if q.Question == "" || len(q.Options) < 2 || q.Answer == "" {
			continue
		}
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		return nil, errors.New("no valid questions in response")
	}
	return valid, nil
}

func parseSummaryJSON(text string) (*Summary, error) {
	// engagementScore may arrive as a float from the model
	var wire struct {
		KeyTopics        []string `json:"keyTopics"`
		MainInsights     []string `json:"mainInsights"`
		AverageSentiment string   `json:"averageSentiment"`
		EngagementScore  float64  `json:"engagementScore"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &wire); err != nil {
		return nil, fmt.Errorf("invalid summary JSON: %w", err)
	}

	score := int(wire.EngagementScore)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &Summary{
		KeyTopics:        wire.KeyTopics,
		MainInsights:     wire.MainInsights,
		AverageSentiment: wire.AverageSentiment,
		EngagementScore:  score,
	}, nil
}
