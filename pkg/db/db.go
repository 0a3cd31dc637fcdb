package db

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"classroom-ws-server/pkg/room"
)

// Db is the best-effort persistence bridge. A nil *Db disables every write;
// all writes log and swallow their errors so the live protocol never waits
// on, or fails because of, the datastore.
type Db struct {
	pool *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS meetings (
	id          bigserial PRIMARY KEY,
	meeting_id  text UNIQUE NOT NULL,
	title       text,
	status      text NOT NULL DEFAULT 'active',
	created_at  timestamptz NOT NULL DEFAULT now(),
	ended_at    timestamptz
);
CREATE TABLE IF NOT EXISTS transcripts (
	id          bigserial PRIMARY KEY,
	meeting_id  text NOT NULL,
	raw_text    text NOT NULL,
	summary     text,
	speaker     text,
	duration    real,
	mime_type   text,
	created_at  timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS class_summaries (
	id                bigserial PRIMARY KEY,
	meeting_id        text UNIQUE NOT NULL,
	total_transcripts int NOT NULL DEFAULT 0,
	key_topics        text[],
	main_insights     text[],
	average_sentiment text,
	engagement_score  int,
	sentiment_good    int NOT NULL DEFAULT 0,
	sentiment_neutral int NOT NULL DEFAULT 0,
	sentiment_negative int NOT NULL DEFAULT 0,
	updated_at        timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS mcq_sessions (
	id          bigserial PRIMARY KEY,
	meeting_id  text NOT NULL,
	session_id  text UNIQUE NOT NULL,
	prompt      text,
	questions   jsonb,
	created_at  timestamptz NOT NULL DEFAULT now()
);`

// Open connects a pool and bootstraps the schema.
func Open(ctx context.Context, url string) (*Db, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}
	return &Db{pool: pool}, nil
}

func (d *Db) Close() {
	if d == nil {
		return
	}
	d.pool.Close()
}

// Enabled reports whether a datastore is attached.
func (d *Db) Enabled() bool {
	return d != nil
}

func (d *Db) SaveMeeting(ctx context.Context, meetingId, title string) {
	if d == nil {
		return
	}
	_, err := d.pool.Exec(ctx,
		`INSERT INTO meetings (meeting_id, title) VALUES ($1, $2) ON CONFLICT (meeting_id) DO NOTHING`,
		meetingId, title)
	if err != nil {
		log.Printf("[db] save meeting %s: %v", meetingId, err)
	}
}

func (d *Db) CompleteMeeting(ctx context.Context, meetingId string) {
	if d == nil {
		return
	}
	_, err := d.pool.Exec(ctx,
		`UPDATE meetings SET status = 'completed', ended_at = now() WHERE meeting_id = $1`,
		meetingId)
	if err != nil {
		log.Printf("[db] complete meeting %s: %v", meetingId, err)
	}
}

func (d *Db) SaveTranscript(ctx context.Context, meetingId string, f room.TranscriptFragment) {
	if d == nil {
		return
	}
	_, err := d.pool.Exec(ctx,
		`INSERT INTO transcripts (meeting_id, raw_text, summary, speaker, duration, mime_type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		meetingId, f.Text, f.Summary, f.Speaker, f.Duration, f.MimeType, f.Timestamp)
	if err != nil {
		log.Printf("[db] save transcript for %s: %v", meetingId, err)
	}
}

func (d *Db) UpsertClassSummary(ctx context.Context, meetingId string, s room.ClassSummary, dist room.Distribution) {
	if d == nil {
		return
	}
	_, err := d.pool.Exec(ctx,
		`INSERT INTO class_summaries
		 (meeting_id, total_transcripts, key_topics, main_insights, average_sentiment, engagement_score,
		  sentiment_good, sentiment_neutral, sentiment_negative, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		 ON CONFLICT (meeting_id) DO UPDATE SET
		  total_transcripts = EXCLUDED.total_transcripts,
		  key_topics = EXCLUDED.key_topics,
		  main_insights = EXCLUDED.main_insights,
		  average_sentiment = EXCLUDED.average_sentiment,
		  engagement_score = EXCLUDED.engagement_score,
		  sentiment_good = EXCLUDED.sentiment_good,
		  sentiment_neutral = EXCLUDED.sentiment_neutral,
		  sentiment_negative = EXCLUDED.sentiment_negative,
		  updated_at = now()`,
		meetingId, s.TotalTranscripts, s.KeyTopics, s.MainInsights, s.AverageSentiment, s.EngagementScore,
		dist.Good, dist.Neutral, dist.Negative)
	if err != nil {
		log.Printf("[db] upsert class summary for %s: %v", meetingId, err)
	}
}

func (d *Db) SaveQuizSession(ctx context.Context, meetingId string, s *room.QuizSession) {
	if d == nil {
		return
	}
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		log.Printf("[db] marshal quiz session %s: %v", s.Id, err)
		return
	}
	_, err = d.pool.Exec(ctx,
		`INSERT INTO mcq_sessions (meeting_id, session_id, prompt, questions, created_at)
		 VALUES ($1, $2, $3, $4, $5) ON CONFLICT (session_id) DO NOTHING`,
		meetingId, s.Id, s.Prompt, questions, s.CreatedAt)
	if err != nil {
		log.Printf("[db] save quiz session %s: %v", s.Id, err)
	}
}

// MeetingRecord is one row of the meeting-history view.
type MeetingRecord struct {
	MeetingId       string        `json:"meetingId"`
	Title           string        `json:"title"`
	Status          string        `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	EndedAt         *time.Time    `json:"endedAt,omitempty"`
	TranscriptCount int           `json:"transcriptCount"`
	Summary         *SummaryRecord `json:"summary,omitempty"`
}

type SummaryRecord struct {
	TotalTranscripts int      `json:"totalTranscripts"`
	KeyTopics        []string `json:"keyTopics"`
	MainInsights     []string `json:"mainInsights"`
	AverageSentiment string   `json:"averageSentiment"`
	EngagementScore  int      `json:"engagementScore"`
}

// MeetingHistory lists the most recent meetings with their transcript
// counts and stored summaries. Read path, so errors surface to the caller.
func (d *Db) MeetingHistory(ctx context.Context, limit int) ([]MeetingRecord, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT m.meeting_id, m.title, m.status, m.created_at, m.ended_at,
		        (SELECT count(*) FROM transcripts t WHERE t.meeting_id = m.meeting_id),
		        s.total_transcripts, s.key_topics, s.main_insights, s.average_sentiment, s.engagement_score
		 FROM meetings m
		 LEFT JOIN class_summaries s ON s.meeting_id = m.meeting_id
		 ORDER BY m.created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []MeetingRecord
	for rows.Next() {
		var (
			rec        MeetingRecord
			title      pgtype.Text
			endedAt    pgtype.Timestamptz
			totalTx    pgtype.Int4
			keyTopics  []string
			insights   []string
			avgSent    pgtype.Text
			engagement pgtype.Int4
		)
		err := rows.Scan(&rec.MeetingId, &title, &rec.Status, &rec.CreatedAt, &endedAt,
			&rec.TranscriptCount, &totalTx, &keyTopics, &insights, &avgSent, &engagement)
		if err != nil {
			return nil, err
		}
		rec.Title = title.String
		if endedAt.Valid {
			t := endedAt.Time
			rec.EndedAt = &t
		}
		if totalTx.Valid {
			rec.Summary = &SummaryRecord{
				TotalTranscripts: int(totalTx.Int32),
				KeyTopics:        keyTopics,
				MainInsights:     insights,
				AverageSentiment: avgSent.String,
				EngagementScore:  int(engagement.Int32),
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// TranscriptRecord is one stored transcript row.
type TranscriptRecord struct {
	Text      string    `json:"text"`
	Summary   string    `json:"summary,omitempty"`
	Speaker   string    `json:"speaker,omitempty"`
	Duration  float64   `json:"duration,omitempty"`
	MimeType  string    `json:"mimeType,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MeetingAnalytics fetches the durable record of one meeting: its row, the
// transcripts, the stored summary and the quiz sessions.
func (d *Db) MeetingAnalytics(ctx context.Context, meetingId string) (map[string]any, error) {
	var (
		rec     MeetingRecord
		title   pgtype.Text
		endedAt pgtype.Timestamptz
	)
	err := d.pool.QueryRow(ctx,
		`SELECT meeting_id, title, status, created_at, ended_at FROM meetings WHERE meeting_id = $1`,
		meetingId).Scan(&rec.MeetingId, &title, &rec.Status, &rec.CreatedAt, &endedAt)
	if err != nil {
		return nil, err
	}
	rec.Title = title.String
	if endedAt.Valid {
		t := endedAt.Time
		rec.EndedAt = &t
	}

	rows, err := d.pool.Query(ctx,
		`SELECT raw_text, COALESCE(summary, ''), COALESCE(speaker, ''), COALESCE(duration, 0), COALESCE(mime_type, ''), created_at
		 FROM transcripts WHERE meeting_id = $1 ORDER BY created_at`, meetingId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transcripts []TranscriptRecord
	for rows.Next() {
		var t TranscriptRecord
		if err := rows.Scan(&t.Text, &t.Summary, &t.Speaker, &t.Duration, &t.MimeType, &t.CreatedAt); err != nil {
			return nil, err
		}
		transcripts = append(transcripts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var summary *SummaryRecord
	var (
		totalTx    pgtype.Int4
		keyTopics  []string
		insights   []string
		avgSent    pgtype.Text
		engagement pgtype.Int4
	)
	err = d.pool.QueryRow(ctx,
		`SELECT total_transcripts, key_topics, main_insights, average_sentiment, engagement_score
		 FROM class_summaries WHERE meeting_id = $1`, meetingId).
		Scan(&totalTx, &keyTopics, &insights, &avgSent, &engagement)
	if err == nil {
		summary = &SummaryRecord{
			TotalTranscripts: int(totalTx.Int32),
			KeyTopics:        keyTopics,
			MainInsights:     insights,
			AverageSentiment: avgSent.String,
			EngagementScore:  int(engagement.Int32),
		}
	}

	mcqRows, err := d.pool.Query(ctx,
		`SELECT session_id, COALESCE(prompt, ''), questions, created_at FROM mcq_sessions
		 WHERE meeting_id = $1 ORDER BY created_at`, meetingId)
	if err != nil {
		return nil, err
	}
	defer mcqRows.Close()

	var mcqs []map[string]any
	for mcqRows.Next() {
		var (
			sessionId string
			prompt    string
			questions []byte
			createdAt time.Time
		)
		if err := mcqRows.Scan(&sessionId, &prompt, &questions, &createdAt); err != nil {
			return nil, err
		}
		mcqs = append(mcqs, map[string]any{
			"id":        sessionId,
			"prompt":    prompt,
			"mcqs":      json.RawMessage(questions),
			"createdAt": createdAt,
		})
	}
	if err := mcqRows.Err(); err != nil {
		return nil, err
	}

	return map[string]any{
		"meeting":     rec,
		"transcripts": transcripts,
		"summary":     summary,
		"mcqs":        mcqs,
	}, nil
}
