package room

// SubmitSentiment overwrites the participant's sentiment (one active value
// each; a resubmission replaces, never adds) and recomputes the whole
// distribution by scanning the participant set. Recompute-from-scratch is
// deliberate: it cannot drift under concurrent submit/remove interleavings
// the way incremental counters can.
func (r *Room) SubmitSentiment(connId, sentiment string) (Distribution, Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var target *Participant
	for _, p := range r.participants {
		if p.Id == connId {
			target = p
			break
		}
	}
	if target == nil {
		return Distribution{}, Snapshot{}, false
	}

	target.Sentiment = sentiment
	r.recomputeSentimentLocked()
	return r.sentiment, r.snapshotLocked(), true
}

func (r *Room) recomputeSentimentLocked() {
	d := Distribution{}
	for _, p := range r.participants {
		switch p.Sentiment {
		case SentimentGood:
			d.Good++
		case SentimentNeutral:
			d.Neutral++
		case SentimentNegative:
			d.Negative++
		}
	}
	r.sentiment = d
}

func (r *Room) SentimentDistribution() Distribution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sentiment
}
