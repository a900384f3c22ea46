package schema

import "github.com/deppfellow/social-scores/internal/model"

// ScoreBase holds the four measured values of a score. Each defaults to 0.
type ScoreBase struct {
	Score1 float64 `json:"score_1"`
	Score2 float64 `json:"score_2"`
	Score3 float64 `json:"score_3"`
	Score4 float64 `json:"score_4"`
}

// ScoreCreate is the input shape for recording a score.
type ScoreCreate struct {
	ScoreBase
}

// Score is the public view of a stored score.
type Score struct {
	ScoreBase
	ID              int64 `json:"id"`
	SocialNetworkID int64 `json:"social_network_id"`
	Date            Date  `json:"date"`
}

func parseScoreBase(d *decoder) ScoreBase {
	return ScoreBase{
		Score1: d.floatOr("score_1", 0),
		Score2: d.floatOr("score_2", 0),
		Score3: d.floatOr("score_3", 0),
		Score4: d.floatOr("score_4", 0),
	}
}

// ParseScoreCreate validates a raw score creation request.
func ParseScoreCreate(raw map[string]any) (ScoreCreate, error) {
	d := newDecoder("ScoreCreate", raw)
	s := ScoreCreate{ScoreBase: parseScoreBase(d)}
	return s, d.err()
}

// ParseScore validates a raw score. Missing identifiers default to 1 and a
// missing date defaults to today.
func ParseScore(raw map[string]any) (Score, error) {
	d := newDecoder("Score", raw)
	s := parseScore(d)
	return s, d.err()
}

func parseScore(d *decoder) Score {
	s := Score{
		ScoreBase:       parseScoreBase(d),
		ID:              d.intOr("id", 1),
		SocialNetworkID: d.intOr("social_network_id", 1),
		Date:            d.dateOr("date", Today),
	}
	s.check(d)
	return s
}

func (s Score) check(d *decoder) {
	d.check("id", s.ID, rulePositive)
	d.check("social_network_id", s.SocialNetworkID, rulePositive)
}

// ScoreFromModel builds the public view of a stored score.
func ScoreFromModel(m model.Score) (Score, error) {
	d := newDecoder("Score", nil)
	s := scoreFromModel(d, m)
	return s, d.err()
}

func scoreFromModel(d *decoder, m model.Score) Score {
	s := Score{
		ScoreBase: ScoreBase{
			Score1: m.Score1,
			Score2: m.Score2,
			Score3: m.Score3,
			Score4: m.Score4,
		},
		ID:              m.ID,
		SocialNetworkID: m.SocialNetworkID,
		Date:            DateOf(m.Date),
	}
	if m.Date.IsZero() {
		s.Date = Today()
	}
	s.check(d)
	return s
}
