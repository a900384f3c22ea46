package schema

import (
	"testing"
	"time"

	"github.com/deppfellow/social-scores/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScoreCreate(t *testing.T) {
	t.Run("defaults every score to zero", func(t *testing.T) {
		s, err := ParseScoreCreate(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, ScoreCreate{}, s)
	})

	t.Run("keeps given values", func(t *testing.T) {
		s, err := ParseScoreCreate(map[string]any{
			"score_1": 1.5,
			"score_2": 2,
			"score_3": "3.25",
			"score_4": -4.0,
		})
		require.NoError(t, err)
		assert.Equal(t, ScoreBase{Score1: 1.5, Score2: 2, Score3: 3.25, Score4: -4}, s.ScoreBase)
	})

	t.Run("reports every non-numeric score", func(t *testing.T) {
		_, err := ParseScoreCreate(map[string]any{
			"score_1": "high",
			"score_2": 1.0,
			"score_3": true,
			"score_4": nil,
		})
		verr := violations(t, err)
		assert.Equal(t, []string{"score_1", "score_3", "score_4"}, verr.Fields())
		for _, v := range verr.Violations {
			assert.Equal(t, "float", v.Constraint)
		}
	})
}

func TestParseScore(t *testing.T) {
	freezeClock(t, time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC))

	t.Run("applies defaults", func(t *testing.T) {
		s, err := ParseScore(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), s.ID)
		assert.Equal(t, int64(1), s.SocialNetworkID)
		assert.Equal(t, "2024-05-17", s.Date.String())
		assert.Zero(t, s.Score1)
		assert.Zero(t, s.Score4)
	})

	t.Run("keeps given values", func(t *testing.T) {
		s, err := ParseScore(map[string]any{
			"id":                float64(7),
			"social_network_id": float64(3),
			"date":              "2023-01-02",
			"score_2":           0.5,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7), s.ID)
		assert.Equal(t, int64(3), s.SocialNetworkID)
		assert.Equal(t, "2023-01-02", s.Date.String())
		assert.Equal(t, 0.5, s.Score2)
	})

	t.Run("integers beyond int64 are type errors", func(t *testing.T) {
		for _, id := range []any{9.223372036854775808e18, 1e19, -1e19, 1.5} {
			_, err := ParseScore(map[string]any{"id": id})
			verr := violations(t, err)
			require.Len(t, verr.Violations, 1, id)
			assert.Equal(t, "id", verr.Violations[0].Field)
			assert.Equal(t, "int", verr.Violations[0].Constraint, id)
		}
	})

	t.Run("identifiers must be positive", func(t *testing.T) {
		tests := []struct {
			name  string
			raw   map[string]any
			field string
		}{
			{"zero id", map[string]any{"id": 0}, "id"},
			{"negative id", map[string]any{"id": -3}, "id"},
			{"zero social network", map[string]any{"social_network_id": 0}, "social_network_id"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ParseScore(tt.raw)
				verr := violations(t, err)
				require.Len(t, verr.Violations, 1)
				assert.Equal(t, tt.field, verr.Violations[0].Field)
				assert.Equal(t, "gt", verr.Violations[0].Constraint)
				assert.Equal(t, "0", verr.Violations[0].Param)
			})
		}
	})

	t.Run("reports all violations at once", func(t *testing.T) {
		_, err := ParseScore(map[string]any{
			"id":                -1,
			"social_network_id": 1.5,
			"date":              "someday",
			"score_1":           "x",
		})
		verr := violations(t, err)
		assert.ElementsMatch(t, []string{"id", "social_network_id", "date", "score_1"}, verr.Fields())
	})

	t.Run("date is computed per call", func(t *testing.T) {
		first, err := ParseScore(map[string]any{})
		require.NoError(t, err)

		freezeClock(t, time.Date(2024, 5, 18, 0, 0, 1, 0, time.UTC))
		second, err := ParseScore(map[string]any{})
		require.NoError(t, err)

		assert.Equal(t, "2024-05-17", first.Date.String())
		assert.Equal(t, "2024-05-18", second.Date.String())
	})

	t.Run("revalidating a record gives the same record", func(t *testing.T) {
		s, err := ParseScore(map[string]any{"id": 4, "social_network_id": 9, "score_3": 12.5, "date": "2022-10-10"})
		require.NoError(t, err)

		again, err := ParseScore(roundTrip(t, s))
		require.NoError(t, err)
		assert.Equal(t, s, again)
	})
}

func TestScoreFromModel(t *testing.T) {
	freezeClock(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	t.Run("copies attributes", func(t *testing.T) {
		s, err := ScoreFromModel(model.Score{
			ID:              2,
			SocialNetworkID: 5,
			Score1:          1,
			Score4:          4,
			Date:            time.Date(2023, 8, 9, 13, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), s.ID)
		assert.Equal(t, int64(5), s.SocialNetworkID)
		assert.Equal(t, 4.0, s.Score4)
		assert.Equal(t, "2023-08-09", s.Date.String())
	})

	t.Run("missing date falls back to today", func(t *testing.T) {
		s, err := ScoreFromModel(model.Score{ID: 1, SocialNetworkID: 1})
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01", s.Date.String())
	})

	t.Run("checks identifiers", func(t *testing.T) {
		_, err := ScoreFromModel(model.Score{})
		assert.Equal(t, []string{"id", "social_network_id"}, violations(t, err).Fields())
	})
}
