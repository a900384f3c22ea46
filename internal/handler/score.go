package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/deppfellow/social-scores/internal/schema"
	"github.com/deppfellow/social-scores/internal/server"
	"github.com/labstack/echo/v4"
)

type ScoreService interface {
	Create(ctx context.Context, supervisorID, socialNetworkID int64, in schema.ScoreCreate) (schema.Score, error)
	List(ctx context.Context, supervisorID, socialNetworkID int64) ([]schema.Score, error)
}

type ScoreHandler struct {
	Handler
	scores ScoreService
}

func NewScoreHandler(s *server.Server, scores ScoreService) *ScoreHandler {
	return &ScoreHandler{
		Handler: NewHandler(s),
		scores:  scores,
	}
}

func (h *ScoreHandler) Create() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *CreateScoreRequest) (schema.Score, error) {
		sup, err := currentSupervisor(c)
		if err != nil {
			return schema.Score{}, err
		}
		return h.scores.Create(c.Request().Context(), sup.ID, req.SocialNetworkID, req.ScoreCreate)
	}, http.StatusCreated)
}

func (h *ScoreHandler) List() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *SocialNetworkPathRequest) ([]schema.Score, error) {
		sup, err := currentSupervisor(c)
		if err != nil {
			return nil, err
		}
		return h.scores.List(c.Request().Context(), sup.ID, req.SocialNetworkID)
	}, http.StatusOK)
}

// Export downloads the scores of one social network as CSV, oldest first.
func (h *ScoreHandler) Export() echo.HandlerFunc {
	return HandleFile(func(c echo.Context, req *SocialNetworkPathRequest) ([]byte, error) {
		sup, err := currentSupervisor(c)
		if err != nil {
			return nil, err
		}
		scores, err := h.scores.List(c.Request().Context(), sup.ID, req.SocialNetworkID)
		if err != nil {
			return nil, err
		}
		return scoresCSV(scores)
	}, http.StatusOK, "scores.csv", "text/csv")
}

var scoresCSVHeader = []string{"id", "social_network_id", "date", "score_1", "score_2", "score_3", "score_4"}

func scoresCSV(scores []schema.Score) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(scoresCSVHeader); err != nil {
		return nil, err
	}
	for _, s := range scores {
		record := []string{
			strconv.FormatInt(s.ID, 10),
			strconv.FormatInt(s.SocialNetworkID, 10),
			s.Date.String(),
			formatScore(s.Score1),
			formatScore(s.Score2),
			formatScore(s.Score3),
			formatScore(s.Score4),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
