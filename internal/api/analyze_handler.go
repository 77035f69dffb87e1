package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/prlens/internal/analysis"
)

// AnalyzeHandler is the synchronous entry point: it runs one full analysis
// and returns the report in the response. Internal failures surface as the
// fixed error envelope, never a stack trace.
func (s *Server) AnalyzeHandler(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil || len(body) == 0 {
		log.Warn().Msg("No body in analyze request")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Request body is required",
		})
	}

	var req analysis.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Missing required fields",
		})
	}

	report, err := s.analyzer.Analyze(c.Request().Context(), req)
	if err != nil {
		log.Error().
			Err(err).
			Str("repository", req.Repository).
			Int("pr_number", req.PullRequestNumber).
			Msg("Analysis run failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Analysis failed",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Analysis completed",
		"data":    report,
	})
}
