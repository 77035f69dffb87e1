package api

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/prlens/internal/webhook"
)

// GitHubWebhookHandler receives pull-request change events. The response is
// always fast and bounded: validation problems surface as 400, everything
// past the gate (including a queueing failure) returns 200 so the platform
// never retries the delivery itself.
func (s *Server) GitHubWebhookHandler(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil || len(body) == 0 {
		log.Warn().Msg("No body in webhook request")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Request body is required",
		})
	}

	if s.webhookSecret != "" {
		signature := c.Request().Header.Get("X-Hub-Signature-256")
		if !webhook.VerifySignature(body, signature, s.webhookSecret) {
			log.Warn().Msg("Webhook signature verification failed")
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "Invalid signature",
			})
		}
	}

	event, err := webhook.ParseEvent(body)
	if err != nil {
		log.Warn().Err(err).Msg("Invalid webhook payload")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	decision := webhook.Decide(event)
	if !decision.ShouldAnalyze {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "Webhook processed successfully",
			"data":    decision,
		})
	}

	outcome := s.dispatcher.Dispatch(c.Request().Context(), *decision.Dispatch)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Webhook processed successfully",
		"data":    outcome,
	})
}
