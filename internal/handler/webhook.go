package handler

import (
	"io"
	"net/http"

	"github.com/ironloft/gymboard/internal/logger"
	"github.com/ironloft/gymboard/internal/webhook"
)

// ChallengeResponse echoes the board platform's verification token
type ChallengeResponse struct {
	Challenge string `json:"challenge"`
}

// HandleBoardWebhook ingests change notifications from the board platform
// @Summary Ingest board webhook
// @Description Verifies the signature and applies the change to the local store
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} WebhookResponse
// @Failure 401 {object} WebhookResponse
// @Router /webhooks/board [post]
func HandleBoardWebhook(verifier *webhook.Verifier, webhookService webhook.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read webhook body", "error", err)
			respondJSON(w, http.StatusBadRequest, WebhookResponse{Error: ErrMsgWebhookBadPayload})
			return
		}

		// The verification handshake is answered before signature checking:
		// the platform sends it while the endpoint is being registered, which
		// can be before the secret exists on either side.
		if challenge, ok := webhook.ParseChallenge(body); ok {
			log.Info(webhook.LogMsgChallengeAnswered)
			respondJSON(w, http.StatusOK, ChallengeResponse{Challenge: challenge})
			return
		}

		if !verifier.Enabled() {
			log.Warn(webhook.LogMsgSignatureSkipped)
		} else if err := verifier.Verify(body, r.Header.Get(webhook.SignatureHeader)); err != nil {
			log.Warn(webhook.LogMsgSignatureRejected, "error", err)
			respondJSON(w, http.StatusUnauthorized, WebhookResponse{Error: ErrMsgWebhookUnauthorized})
			return
		}

		if err := webhookService.Process(r.Context(), body); err != nil {
			log.Error("Operation failed", "operation", "Process webhook", "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondJSON(w, status, WebhookResponse{Error: message})
			return
		}

		respondJSON(w, http.StatusOK, WebhookResponse{Success: true})
	}
}
