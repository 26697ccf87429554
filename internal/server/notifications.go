package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tuancreations/livesession/internal/repository"
	"github.com/tuancreations/livesession/internal/subscription"
)

type notificationHandlers struct {
	repo      repository.SubscriptionRepository
	validator *subscription.Validator
}

type subscribeRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	Email     string `json:"email" validate:"required,contact_email"`
	Phone     string `json:"phone" validate:"required,e164_phone"`
}

// subscribe is the receiving end of the notification endpoint. Repeated
// requests for the same contact are accepted without storing a duplicate.
func (h *notificationHandlers) subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if errs := h.validator.Struct(req); errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	sub, created, err := h.repo.SaveSubscription(c.Request.Context(), repository.SaveSubscriptionInput{
		SessionID: req.SessionID,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		slog.Error("failed to save subscription", "error", err, "session_id", req.SessionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save subscription"})
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
		slog.Info("subscription stored", "session_id", sub.SessionID, "subscription_id", sub.ID)
	}
	c.JSON(status, gin.H{"subscription": sub, "created": created})
}

func (h *notificationHandlers) list(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Query("sessionId"))
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return
	}
	subs, err := h.repo.ListSubscriptionsBySessionID(c.Request.Context(), sessionID)
	if err != nil {
		slog.Error("failed to list subscriptions", "error", err, "session_id", sessionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list subscriptions"})
		return
	}
	if subs == nil {
		subs = []repository.Subscription{}
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}
