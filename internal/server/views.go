package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tuancreations/livesession/internal/liveview"
	"github.com/tuancreations/livesession/internal/session"
	"github.com/tuancreations/livesession/internal/subscription"
)

type viewHandlers struct {
	views *liveview.Manager
}

type resultBody struct {
	Outcome session.Outcome `json:"outcome"`
	Reason  string          `json:"reason,omitempty"`
}

func toResultBody(r session.Result) resultBody {
	return resultBody{Outcome: r.Outcome, Reason: r.ReasonText()}
}

type mountRequest struct {
	ActorID string `json:"actorId" binding:"required"`
}

type rescheduleRequest struct {
	StartAt string `json:"startAt" binding:"required"`
}

type chatRequest struct {
	Text string `json:"text"`
}

type resourceRequest struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

type recordingRequest struct {
	URL string `json:"url"`
}

type viewHandlerFunc func(c *gin.Context, v *liveview.View)

// withView resolves the :id path parameter to a mounted view.
func (h *viewHandlers) withView(next viewHandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := h.views.Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "view not found"})
			return
		}
		next(c, v)
	}
}

func (h *viewHandlers) now() time.Time {
	return h.views.Clock().Now()
}

func (h *viewHandlers) respond(c *gin.Context, v *liveview.View, res session.Result, extra gin.H) {
	body := gin.H{"result": toResultBody(res), "view": v.State(h.now())}
	for k, val := range extra {
		body[k] = val
	}
	c.JSON(http.StatusOK, body)
}

func (h *viewHandlers) mount(c *gin.Context) {
	var req mountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "actorId is required"})
		return
	}
	v, err := h.views.Mount(req.ActorID)
	switch {
	case errors.Is(err, session.ErrUnknownParticipant):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "actor is not a participant of this session"})
		return
	case errors.Is(err, liveview.ErrManagerClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "shutting down"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mount view"})
		return
	}
	c.JSON(http.StatusCreated, v.State(h.now()))
}

func (h *viewHandlers) get(c *gin.Context, v *liveview.View) {
	c.JSON(http.StatusOK, v.State(h.now()))
}

func (h *viewHandlers) unmount(c *gin.Context) {
	if err := h.views.Unmount(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "view not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *viewHandlers) start(c *gin.Context, v *liveview.View) {
	h.respond(c, v, v.Controller.Start(), nil)
}

func (h *viewHandlers) end(c *gin.Context, v *liveview.View) {
	h.respond(c, v, v.Controller.End(), nil)
}

func (h *viewHandlers) join(c *gin.Context, v *liveview.View) {
	h.respond(c, v, v.Controller.Join(), nil)
}

func (h *viewHandlers) reschedule(c *gin.Context, v *liveview.View) {
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startAt is required"})
		return
	}
	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startAt must be an RFC3339 timestamp"})
		return
	}
	h.respond(c, v, v.Controller.Reschedule(startAt), nil)
}

func (h *viewHandlers) chat(c *gin.Context, v *liveview.View) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	msg, res := v.Controller.SendChat(req.Text)
	var extra gin.H
	if res.Applied() {
		extra = gin.H{"message": msg}
	}
	h.respond(c, v, res, extra)
}

func (h *viewHandlers) toggleMute(c *gin.Context, v *liveview.View) {
	muted, res := v.Controller.ToggleMute()
	h.respond(c, v, res, gin.H{"muted": muted})
}

func (h *viewHandlers) toggleVideo(c *gin.Context, v *liveview.View) {
	off, res := v.Controller.ToggleVideo()
	h.respond(c, v, res, gin.H{"videoOff": off})
}

func (h *viewHandlers) toggleHand(c *gin.Context, v *liveview.View) {
	raised, res := v.Controller.ToggleHand()
	h.respond(c, v, res, gin.H{"handRaised": raised})
}

func (h *viewHandlers) shareResource(c *gin.Context, v *liveview.View) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.respond(c, v, v.Controller.ShareResource(req.Name, req.Link), nil)
}

func (h *viewHandlers) attachRecording(c *gin.Context, v *liveview.View) {
	var req recordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.respond(c, v, v.Controller.AttachRecording(req.URL), nil)
}

func (h *viewHandlers) subscribe(c *gin.Context, v *liveview.View) {
	var in subscription.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	out := v.Subscription.Submit(c.Request.Context(), in)
	body := gin.H{
		"status":       out.Status,
		"subscription": v.Subscription.State(h.now()),
	}
	if len(out.Errors) > 0 {
		body["errors"] = out.Errors
	}
	c.JSON(subscribeStatusCode(out.Status), body)
}

func subscribeStatusCode(s subscription.Status) int {
	switch s {
	case subscription.StatusInvalid:
		return http.StatusUnprocessableEntity
	case subscription.StatusInProgress:
		return http.StatusConflict
	case subscription.StatusFailed:
		return http.StatusBadGateway
	case subscription.StatusClosed:
		return http.StatusGone
	default:
		return http.StatusOK
	}
}
