package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tuancreations/livesession/internal/liveview"
	"github.com/tuancreations/livesession/internal/repository"
	"github.com/tuancreations/livesession/internal/subscription"
)

func registerRoutes(router *gin.Engine, views *liveview.Manager, subs repository.SubscriptionRepository) {
	h := &viewHandlers{views: views}

	live := router.Group("/live-session/views")
	live.POST("", h.mount)
	live.GET("/:id", h.withView(h.get))
	live.DELETE("/:id", h.unmount)

	live.POST("/:id/start", h.withView(h.start))
	live.POST("/:id/end", h.withView(h.end))
	live.POST("/:id/join", h.withView(h.join))
	live.POST("/:id/reschedule", h.withView(h.reschedule))
	live.POST("/:id/chat", h.withView(h.chat))
	live.POST("/:id/media/mute", h.withView(h.toggleMute))
	live.POST("/:id/media/video", h.withView(h.toggleVideo))
	live.POST("/:id/media/hand", h.withView(h.toggleHand))
	live.POST("/:id/resources", h.withView(h.shareResource))
	live.POST("/:id/recording", h.withView(h.attachRecording))
	live.POST("/:id/subscribe", h.withView(h.subscribe))

	n := &notificationHandlers{repo: subs, validator: subscription.NewValidator()}
	api := router.Group("/api/notifications")
	api.POST("/subscribe", n.subscribe)
	api.GET("/subscriptions", n.list)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}
