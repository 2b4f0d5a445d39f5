// Package api is the inbound webhook surface: it parses assistant
// requests, normalizes them into dialogue signals and renders the
// engine's turns back into the platform's reply format.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sleepwell/sleepwell/internal/dialog"
)

// NewRouter builds the HTTP surface around the dialogue engine.
func NewRouter(engine *dialog.Engine, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/webhook", webhookHandler(engine, logger))

	return router
}

func webhookHandler(engine *dialog.Engine, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("malformed webhook request", "error", err.Error())
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
			return
		}
		if req.Session.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing user id"})
			return
		}

		sig := Normalize(&req)
		turn := engine.HandleTurn(c.Request.Context(), req.Session.UserID, sig, time.Now().UTC())

		logger.Debug("turn handled",
			"user_id", req.Session.UserID,
			"signal", sig.Kind,
			"state", turn.State,
		)

		buttons := make([]Button, 0, len(turn.Buttons))
		for _, title := range turn.Buttons {
			buttons = append(buttons, Button{Title: title})
		}
		c.JSON(http.StatusOK, Response{
			Version: req.Version,
			Response: Reply{
				Text:       turn.Reply.Text,
				TTS:        turn.Reply.Speech,
				Buttons:    buttons,
				EndSession: turn.End,
			},
		})
	}
}
