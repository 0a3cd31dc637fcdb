package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"classroom-ws-server/pkg/connections"
	"classroom-ws-server/pkg/db"
	"classroom-ws-server/pkg/room"
)

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewRouter wires the ancillary HTTP surface and the websocket entry point.
func NewRouter(hub *connections.Hub, store *db.Db, registry *room.Registry) *gin.Engine {
	router := gin.Default()

	router.GET("/ws", func(c *gin.Context) {
		hub.HandleInitConnection(c.Writer, c.Request)
	})

	router.POST("/api/create-meeting", func(c *gin.Context) {
		code := room.NewCode()
		registry.GetOrCreate(code)
		log.Printf("[meeting] created %s", code)
		go store.SaveMeeting(context.Background(), code, "Class Session")
		c.JSON(http.StatusOK, gin.H{"meetingId": code})
	})

	// single role flag only; real authentication is out of scope
	router.POST("/api/admin-login", func(c *gin.Context) {
		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Username == "admin" && req.Password == "admin123" {
			c.JSON(http.StatusOK, gin.H{"token": "admin-token", "role": "admin"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	})

	router.GET("/api/meeting/:meetingId", func(c *gin.Context) {
		rm := registry.Get(c.Param("meetingId"))
		if rm == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meeting not found"})
			return
		}
		c.JSON(http.StatusOK, rm.Analysis())
	})

	router.GET("/api/meeting-history", func(c *gin.Context) {
		if !store.Enabled() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database persistence not enabled"})
			return
		}
		records, err := store.MeetingHistory(c.Request.Context(), 50)
		if err != nil {
			log.Printf("[db] meeting history: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meeting history"})
			return
		}
		c.JSON(http.StatusOK, records)
	})

	router.GET("/api/meeting-analytics/:meetingId", func(c *gin.Context) {
		if !store.Enabled() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database persistence not enabled"})
			return
		}
		analytics, err := store.MeetingAnalytics(c.Request.Context(), c.Param("meetingId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meeting not found"})
			return
		}
		c.JSON(http.StatusOK, analytics)
	})

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return router
}
