// Package httpserver delivers the dialogue engine over a small JSON API:
// create a session, post messages, read the transcript, commit a draft.
package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kira/internal/dialogue"
)

type Config struct {
	Port           int
	RateLimitRPS   float64
	RateLimitBurst int
}

type Server struct {
	engine *dialogue.Engine
	logger *zap.Logger
	router *gin.Engine
	port   int

	mu       sync.RWMutex
	sessions map[string]*dialogue.Session
}

func New(engine *dialogue.Engine, config Config, logger *zap.Logger) *Server {
	s := &Server{
		engine:   engine,
		logger:   logger,
		port:     config.Port,
		sessions: make(map[string]*dialogue.Session),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if config.RateLimitRPS > 0 {
		router.Use(rateLimitMiddleware(newRateLimiterStore(config.RateLimitRPS, config.RateLimitBurst), logger))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.POST("/sessions", s.createSession)
	api.GET("/sessions/:id", s.getSession)
	api.POST("/sessions/:id/messages", s.postMessage)
	api.POST("/sessions/:id/turns/:turnID/commit", s.commitTurn)

	s.router = router
	return s
}

func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%d", s.port))
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) session(id string) (*dialogue.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) createSession(c *gin.Context) {
	sess := dialogue.NewSession()

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	turn, err := s.engine.Bootstrap(c.Request.Context(), sess)
	if err != nil {
		// The session is still usable; the opening turn just never happened.
		s.logger.Warn("Bootstrap failed", zap.Error(err), zap.String("session_id", sess.ID()))
		c.JSON(http.StatusCreated, gin.H{"id": sess.ID(), "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": sess.ID(), "turn": turn})
}

func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": sess.ID(), "turns": sess.Turns()})
}

type messageRequest struct {
	Text string `json:"text"`
}

func (s *Server) postMessage(c *gin.Context) {
	sess, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	turn, err := s.engine.Submit(c.Request.Context(), sess, req.Text)
	switch {
	case errors.Is(err, dialogue.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "message text is empty"})
	case errors.Is(err, dialogue.ErrMissingCredential):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no API credential configured"})
	case err != nil:
		s.logger.Error("Submit failed", zap.Error(err), zap.String("session_id", sess.ID()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, gin.H{"turn": turn})
	}
}

func (s *Server) commitTurn(c *gin.Context) {
	sess, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	turn, err := s.engine.Commit(c.Request.Context(), sess, c.Param("turnID"))
	switch {
	case errors.Is(err, dialogue.ErrTurnNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "turn not found"})
	case errors.Is(err, dialogue.ErrNotCommittable):
		c.JSON(http.StatusConflict, gin.H{"error": "turn has no committable reservation draft"})
	case err != nil:
		s.logger.Error("Commit failed", zap.Error(err), zap.String("session_id", sess.ID()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, gin.H{"turn": turn})
	}
}
