package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userKey = "user_id"

// requestLogger logs one line per request.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// recovery turns panics into a JSON 500.
func recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic", zap.Any("recovered", recovered), zap.String("path", c.Request.URL.Path))
		abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	})
}

// requireSession rejects requests when nobody is signed in and stores the
// user id on the context otherwise.
func (s *Server) requireSession(c *gin.Context) {
	sess, ok := s.sessions.Current()
	if !ok {
		abort(c, http.StatusUnauthorized, "NO_SESSION", "no active session")
		return
	}
	c.Set(userKey, sess.UserID)
	c.Next()
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: msg},
	})
}
