// Package api serves the journal's reporting and calculator endpoints.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradebook/capital"
	"github.com/rustyeddy/tradebook/config"
	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/session"
)

type Server struct {
	store    journal.Store
	sessions *session.Provider
	sim      *capital.Simulator
	cfg      *config.Config
	log      *zap.Logger
}

func NewServer(cfg *config.Config, store journal.Store, sessions *session.Provider, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		store:    store,
		sessions: sessions,
		sim:      capital.NewSimulator(log.Named("capital")),
		cfg:      cfg,
		log:      log,
	}
}

// Handler returns the routed, CORS-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	if s.cfg.Server.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(recovery(s.log))
	router.Use(requestLogger(s.log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/calc/pips", s.CalcPips)
		api.POST("/calc/pnl", s.CalcPnl)

		scoped := api.Group("", s.requireSession)
		scoped.GET("/trades", s.ListTrades)
		scoped.GET("/trades/:id", s.GetTrade)
		scoped.GET("/stats", s.Stats)
	}

	router.NoRoute(func(c *gin.Context) {
		abort(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	})

	return cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(router)
}
