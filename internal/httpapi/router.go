package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"apula/server/internal/mailer"
	"apula/server/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	defaultSendTimeout = 30 * time.Second
	maxBodyBytes       = 100 << 10
)

type Settings struct {
	// Sender is the configured account address every message is sent from.
	Sender      string
	SendTimeout time.Duration
}

type API struct {
	transport mailer.Transport
	logger    *slog.Logger
	settings  Settings
}

func New(transport mailer.Transport, settings Settings, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	if settings.SendTimeout <= 0 {
		settings.SendTimeout = defaultSendTimeout
	}
	return &API{
		transport: transport,
		logger:    logger,
		settings:  settings,
	}
}

func (a *API) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(a.logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.With(middleware.RequestSize(maxBodyBytes)).Post("/send-verification", a.handleSendVerification)

	return router
}
