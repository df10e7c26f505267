// Package server exposes the translation service over HTTP: a JSON API
// plus a small embedded browser UI.
package server

import (
	"embed"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/lingopipe/lingopipe"
	"github.com/lingopipe/lingopipe/internal/config"
	"github.com/lingopipe/lingopipe/tts"
)

//go:embed ui
var uiFS embed.FS

// Server is the HTTP front end.
type Server struct {
	app   *fiber.App
	svc   *lingopipe.Service
	synth tts.Synthesizer
	cfg   *config.Config
	log   zerolog.Logger
}

// New builds a fully wired server from configuration.
func New(cfg *config.Config, log zerolog.Logger) (*Server, error) {
	svc, err := BuildService(cfg, log)
	if err != nil {
		return nil, err
	}

	synth, err := buildSynthesizer(cfg, log)
	if err != nil {
		return nil, err
	}

	return NewWith(cfg, log, svc, synth), nil
}

// NewWith builds a server around an existing service and synthesizer.
// Used directly by tests.
func NewWith(cfg *config.Config, log zerolog.Logger, svc *lingopipe.Service, synth tts.Synthesizer) *Server {
	s := &Server{
		svc:   svc,
		synth: synth,
		cfg:   cfg,
		log:   log,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               lingopipe.Name + " " + lingopipe.Version,
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
	})

	s.app.Use(recover.New())
	s.app.Use(s.requestLogger)

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", s.handleHealth)

	api := s.app.Group("/api")
	api.Post("/translate", s.handleTranslate)
	api.Post("/translate/batch", s.handleTranslateBatch)
	api.Post("/detect", s.handleDetect)
	api.Get("/speak", s.handleSpeak)
	api.Get("/languages", s.handleLanguages)

	api.Get("/history", s.handleHistory)
	api.Delete("/history", s.handleHistoryClear)
	api.Get("/history/export", s.handleHistoryExport)

	api.Get("/cache/stats", s.handleCacheStats)
	api.Post("/cache/clear", s.handleCacheClear)
	api.Get("/cache/export", s.handleCacheExport)

	s.app.Get("/", s.handleIndex)
}

// Listen serves until the listener fails or Shutdown is called.
func (s *Server) Listen() error {
	s.log.Info().Str("addr", s.cfg.Listen).Msg("listening")
	return s.app.Listen(s.cfg.Listen)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	s.log.Info().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request")

	return err
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	page, err := uiFS.ReadFile("ui/index.html")
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "ui not bundled")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": lingopipe.FullVersion(),
	})
}
