// Package server exposes game sessions over HTTP and WebSocket.
package server

import (
	stderrors "errors"
	"fmt"
	"io"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chesscore/internal/config"
	"github.com/lgbarn/chesscore/internal/errors"
	"github.com/lgbarn/chesscore/internal/session"
)

// Server is the HTTP front end of a session manager.
type Server struct {
	app      *fiber.App
	manager  *session.Manager
	cfg      *config.Config
	logFile  io.Writer
	handlers *handlers
}

// New builds the fiber application and its routes.
func New(cfg *config.Config, manager *session.Manager) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "chesscore",
		DisableStartupMessage: cfg.Verbosity < 2,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())

	// Request log goes to the same writer as everything else
	accessLog := io.Discard
	if cfg.Verbosity >= 2 {
		accessLog = cfg.LogFile
	}
	app.Use(logger.New(logger.Config{Output: accessLog}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	s := &Server{
		app:      app,
		manager:  manager,
		cfg:      cfg,
		logFile:  cfg.LogFile,
		handlers: &handlers{manager: manager, logFile: cfg.LogFile, verbosity: cfg.Verbosity},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	h := s.handlers

	api := s.app.Group("/api")
	api.Get("/games", h.listGames)
	api.Post("/games", h.createGame)
	api.Get("/games/:id", h.getGame)
	api.Delete("/games/:id", h.deleteGame)
	api.Get("/games/:id/moves/:square", h.legalMoves)
	api.Post("/games/:id/moves", h.makeMove)

	s.app.Use("/ws", requireUpgrade)
	s.app.Get("/ws/games/:id", websocket.New(h.gameSocket))
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	if s.cfg.Verbosity > 0 {
		fmt.Fprintf(s.logFile, "Listening on %s\n", s.cfg.Server.ListenAddr)
	}
	return s.app.Listen(s.cfg.Server.ListenAddr)
}

// Serve serves on an existing listener until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops the server and waits for active requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// requireUpgrade rejects plain HTTP requests on WebSocket routes.
func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// statusFor maps an error to its HTTP status code.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case stderrors.As(err, &fe):
		return fe.Code
	case stderrors.Is(err, errors.ErrGameNotFound):
		return fiber.StatusNotFound
	case stderrors.Is(err, errors.ErrTooManyGames):
		return fiber.StatusServiceUnavailable
	case stderrors.Is(err, errors.ErrInvalidFEN),
		stderrors.Is(err, errors.ErrInvalidSquare),
		stderrors.Is(err, errors.ErrInvalidMove),
		stderrors.Is(err, errors.ErrInvalidPromotion):
		return fiber.StatusBadRequest
	case stderrors.Is(err, errors.ErrIllegalDestination),
		stderrors.Is(err, errors.ErrNoPieceAtOrigin),
		stderrors.Is(err, errors.ErrGameOver):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func errorHandler(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(errorResponse{Error: err.Error()})
}
