package server

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chesscore/internal/chess"
	"github.com/lgbarn/chesscore/internal/session"
)

type handlers struct {
	manager   *session.Manager
	logFile   io.Writer
	verbosity int
}

func (h *handlers) logf(level int, format string, args ...interface{}) {
	if h.logFile != nil && h.verbosity >= level {
		fmt.Fprintf(h.logFile, format, args...)
	}
}

func (h *handlers) listGames(c *fiber.Ctx) error {
	return c.JSON(listResponse{Games: h.manager.IDs()})
}

func (h *handlers) createGame(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	s, err := h.manager.Create(req.FEN)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newStateDTO(s.Snapshot()))
}

func (h *handlers) getGame(c *fiber.Ctx) error {
	s, err := h.manager.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(newStateDTO(s.Snapshot()))
}

func (h *handlers) deleteGame(c *fiber.Ctx) error {
	if err := h.manager.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handlers) legalMoves(c *fiber.Ctx) error {
	s, err := h.manager.Get(c.Params("id"))
	if err != nil {
		return err
	}
	sq, err := chess.ParseSquare(c.Params("square"))
	if err != nil {
		return err
	}
	return c.JSON(movesResponse{
		Square:       sq.String(),
		Destinations: append([]string{}, s.LegalMoves(sq).Strings()...),
	})
}

func (h *handlers) makeMove(c *fiber.Ctx) error {
	s, err := h.manager.Get(c.Params("id"))
	if err != nil {
		return err
	}

	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	from, to, promotion, err := req.parse()
	if err != nil {
		return err
	}

	rec, snap, err := s.Move(from, to, promotion)
	if err != nil {
		return err
	}
	return c.JSON(moveResponse{Move: newMoveDTO(rec), State: newStateDTO(snap)})
}
