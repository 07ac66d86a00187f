package server

import (
	"strings"

	"github.com/lgbarn/chesscore/internal/chess"
	"github.com/lgbarn/chesscore/internal/engine"
	"github.com/lgbarn/chesscore/internal/errors"
	"github.com/lgbarn/chesscore/internal/session"
)

type createRequest struct {
	FEN string `json:"fen"`
}

// moveRequest is the body of a move, over HTTP and WebSocket alike.
type moveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"` // "q", "r", "b" or "n"; empty means queen
}

type pieceDTO struct {
	Square string `json:"square"`
	Kind   string `json:"kind"`
	Colour string `json:"colour"`
}

type stateDTO struct {
	ID                   string            `json:"id"`
	FEN                  string            `json:"fen"`
	Turn                 string            `json:"turn"`
	MoveCount            int               `json:"moveCount"`
	Pieces               []pieceDTO        `json:"pieces"`
	InCheck              map[string]bool   `json:"inCheck"`
	Outcome              map[string]string `json:"outcome"`
	Over                 bool              `json:"over"`
	History              []string          `json:"history"`
	InsufficientMaterial bool              `json:"insufficientMaterial"`
}

type moveDTO struct {
	Move      string `json:"move"`
	Piece     string `json:"piece"`
	Captured  string `json:"captured,omitempty"`
	Promotion string `json:"promotion,omitempty"`
	Castle    bool   `json:"castle,omitempty"`
	EnPassant bool   `json:"enPassant,omitempty"`
}

type moveResponse struct {
	Move  moveDTO  `json:"move"`
	State stateDTO `json:"state"`
}

type movesResponse struct {
	Square       string   `json:"square"`
	Destinations []string `json:"destinations"`
}

type listResponse struct {
	Games []string `json:"games"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func lower(s interface{ String() string }) string {
	return strings.ToLower(s.String())
}

func newStateDTO(snap session.Snapshot) stateDTO {
	dto := stateDTO{
		ID:                   snap.ID,
		FEN:                  snap.FEN,
		Turn:                 lower(snap.Turn),
		MoveCount:            snap.MoveCount,
		Pieces:               []pieceDTO{},
		InCheck:              make(map[string]bool, chess.NumColours),
		Outcome:              make(map[string]string, chess.NumColours),
		Over:                 snap.Over,
		History:              snap.History,
		InsufficientMaterial: snap.InsufficientMaterial,
	}
	if dto.History == nil {
		dto.History = []string{}
	}
	for i, p := range snap.Board.Squares {
		if p.Kind == chess.NoKind {
			continue
		}
		dto.Pieces = append(dto.Pieces, pieceDTO{
			Square: chess.SquareAt(i).String(),
			Kind:   lower(p.Kind),
			Colour: lower(p.Colour),
		})
	}
	for c := chess.White; c < chess.NumColours; c++ {
		dto.InCheck[lower(c)] = snap.InCheck[c]
		dto.Outcome[lower(c)] = snap.Outcome[c].String()
	}
	return dto
}

func newMoveDTO(rec *engine.MoveRecord) moveDTO {
	dto := moveDTO{
		Move:      rec.String(),
		Piece:     lower(rec.Kind),
		Castle:    rec.Castle,
		EnPassant: rec.EnPassant,
	}
	if rec.IsCapture() {
		dto.Captured = lower(rec.Captured)
	}
	if rec.IsPromotion() {
		dto.Promotion = lower(rec.Move.Promotion)
	}
	return dto
}

// parse converts the request into squares and a promotion kind.
func (r moveRequest) parse() (from, to chess.Square, promotion chess.Kind, err error) {
	if from, err = chess.ParseSquare(r.From); err != nil {
		return
	}
	if to, err = chess.ParseSquare(r.To); err != nil {
		return
	}
	switch len(r.Promotion) {
	case 0:
	case 1:
		promotion = chess.KindFromLetter(r.Promotion[0])
		if promotion == chess.NoKind || !promotion.IsPromotionChoice() {
			err = errors.Wrapf(errors.ErrInvalidPromotion, "%q", r.Promotion)
		}
	default:
		err = errors.Wrapf(errors.ErrInvalidPromotion, "%q", r.Promotion)
	}
	return
}
