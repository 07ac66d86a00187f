// Package errors provides sentinel errors and error types for the chess core.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrOutOfBounds indicates a relative square lookup fell off the board.
	// Move generators recover from it locally by ending the current ray.
	ErrOutOfBounds = errors.New("square out of bounds")

	// ErrNoPieceAtOrigin indicates a move was requested from an empty square.
	ErrNoPieceAtOrigin = errors.New("no piece at origin")

	// ErrIllegalDestination indicates the destination is not a legal move.
	ErrIllegalDestination = errors.New("illegal destination")

	// ErrInvalidSquare indicates malformed square coordinates.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidMove indicates malformed coordinate move text.
	ErrInvalidMove = errors.New("invalid move")

	// ErrInvalidPromotion indicates a promotion to a kind other than N, B, R or Q.
	ErrInvalidPromotion = errors.New("invalid promotion piece")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrGameOver indicates a move was attempted after checkmate or stalemate.
	ErrGameOver = errors.New("game is over")

	// ErrGameNotFound indicates an unknown session id.
	ErrGameNotFound = errors.New("game not found")

	// ErrTooManyGames indicates the session limit has been reached.
	ErrTooManyGames = errors.New("too many games")

	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError wraps errors with move context: the squares involved and the
// half-move index at which the attempt was made. It implements the error
// interface and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err  error  // The underlying error
	From string // Origin square in coordinate form (if known)
	To   string // Destination square in coordinate form (if known)
	Ply  int    // Half-move index when the error occurred
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("move %s%s", e.From, e.To))
	}
	parts = append(parts, fmt.Sprintf("ply %d", e.Ply))

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error for FEN or coordinate input.
type ParseError struct {
	Err      error  // The underlying error
	Input    string // The text being parsed
	Field    string // Which field failed (e.g. "placement", "side to move")
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with field and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
