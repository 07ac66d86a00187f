// Package testutil provides shared assertions and game fixtures for tests
// outside the engine package.
package testutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lgbarn/chesscore/internal/chess"
)

// fail reports a failure, prefixed by the optional message.
func fail(t testing.TB, msgAndArgs []interface{}, format string, args ...interface{}) {
	t.Helper()
	text := fmt.Sprintf(format, args...)
	if msg := formatMessage(msgAndArgs...); msg != "" {
		text = msg + ": " + text
	}
	t.Error(text)
}

// AssertEqual compares got and want using cmp.Diff and reports differences.
// The msgAndArgs are optional and provide additional context if the assertion fails.
func AssertEqual(t testing.TB, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		fail(t, msgAndArgs, "mismatch (-want +got):\n%s", diff)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t testing.TB, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		fail(t, msgAndArgs, "unexpected error: %v", err)
	}
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(t testing.TB, err, target error, msgAndArgs ...interface{}) {
	t.Helper()
	if !errors.Is(err, target) {
		fail(t, msgAndArgs, "error = %v, want %v", err, target)
	}
}

// AssertContains fails if substr is not found in got.
func AssertContains(t testing.TB, got, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if !strings.Contains(got, substr) {
		fail(t, msgAndArgs, "%q does not contain %q", got, substr)
	}
}

// AssertTrue fails if condition is false.
func AssertTrue(t testing.TB, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !condition {
		fail(t, msgAndArgs, "expected true but got false")
	}
}

// AssertFalse fails if condition is true.
func AssertFalse(t testing.TB, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if condition {
		fail(t, msgAndArgs, "expected false but got true")
	}
}

// AssertSquares compares a destination set against square names, in any order.
func AssertSquares(t testing.TB, got chess.SquareSet, want []string, msgAndArgs ...interface{}) {
	t.Helper()
	var set chess.SquareSet
	for _, name := range want {
		sq, err := chess.ParseSquare(name)
		if err != nil {
			t.Fatalf("bad square %q in expectation: %v", name, err)
		}
		set = set.Add(sq)
	}
	if got != set {
		fail(t, msgAndArgs, "squares = %v, want %v", got.Strings(), set.Strings())
	}
}

// AssertUnchanged fails if two board snapshots differ.
func AssertUnchanged(t testing.TB, before, after chess.BoardState, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(before, after); diff != "" {
		fail(t, msgAndArgs, "board changed (-before +after):\n%s", diff)
	}
}

// formatMessage formats optional message arguments into a string.
func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if s, ok := msgAndArgs[0].(string); ok {
		if len(msgAndArgs) == 1 {
			return s
		}
		return fmt.Sprintf(s, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs[0])
}
