package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	fastws "github.com/fasthttp/websocket"

	"github.com/lgbarn/chesscore/internal/config"
	"github.com/lgbarn/chesscore/internal/engine"
	"github.com/lgbarn/chesscore/internal/errors"
	"github.com/lgbarn/chesscore/internal/session"
	"github.com/lgbarn/chesscore/internal/testutil"
)

func newTestServer(t *testing.T, maxSessions int) *Server {
	t.Helper()
	cfg := config.NewConfigBuilder().
		WithMaxSessions(maxSessions).
		WithVerbosity(0).
		WithLog(io.Discard).
		Build()
	return New(cfg, session.NewManager(cfg))
}

// do sends a request through the app and decodes the JSON reply into out,
// if out is non-nil. It returns the status code.
func do(t *testing.T, s *Server, method, path, body string, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decoding reply: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func createGame(t *testing.T, s *Server, fen string) stateDTO {
	t.Helper()
	body := ""
	if fen != "" {
		body = `{"fen":"` + fen + `"}`
	}
	var state stateDTO
	status := do(t, s, "POST", "/api/games", body, &state)
	testutil.AssertEqual(t, status, 201, "create status")
	return state
}

func TestCreateAndGetGame(t *testing.T) {
	s := newTestServer(t, 0)

	created := createGame(t, s, "")
	testutil.AssertEqual(t, created.FEN, engine.InitialFEN)
	testutil.AssertEqual(t, created.Turn, "white")
	testutil.AssertEqual(t, len(created.Pieces), 32)
	testutil.AssertEqual(t, created.Outcome, map[string]string{"white": "none", "black": "none"})
	testutil.AssertEqual(t, created.History, []string{})

	var got stateDTO
	status := do(t, s, "GET", "/api/games/"+created.ID, "", &got)
	testutil.AssertEqual(t, status, 200)
	testutil.AssertEqual(t, got, created)

	var list listResponse
	do(t, s, "GET", "/api/games", "", &list)
	testutil.AssertEqual(t, list.Games, []string{created.ID})
}

func TestCreateGame_FromFEN(t *testing.T) {
	s := newTestServer(t, 0)
	fen := "4k3/8/8/8/8/8/8/4K2R b K - 0 12"

	state := createGame(t, s, fen)
	testutil.AssertEqual(t, state.FEN, fen)
	testutil.AssertEqual(t, state.Turn, "black")
	testutil.AssertEqual(t, state.MoveCount, 23)
}

func TestCreateGame_Errors(t *testing.T) {
	s := newTestServer(t, 1)

	var e errorResponse
	status := do(t, s, "POST", "/api/games", `{"fen":"not a fen"}`, &e)
	testutil.AssertEqual(t, status, 400)
	testutil.AssertContains(t, e.Error, errors.ErrInvalidFEN.Error())

	status = do(t, s, "POST", "/api/games", `{"fen":`, nil)
	testutil.AssertEqual(t, status, 400, "malformed body")

	createGame(t, s, "")
	status = do(t, s, "POST", "/api/games", "", &e)
	testutil.AssertEqual(t, status, 503, "session limit")
	testutil.AssertContains(t, e.Error, errors.ErrTooManyGames.Error())
}

func TestGetGame_NotFound(t *testing.T) {
	s := newTestServer(t, 0)

	var e errorResponse
	testutil.AssertEqual(t, do(t, s, "GET", "/api/games/nope", "", &e), 404)
	testutil.AssertContains(t, e.Error, errors.ErrGameNotFound.Error())
	testutil.AssertEqual(t, do(t, s, "DELETE", "/api/games/nope", "", nil), 404)
	testutil.AssertEqual(t, do(t, s, "POST", "/api/games/nope/moves", `{"from":"e2","to":"e4"}`, nil), 404)
}

func TestDeleteGame(t *testing.T) {
	s := newTestServer(t, 0)
	id := createGame(t, s, "").ID

	testutil.AssertEqual(t, do(t, s, "DELETE", "/api/games/"+id, "", nil), 204)
	testutil.AssertEqual(t, do(t, s, "GET", "/api/games/"+id, "", nil), 404)
}

func TestLegalMoves(t *testing.T) {
	s := newTestServer(t, 0)
	id := createGame(t, s, "").ID

	tests := []struct {
		square string
		status int
		want   []string
	}{
		{"e2", 200, []string{"e3", "e4"}},
		{"g1", 200, []string{"f3", "h3"}},
		{"e7", 200, []string{}},
		{"e5", 200, []string{}},
		{"z9", 400, nil},
	}

	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			var got movesResponse
			var out interface{} = &got
			if tt.status != 200 {
				out = nil
			}
			status := do(t, s, "GET", "/api/games/"+id+"/moves/"+tt.square, "", out)
			testutil.AssertEqual(t, status, tt.status)
			if tt.status == 200 {
				testutil.AssertEqual(t, got.Destinations, tt.want)
			}
		})
	}
}

func TestMakeMove(t *testing.T) {
	s := newTestServer(t, 0)
	id := createGame(t, s, "").ID

	var resp moveResponse
	status := do(t, s, "POST", "/api/games/"+id+"/moves", `{"from":"e2","to":"e4"}`, &resp)
	testutil.AssertEqual(t, status, 200)
	testutil.AssertEqual(t, resp.Move, moveDTO{Move: "e2e4", Piece: "pawn"})
	testutil.AssertEqual(t, resp.State.Turn, "black")
	testutil.AssertEqual(t, resp.State.History, []string{"e2e4"})
	testutil.AssertEqual(t, resp.State.FEN, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
}

func TestMakeMove_Rejected(t *testing.T) {
	s := newTestServer(t, 0)
	id := createGame(t, s, "").ID
	path := "/api/games/" + id + "/moves"

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"illegal destination", `{"from":"e2","to":"e5"}`, 422},
		{"empty origin", `{"from":"e4","to":"e5"}`, 422},
		{"wrong colour", `{"from":"e7","to":"e5"}`, 422},
		{"bad square", `{"from":"e2","to":"e9"}`, 400},
		{"bad promotion letter", `{"from":"e2","to":"e4","promotion":"k"}`, 400},
		{"long promotion", `{"from":"e2","to":"e4","promotion":"queen"}`, 400},
		{"malformed body", `{"from":`, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, do(t, s, "POST", path, tt.body, nil), tt.status)
		})
	}

	var state stateDTO
	do(t, s, "GET", "/api/games/"+id, "", &state)
	testutil.AssertEqual(t, state.FEN, engine.InitialFEN, "rejected moves changed the game")
}

func TestMakeMove_PromotionAndGameOver(t *testing.T) {
	s := newTestServer(t, 0)
	id := createGame(t, s, "7k/P7/8/8/8/8/8/K7 w - - 0 1").ID
	path := "/api/games/" + id + "/moves"

	var resp moveResponse
	status := do(t, s, "POST", path, `{"from":"a7","to":"a8","promotion":"n"}`, &resp)
	testutil.AssertEqual(t, status, 200)
	testutil.AssertEqual(t, resp.Move.Promotion, "knight")

	id = createGame(t, s, "").ID
	path = "/api/games/" + id + "/moves"
	for _, m := range testutil.FoolsMate {
		body := `{"from":"` + m[:2] + `","to":"` + m[2:] + `"}`
		testutil.AssertEqual(t, do(t, s, "POST", path, body, &resp), 200, m)
	}
	testutil.AssertTrue(t, resp.State.Over)
	testutil.AssertEqual(t, resp.State.Outcome["white"], "checkmate")
	testutil.AssertTrue(t, resp.State.InCheck["white"])

	var e errorResponse
	testutil.AssertEqual(t, do(t, s, "POST", path, `{"from":"a2","to":"a3"}`, &e), 422)
	testutil.AssertContains(t, e.Error, errors.ErrGameOver.Error())
}

func TestWebSocket_RequiresUpgrade(t *testing.T) {
	s := newTestServer(t, 0)
	id := createGame(t, s, "").ID
	testutil.AssertEqual(t, do(t, s, "GET", "/ws/games/"+id, "", nil), 426)
}

func TestWebSocket(t *testing.T) {
	s := newTestServer(t, 0)
	id := createGame(t, s, "").ID

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	testutil.AssertNoError(t, err)
	go s.Serve(ln)
	defer s.Shutdown()

	url := "ws://" + ln.Addr().String() + "/ws/games/" + id
	dial := func() *fastws.Conn {
		conn, _, err := fastws.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial %s: %v", url, err)
		}
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		return conn
	}
	read := func(conn *fastws.Conn, out interface{}) {
		t.Helper()
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
	}

	player := dial()
	defer player.Close()
	watcher := dial()
	defer watcher.Close()

	var state stateDTO
	read(player, &state)
	testutil.AssertEqual(t, state.FEN, engine.InitialFEN)
	read(watcher, &state)
	testutil.AssertEqual(t, state.FEN, engine.InitialFEN)

	// A rejected move is reported to the sender only
	testutil.AssertNoError(t, player.WriteJSON(moveRequest{From: "e2", To: "e5"}))
	var e errorResponse
	read(player, &e)
	testutil.AssertContains(t, e.Error, errors.ErrIllegalDestination.Error())

	testutil.AssertNoError(t, player.WriteJSON(moveRequest{From: "e2", To: "e4"}))
	read(player, &state)
	testutil.AssertEqual(t, state.History, []string{"e2e4"})
	read(watcher, &state)
	testutil.AssertEqual(t, state.History, []string{"e2e4"})
	testutil.AssertEqual(t, state.Turn, "black")

	// Moves made over HTTP reach the sockets as well
	status := do(t, s, "POST", "/api/games/"+id+"/moves", `{"from":"e7","to":"e5"}`, nil)
	testutil.AssertEqual(t, status, 200)
	read(watcher, &state)
	testutil.AssertEqual(t, state.History, []string{"e2e4", "e7e5"})
}

func TestWebSocket_UnknownGame(t *testing.T) {
	s := newTestServer(t, 0)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	testutil.AssertNoError(t, err)
	go s.Serve(ln)
	defer s.Shutdown()

	conn, _, err := fastws.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws/games/nope", nil)
	testutil.AssertNoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var e errorResponse
	testutil.AssertNoError(t, conn.ReadJSON(&e))
	testutil.AssertContains(t, e.Error, errors.ErrGameNotFound.Error())
}

func TestWebSocket_DeleteClosesStream(t *testing.T) {
	s := newTestServer(t, 0)
	id := createGame(t, s, "").ID

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	testutil.AssertNoError(t, err)
	go s.Serve(ln)
	defer s.Shutdown()

	conn, _, err := fastws.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws/games/"+id, nil)
	testutil.AssertNoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var state stateDTO
	testutil.AssertNoError(t, conn.ReadJSON(&state))
	testutil.AssertEqual(t, state.ID, id)

	testutil.AssertEqual(t, do(t, s, "DELETE", "/api/games/"+id, "", nil), 204)

	_, data, err := conn.ReadMessage()
	if err == nil {
		t.Fatalf("stream still open after DELETE, got %s", data)
	}
	if !fastws.IsCloseError(err, fastws.CloseNormalClosure) {
		t.Errorf("ReadMessage() error = %v; want a normal close", err)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.Wrap(errors.ErrGameNotFound, "x"), 404},
		{errors.ErrTooManyGames, 503},
		{errors.ErrInvalidSquare, 400},
		{&errors.MoveError{Err: errors.ErrIllegalDestination}, 422},
		{&errors.MoveError{Err: errors.ErrGameOver}, 422},
		{io.EOF, 500},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, statusFor(tt.err), tt.want, tt.err.Error())
	}
}
