package broadcast

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/drone-dodger/internal/engine"
	"github.com/vovakirdan/drone-dodger/internal/games/dodger"
)

type fakeEngine struct {
	mu     sync.Mutex
	snap   dodger.Snapshot
	resets int
}

func (f *fakeEngine) Latest() dodger.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeEngine) Geometry() dodger.Geometry {
	return dodger.Geometry{ArenaW: 800, ArenaH: 600, CraftX: 100, CraftW: 40, CraftH: 40}
}

func (f *fakeEngine) Reset() {
	f.mu.Lock()
	f.resets++
	f.mu.Unlock()
}

func (f *fakeEngine) Resets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

func (f *fakeEngine) Stats() engine.Stats {
	return engine.Stats{Runs: 3, BestScore: 120, Policy: "largest", TickRate: 30}
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{snap: dodger.Snapshot{RunID: "run-1", Tick: 7, CraftY: 280, Score: 7, Level: 1, Phase: dodger.PhaseRunning}}
}

func newTestServer(t *testing.T, allowReset bool) (*Server, *fakeEngine, *httptest.Server) {
	t.Helper()
	eng := newFakeEngine()
	srv := NewServer(ServerConfig{AllowReset: allowReset}, eng, log.New(io.Discard))
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(func() {
		srv.Hub().Close()
		ts.Close()
	})
	return srv, eng, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return msg
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestWebsocketHelloAndUpdates(t *testing.T) {
	srv, _, ts := newTestServer(t, false)
	conn := dial(t, ts)

	hello := readMessage(t, conn)
	if hello.Type != MsgHello {
		t.Fatalf("first message type = %q, expected hello", hello.Type)
	}
	if hello.Geometry == nil || hello.Geometry.ArenaW != 800 {
		t.Errorf("hello geometry = %+v", hello.Geometry)
	}
	if hello.Snapshot == nil || hello.Snapshot.Tick != 7 {
		t.Errorf("hello snapshot = %+v", hello.Snapshot)
	}

	waitFor(t, func() bool { return srv.Hub().Clients() == 1 }, "client registration")

	srv.Hub().Publish(dodger.Snapshot{RunID: "run-1", Tick: 8, Score: 8, Phase: dodger.PhaseRunning})
	srv.Hub().Publish(dodger.Snapshot{RunID: "run-1", Tick: 9, Score: 8, Phase: dodger.PhaseTerminal})

	first := readMessage(t, conn)
	second := readMessage(t, conn)
	if first.Type != MsgUpdate || first.Snapshot.Tick != 8 {
		t.Errorf("first update = %+v", first)
	}
	if second.Snapshot.Tick != 9 || !second.Snapshot.Terminal() {
		t.Errorf("second update = %+v", second.Snapshot)
	}
}

func TestWebsocketReset(t *testing.T) {
	_, eng, ts := newTestServer(t, true)
	conn := dial(t, ts)
	readMessage(t, conn)

	if err := conn.WriteJSON(Message{Type: MsgReset}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return eng.Resets() == 1 }, "reset request")
}

func TestWebsocketResetDisabled(t *testing.T) {
	srv, eng, ts := newTestServer(t, false)
	conn := dial(t, ts)
	readMessage(t, conn)

	waitFor(t, func() bool { return srv.Hub().Clients() == 1 }, "client registration")
	if err := conn.WriteJSON(Message{Type: MsgReset}); err != nil {
		t.Fatal(err)
	}
	// Messages are read in order, so the reader exits only after handling the reset.
	conn.Close()
	waitFor(t, func() bool { return srv.Hub().Clients() == 0 }, "client removal")

	if eng.Resets() != 0 {
		t.Error("reset should be ignored when disabled")
	}
}

func TestClientDisconnectUnregisters(t *testing.T) {
	srv, _, ts := newTestServer(t, false)
	conn := dial(t, ts)
	readMessage(t, conn)
	waitFor(t, func() bool { return srv.Hub().Clients() == 1 }, "client registration")

	conn.Close()
	waitFor(t, func() bool { return srv.Hub().Clients() == 0 }, "client removal")
}

func TestSlowClientDropped(t *testing.T) {
	h := NewHub(newFakeEngine(), log.New(io.Discard), WithSendBuffer(1))
	c := &client{send: make(chan []byte, 1), id: "slow"}
	h.register(c)

	h.Publish(dodger.Snapshot{Tick: 1})
	if h.Clients() != 1 {
		t.Fatal("client with room in its buffer should stay")
	}
	h.Publish(dodger.Snapshot{Tick: 2})
	if h.Clients() != 0 {
		t.Fatal("client with a full buffer should be dropped")
	}

	<-c.send
	if _, ok := <-c.send; ok {
		t.Error("dropped client's queue should be closed")
	}

	// Removing an already dropped client is a no-op.
	h.unregister(c)
}

func TestGetSnapshot(t *testing.T) {
	_, _, ts := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/snapshot")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["run_id"] != "run-1" || body["phase"] != "running" || body["score"] != float64(7) {
		t.Errorf("snapshot body = %v", body)
	}
	if _, ok := body["target"]; ok {
		t.Error("missing target should be omitted")
	}
}

func TestPostReset(t *testing.T) {
	tests := []struct {
		name       string
		allow      bool
		wantStatus int
		wantResets int
	}{
		{"allowed", true, http.StatusAccepted, 1},
		{"disabled", false, http.StatusForbidden, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, eng, ts := newTestServer(t, tc.allow)

			resp, err := http.Post(ts.URL+"/reset", "application/json", nil)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()

			if resp.StatusCode != tc.wantStatus {
				t.Errorf("status = %d, expected %d", resp.StatusCode, tc.wantStatus)
			}
			if eng.Resets() != tc.wantResets {
				t.Errorf("resets = %d, expected %d", eng.Resets(), tc.wantResets)
			}
		})
	}
}

func TestStatsAndHealth(t *testing.T) {
	_, _, ts := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/stats")
	if err != nil {
		t.Fatal(err)
	}
	var stats StatsResponse
	err = json.NewDecoder(resp.Body).Decode(&stats)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Engine.Runs != 3 || stats.Engine.BestScore != 120 || stats.Clients != 0 {
		t.Errorf("stats = %+v", stats)
	}

	resp, err = http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/geometry")
	if err != nil {
		t.Fatal(err)
	}
	var geo dodger.Geometry
	err = json.NewDecoder(resp.Body).Decode(&geo)
	resp.Body.Close()
	if err != nil || geo.ArenaH != 600 {
		t.Errorf("geometry = %+v, err = %v", geo, err)
	}
}
