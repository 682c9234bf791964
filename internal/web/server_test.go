package web

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/geom"
	"github.com/tomz197/vectoroids/internal/sound"
)

func startTestServer(t *testing.T, cfg Config) (*httptest.Server, string) {
	t.Helper()

	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	msgType, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if msgType != websocket.BinaryMessage {
		t.Fatalf("message type = %d, expected binary", msgType)
	}
	var env Envelope
	if err := msgpack.Unmarshal(raw, &env); err != nil {
		t.Fatalf("msgpack unmarshal: %v", err)
	}
	return env
}

func sendKey(t *testing.T, conn *websocket.Conn, typ, key string) {
	t.Helper()
	data, err := encode(typ, KeyMsg{Key: key})
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestHTTPEndpoints(t *testing.T) {
	ts, _ := startTestServer(t, Config{})

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{path: "/healthz", status: http.StatusOK, contains: "ok"},
		{path: "/", status: http.StatusOK, contentType: "text/html", contains: "<canvas"},
		{path: "/sounds/fire.wav", status: http.StatusOK, contentType: "audio/wav", contains: "RIFF"},
		{path: "/sounds/saucer", status: http.StatusOK, contentType: "audio/wav", contains: "WAVE"},
		{path: "/sounds/trumpet.wav", status: http.StatusNotFound},
		{path: "/metrics", status: http.StatusOK, contains: "vectoroids_websocket_connections_active"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, expected %d", resp.StatusCode, tt.status)
			}
			if tt.contentType != "" && !strings.HasPrefix(resp.Header.Get("Content-Type"), tt.contentType) {
				t.Errorf("Content-Type = %q, expected %q", resp.Header.Get("Content-Type"), tt.contentType)
			}
			if !bytes.Contains(body, []byte(tt.contains)) {
				t.Errorf("body does not contain %q", tt.contains)
			}
		})
	}
}

func TestWebSocketGame(t *testing.T) {
	_, url := startTestServer(t, Config{})
	conn := dial(t, url)

	env := readEnvelope(t, conn)
	if env.T != MsgInit {
		t.Fatalf("first message = %q, expected init", env.T)
	}
	var init InitMsg
	if err := msgpack.Unmarshal(env.D, &init); err != nil {
		t.Fatal(err)
	}
	if init.Width != geom.CanvasWidth || init.Height != geom.CanvasHeight {
		t.Errorf("canvas = %dx%d", init.Width, init.Height)
	}
	if len(init.Palette) != len(draw.Colors) || init.Palette[draw.Orange] != "#FFA500" {
		t.Errorf("palette = %v", init.Palette)
	}
	if len(init.Sounds) != len(sound.IDs) {
		t.Errorf("sounds = %v", init.Sounds)
	}

	env = readEnvelope(t, conn)
	if env.T != MsgFrame {
		t.Fatalf("second message = %q, expected frame", env.T)
	}
	var frame FrameMsg
	if err := msgpack.Unmarshal(env.D, &frame); err != nil {
		t.Fatal(err)
	}
	if len(frame.Polygons) == 0 || len(frame.Lines)%5 != 0 {
		t.Errorf("frame has %d polygons and %d line ints", len(frame.Polygons), len(frame.Lines))
	}

	sendKey(t, conn, MsgDown, "escape")

	for {
		env = readEnvelope(t, conn)
		if env.T == MsgExit {
			break
		}
	}
	var exit ExitMsg
	if err := msgpack.Unmarshal(env.D, &exit); err != nil {
		t.Fatal(err)
	}
	if exit.Score != 0 {
		t.Errorf("score = %d, expected 0", exit.Score)
	}

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("read after exit error = %v, expected normal close", err)
	}
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	_, url := startTestServer(t, Config{})

	header := http.Header{"Origin": []string{"http://elsewhere.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		t.Fatal("dial succeeded from a foreign origin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %v, expected 403", resp)
	}
}

func TestWebSocketAllowedOrigin(t *testing.T) {
	_, url := startTestServer(t, Config{AllowedOrigins: []string{"http://game.example"}})

	header := http.Header{"Origin": []string{"http://game.example"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.Close()
}

func countSounds(t *testing.T, c *client) map[string]int {
	t.Helper()
	counts := make(map[string]int)
	for {
		select {
		case data := <-c.send:
			var env Envelope
			if err := msgpack.Unmarshal(data, &env); err != nil {
				t.Fatal(err)
			}
			var msg SoundMsg
			if err := msgpack.Unmarshal(env.D, &msg); err != nil {
				t.Fatal(err)
			}
			counts[msg.ID]++
		default:
			return counts
		}
	}
}

func TestClientExclusiveSound(t *testing.T) {
	c := newClient(nil, nil, nil, map[sound.ID]time.Duration{sound.Thrust: 50 * time.Millisecond}, log.New(io.Discard))

	c.playSound(sound.Thrust)
	c.playSound(sound.Thrust)
	c.playSound(sound.Fire)
	c.playSound(sound.Fire)

	counts := countSounds(t, c)
	if counts["thrust"] != 1 {
		t.Errorf("thrust messages = %d, expected 1", counts["thrust"])
	}
	if counts["fire"] != 2 {
		t.Errorf("fire messages = %d, expected 2", counts["fire"])
	}

	time.Sleep(100 * time.Millisecond)
	c.playSound(sound.Thrust)
	if got := countSounds(t, c)["thrust"]; got != 1 {
		t.Errorf("thrust messages after the clip ended = %d, expected 1", got)
	}
}

func TestWebSocketHeldThrustSound(t *testing.T) {
	lib, err := sound.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	_, url := startTestServer(t, Config{Sounds: lib})
	conn := dial(t, url)

	if env := readEnvelope(t, conn); env.T != MsgInit {
		t.Fatalf("first message = %q, expected init", env.T)
	}
	sendKey(t, conn, MsgDown, "space")
	sendKey(t, conn, MsgUp, "space")
	sendKey(t, conn, MsgDown, "up")

	const hold = 500 * time.Millisecond
	thrusts := 0
	conn.SetReadDeadline(time.Now().Add(hold))
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var env Envelope
		if err := msgpack.Unmarshal(raw, &env); err != nil {
			t.Fatal(err)
		}
		if env.T != MsgSound {
			continue
		}
		var msg SoundMsg
		if err := msgpack.Unmarshal(env.D, &msg); err != nil {
			t.Fatal(err)
		}
		if msg.ID == "thrust" {
			thrusts++
		}
	}

	// One clip per clip length, plus one for the tick that started it.
	limit := int(hold/lib.Duration(sound.Thrust)) + 1
	if thrusts == 0 || thrusts > limit {
		t.Errorf("thrust messages while holding up for %v = %d, expected 1..%d", hold, thrusts, limit)
	}
}
