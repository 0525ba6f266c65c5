package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-shippu/internal/agent"
)

func newTestMonitor() *Monitor {
	return New(Options{RunID: "run-1", Level: "stage1", Population: 4})
}

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func generation(n int, best float64) agent.GenerationReport {
	return agent.GenerationReport{
		Generation: n,
		Fitness:    []float64{best, best / 2},
		Best:       best,
		BestAgent:  0,
		Mean:       best * 0.75,
	}
}

func TestHealth(t *testing.T) {
	r := NewRouter(newTestMonitor(), RouterConfig{DisableLogging: true})

	rec := serve(t, r, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("body = %q, want OK", rec.Body.String())
	}
}

func TestStatusTracksReports(t *testing.T) {
	m := newTestMonitor()
	r := NewRouter(m, RouterConfig{DisableLogging: true})

	m.EpisodeFinished(agent.EpisodeReport{
		Generation: 1, Agent: 1, Kind: agent.EpisodeTrain,
		Result: agent.EpisodeResult{Ticks: 120}, Loss: 0.25,
	})
	m.EpisodeFinished(agent.EpisodeReport{
		Generation: 1, Agent: 1, Kind: agent.EpisodeScore,
		Result: agent.EpisodeResult{Ticks: 80}, Fitness: agent.Fitness{Score: 42},
	})
	m.GenerationFinished(generation(1, 42))

	rec := serve(t, r, "/api/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var st Status
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.RunID != "run-1" || st.Level != "stage1" || st.Population != 4 {
		t.Errorf("run fields = %+v", st)
	}
	if st.Episodes != 2 {
		t.Errorf("Episodes = %d, want 2", st.Episodes)
	}
	if st.Generation != 1 || st.Best != 42 || st.Mean != 31.5 {
		t.Errorf("generation fields = %d %v %v", st.Generation, st.Best, st.Mean)
	}
	if st.LastEpisode == nil || st.LastEpisode.Kind != agent.EpisodeScore {
		t.Errorf("LastEpisode = %+v, want the scoring episode", st.LastEpisode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := newTestMonitor()
	r := NewRouter(m, RouterConfig{DisableLogging: true})

	m.EpisodeFinished(agent.EpisodeReport{Kind: agent.EpisodeTrain, Result: agent.EpisodeResult{Ticks: 100}})
	m.EpisodeFinished(agent.EpisodeReport{Kind: agent.EpisodeTrain, Result: agent.EpisodeResult{Ticks: 50}})
	m.EpisodeFinished(agent.EpisodeReport{Kind: agent.EpisodeScore, Result: agent.EpisodeResult{Ticks: 10}})
	m.GenerationFinished(generation(3, 8))

	rec := serve(t, r, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`shippu_episodes_total{kind="train"} 2`,
		`shippu_episodes_total{kind="score"} 1`,
		`shippu_ticks_total 160`,
		`shippu_generation 3`,
		`shippu_best_fitness 8`,
		`shippu_mean_fitness 6`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestMetricsAreIsolated(t *testing.T) {
	a := newTestMonitor()
	b := newTestMonitor()
	a.EpisodeFinished(agent.EpisodeReport{Kind: agent.EpisodeTrain, Result: agent.EpisodeResult{Ticks: 7}})

	body := serve(t, NewRouter(b, RouterConfig{DisableLogging: true}), "/metrics").Body.String()
	if strings.Contains(body, `shippu_ticks_total 7`) {
		t.Error("second monitor sees the first monitor's ticks")
	}
}

func TestGenerations(t *testing.T) {
	m := newTestMonitor()
	r := NewRouter(m, RouterConfig{DisableLogging: true})
	for i := 1; i <= 5; i++ {
		m.GenerationFinished(generation(i, float64(i)))
	}

	tests := []struct {
		name  string
		path  string
		code  int
		first int
		count int
	}{
		{"all", "/api/generations", http.StatusOK, 1, 5},
		{"limited", "/api/generations?limit=2", http.StatusOK, 4, 2},
		{"limit above size", "/api/generations?limit=50", http.StatusOK, 1, 5},
		{"bad limit", "/api/generations?limit=x", http.StatusBadRequest, 0, 0},
		{"negative limit", "/api/generations?limit=-1", http.StatusBadRequest, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, r, tt.path)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d", rec.Code, tt.code)
			}
			if tt.code != http.StatusOK {
				return
			}
			var got []agent.GenerationReport
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got) != tt.count {
				t.Fatalf("len = %d, want %d", len(got), tt.count)
			}
			if got[0].Generation != tt.first {
				t.Errorf("first generation = %d, want %d", got[0].Generation, tt.first)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	r := NewRouter(newTestMonitor(), RouterConfig{RequestsPerSecond: 1, Burst: 1, DisableLogging: true})

	if rec := serve(t, r, "/api/status"); rec.Code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", rec.Code)
	}
	rec := serve(t, r, "/api/status")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
	if rec := serve(t, r, "/health"); rec.Code != http.StatusOK {
		t.Errorf("/health is rate limited: %d", rec.Code)
	}
}

func TestAllowedOrigin(t *testing.T) {
	tests := []struct {
		origin   string
		patterns []string
		want     bool
	}{
		{"", nil, true},
		{"http://localhost:3000", nil, true},
		{"http://127.0.0.1:8080", nil, true},
		{"http://evil.example", nil, false},
		{"http://localhostevil:1", nil, false},
		{"https://dash.example", []string{"https://dash.example"}, true},
		{"https://other.example", []string{"https://dash.example"}, false},
		{"https://any.example", []string{"*"}, true},
	}

	for _, tt := range tests {
		if got := allowedOrigin(tt.origin, tt.patterns); got != tt.want {
			t.Errorf("allowedOrigin(%q, %v) = %v, want %v", tt.origin, tt.patterns, got, tt.want)
		}
	}
}

func TestWebSocketFeed(t *testing.T) {
	m := newTestMonitor()
	ts := httptest.NewServer(NewRouter(m, RouterConfig{DisableLogging: true}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Hub().Run(ctx)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for m.Hub().ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	m.GenerationFinished(generation(7, 99))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg struct {
		Event string                 `json:"event"`
		Data  agent.GenerationReport `json:"data"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Event != "generation" || msg.Data.Generation != 7 || msg.Data.Best != 99 {
		t.Errorf("message = %+v", msg)
	}
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	m := newTestMonitor()
	ts := httptest.NewServer(NewRouter(m, RouterConfig{DisableLogging: true}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Hub().Run(ctx)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	header := http.Header{"Origin": []string{"http://evil.example"}}
	if conn, _, err := websocket.DefaultDialer.Dial(url, header); err == nil {
		conn.Close()
		t.Fatal("dial succeeded from a foreign origin")
	}
}

func TestServerStartShutdown(t *testing.T) {
	m := newTestMonitor()
	s := NewServer("127.0.0.1:0", m, RouterConfig{DisableLogging: true})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	resp, err := http.Get("http://" + s.Addr() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if _, err := http.Get("http://" + s.Addr() + "/health"); err == nil {
		t.Error("server still answering after Shutdown")
	}
}
