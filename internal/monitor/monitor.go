package monitor

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shippu/internal/agent"
)

// maxHistory bounds the generation summaries kept in memory.
const maxHistory = 512

// Status is the run summary served at /api/status.
type Status struct {
	RunID       string               `json:"run_id,omitempty"`
	Level       string               `json:"level"`
	Population  int                  `json:"population"`
	Generation  int                  `json:"generation"`
	Episodes    int                  `json:"episodes"`
	Best        float64              `json:"best"`
	BestAgent   int                  `json:"best_agent"`
	Mean        float64              `json:"mean"`
	LastEpisode *agent.EpisodeReport `json:"last_episode,omitempty"`
	Clients     int                  `json:"clients"`
	StartedAt   time.Time            `json:"started_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// Options describe the run being monitored.
type Options struct {
	RunID      string
	Level      string
	Population int
	Origins    []string // WebSocket and CORS origins; nil means DefaultOrigins
	Logger     *log.Logger
}

// Monitor records trainer progress. It implements agent.Observer; the
// trainer calls it from its own goroutine while HTTP handlers read it.
type Monitor struct {
	metrics *Metrics
	hub     *Hub
	logger  *log.Logger
	origins []string

	mu      sync.RWMutex
	status  Status
	history []agent.GenerationReport
}

var _ agent.Observer = (*Monitor)(nil)

// New creates a monitor for one training run.
func New(opts Options) *Monitor {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	metrics := NewMetrics()
	now := time.Now()
	return &Monitor{
		metrics: metrics,
		hub:     NewHub(opts.Origins, metrics, logger),
		logger:  logger,
		origins: opts.Origins,
		status: Status{
			RunID:      opts.RunID,
			Level:      opts.Level,
			Population: opts.Population,
			StartedAt:  now,
			UpdatedAt:  now,
		},
	}
}

// Metrics returns the monitor's collectors.
func (m *Monitor) Metrics() *Metrics { return m.metrics }

// Hub returns the live feed.
func (m *Monitor) Hub() *Hub { return m.hub }

// EpisodeFinished updates the counters and pushes the report to clients.
func (m *Monitor) EpisodeFinished(rep agent.EpisodeReport) {
	m.metrics.episodes.WithLabelValues(string(rep.Kind)).Inc()
	m.metrics.ticks.Add(float64(rep.Result.Ticks))
	switch rep.Kind {
	case agent.EpisodeScore:
		m.metrics.fitness.Observe(rep.Fitness.Score)
	case agent.EpisodeTrain:
		if rep.Loss > 0 {
			m.metrics.loss.Observe(rep.Loss)
		}
	}

	m.mu.Lock()
	m.status.Episodes++
	m.status.LastEpisode = &rep
	m.status.UpdatedAt = time.Now()
	m.mu.Unlock()

	m.hub.Broadcast("episode", rep)
}

// GenerationFinished records the generation summary and pushes it to clients.
func (m *Monitor) GenerationFinished(rep agent.GenerationReport) {
	m.metrics.generation.Set(float64(rep.Generation))
	m.metrics.bestFitness.Set(rep.Best)
	m.metrics.meanFitness.Set(rep.Mean)

	m.mu.Lock()
	m.status.Generation = rep.Generation
	m.status.Best = rep.Best
	m.status.BestAgent = rep.BestAgent
	m.status.Mean = rep.Mean
	m.status.UpdatedAt = time.Now()
	m.history = append(m.history, rep)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.mu.Unlock()

	m.logger.Debug("generation published", "generation", rep.Generation, "clients", m.hub.ClientCount())
	m.hub.Broadcast("generation", rep)
}

// Status returns the current run summary.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	st := m.status
	m.mu.RUnlock()
	st.Clients = m.hub.ClientCount()
	return st
}

// Generations returns up to limit of the most recent generation summaries,
// oldest first. A limit of 0 or less returns all of them.
func (m *Monitor) Generations(limit int) []agent.GenerationReport {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := 0
	if limit > 0 && len(m.history) > limit {
		start = len(m.history) - limit
	}
	out := make([]agent.GenerationReport, len(m.history)-start)
	copy(out, m.history[start:])
	return out
}
