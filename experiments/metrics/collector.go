package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Algorithm  string
	Goroutines int
	Duration   time.Duration
	Iterations int
	Trees      int
	Samples    int
	Playouts   int // Simulations that ran past the expanded node
	Shortcut   bool
}

type MoveMetric struct {
	Round  int
	Step   int
	Player int // Player ID
	Card   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player ID
	Winner         int // Player ID
	Rounds         int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(algorithm string, goroutines int)
	SetShortcut(value bool)
	AddIteration()
	AddTree()
	AddSample()
	AddPlayout()
	Complete() SearchMetric
}

type collector struct {
	algorithm  string
	goroutines int
	startTime  time.Time
	iterations atomic.Int32
	trees      atomic.Int32
	samples    atomic.Int32
	playouts   atomic.Int32
	shortcut   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(algorithm string, goroutines int) {
	m.startTime = time.Now()
	m.algorithm = algorithm
	m.goroutines = goroutines
	m.iterations.Store(0)
	m.trees.Store(0)
	m.samples.Store(0)
	m.playouts.Store(0)
	m.shortcut.Store(false)
}

func (m *collector) SetShortcut(value bool) {
	m.shortcut.Store(value)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddTree() {
	m.trees.Add(1)
}

func (m *collector) AddSample() {
	m.samples.Add(1)
}

func (m *collector) AddPlayout() {
	m.playouts.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm:  m.algorithm,
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Iterations: int(m.iterations.Load()),
		Trees:      int(m.trees.Load()),
		Samples:    int(m.samples.Load()),
		Playouts:   int(m.playouts.Load()),
		Shortcut:   m.shortcut.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string, goroutines int) {}
func (m *dummyCollector) SetShortcut(value bool)                 {}
func (m *dummyCollector) AddIteration()                          {}
func (m *dummyCollector) AddTree()                               {}
func (m *dummyCollector) AddSample()                             {}
func (m *dummyCollector) AddPlayout()                            {}
func (m *dummyCollector) Complete() SearchMetric                 { return SearchMetric{} }
