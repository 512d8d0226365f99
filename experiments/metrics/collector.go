package metrics

import (
	"time"
)

type SearchMetric struct {
	Depth    int
	Ordering string
	Duration time.Duration
	Nodes    int // Positions visited, root included
	Leaves   int // Static evaluations
	Cutoffs  int // Alpha-beta prunes
	Value    int // Backed up root value
}

type MoveMetric struct {
	Step   int
	Player int // Token of the mover
	Column int
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer int // Token of the first mover
	Winner         int // Token of the winner, 0 on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector records statistics of a single search. Searches are sequential,
// so implementations need no synchronization.
type Collector interface {
	Start(depth int, ordering string)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete(value int) SearchMetric
}

type collector struct {
	depth     int
	ordering  string
	startTime time.Time
	nodes     int
	leaves    int
	cutoffs   int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int, ordering string) {
	*m = collector{
		depth:     depth,
		ordering:  ordering,
		startTime: time.Now(),
	}
}

func (m *collector) AddNode() {
	m.nodes++
}

func (m *collector) AddLeaf() {
	m.leaves++
}

func (m *collector) AddCutoff() {
	m.cutoffs++
}

func (m *collector) Complete(value int) SearchMetric {
	return SearchMetric{
		Depth:    m.depth,
		Ordering: m.ordering,
		Duration: time.Since(m.startTime),
		Nodes:    m.nodes,
		Leaves:   m.leaves,
		Cutoffs:  m.cutoffs,
		Value:    value,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int, ordering string) {}
func (m *dummyCollector) AddNode()                         {}
func (m *dummyCollector) AddLeaf()                         {}
func (m *dummyCollector) AddCutoff()                       {}
func (m *dummyCollector) Complete(value int) SearchMetric  { return SearchMetric{Value: value} }
