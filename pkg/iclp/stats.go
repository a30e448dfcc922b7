package iclp

import (
	"sync"
	"time"

	"github.com/gitrdm/iclp/internal/telemetry"
)

// engineStats accumulates the engine's propagation and search counters
// locally (cheap, mutex-guarded, always on) and optionally forwards each
// event to an external telemetry.Recorder (Prometheus).
type engineStats struct {
	mu sync.Mutex

	narrowings    int64
	failures      int64
	nodesExplored int64
	backtracks    int64
	solutions     int64
	peakQueue     int

	searchStart time.Time
	searchTime  time.Duration

	rec telemetry.Recorder
}

func newEngineStats() *engineStats { return &engineStats{} }

func (s *engineStats) setRecorder(r telemetry.Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = r
}

func (s *engineStats) recordNarrowing() {
	s.mu.Lock()
	s.narrowings++
	r := s.rec
	s.mu.Unlock()
	if r != nil {
		r.Narrowing()
	}
}

func (s *engineStats) recordFailure() {
	s.mu.Lock()
	s.failures++
	r := s.rec
	s.mu.Unlock()
	if r != nil {
		r.Failure()
	}
}

func (s *engineStats) recordQueueSize(n int) {
	s.mu.Lock()
	if n > s.peakQueue {
		s.peakQueue = n
	}
	r := s.rec
	s.mu.Unlock()
	if r != nil {
		r.QueueSize(n)
	}
}

func (s *engineStats) recordNode() {
	s.mu.Lock()
	s.nodesExplored++
	r := s.rec
	s.mu.Unlock()
	if r != nil {
		r.Node()
	}
}

func (s *engineStats) recordBacktrack() {
	s.mu.Lock()
	s.backtracks++
	r := s.rec
	s.mu.Unlock()
	if r != nil {
		r.Backtrack()
	}
}

func (s *engineStats) recordSolution() {
	s.mu.Lock()
	s.solutions++
	r := s.rec
	s.mu.Unlock()
	if r != nil {
		r.Solution()
	}
}

func (s *engineStats) startSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchStart = time.Now()
}

func (s *engineStats) finishSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.searchStart.IsZero() {
		s.searchTime += time.Since(s.searchStart)
		s.searchStart = time.Time{}
	}
}

// Statistics is a point-in-time snapshot of the engine's counters.
type Statistics struct {
	NarrowingOps  int64
	Failures      int64
	NodesExplored int64
	Backtracks    int64
	Solutions     int64
	PeakQueueSize int
	SearchTime    time.Duration
}

func (s *engineStats) snapshot() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Statistics{
		NarrowingOps:  s.narrowings,
		Failures:      s.failures,
		NodesExplored: s.nodesExplored,
		Backtracks:    s.backtracks,
		Solutions:     s.solutions,
		PeakQueueSize: s.peakQueue,
		SearchTime:    s.searchTime,
	}
}

func (s *engineStats) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.narrowings, s.failures, s.nodesExplored, s.backtracks, s.solutions = 0, 0, 0, 0, 0
	s.peakQueue = 0
	s.searchStart, s.searchTime = time.Time{}, 0
}
