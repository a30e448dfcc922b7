package iclp

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"
)

// changeKind names what a trail entry undoes: the three kinds of
// backtrackable writes the store performs — bounds updates, watcher-list
// growth, and persistence flag writes.
type changeKind int

const (
	changeBounds changeKind = iota
	changeWatcher
	changePersistent
)

// change is one trail entry: enough information to undo a single mutation
// to a single node.
type change struct {
	kind   changeKind
	id     NodeID
	prevIv Interval // for changeBounds
	nWatch int      // for changeWatcher: watcher-list length before append
}

// Store is the backtrackable, single-threaded node store: node records
// plus the agenda and trail that drive fixed-point propagation and
// search. It is a mutex-guarded map of records, an explicit FIFO queue
// (agenda), and a trail of undoable changes with snapshot()/undo(mark).
type Store struct {
	mu     sync.Mutex
	nodes  map[NodeID]*node
	nextID NodeID
	agenda []NodeID
	trail  []change
	cfg    Config
	log    *logrus.Entry
	stats  *engineStats

	// lastSmall records whether the most recently applied narrowing failed
	// the "significant narrowing" test. The scheduler consults this only
	// when its iteration budget is exhausted, to decide whether early
	// termination is acceptable — it never gates whether watchers wake.
	lastSmall bool
}

// NewStore creates an empty, configured Store.
func NewStore(cfg Config, log *logrus.Entry, stats *engineStats) *Store {
	return &Store{
		nodes: make(map[NodeID]*node),
		cfg:   cfg,
		log:   log,
		stats: stats,
	}
}

// declare registers a fresh leaf node (a declared variable, op==OpNone) or
// a compiler-introduced intermediate/operator node and returns its ID.
func (s *Store) declare(name string, op Op, args []NodeID, iv Interval) NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.nodes[id] = &node{id: id, name: name, op: op, args: args, iv: iv}
	for _, a := range args {
		s.addWatcherLocked(a, id)
	}
	return id
}

func (s *Store) get(id NodeID) Interval {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nodes[id].iv
}

func (s *Store) node(id NodeID) *node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nodes[id]
}

// addWatcher registers dependent as a watcher of id, deduplicated by
// structural (already-present) check, and trails the append so it can be
// undone on backtrack.
func (s *Store) addWatcher(id, dependent NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addWatcherLocked(id, dependent)
}

func (s *Store) addWatcherLocked(id, dependent NodeID) {
	n := s.nodes[id]
	for _, w := range n.watchers {
		if w == dependent {
			return
		}
	}
	s.trail = append(s.trail, change{kind: changeWatcher, id: id, nWatch: len(n.watchers)})
	n.watchers = append(n.watchers, dependent)
}

// narrow intersects id's current interval with iv, trails the change, and
// enqueues id's watchers. Every real change enqueues every watcher; the
// narrowing-threshold heuristic does not gate this — it only informs the
// scheduler's decision once its iteration budget is exhausted (see
// lastSmall / significant below).
func (s *Store) narrow(id NodeID, iv Interval) (Interval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.nodes[id]
	result, changed := n.iv.Intersect(iv)
	if !changed {
		return n.iv, nil
	}

	old := n.iv
	s.trail = append(s.trail, change{kind: changeBounds, id: id, prevIv: old})
	n.iv = result
	s.stats.recordNarrowing()
	s.lastSmall = !s.significant(old, result)

	if result.Empty() {
		s.log.WithField("node", id).Debug("interval narrowed to empty: inconsistent")
		s.stats.recordFailure()
		return result, ErrInconsistent
	}

	if n.trace != traceNone {
		s.emitTrace(n, old, result)
	}

	for _, w := range n.watchers {
		s.enqueueLocked(w)
	}
	return result, nil
}

// lastNarrowingWasSmall reports whether the most recently applied
// narrowing failed the significant-narrowing test, for the scheduler's
// budget-exhaustion policy.
func (s *Store) lastNarrowingWasSmall() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSmall
}

// significant reports whether narrowing from old to new reduced the width
// by at least Config.NarrowingThreshold: the throttle that keeps a
// diminishing-returns narrowing round (a fixed point that narrows by a
// shrinking epsilon forever) from running past the iteration budget.
func (s *Store) significant(old, new Interval) bool {
	ow := old.Width()
	if ow <= 0 || math.IsInf(ow, 1) {
		return true
	}
	reduction := (ow - new.Width()) / ow
	return reduction >= s.cfg.NarrowingThreshold
}

func (s *Store) emitTrace(n *node, old, result Interval) {
	fields := logrus.Fields{"node": n.id, "name": n.name, "from": old.String(), "to": result.String()}
	if n.trace == traceTrace {
		s.log.WithFields(fields).Info("interval narrowed")
	} else {
		s.log.WithFields(fields).Debug("interval narrowed")
	}
}

func (s *Store) enqueueLocked(id NodeID) {
	n := s.nodes[id]
	if n.linked || n.persistent {
		return
	}
	n.linked = true
	s.agenda = append(s.agenda, id)
	s.stats.recordQueueSize(len(s.agenda))
}

func (s *Store) enqueue(id NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueueLocked(id)
}

func (s *Store) dequeue() (NodeID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.agenda) == 0 {
		return 0, false
	}
	id := s.agenda[0]
	s.agenda = s.agenda[1:]
	s.nodes[id].linked = false
	return id, true
}

func (s *Store) agendaEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.agenda) == 0
}

// markPersistent records that id's contractor has proven no further
// narrowing is possible; the scheduler will never re-enqueue id again.
func (s *Store) markPersistent(id NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.nodes[id]
	if n.persistent {
		return
	}
	s.trail = append(s.trail, change{kind: changePersistent, id: id})
	n.persistent = true
}

// snapshot returns a mark that undo can later roll the trail back to.
func (s *Store) snapshot() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trail)
}

// undo rolls every trailed write back to mark, restoring bounds,
// watcher-list lengths, and persistence flags exactly as they were.
func (s *Store) undo(mark int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.trail) - 1; i >= mark; i-- {
		c := s.trail[i]
		n := s.nodes[c.id]
		switch c.kind {
		case changeBounds:
			n.iv = c.prevIv
		case changeWatcher:
			n.watchers = n.watchers[:c.nWatch]
		case changePersistent:
			n.persistent = false
		}
	}
	s.trail = s.trail[:mark]
	s.agenda = nil
	for _, n := range s.nodes {
		n.linked = false
	}
}

func (s *Store) watch(id NodeID, action traceAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[id].trace = action
}
