package web

import (
	"sort"
	"sync"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/cleaner"
)

// maxRuns bounds the in-memory run store; oldest runs are evicted.
const maxRuns = 100

type storedRun struct {
	Result *cleaner.Result
	seq    uint64
}

// runStore keeps finished runs in memory, keyed by report ID. Runs do
// not survive a restart.
type runStore struct {
	mu   sync.RWMutex
	next uint64
	runs map[string]storedRun
}

func newRunStore() *runStore {
	return &runStore{runs: make(map[string]storedRun)}
}

func (s *runStore) Add(res *cleaner.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.runs[res.Report.ID] = storedRun{Result: res, seq: s.next}
	if len(s.runs) <= maxRuns {
		return
	}
	ordered := s.bySeqLocked()
	for _, r := range ordered[:len(ordered)-maxRuns] {
		delete(s.runs, r.Result.Report.ID)
	}
}

func (s *runStore) Get(id string) (*cleaner.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, false
	}
	return r.Result, true
}

// Recent returns up to n runs, newest first.
func (s *runStore) Recent(n int) []*cleaner.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ordered := s.bySeqLocked()
	out := make([]*cleaner.Result, 0, n)
	for i := len(ordered) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, ordered[i].Result)
	}
	return out
}

// bySeqLocked returns runs oldest first. Callers hold the lock.
func (s *runStore) bySeqLocked() []storedRun {
	all := make([]storedRun, 0, len(s.runs))
	for _, r := range s.runs {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })
	return all
}
