package schedule

import (
	"fmt"
	"github.com/robfig/cron/v3"
	"sync"
	"time"
)

// Scheduler runs a single job on a cron spec in a fixed time zone.
type Scheduler struct {
	cron     *cron.Cron
	location *time.Location
	mu       sync.Mutex
	entryID  cron.EntryID
	started  bool
}

func New(timezone string) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Scheduler{
		// overlapping runs would race on the index document
		cron:     cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		location: loc,
	}, nil
}

// Schedule replaces the current job. spec accepts the standard five field
// format and descriptors such as "@hourly" or "@every 10m".
func (s *Scheduler) Schedule(spec string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
		s.entryID = 0
	}
	id, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", spec, err)
	}
	s.entryID = id
	return nil
}

// Next reports when the job fires next; zero before Start or without a job.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

func (s *Scheduler) Location() *time.Location {
	return s.location
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		s.cron.Start()
		s.started = true
	}
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	ctx := s.cron.Stop()
	s.mu.Unlock()
	<-ctx.Done()
}
