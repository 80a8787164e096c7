package services

import (
	"context"
	"errors"
	"log"
	"time"
)

// SyncScheduler owns the lifecycle of periodic playlist syncs: one run at
// startup, then one per interval, until Stop. A tick that fires while a
// previous run is still executing is skipped by the engine's overlap guard.
type SyncScheduler struct {
	Engine   *SyncEngine
	Interval time.Duration

	stop chan struct{}
	done chan struct{}
}

func NewSyncScheduler(engine *SyncEngine, interval time.Duration) *SyncScheduler {
	return &SyncScheduler{
		Engine:   engine,
		Interval: interval,
	}
}

// Start launches the scheduling loop. Calling Start on a running scheduler
// is a no-op.
func (s *SyncScheduler) Start() {
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		s.runOnce("initial")

		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runOnce("scheduled")
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the scheduling loop and waits for it to exit. An in-flight
// sync run finishes on its own; there is no cancellation of a started run.
func (s *SyncScheduler) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
	s.done = nil
}

func (s *SyncScheduler) runOnce(kind string) {
	summary, err := s.Engine.SyncAllPlaylists(context.Background())
	if err != nil {
		if errors.Is(err, ErrSyncInProgress) {
			log.Printf("Skipping %s playlist sync, previous run still in progress", kind)
			return
		}
		log.Printf("%s playlist sync failed: %v", kind, err)
		return
	}
	log.Printf("%s playlist sync completed: %+v", kind, summary)
}
