// Package scheduler runs ingestion on a fixed interval so the local mirror
// stays close to the upstream dataset without manual syncs.
package scheduler

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Becky0713/NOAH/internal/ingest"
)

// Runner is the part of the pipeline the scheduler drives.
type Runner interface {
	Run(ctx context.Context) (*ingest.Result, error)
}

// Scheduler triggers ingestion runs on startup and on a fixed interval.
// Runs never overlap: the job mutex serializes scheduled and manual syncs.
type Scheduler struct {
	runner       Runner
	logger       *logrus.Logger
	interval     time.Duration
	runOnStartup bool
	stopChan     chan struct{}
	wg           sync.WaitGroup
	jobMutex     sync.Mutex
}

func NewScheduler(runner Runner, logger *logrus.Logger, interval time.Duration, runOnStartup bool) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		runner:       runner,
		logger:       logger,
		interval:     interval,
		runOnStartup: runOnStartup,
		stopChan:     make(chan struct{}),
	}
}

// Start begins the scheduling loop. With a zero interval and no startup
// run there is nothing to do and Start returns without spawning anything.
func (s *Scheduler) Start() {
	if s.interval <= 0 && !s.runOnStartup {
		s.logger.Info("Scheduler disabled, syncs are manual only")
		return
	}

	s.wg.Add(1)
	go s.runScheduler()
}

func (s *Scheduler) runScheduler() {
	defer s.wg.Done()

	if s.runOnStartup {
		s.logger.Info("Running startup sync")
		s.runOnce()
	}

	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.logger.Info("Starting scheduled sync")
			s.runOnce()
		}
	}
}

// TriggerSync runs one sync immediately, for manual invocations. Returns
// false without running when another sync is already in flight.
func (s *Scheduler) TriggerSync() bool {
	if !s.jobMutex.TryLock() {
		return false
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.jobMutex.Unlock()
		s.execute()
	}()
	return true
}

func (s *Scheduler) runOnce() {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()
	s.execute()
}

func (s *Scheduler) execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-s.stopChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	result, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Sync run failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"pages":     result.Pages,
		"processed": result.Processed,
		"skipped":   result.Skipped,
	}).Info("Sync run finished")
}

// Stop cancels any in-flight run and waits for the loop to exit.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
