package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/Becky0713/NOAH/internal/ingest"
)

// fakeRunner counts runs and can block until released to simulate a slow
// sync.
type fakeRunner struct {
	runs    int32
	release chan struct{}
}

func (f *fakeRunner) Run(ctx context.Context) (*ingest.Result, error) {
	atomic.AddInt32(&f.runs, 1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &ingest.Result{Processed: 1}, nil
}

// blockingRunner holds a run open until released, ignoring cancellation, so
// tests can observe whether shutdown waits for it.
type blockingRunner struct {
	started  chan struct{}
	release  chan struct{}
	finished int32
}

func (r *blockingRunner) Run(ctx context.Context) (*ingest.Result, error) {
	close(r.started)
	<-r.release
	atomic.StoreInt32(&r.finished, 1)
	return &ingest.Result{Processed: 1}, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestSchedulerStartupRun(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, quietLogger(), 0, true)

	s.Start()
	s.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&runner.runs))
}

func TestSchedulerDisabled(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, quietLogger(), 0, false)

	s.Start()
	s.Stop()

	assert.Equal(t, int32(0), atomic.LoadInt32(&runner.runs))
}

func TestTriggerSync(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, quietLogger(), 0, false)

	assert.True(t, s.TriggerSync())

	// wait for the background run to finish
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runner.runs) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestStopWaitsForManualSync(t *testing.T) {
	runner := &blockingRunner{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewScheduler(runner, quietLogger(), 0, false)

	assert.True(t, s.TriggerSync())
	<-runner.started

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(runner.release)
	}()

	s.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&runner.finished))
}

func TestTriggerSyncRejectsConcurrentRuns(t *testing.T) {
	runner := &fakeRunner{release: make(chan struct{})}
	s := NewScheduler(runner, quietLogger(), 0, false)

	assert.True(t, s.TriggerSync())

	// wait until the first run is in flight
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runner.runs) == 1
	}, time.Second, 10*time.Millisecond)

	assert.False(t, s.TriggerSync())

	close(runner.release)
	assert.Eventually(t, func() bool {
		return s.TriggerSync()
	}, time.Second, 10*time.Millisecond)
}
