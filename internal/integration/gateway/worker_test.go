package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// countingRemote records pushes and can be told to fail.
type countingRemote struct {
	mu      sync.Mutex
	fail    bool
	pushed  int
	release chan struct{}
}

func (r *countingRemote) Load(context.Context) (*entity.Snapshot, error) {
	return &entity.Snapshot{}, nil
}

func (r *countingRemote) SaveData(context.Context, []entity.MonthlyRecord) error {
	if r.release != nil {
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushed++
	if r.fail {
		return errors.New("remote down")
	}
	return nil
}

func (r *countingRemote) SaveStatus(ctx context.Context, _ []entity.MonthStatus) error {
	return r.SaveData(ctx, nil)
}

func (r *countingRemote) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pushed
}

func TestWorker_EnqueueNeverBlocks(t *testing.T) {
	worker := NewWorker(NewGateway(&countingRemote{}, nil), WorkerConfig{QueueSize: 2, Timeout: time.Second})

	if !worker.Enqueue(entity.NewSaveDataJob(nil)) || !worker.Enqueue(entity.NewSaveStatusJob(nil)) {
		t.Fatal("first two jobs should be accepted")
	}
	if worker.Enqueue(entity.NewSaveDataJob(nil)) {
		t.Error("third job should be dropped while the queue is full")
	}
}

func TestWorker_ProcessNowSwallowsFailures(t *testing.T) {
	remote := &countingRemote{fail: true}
	worker := NewWorker(NewGateway(remote, nil), DefaultWorkerConfig())

	worker.Enqueue(entity.NewSaveDataJob(nil))
	worker.Enqueue(entity.NewSaveStatusJob(nil))
	worker.ProcessNow(context.Background())

	if got := remote.count(); got != 2 {
		t.Errorf("pushes = %d, want 2", got)
	}
	if !worker.Enqueue(entity.NewSaveDataJob(nil)) {
		t.Error("queue should accept jobs after processing")
	}
}

func TestWorker_StartDrainsOnShutdown(t *testing.T) {
	remote := &countingRemote{release: make(chan struct{})}
	worker := NewWorker(NewGateway(remote, nil), WorkerConfig{QueueSize: 4, Timeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		worker.Enqueue(entity.NewSaveDataJob(nil))
	}
	cancel()
	close(remote.release)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}

	if got := remote.count(); got != 3 {
		t.Errorf("pushes = %d, want 3", got)
	}
}
