package actor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chomba/rackd/internal/db"
)

// fakeTx/fakeDatabase give the actor something to run transactions against
// without a real Postgres connection.
type fakeTx struct{}

func (fakeTx) Exec(ctx context.Context, sql string, args ...any) (db.Result, error) { return nil, nil }
func (fakeTx) QueryRow(ctx context.Context, sql string, args ...any) db.Row         { return nil }
func (fakeTx) Query(ctx context.Context, sql string, args ...any) (db.Rows, error)  { return nil, nil }
func (fakeTx) Commit(ctx context.Context) error                                     { return nil }
func (fakeTx) Rollback(ctx context.Context) error                                   { return nil }

type fakeDatabase struct{}

func (fakeDatabase) Exec(ctx context.Context, sql string, args ...any) (db.Result, error) {
	return nil, nil
}
func (fakeDatabase) QueryRow(ctx context.Context, sql string, args ...any) db.Row { return nil }
func (fakeDatabase) Query(ctx context.Context, sql string, args ...any) (db.Rows, error) {
	return nil, nil
}
func (fakeDatabase) BeginTx(ctx context.Context, opts *db.TxOptions) (db.Tx, error) {
	return fakeTx{}, nil
}
func (fakeDatabase) Ping(ctx context.Context) error { return nil }
func (fakeDatabase) Close() error                   { return nil }
func (fakeDatabase) DriverName() string             { return "fake" }

type recordingCommand struct {
	order *[]int
	mu    *sync.Mutex
	n     int
	fail  bool
}

func (c recordingCommand) Process(ctx context.Context, tx db.Tx) (any, error) {
	c.mu.Lock()
	*c.order = append(*c.order, c.n)
	c.mu.Unlock()
	if c.fail {
		return nil, errors.New("boom")
	}
	return c.n, nil
}

func (c recordingCommand) Serializable() bool { return false }

func TestCommandActorProcessesInSubmitOrder(t *testing.T) {
	a := NewCommandActor(fakeDatabase{}, 8)
	defer a.Close()

	var mu sync.Mutex
	var order []int
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		v, err := a.Submit(ctx, recordingCommand{order: &order, mu: &mu, n: i})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if v.(int) != i {
			t.Fatalf("result %d = %v, want %d", i, v, i)
		}
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("order[%d] = %d, want %d", i, got, i)
		}
	}
}

func TestCommandActorSubmitRespectsContextCancellation(t *testing.T) {
	a := NewCommandActor(fakeDatabase{}, 0)
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	blocker := make(chan struct{})
	go func() {
		a.Submit(context.Background(), recordingCommand{order: &[]int{}, mu: &sync.Mutex{}, n: 0})
		close(blocker)
	}()

	_, err := a.Submit(ctx, recordingCommand{order: &[]int{}, mu: &sync.Mutex{}, n: 1})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	<-blocker
}

func TestCommandActorErrorDoesNotStopProcessing(t *testing.T) {
	a := NewCommandActor(fakeDatabase{}, 8)
	defer a.Close()

	var mu sync.Mutex
	var order []int
	ctx := context.Background()

	_, err := a.Submit(ctx, recordingCommand{order: &order, mu: &mu, n: 0, fail: true})
	if err == nil {
		t.Fatal("expected error")
	}
	v, err := a.Submit(ctx, recordingCommand{order: &order, mu: &mu, n: 1})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if v.(int) != 1 {
		t.Fatalf("second result = %v, want 1", v)
	}
}
