// Package actor implements the Command Actor (C7): a single goroutine that
// owns the write database handle and processes commands strictly in the
// order they were submitted.
package actor

import (
	"context"
	"fmt"

	"github.com/chomba/rackd/internal/db"
)

// Command is implemented by every entry in the netcmd catalogue. Process
// performs the command's declared reads against tx, computes its result via
// Exec, and leaves any resulting entity saved (via store.Save) before
// returning. Serializable reports whether the command's Process needs a
// Serializable transaction, for the uniqueness-checked writes
// (CreateTrunk, CreateWan, RenameWan) where two concurrent submissions
// could otherwise both observe "name free".
type Command interface {
	Process(ctx context.Context, tx db.Tx) (any, error)
	Serializable() bool
}

type commandEnvelope struct {
	ctx   context.Context
	cmd   Command
	reply chan result
}

type result struct {
	value any
	err   error
}

// CommandActor owns database and a buffered inbox; one goroutine
// (run) drains the inbox, giving FIFO ordering for free from Go's channel
// semantics without any extra bookkeeping.
type CommandActor struct {
	database db.Database
	inbox    chan commandEnvelope

	// OnCommitted, if set, is called with a command's result after its
	// transaction commits successfully. It runs synchronously on the
	// actor's goroutine, so it must not block (the cache invalidation
	// and queue notification wiring in cmd/rackd both just publish a
	// message and return). Nil by default.
	OnCommitted func(value any)
}

// NewCommandActor starts the actor's goroutine and returns a handle.
// inboxSize bounds how many commands may be queued before Submit blocks.
func NewCommandActor(database db.Database, inboxSize int) *CommandActor {
	a := &CommandActor{database: database, inbox: make(chan commandEnvelope, inboxSize)}
	go a.run()
	return a
}

func (a *CommandActor) run() {
	for env := range a.inbox {
		value, err := a.process(env.ctx, env.cmd)
		if env.reply != nil {
			env.reply <- result{value: value, err: err}
		}
	}
}

func (a *CommandActor) process(ctx context.Context, cmd Command) (any, error) {
	opts := &db.TxOptions{}
	if cmd.Serializable() {
		opts.IsolationLevel = "serializable"
	}
	tx, err := a.database.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("begin command tx: %w", err)
	}
	value, err := cmd.Process(ctx, tx)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit command tx: %w", err)
	}
	if a.OnCommitted != nil {
		a.OnCommitted(value)
	}
	return value, nil
}

// Submit enqueues cmd and blocks until it has been processed (or ctx is
// done, whichever comes first).
func (a *CommandActor) Submit(ctx context.Context, cmd Command) (any, error) {
	reply := make(chan result, 1)
	select {
	case a.inbox <- commandEnvelope{ctx: ctx, cmd: cmd, reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case r := <-reply:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Notify enqueues cmd without waiting for it to be processed, for
// fire-and-forget internal events (the tracker's LinkWentUp/LinkWentDown/
// GatewayChanged observations) where nothing blocks on the result. It
// still returns if ctx is done before the command could be enqueued.
func (a *CommandActor) Notify(ctx context.Context, cmd Command) error {
	select {
	case a.inbox <- commandEnvelope{ctx: ctx, cmd: cmd}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting new commands. Any command already in the inbox
// still runs to completion before run returns.
func (a *CommandActor) Close() {
	close(a.inbox)
}
