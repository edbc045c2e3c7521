package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// Dispatcher enqueues deferred work. Enqueue returns as soon as the task is
// queued; execution happens later in the worker process. The request path
// never waits on, or learns about, task completion.
type Dispatcher interface {
	EnqueueConfirmationEmail(ctx context.Context, email string) error
}

// AsynqDispatcher is the redis-backed Dispatcher used in production.
type AsynqDispatcher struct {
	client *asynq.Client
}

var _ Dispatcher = (*AsynqDispatcher)(nil)

// NewAsynqDispatcher creates a dispatcher over the given redis connection.
func NewAsynqDispatcher(addr, password string, db int) *AsynqDispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &AsynqDispatcher{client: client}
}

// EnqueueConfirmationEmail queues a confirmation email task.
func (d *AsynqDispatcher) EnqueueConfirmationEmail(ctx context.Context, email string) error {
	task, err := NewConfirmationEmailTask(email)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue confirmation email: %w", err)
	}
	return nil
}

// Close releases the underlying redis connection.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}
