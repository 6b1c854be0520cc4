// Package tasks holds work that a flow schedules to run after its staged
// changes are committed: package installs and follow-up flows. Tasks run in
// the order they were queued and never before the tasks they depend on.
package tasks

import (
	"context"
	"fmt"

	"github.com/ngtw-labs/ngtw/internal/options"
	"github.com/rs/zerolog"
)

// ID identifies a queued task.
type ID int

// Task is one unit of deferred work.
type Task interface {
	Name() string
	Run(ctx context.Context, env Env) error
}

// FlowRunner runs a named flow; the engine satisfies it.
type FlowRunner interface {
	RunFlow(ctx context.Context, name string, opts options.Options) error
}

// Env carries what tasks need from the host that executes them.
type Env struct {
	// Dir is the workspace root on the host filesystem.
	Dir       string
	Log       zerolog.Logger
	Flows     FlowRunner
	Installer Installer
}

type queued struct {
	id   ID
	task Task
	deps []ID
}

// Queue is an ordered list of deferred tasks.
type Queue struct {
	entries []queued
}

// Add appends t, to run after every task in deps, and returns its ID.
func (q *Queue) Add(t Task, deps ...ID) ID {
	id := ID(len(q.entries))
	q.entries = append(q.entries, queued{id: id, task: t, deps: deps})
	return id
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int { return len(q.entries) }

// Names returns the queued task names in order.
func (q *Queue) Names() []string {
	names := make([]string, len(q.entries))
	for i, e := range q.entries {
		names[i] = e.task.Name()
	}
	return names
}

// Run executes the queue. The first failure stops the run and is returned;
// nothing already done is undone.
func (q *Queue) Run(ctx context.Context, env Env) error {
	done := make(map[ID]bool, len(q.entries))
	for _, e := range q.entries {
		for _, dep := range e.deps {
			if !done[dep] {
				return fmt.Errorf("task %s depends on task %d which has not completed", e.task.Name(), dep)
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		env.Log.Debug().Str("task", e.task.Name()).Int("id", int(e.id)).Msg("Running task")
		if err := e.task.Run(ctx, env); err != nil {
			return fmt.Errorf("task %s: %w", e.task.Name(), err)
		}
		done[e.id] = true
	}
	return nil
}
