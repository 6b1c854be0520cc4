// Package engine runs named flows from a collection. Each run stages its
// changes on a fresh tree, commits the tree only when the flow succeeds, and
// then executes the deferred tasks the flow queued.
package engine

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/ngtw-labs/ngtw/internal/options"
	"github.com/ngtw-labs/ngtw/internal/tasks"
	"github.com/ngtw-labs/ngtw/internal/tree"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Flow mutates t according to the options in c.
type Flow func(t *tree.Tree, c *Context) error

// Description registers a flow under a name.
type Description struct {
	Name    string
	Summary string
	Flow    Flow
}

// Collection maps flow names to their descriptions.
type Collection struct {
	flows map[string]Description
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{flows: make(map[string]Description)}
}

// Register adds d, replacing any flow with the same name.
func (c *Collection) Register(d Description) {
	c.flows[d.Name] = d
}

// Lookup returns the flow registered under name.
func (c *Collection) Lookup(name string) (Description, error) {
	d, ok := c.flows[name]
	if !ok {
		return Description{}, fmt.Errorf("unknown flow %q", name)
	}
	return d, nil
}

// Names lists the registered flows, sorted.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.flows))
	for n := range c.flows {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Context is handed to a running flow.
type Context struct {
	Options  options.Options
	Log      zerolog.Logger
	queue    *tasks.Queue
	warnings []string
}

// NewContext returns a context with an empty task queue.
func NewContext(opts options.Options, log zerolog.Logger) *Context {
	return &Context{Options: opts, Log: log, queue: &tasks.Queue{}}
}

// AddTask schedules t to run after the flow commits, after every task in deps.
func (c *Context) AddTask(t tasks.Task, deps ...tasks.ID) tasks.ID {
	return c.queue.Add(t, deps...)
}

// Tasks returns the queue of scheduled tasks.
func (c *Context) Tasks() *tasks.Queue { return c.queue }

// Warn logs a warning that needs a human and records it for the run summary.
func (c *Context) Warn(msg string, fields map[string]interface{}) {
	c.Log.Warn().Fields(fields).Msg(msg)
	c.warnings = append(c.warnings, msg)
}

// Warnings returns the warnings recorded so far.
func (c *Context) Warnings() []string {
	out := make([]string, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Engine executes flows against a workspace directory.
type Engine struct {
	Collection *Collection
	// FS is rooted at the workspace directory.
	FS        afero.Fs
	Dir       string
	Log       zerolog.Logger
	Installer tasks.Installer
	// DryRun prints the staged actions to Out instead of committing them and
	// skips scheduled tasks.
	DryRun bool
	Out    io.Writer

	warnings []string
}

// New returns an engine over the workspace directory dir on the host filesystem.
func New(collection *Collection, dir string, log zerolog.Logger) *Engine {
	return &Engine{
		Collection: collection,
		FS:         afero.NewBasePathFs(afero.NewOsFs(), dir),
		Dir:        dir,
		Log:        log,
		Installer:  &tasks.ExecInstaller{},
		Out:        io.Discard,
	}
}

// Warnings returns every warning raised by flows this engine ran.
func (e *Engine) Warnings() []string {
	out := make([]string, len(e.warnings))
	copy(out, e.warnings)
	return out
}

// RunFlow validates opts, runs the named flow, commits its tree, and then
// runs the tasks it scheduled.
func (e *Engine) RunFlow(ctx context.Context, name string, opts options.Options) error {
	desc, err := e.Collection.Lookup(name)
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	log := e.Log.With().Str("flow", name).Logger()
	t := tree.New(e.FS)
	c := NewContext(opts, log)

	log.Debug().Msg("Flow started")
	err = desc.Flow(t, c)
	e.warnings = append(e.warnings, c.Warnings()...)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if e.DryRun {
		for _, a := range t.Actions() {
			fmt.Fprintln(e.Out, a.String())
		}
		for _, n := range c.queue.Names() {
			fmt.Fprintf(e.Out, "SKIP task %s (dry run)\n", n)
		}
		return nil
	}

	if err := t.Commit(); err != nil {
		return fmt.Errorf("%s: committing changes: %w", name, err)
	}
	log.Debug().Int("tasks", c.queue.Len()).Msg("Flow committed")

	return c.queue.Run(ctx, tasks.Env{
		Dir:       e.Dir,
		Log:       log,
		Flows:     e,
		Installer: e.Installer,
	})
}
