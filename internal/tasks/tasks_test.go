package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/ngtw-labs/ngtw/internal/options"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

func (r *recorder) Install(_ context.Context, dir, pm string) error {
	r.calls = append(r.calls, "install:"+pm+":"+dir)
	return nil
}

func (r *recorder) RunFlow(_ context.Context, name string, opts options.Options) error {
	r.calls = append(r.calls, "flow:"+name+":"+opts.Project)
	return nil
}

type failingInstaller struct{}

func (failingInstaller) Install(context.Context, string, string) error {
	return errors.New("registry unreachable")
}

func TestQueue_RunsInOrderAfterDependencies(t *testing.T) {
	rec := &recorder{}
	var q Queue
	install := q.Add(NodePackageInstall{PackageManager: "yarn"})
	q.Add(RunFlow{Flow: "ng-add-setup", Options: options.Options{Project: "app"}}, install)

	assert.Equal(t, 2, q.Len())
	assert.Equal(t, []string{"node-package-install", "run-flow:ng-add-setup"}, q.Names())

	env := Env{Dir: "/work", Log: zerolog.Nop(), Flows: rec, Installer: rec}
	require.NoError(t, q.Run(context.Background(), env))
	assert.Equal(t, []string{"install:yarn:/work", "flow:ng-add-setup:app"}, rec.calls)
}

func TestQueue_FailureStopsDependents(t *testing.T) {
	rec := &recorder{}
	var q Queue
	install := q.Add(NodePackageInstall{})
	q.Add(RunFlow{Flow: "ng-add-setup"}, install)

	env := Env{Dir: "/work", Log: zerolog.Nop(), Flows: rec, Installer: failingInstaller{}}
	err := q.Run(context.Background(), env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node-package-install")
	assert.Empty(t, rec.calls, "setup must never run when its install failed")
}

func TestQueue_RejectsForwardDependency(t *testing.T) {
	rec := &recorder{}
	var q Queue
	q.Add(RunFlow{Flow: "ng-add-setup"}, ID(1))
	q.Add(NodePackageInstall{})

	err := q.Run(context.Background(), Env{Log: zerolog.Nop(), Flows: rec, Installer: rec})
	require.Error(t, err)
	assert.Empty(t, rec.calls)
}

func TestQueue_CancelledContext(t *testing.T) {
	rec := &recorder{}
	var q Queue
	q.Add(NodePackageInstall{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := q.Run(ctx, Env{Log: zerolog.Nop(), Installer: rec})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.calls)
}

func TestNodePackageInstall_DefaultsToNpm(t *testing.T) {
	rec := &recorder{}
	err := NodePackageInstall{}.Run(context.Background(), Env{Dir: "/w", Log: zerolog.Nop(), Installer: rec})
	require.NoError(t, err)
	assert.Equal(t, []string{"install:npm:/w"}, rec.calls)
}

func TestTasks_RequireCollaborators(t *testing.T) {
	assert.Error(t, NodePackageInstall{}.Run(context.Background(), Env{Log: zerolog.Nop()}))
	assert.Error(t, RunFlow{Flow: "x"}.Run(context.Background(), Env{Log: zerolog.Nop()}))
}

func TestExecInstaller_MissingBinary(t *testing.T) {
	inst := &ExecInstaller{}
	err := inst.Install(context.Background(), t.TempDir(), "definitely-not-a-package-manager")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found on PATH")
}
