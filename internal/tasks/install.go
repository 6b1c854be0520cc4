package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/ngtw-labs/ngtw/internal/options"
)

// Installer installs a workspace's packages with a package manager.
type Installer interface {
	Install(ctx context.Context, dir, packageManager string) error
}

// ExecInstaller runs "<packageManager> install" in the workspace directory.
type ExecInstaller struct {
	// Stdout and Stderr can be set for testing; default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Install runs the package manager and waits for it to finish.
func (e *ExecInstaller) Install(ctx context.Context, dir, packageManager string) error {
	bin, err := exec.LookPath(packageManager)
	if err != nil {
		return fmt.Errorf("%s not found on PATH: %w", packageManager, err)
	}

	cmd := exec.CommandContext(ctx, bin, "install")
	cmd.Dir = dir
	cmd.Stdout = e.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = e.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s install exited with code %d", packageManager, exitErr.ExitCode())
		}
		return fmt.Errorf("running %s install: %w", packageManager, err)
	}
	return nil
}

// NodePackageInstall installs the workspace's dependencies.
type NodePackageInstall struct {
	PackageManager string
}

func (t NodePackageInstall) Name() string { return "node-package-install" }

// Run delegates to the environment's Installer.
func (t NodePackageInstall) Run(ctx context.Context, env Env) error {
	if env.Installer == nil {
		return errors.New("no installer configured")
	}
	pm := t.PackageManager
	if pm == "" {
		pm = options.DefaultPackageManager
	}
	env.Log.Info().Str("packageManager", pm).Str("dir", env.Dir).Msg("Installing packages")
	return env.Installer.Install(ctx, env.Dir, pm)
}

// RunFlow runs another flow of the collection, e.g. the setup step that must
// follow a package install.
type RunFlow struct {
	Flow    string
	Options options.Options
}

func (t RunFlow) Name() string { return "run-flow:" + t.Flow }

// Run delegates to the environment's FlowRunner.
func (t RunFlow) Run(ctx context.Context, env Env) error {
	if env.Flows == nil {
		return errors.New("no flow runner configured")
	}
	return env.Flows.RunFlow(ctx, t.Flow, t.Options)
}
