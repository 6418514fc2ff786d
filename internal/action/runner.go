package action

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"k8s.io/klog/v2"
)

// Runner executes an action with dir as the working directory. A nil error
// means the action succeeded; any error is the failure reason for dir.
type Runner interface {
	Run(ctx context.Context, dir string, a Action) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, dir string, a Action) error

func (f RunnerFunc) Run(ctx context.Context, dir string, a Action) error {
	return f(ctx, dir, a)
}

// ExecRunner runs cargo as a child process. The child inherits the
// standard streams so cargo's own diagnostics reach the user unchanged.
type ExecRunner struct {
	// Cargo is the cargo executable. Empty means "cargo".
	Cargo string

	// Env holds extra KEY=VALUE pairs appended to the inherited environment.
	Env []string

	Stdout io.Writer
	Stderr io.Writer
}

// Run spawns one cargo process in dir and waits for it without a timeout.
func (r *ExecRunner) Run(ctx context.Context, dir string, a Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cargo := r.cargo()
	cmd := exec.Command(cargo, a.Args()...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = writerOr(r.Stdout, os.Stdout)
	cmd.Stderr = writerOr(r.Stderr, os.Stderr)
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	var listed *bytes.Buffer
	modifiedReason := ""
	if rw, ok := a.(Rewriter); ok {
		modifiedReason = rw.ModifiedReason()
	}
	if modifiedReason != "" {
		listed = &bytes.Buffer{}
		cmd.Stdout = io.MultiWriter(cmd.Stdout, listed)
	}

	klog.V(1).Infof("running %s in %s", Describe(cargo, a), dir)

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s (exit code %d)", a.FailureReason(), exitErr.ExitCode())
		}
		return fmt.Errorf("running %s: %w", Describe(cargo, a), err)
	}

	if listed != nil {
		if files := strings.Fields(listed.String()); len(files) > 0 {
			klog.V(1).Infof("%s rewrote %s", cargo, strings.Join(files, ", "))
			return errors.New(modifiedReason)
		}
	}
	return nil
}

func (r *ExecRunner) cargo() string {
	if r.Cargo == "" {
		return "cargo"
	}
	return r.Cargo
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

// LoadEnvFile reads a dotenv file and returns its variables as sorted
// KEY=VALUE pairs. The current process environment is left untouched.
func LoadEnvFile(path string) ([]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	env := make([]string, 0, len(vars))
	for k, v := range vars {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env, nil
}
