package action

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeCargo writes a shell script that records its working directory,
// arguments and selected environment, then exits with $FAKE_CARGO_EXIT.
func fakeCargo(t *testing.T) (bin, record string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake not supported on Windows")
	}

	dir := t.TempDir()
	record = filepath.Join(dir, "record.txt")
	bin = filepath.Join(dir, "cargo")
	script := `#!/bin/sh
{
  pwd
  echo "$@"
  echo "HOOK_VAR=$HOOK_VAR"
} >> "` + record + `"
echo "cargo stdout"
echo "cargo stderr" >&2
exit ${FAKE_CARGO_EXIT:-0}
`
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return bin, record
}

func readRecord(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading record: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestExecRunnerSuccess(t *testing.T) {
	bin, record := fakeCargo(t)
	root := t.TempDir()
	realRoot, _ := filepath.EvalSymlinks(root)

	var stdout, stderr bytes.Buffer
	r := &ExecRunner{Cargo: bin, Env: []string{"HOOK_VAR=from-env-file"}, Stdout: &stdout, Stderr: &stderr}

	if err := r.Run(context.Background(), root, Lint{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := readRecord(t, record)
	if len(lines) != 3 {
		t.Fatalf("record = %q", lines)
	}
	if lines[0] != realRoot && lines[0] != root {
		t.Errorf("working dir = %q, want %q", lines[0], root)
	}
	if lines[1] != "clippy -- -D warnings" {
		t.Errorf("args = %q", lines[1])
	}
	if lines[2] != "HOOK_VAR=from-env-file" {
		t.Errorf("env = %q", lines[2])
	}
	if !strings.Contains(stdout.String(), "cargo stdout") {
		t.Errorf("stdout not forwarded: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "cargo stderr") {
		t.Errorf("stderr not forwarded: %q", stderr.String())
	}
}

func TestExecRunnerFailure(t *testing.T) {
	bin, _ := fakeCargo(t)
	t.Setenv("FAKE_CARGO_EXIT", "3")

	r := &ExecRunner{Cargo: bin, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), t.TempDir(), Format{})
	if err == nil {
		t.Fatal("expected failure")
	}
	if err.Error() != "cargo fmt failed (exit code 3)" {
		t.Errorf("err = %q", err)
	}
}

// fakeRustfmt writes a cargo stand-in for "cargo fmt". It rewrites
// src/lib.rs when it is unformatted and, given --files-with-diff, prints the
// path of every file it rewrote. It always exits 0.
func fakeRustfmt(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake not supported on Windows")
	}

	bin := filepath.Join(t.TempDir(), "cargo")
	script := `#!/bin/sh
list=no
for arg in "$@"; do
  [ "$arg" = "--files-with-diff" ] && list=yes
done
if [ "$(cat src/lib.rs)" != "fn main() {}" ]; then
  printf 'fn main() {}\n' > src/lib.rs
  [ "$list" = yes ] && echo "$(pwd)/src/lib.rs"
fi
exit 0
`
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return bin
}

func writeCrate(t *testing.T, lib string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "src", "lib.rs"), []byte(lib), 0644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestExecRunnerFormatRewriteFails(t *testing.T) {
	root := writeCrate(t, "fn   main(){}\n")

	var stdout bytes.Buffer
	r := &ExecRunner{Cargo: fakeRustfmt(t), Stdout: &stdout, Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), root, Format{})
	if err == nil {
		t.Fatal("rewriting a file must fail the root even though cargo exited 0")
	}
	if err.Error() != "cargo fmt modified files" {
		t.Errorf("err = %q", err)
	}

	data, _ := os.ReadFile(filepath.Join(root, "src", "lib.rs"))
	if string(data) != "fn main() {}\n" {
		t.Errorf("file not rewritten: %q", data)
	}
	if !strings.Contains(stdout.String(), "src/lib.rs") {
		t.Errorf("listed files not forwarded to stdout: %q", stdout.String())
	}
}

func TestExecRunnerFormatAlreadyFormatted(t *testing.T) {
	root := writeCrate(t, "fn main() {}\n")

	r := &ExecRunner{Cargo: fakeRustfmt(t), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if err := r.Run(context.Background(), root, Format{}); err != nil {
		t.Fatalf("formatted crate should pass: %v", err)
	}
}

func TestExecRunnerFormatCheckIgnoresStdout(t *testing.T) {
	bin, _ := fakeCargo(t)

	// fakeCargo prints to stdout and exits 0; check mode relies on the exit code.
	r := &ExecRunner{Cargo: bin, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if err := r.Run(context.Background(), t.TempDir(), Format{Check: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestExecRunnerInheritsStdin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake not supported on Windows")
	}
	dir := t.TempDir()
	record := filepath.Join(dir, "stdin.txt")
	bin := filepath.Join(dir, "cargo")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\ncat > \""+record+"\"\n"), 0755); err != nil {
		t.Fatal(err)
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pw.WriteString("from-terminal\n"); err != nil {
		t.Fatal(err)
	}
	pw.Close()
	defer pr.Close()

	oldStdin := os.Stdin
	os.Stdin = pr
	defer func() { os.Stdin = oldStdin }()

	r := &ExecRunner{Cargo: bin, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if err := r.Run(context.Background(), t.TempDir(), Lint{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(record)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "from-terminal\n" {
		t.Errorf("child stdin = %q", data)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := &ExecRunner{Cargo: filepath.Join(t.TempDir(), "no-such-cargo")}
	err := r.Run(context.Background(), t.TempDir(), Check{})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "running") {
		t.Errorf("err = %v", err)
	}
}

func TestExecRunnerCancelledBeforeStart(t *testing.T) {
	bin, record := fakeCargo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &ExecRunner{Cargo: bin}
	if err := r.Run(ctx, t.TempDir(), Lint{}); err == nil {
		t.Fatal("expected context error")
	}
	if _, err := os.Stat(record); !os.IsNotExist(err) {
		t.Error("cargo should not have been started")
	}
}

func TestRunnerFunc(t *testing.T) {
	var gotDir string
	r := RunnerFunc(func(ctx context.Context, dir string, a Action) error {
		gotDir = dir
		return nil
	})
	if err := r.Run(context.Background(), "/x", Lint{}); err != nil {
		t.Fatal(err)
	}
	if gotDir != "/x" {
		t.Errorf("dir = %q", gotDir)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cargo-hook.env")
	content := "# build settings\nRUSTFLAGS=\"-D warnings\"\nCARGO_TARGET_DIR=/tmp/target\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	env, err := LoadEnvFile(path)
	if err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}

	want := []string{"CARGO_TARGET_DIR=/tmp/target", "RUSTFLAGS=-D warnings"}
	if len(env) != len(want) || env[0] != want[0] || env[1] != want[1] {
		t.Errorf("env = %q, want %q", env, want)
	}
}

func TestLoadEnvFileMissing(t *testing.T) {
	if _, err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for missing env file")
	}
}
