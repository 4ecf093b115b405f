package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonathanfischer97/juliadoc-mcp/script"
)

// fakeJulia writes a stand-in interpreter script. The stand-in extracts the
// -e payload into $CODE, answers the diagnostic script with a canned dump,
// and otherwise runs body.
func fakeJulia(t *testing.T, body string) string {
	t.Helper()

	stub := `#!/bin/sh
CODE=""
prev=""
for a in "$@"; do
  [ "$prev" = "-e" ] && CODE="$a"
  prev="$a"
done
case "$CODE" in
  *"Active project"*)
    echo "Active project: none"
    echo "Depot path: /tmp/depot"
    echo "Status: no packages installed"
    exit 0
    ;;
esac
` + body + "\n"

	path := filepath.Join(t.TempDir(), "julia")
	if err := os.WriteFile(path, []byte(stub), 0o755); err != nil {
		t.Fatalf("writing fake interpreter: %v", err)
	}
	return path
}

func TestLocate_Override(t *testing.T) {
	bin := fakeJulia(t, "exit 0")

	got, err := Locate(bin)
	if err != nil {
		t.Fatalf("Locate(%q) failed: %v", bin, err)
	}
	if got != bin {
		t.Errorf("Locate = %q, want %q", got, bin)
	}
}

func TestLocate_OverrideMissing(t *testing.T) {
	_, err := Locate("/nonexistent/julia")
	if !errors.Is(err, ErrInterpreterNotFound) {
		t.Errorf("Locate error = %v, want ErrInterpreterNotFound", err)
	}
}

func TestRun_Success(t *testing.T) {
	r := New(Config{Bin: fakeJulia(t, `echo "Type signature: sort(v::AbstractVector)"`)})

	out, err := r.Run(context.Background(), script.Script{Code: `println("x")`})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != "Type signature: sort(v::AbstractVector)" {
		t.Errorf("Run returned %q", out)
	}
}

func TestRun_TrimsOutput(t *testing.T) {
	r := New(Config{Bin: fakeJulia(t, `printf '\n  result  \n\n'`)})

	out, err := r.Run(context.Background(), script.Script{Code: "x"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != "result" {
		t.Errorf("Run returned %q, want %q", out, "result")
	}
}

func TestRun_InterpreterNotFound(t *testing.T) {
	r := New(Config{Bin: "/nonexistent/julia"})

	_, err := r.Run(context.Background(), script.Script{Code: "x"})
	if !errors.Is(err, ErrInterpreterNotFound) {
		t.Errorf("Run error = %v, want ErrInterpreterNotFound", err)
	}
}

func TestRun_EmptyResult(t *testing.T) {
	r := New(Config{Bin: fakeJulia(t, `printf '   \n'`)})

	_, err := r.Run(context.Background(), script.Script{Code: "x"})
	if !errors.Is(err, ErrEmptyResult) {
		t.Errorf("Run error = %v, want ErrEmptyResult", err)
	}
}

func TestRun_PackageNotFoundWithDiagnostics(t *testing.T) {
	body := `echo "ERROR: ArgumentError: Package NoSuchPkg could not load package NoSuchPkg" >&2
exit 1`
	r := New(Config{Bin: fakeJulia(t, body)})

	_, err := r.Run(context.Background(), script.Script{Code: "x", Package: "NoSuchPkg"})
	if !errors.Is(err, ErrPackageNotFound) {
		t.Fatalf("Run error = %v, want ErrPackageNotFound", err)
	}

	msg := err.Error()
	for _, want := range []string{"NoSuchPkg", "Pkg.add", "Active project", "Depot path"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q:\n%s", want, msg)
		}
	}
}

func TestRun_Timeout(t *testing.T) {
	r := New(Config{
		Bin:     fakeJulia(t, "sleep 5"),
		Timeout: 100 * time.Millisecond,
	})

	start := time.Now()
	_, err := r.Run(context.Background(), script.Script{Code: "x"})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Run error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("subprocess was not killed on deadline, took %v", elapsed)
	}
}

func TestRun_ProjectFlag(t *testing.T) {
	r := New(Config{
		Bin:     fakeJulia(t, `echo "$@"`),
		Project: "/work/myproj",
	})

	out, err := r.Run(context.Background(), script.Script{Code: "x"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, want := range []string{"--project=/work/myproj", "--startup-file=no", "--color=no"} {
		if !strings.Contains(out, want) {
			t.Errorf("argv missing %q, got: %s", want, out)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		stderr  string
		pkg     string
		project string
		want    error
	}{
		{
			name:   "could not load package",
			stderr: "ERROR: could not load package Foo",
			pkg:    "Foo",
			want:   ErrPackageNotFound,
		},
		{
			name:   "package not in current path",
			stderr: "ArgumentError: Package Foo not found in current path",
			pkg:    "Foo",
			want:   ErrPackageNotFound,
		},
		{
			name:   "undefined variable",
			stderr: "ERROR: UndefVarError: `frobnicate` not defined",
			want:   ErrUndefinedReference,
		},
		{
			name:   "no documentation",
			stderr: "No documentation found for Base.zzz",
			want:   ErrSymbolNotFound,
		},
		{
			name:   "binding does not exist",
			stderr: "Binding Base.zzz does not exist",
			want:   ErrSymbolNotFound,
		},
		{
			name:   "anything else",
			stderr: "ERROR: DivideError: integer division error",
			want:   ErrScriptFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := classify(tt.stderr, tt.pkg, tt.project)
			if !errors.Is(se, tt.want) {
				t.Errorf("classify kind = %v, want %v", se.Kind, tt.want)
			}
			if se.Stderr != tt.stderr {
				t.Errorf("raw stderr not preserved")
			}
		})
	}
}

func TestClassify_GenericKeepsStderrVerbatim(t *testing.T) {
	stderr := "ERROR: something odd\nstacktrace line"
	se := classify(stderr, "", "")
	if !strings.Contains(se.Error(), stderr) {
		t.Errorf("generic error should surface stderr verbatim:\n%s", se.Error())
	}
}

func TestClassify_ProjectScopedMessage(t *testing.T) {
	se := classify("could not load package Foo", "Foo", "/work/proj")
	if !strings.Contains(se.Message, "/work/proj") {
		t.Errorf("message should mention the configured project, got %q", se.Message)
	}
}
