package xcode

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/raphi011/runios/internal/cmd"
	"github.com/raphi011/runios/internal/log"
)

// DefaultConfiguration is used when no build configuration is given.
const DefaultConfiguration = "Debug"

// DerivedDataPath is where xcodebuild puts its products, relative to the
// project directory.
const DerivedDataPath = "build"

// Target describes one xcodebuild invocation.
type Target struct {
	Project       Project
	Scheme        string
	Configuration string // DefaultConfiguration when empty
	UDID          string // destination device or simulator
	Team          string // DEVELOPMENT_TEAM override, omitted when empty
	// LaunchPackager lets the build scripts start the JS packager.
	LaunchPackager bool
}

func (t Target) configuration() string {
	if t.Configuration == "" {
		return DefaultConfiguration
	}
	return t.Configuration
}

// Result is the outcome of a successful build.
type Result struct {
	// ProductName is the app name without ".app", empty when the build log
	// did not declare it. Callers fall back to the scheme name.
	ProductName string
}

// BuildError reports a failed xcodebuild run whose log named no product.
type BuildError struct {
	Err    error
	Stderr string // last lines written to stderr
}

func (e *BuildError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("xcodebuild failed: %v", e.Err)
	}
	return fmt.Sprintf("xcodebuild failed: %v\n%s", e.Err, e.Stderr)
}

func (e *BuildError) Unwrap() error { return e.Err }

// BuildArgs returns the xcodebuild arguments for t. The order is fixed;
// the team override comes last and only when a team is set.
func BuildArgs(t Target) []string {
	args := []string{
		t.Project.flag(), t.Project.Name,
		"-configuration", t.configuration(),
		"-scheme", t.Scheme,
		"-destination", "id=" + t.UDID,
		"-derivedDataPath", DerivedDataPath,
	}
	if t.Team != "" {
		args = append(args, "DEVELOPMENT_TEAM="+t.Team)
	}
	return args
}

var productNameLine = regexp.MustCompile(`(?m)export FULL_PRODUCT_NAME="?(.+)\.app"?\s*$`)

// ParseProductName finds the `export FULL_PRODUCT_NAME="<name>.app"` line
// (quotes optional) in xcodebuild output and returns <name>.
func ParseProductName(output string) (string, bool) {
	m := productNameLine.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// stderrTailLines is how much stderr a BuildError keeps.
const stderrTailLines = 20

// Builder runs xcodebuild.
type Builder struct {
	// Dir is the project directory.
	Dir string
	// Verbose relays the raw log instead of piping it through xcpretty.
	Verbose bool
	// Stdout and Stderr receive the relayed output; default to the process's.
	Stdout io.Writer
	Stderr io.Writer
	// Tool and Formatter name the executables; default to xcodebuild and xcpretty.
	Tool      string
	Formatter string
}

func (b *Builder) stdout() io.Writer {
	if b.Stdout != nil {
		return b.Stdout
	}
	return os.Stdout
}

func (b *Builder) stderr() io.Writer {
	if b.Stderr != nil {
		return b.Stderr
	}
	return os.Stderr
}

// Build runs one xcodebuild process for t. Stdout is captured in full and
// relayed (through xcpretty when available and not verbose); stderr is
// relayed as it arrives. A failed process is only an error when its log
// does not name the product.
func (b *Builder) Build(ctx context.Context, t Target) (Result, error) {
	l := log.FromContext(ctx)

	tool := b.Tool
	if tool == "" {
		tool = "xcodebuild"
	}
	args := BuildArgs(t)
	l.Printf("Building using \"%s %s\"\n", tool, strings.Join(args, " "))

	c := exec.CommandContext(ctx, tool, args...)
	c.Dir = b.Dir
	if !t.LaunchPackager {
		c.Env = append(os.Environ(), "RCT_NO_LAUNCH_PACKAGER=true")
	}

	relay, closeRelay := b.relay(ctx)
	var captured, stderr bytes.Buffer
	c.Stdout = io.MultiWriter(&captured, relay)
	c.Stderr = io.MultiWriter(b.stderr(), &stderr)

	done := l.Command(b.Dir, tool, args...)
	start := time.Now()
	runErr := c.Run()
	done(time.Since(start))
	closeRelay()

	if name, ok := ParseProductName(captured.String()); ok {
		if runErr != nil {
			l.Debug("xcodebuild failed after declaring the product", "product", name, "err", runErr)
		}
		return Result{ProductName: name}, nil
	}
	if runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		return Result{}, &BuildError{Err: runErr, Stderr: tail(stderr.String(), stderrTailLines)}
	}
	return Result{}, nil
}

// relay returns the writer build output is copied to and a function that
// flushes it once the build finished.
func (b *Builder) relay(ctx context.Context) (io.Writer, func()) {
	raw := func() (io.Writer, func()) { return b.stdout(), func() {} }
	if b.Verbose {
		return raw()
	}

	formatter := b.Formatter
	if formatter == "" {
		formatter = "xcpretty"
	}
	if !cmd.Available(formatter) {
		return raw()
	}

	pretty := exec.CommandContext(ctx, formatter)
	pretty.Stdout = b.stdout()
	pretty.Stderr = b.stderr()
	stdin, err := pretty.StdinPipe()
	if err != nil {
		return raw()
	}
	if err := pretty.Start(); err != nil {
		log.FromContext(ctx).Debug("xcpretty did not start, relaying raw output", "err", err)
		return raw()
	}
	w := &fallbackWriter{
		w:        stdin,
		fallback: b.stdout(),
		onErr: func(err error) {
			log.FromContext(ctx).Debug("xcpretty stopped reading, relaying raw output", "err", err)
		},
	}
	return w, func() {
		_ = stdin.Close()
		_ = pretty.Wait()
	}
}

// fallbackWriter writes to w until a write fails, then to fallback. It
// never reports an error, so the build log is still captured in full when
// the formatter goes away.
type fallbackWriter struct {
	w        io.Writer
	fallback io.Writer
	onErr    func(error)
	failed   bool
}

func (f *fallbackWriter) Write(p []byte) (int, error) {
	if !f.failed {
		_, err := f.w.Write(p)
		if err == nil {
			return len(p), nil
		}
		f.failed = true
		if f.onErr != nil {
			f.onErr(err)
		}
	}
	_, _ = f.fallback.Write(p)
	return len(p), nil
}

// tail returns the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
