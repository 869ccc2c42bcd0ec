// Package cmd provides helpers for executing shell commands with proper error handling.
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/runios/internal/log"
)

// RunContext executes a command in dir and returns stderr in the error message if it fails.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext executes a command in dir and returns stdout, with stderr in error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stderr bytes.Buffer
	c.Stderr = &stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	output, err := c.Output()
	done(time.Since(start))

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return nil, fmt.Errorf("%s", errMsg)
		}
		return nil, err
	}
	return output, nil
}

// InheritContext executes a command attached to the current process's
// stdin, stdout and stderr. Extra environment entries are appended to
// the inherited environment.
func InheritContext(ctx context.Context, dir string, env []string, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if len(env) > 0 {
		c.Env = append(os.Environ(), env...)
	}

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))
	return err
}

// Available reports whether name can be found in PATH (or exists, for absolute paths).
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
