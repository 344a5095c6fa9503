// Package install runs the package manager that fetches a scaffolded
// project's dependencies.
package install

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/reactboot/internal/telemetry"
	consolestream "github.com/wolfeidau/console-stream"
)

// maxOutputTail bounds the output retained for error reporting.
const maxOutputTail = 16 * 1024

// ExitError is returned when the install command exits with a non-zero code.
type ExitError struct {
	Command  string
	ExitCode int
	// Output is the tail of the combined command output.
	Output string
}

func (e *ExitError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Command, e.ExitCode, e.Output)
}

// NPM runs `npm install --no-optional`.
type NPM struct {
	// Command is the executable, "npm" unless overridden.
	Command string
	// Args precede the --prefix flag added for non working directory roots.
	Args []string
	// Output receives the command output as it is produced, stderr if nil.
	Output io.Writer
}

// NewNPM returns an installer that invokes npm found on PATH.
func NewNPM() *NPM {
	return &NPM{
		Command: "npm",
		Args:    []string{"install", "--no-optional"},
		Output:  os.Stderr,
	}
}

// Install blocks until the command exits.
func (n *NPM) Install(ctx context.Context, dir string) error {
	args := append([]string{}, n.Args...)
	if prefix, ok := prefixFor(dir); ok {
		args = append(args, "--prefix", prefix)
	}

	out := n.Output
	if out == nil {
		out = os.Stderr
	}

	log.Debug().Str("command", n.Command).Strs("args", args).Msg("Running installer")

	process := consolestream.NewProcess(n.Command, args,
		consolestream.WithPipeMode(),
		consolestream.WithFlushInterval(250*time.Millisecond),
	)

	tail := &tailBuffer{max: maxOutputTail}
	metrics := telemetry.GetMetrics()

	for event, err := range process.ExecuteAndStream(ctx) {
		if err != nil {
			return fmt.Errorf("%s failed: %w", n.Command, err)
		}

		switch e := event.Event.(type) {
		case *consolestream.OutputData:
			tail.Write(e.Data)
			metrics.InstallOutputBytes.Add(ctx, int64(len(e.Data)))
			if _, err := out.Write(e.Data); err != nil {
				log.Warn().Err(err).Msg("Failed to forward installer output")
			}
		case *consolestream.ProcessEnd:
			if e.ExitCode != 0 {
				return &ExitError{
					Command:  n.Command,
					ExitCode: e.ExitCode,
					Output:   string(bytes.TrimSpace(tail.Bytes())),
				}
			}
			log.Debug().Dur("duration", e.Duration).Msg("Installer finished")
			return nil
		}
	}

	return fmt.Errorf("%s ended without reporting an exit code", n.Command)
}

// prefixFor returns the --prefix value when dir is not the working directory.
func prefixFor(dir string) (string, bool) {
	if dir == "" || filepath.Clean(dir) == "." {
		return "", false
	}
	return dir, true
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	max int
	buf []byte
}

func (t *tailBuffer) Write(p []byte) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = t.buf[over:]
	}
}

func (t *tailBuffer) Bytes() []byte {
	return t.buf
}
