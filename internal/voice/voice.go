// Package voice streams utterances from an external speech-to-text command.
package voice

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrUnavailable reports that no recognizer can be started.
	ErrUnavailable = errors.New("speech recognition unavailable")
	// ErrNoSpeech is a transient result; listening continues.
	ErrNoSpeech = errors.New("no speech detected")
)

// Result is one recognizer outcome: an utterance or an error.
type Result struct {
	Text string
	Err  error
}

// Fatal reports whether listening has stopped after this result.
func (r Result) Fatal() bool {
	return r.Err != nil && !errors.Is(r.Err, ErrNoSpeech)
}

// Recognizer produces utterances until ctx is canceled or a fatal error occurs.
// The returned channel is closed when listening stops.
type Recognizer interface {
	Listen(ctx context.Context) <-chan Result
}

// Command runs a speech-to-text program and treats every stdout line as an
// utterance. An empty line means nothing was understood. A clean exit restarts
// the program; a failing exit stops listening.
type Command struct {
	Name         string
	Args         []string
	RestartDelay time.Duration
	Log          zerolog.Logger
}

// ParseCommand splits a command line like "vosk-stream --lang en".
func ParseCommand(line string, log zerolog.Logger) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrUnavailable
	}
	return &Command{
		Name:         fields[0],
		Args:         fields[1:],
		RestartDelay: 500 * time.Millisecond,
		Log:          log,
	}, nil
}

// Listen implements Recognizer.
func (c *Command) Listen(ctx context.Context) <-chan Result {
	out := make(chan Result, 8)
	path, err := exec.LookPath(c.Name)
	if err != nil {
		out <- Result{Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
		close(out)
		return out
	}
	go func() {
		defer close(out)
		for {
			err := c.run(ctx, path, out)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				send(ctx, out, Result{Err: fmt.Errorf("recognizer %s: %w", c.Name, err)})
				return
			}
			c.Log.Debug().Str("recognizer", c.Name).Msg("recognizer exited, restarting")
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.RestartDelay):
			}
		}
	}()
	return out
}

func (c *Command) run(ctx context.Context, path string, out chan<- Result) error {
	cmd := exec.CommandContext(ctx, path, c.Args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	c.Log.Info().Str("recognizer", c.Name).Int("pid", cmd.Process.Pid).Msg("recognizer started")
	scanErr := Scan(ctx, stdout, out)
	waitErr := cmd.Wait()
	if waitErr != nil {
		return waitErr
	}
	return scanErr
}

// Scan forwards every line of r to out until EOF or ctx is canceled.
func Scan(ctx context.Context, r io.Reader, out chan<- Result) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		res := Result{Text: strings.TrimSpace(scanner.Text())}
		if res.Text == "" {
			res = Result{Err: ErrNoSpeech}
		}
		if !send(ctx, out, res) {
			return ctx.Err()
		}
	}
	return scanner.Err()
}

func send(ctx context.Context, out chan<- Result, res Result) bool {
	select {
	case out <- res:
		return true
	case <-ctx.Done():
		return false
	}
}
