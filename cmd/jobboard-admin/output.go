package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// confirmation describes a destructive action that needs a y/N answer.
type confirmation struct {
	Action string
	// Target names what is affected; empty means everything, and Warning is shown instead.
	Target  string
	Warning string
	// Skip bypasses the prompt (dry runs and -yes).
	Skip bool
}

// ask prints the prompt to out and reads one answer line from in.
func (c confirmation) ask(in io.Reader, out io.Writer) error {
	if c.Skip {
		return nil
	}

	intro := c.Warning
	if c.Target != "" {
		intro = fmt.Sprintf("About to %s for %s.", c.Action, c.Target)
	}
	if err := writef(out, "%s\nContinue? [y/N]: ", intro); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return errAborted
	}
}

var errAborted = errors.New("aborted by user")

func renderTTL(d time.Duration) string {
	switch {
	case d == -1*time.Second:
		return "no expiry"
	case d == -2*time.Second:
		return "key missing"
	default:
		return d.Round(time.Second).String()
	}
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}
