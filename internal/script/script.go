// Package script drives a control from a line protocol, one command per line.
// It is the headless host used by tests and shell pipelines.
//
//	open | close | toggle | dismiss
//	type <text>     append to the query
//	query <text>    replace the query
//	backspace       drop the last character of the query
//	down [n] | up [n]
//	hover <i>       highlight row i
//	click <i>       select row i
//	outside         pointer press outside the control
//	confirm
//	wait            block until pending requests are applied
//	state           print the current state
//
// Every confirmed selection is printed as a {"event":"selected"} line.
package script

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"remoteselect/internal/domain"
	"remoteselect/internal/selector"
)

// Control is what the runner needs from a mounted control
type Control interface {
	Open()
	Close()
	Toggle()
	Dismiss()
	SetQuery(text string)
	MoveHighlight(delta int)
	Highlight(index int)
	Confirm() bool
	SelectIndex(index int) bool
	CurrentState() selector.State
	Wait()
	OnSelect(fn func(domain.Item)) func()
}

// RowView is a row in a printed snapshot
type RowView struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Snapshot is the printed form of selector.State
type Snapshot struct {
	Open          bool        `json:"open"`
	Disabled      bool        `json:"disabled,omitempty"`
	Query         string      `json:"query"`
	Highlighted   int         `json:"highlighted"`
	Rows          []RowView   `json:"rows"`
	Selected      domain.Item `json:"selected"`
	SelectedLabel string      `json:"selected_label,omitempty"`
	Loading       bool        `json:"loading,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// NewSnapshot converts a state for printing
func NewSnapshot(s selector.State) Snapshot {
	rows := make([]RowView, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, RowView{Index: r.Index, Key: r.Key, Label: r.Label})
	}
	return Snapshot{
		Open:          s.IsOpen,
		Disabled:      s.Disabled,
		Query:         s.Query,
		Highlighted:   s.HighlightedIndex,
		Rows:          rows,
		Selected:      s.Selected,
		SelectedLabel: s.SelectedLabel,
		Loading:       s.Loading,
		Error:         s.LastError,
	}
}

// Runner executes commands against a control
type Runner struct {
	control Control
	outside func()
	out     *json.Encoder
	mu      sync.Mutex

	// WaitTimeout bounds the wait command
	WaitTimeout time.Duration
}

// NewRunner creates a runner writing JSON lines to out. outside, when not
// nil, delivers a pointer press outside the control.
func NewRunner(control Control, out io.Writer, outside func()) *Runner {
	return &Runner{
		control:     control,
		outside:     outside,
		out:         json.NewEncoder(out),
		WaitTimeout: 30 * time.Second,
	}
}

// Run reads commands until EOF or ctx is cancelled. A bad command prints
// an error line and does not stop the run.
func (r *Runner) Run(ctx context.Context, in io.Reader) error {
	unsubscribe := r.control.OnSelect(func(item domain.Item) {
		r.emit(map[string]any{"event": "selected", "item": item})
	})
	defer unsubscribe()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := r.Exec(ctx, line); err != nil {
			r.emit(map[string]string{"error": err.Error(), "line": line})
		}
	}
	return scanner.Err()
}

// Exec runs a single command line
func (r *Runner) Exec(ctx context.Context, line string) error {
	name, arg, _ := strings.Cut(line, " ")
	switch name {
	case "open":
		r.control.Open()
	case "close":
		r.control.Close()
	case "toggle":
		r.control.Toggle()
	case "dismiss", "escape":
		r.control.Dismiss()
	case "type":
		r.control.SetQuery(r.control.CurrentState().Query + arg)
	case "query":
		r.control.SetQuery(arg)
	case "backspace":
		q := []rune(r.control.CurrentState().Query)
		if len(q) > 0 {
			r.control.SetQuery(string(q[:len(q)-1]))
		}
	case "down", "up":
		n, err := optionalCount(arg)
		if err != nil {
			return err
		}
		if name == "up" {
			n = -n
		}
		r.control.MoveHighlight(n)
	case "hover":
		i, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return fmt.Errorf("hover: %w", err)
		}
		r.control.Highlight(i)
	case "click":
		i, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return fmt.Errorf("click: %w", err)
		}
		r.control.SelectIndex(i)
	case "outside":
		if r.outside == nil {
			return fmt.Errorf("outside: no pointer source")
		}
		r.outside()
	case "confirm", "enter":
		r.control.Confirm()
	case "wait":
		return r.wait(ctx)
	case "state":
		r.emit(NewSnapshot(r.control.CurrentState()))
	default:
		return fmt.Errorf("unknown command %q", name)
	}
	return nil
}

// wait polls until no debounce window or request is outstanding
func (r *Runner) wait(ctx context.Context) error {
	deadline := time.Now().Add(r.WaitTimeout)
	for {
		if !r.control.CurrentState().Loading {
			// a request that just finished may still be applying its result
			r.control.Wait()
			if !r.control.CurrentState().Loading {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("wait: still loading after %s", r.WaitTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func (r *Runner) emit(v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.out.Encode(v)
}

func optionalCount(arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
