package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	redisadapter "github.com/jobboard/jobboard-ui/internal/adapters/redis"
	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/ports"
)

const stateCommandTimeout = 2 * time.Minute

type listStatesOptions struct {
	Limit int
	Page  string
	Role  string
}

type showStateOptions struct {
	VisitorID string
	RawJSON   bool
}

type clearStatesOptions struct {
	VisitorID string
	All       bool
	DryRun    bool
	Yes       bool
}

// stateRow is one line of list-view-states output.
type stateRow struct {
	VisitorID string
	State     view.State
	TTL       time.Duration
}

func runListViewStates(cmdCtx *commandContext, args []string) error {
	opts, err := parseListStatesFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, stateCommandTimeout)
	defer cancel()

	conn, err := openStateStore(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", cerr)
		}
	}()

	rows, err := collectStates(ctx, conn.store, opts)
	if err != nil {
		return err
	}
	return renderStateRows(os.Stdout, rows)
}

func collectStates(ctx context.Context, store *redisadapter.StateStore, opts listStatesOptions) ([]stateRow, error) {
	var rows []stateRow
	errLimit := errors.New("limit reached")

	err := store.Scan(ctx, func(e redisadapter.Entry) error {
		st, err := store.Get(ctx, e.VisitorID)
		if errors.Is(err, ports.ErrStateNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load state %s: %w", e.VisitorID, err)
		}
		if !matchesState(st, opts) {
			return nil
		}
		rows = append(rows, stateRow{VisitorID: e.VisitorID, State: st, TTL: e.TTL})
		if opts.Limit > 0 && len(rows) >= opts.Limit {
			return errLimit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimit) {
		return nil, err
	}
	return rows, nil
}

func matchesState(st view.State, opts listStatesOptions) bool {
	if opts.Page != "" && string(st.Page) != opts.Page {
		return false
	}
	switch opts.Role {
	case "":
		return true
	case "anonymous":
		return st.User == nil
	default:
		return st.User != nil && string(st.User.Role) == opts.Role
	}
}

func renderStateRows(w io.Writer, rows []stateRow) error {
	if len(rows) == 0 {
		return writeln(w, "(no view states found)")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writeln(tw, "VISITOR\tPAGE\tRENDERS\tUSER\tROLE\tJOB\tTTL"); err != nil {
		return fmt.Errorf("print header: %w", err)
	}
	for _, r := range rows {
		email, role := "-", "-"
		if r.State.User != nil {
			email, role = r.State.User.Email, string(r.State.User.Role)
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.VisitorID,
			r.State.Page,
			describeView(view.Select(r.State)),
			email,
			role,
			formatJobID(r.State.JobID),
			renderTTL(r.TTL),
		); err != nil {
			return fmt.Errorf("print row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return writef(w, "\nTotal: %d\n", len(rows))
}

func runShowViewState(cmdCtx *commandContext, args []string) error {
	opts, err := parseShowStateFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, stateCommandTimeout)
	defer cancel()

	conn, err := openStateStore(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", cerr)
		}
	}()

	st, err := conn.store.Get(ctx, opts.VisitorID)
	if errors.Is(err, ports.ErrStateNotFound) {
		return fmt.Errorf("no view state for visitor %q", opts.VisitorID)
	}
	if err != nil {
		return err
	}
	return printState(os.Stdout, opts, st)
}

func printState(w io.Writer, opts showStateOptions, st view.State) error {
	if opts.RawJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("encode state: %w", err)
		}
		return nil
	}

	user := "(anonymous)"
	if st.User != nil {
		user = fmt.Sprintf("%s <%s> role=%s", st.User.DisplayName(), st.User.Email, st.User.Role)
	}
	lines := []string{
		"Visitor: " + opts.VisitorID,
		"Page:    " + string(st.Page),
		"User:    " + user,
		"Job:     " + formatJobID(st.JobID),
		"Renders: " + describeView(view.Select(st)),
	}
	for _, l := range lines {
		if err := writeln(w, l); err != nil {
			return fmt.Errorf("print state: %w", err)
		}
	}
	return nil
}

func runClearViewStates(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearStatesFlags(args)
	if err != nil {
		return err
	}
	if confirmErr := opts.confirmation().ask(os.Stdin, os.Stdout); confirmErr != nil {
		return confirmErr
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, stateCommandTimeout)
	defer cancel()

	conn, err := openStateStore(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", cerr)
		}
	}()

	targets := []string{opts.VisitorID}
	if opts.All {
		targets = targets[:0]
		if scanErr := conn.store.Scan(ctx, func(e redisadapter.Entry) error {
			targets = append(targets, e.VisitorID)
			return nil
		}); scanErr != nil {
			return scanErr
		}
	}

	if opts.DryRun {
		return writef(os.Stdout, "[dry-run] would delete %d view state(s)\n", len(targets))
	}

	deleted, err := forgetStates(ctx, conn.views, targets)
	if err != nil {
		return err
	}

	cmdCtx.Logger.Info("clear view states complete", "deleted", deleted)
	return nil
}

// stateForgetter drops a visitor's stored view state.
type stateForgetter interface {
	Forget(ctx context.Context, visitorID string) error
}

func forgetStates(ctx context.Context, f stateForgetter, visitorIDs []string) (int, error) {
	deleted := 0
	for _, id := range visitorIDs {
		if err := f.Forget(ctx, id); err != nil {
			return deleted, fmt.Errorf("clear view state %s: %w", id, err)
		}
		deleted++
	}
	return deleted, nil
}

func parseListStatesFlags(args []string) (listStatesOptions, error) {
	fs := flag.NewFlagSet("list-view-states", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts listStatesOptions
	fs.IntVar(&opts.Limit, "limit", 100, "Maximum number of states to list (0 for all)")
	fs.StringVar(&opts.Page, "page", "", "Only states on this page")
	fs.StringVar(&opts.Role, "role", "", "Only states with this user role (admin, member, guest, anonymous)")

	if err := fs.Parse(args); err != nil {
		return listStatesOptions{}, err
	}

	opts.Page = strings.TrimSpace(opts.Page)
	opts.Role = strings.ToLower(strings.TrimSpace(opts.Role))
	if opts.Limit < 0 {
		return listStatesOptions{}, errors.New("--limit must be >= 0")
	}
	switch opts.Role {
	case "", "anonymous", string(view.RoleAdmin), string(view.RoleMember), string(view.RoleGuest):
	default:
		return listStatesOptions{}, fmt.Errorf("unknown --role %q", opts.Role)
	}
	return opts, nil
}

func parseShowStateFlags(args []string) (showStateOptions, error) {
	fs := flag.NewFlagSet("show-view-state", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts showStateOptions
	fs.StringVar(&opts.VisitorID, "visitor", "", "Visitor id (the view_id cookie value)")
	fs.BoolVar(&opts.RawJSON, "json", false, "Print the stored JSON")

	if err := fs.Parse(args); err != nil {
		return showStateOptions{}, err
	}
	opts.VisitorID = strings.TrimSpace(opts.VisitorID)
	if opts.VisitorID == "" {
		return showStateOptions{}, errors.New("--visitor is required")
	}
	return opts, nil
}

func parseClearStatesFlags(args []string) (clearStatesOptions, error) {
	fs := flag.NewFlagSet("clear-view-states", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts clearStatesOptions
	fs.StringVar(&opts.VisitorID, "visitor", "", "Visitor id to clear (required unless --all)")
	fs.BoolVar(&opts.All, "all", false, "Clear every stored view state")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Print actions without executing")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return clearStatesOptions{}, err
	}

	opts.VisitorID = strings.TrimSpace(opts.VisitorID)
	if opts.All && opts.VisitorID != "" {
		return clearStatesOptions{}, errors.New("--visitor and --all are mutually exclusive")
	}
	if !opts.All && opts.VisitorID == "" {
		return clearStatesOptions{}, errors.New("--visitor is required (or use --all)")
	}
	return opts, nil
}

func (o clearStatesOptions) confirmation() confirmation {
	c := confirmation{
		Action:  "clear view state",
		Warning: "WARNING: this will log out every visitor and reset their page.",
		Skip:    o.DryRun || o.Yes,
	}
	if !o.All {
		c.Target = fmt.Sprintf("visitor %q", o.VisitorID)
	}
	return c
}

// describeView summarises a render selection for humans.
func describeView(v view.View) string {
	switch sel := v.(type) {
	case view.AdminShell:
		return "admin-shell"
	case view.Normal:
		if sel.Requested != sel.Page {
			return fmt.Sprintf("%s (requested %q)", sel.Page, sel.Requested)
		}
		return string(sel.Page)
	default:
		return "unknown"
	}
}

func formatJobID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}
