package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jobboard/jobboard-ui/internal/bootstrap"
	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/ports"
)

type checkCatalogOptions struct {
	Path         string
	FeaturedOnly bool
}

func runCheckCatalog(cmdCtx *commandContext, args []string) error {
	opts, err := parseCheckCatalogFlags(args, cmdCtx.Config.Site.CatalogPath)
	if err != nil {
		return err
	}

	cat, err := bootstrap.LoadCatalog(opts.Path)
	if err != nil {
		return err
	}

	jobs, err := cat.List(cmdCtx.Ctx, ports.JobListOptions{FeaturedOnly: opts.FeaturedOnly})
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}
	return renderJobs(os.Stdout, jobs)
}

func renderJobs(w io.Writer, jobs []ports.Job) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writeln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tFEATURED\tPOSTED"); err != nil {
		return fmt.Errorf("print header: %w", err)
	}
	for _, j := range jobs {
		featured := ""
		if j.Featured {
			featured = "yes"
		}
		posted := "-"
		if !j.PostedAt.IsZero() {
			posted = j.PostedAt.Format("2006-01-02")
		}
		if err := writef(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.Title, j.Company, j.Location, featured, posted); err != nil {
			return fmt.Errorf("print job: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return writef(w, "\nCatalog OK: %d job(s)\n", len(jobs))
}

func parseCheckCatalogFlags(args []string, defaultPath string) (checkCatalogOptions, error) {
	fs := flag.NewFlagSet("check-catalog", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts checkCatalogOptions
	fs.StringVar(&opts.Path, "path", defaultPath, "Catalog JSON file (default: JOB_CATALOG_PATH or the embedded seed)")
	fs.BoolVar(&opts.FeaturedOnly, "featured", false, "Only list featured jobs")

	if err := fs.Parse(args); err != nil {
		return checkCatalogOptions{}, err
	}
	opts.Path = strings.TrimSpace(opts.Path)
	return opts, nil
}

func runResolveURL(cmdCtx *commandContext, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: jobboard-admin resolve-url <url or query string>")
	}
	q, err := parseStartupQuery(args[0])
	if err != nil {
		return err
	}

	var cat ports.JobCatalog
	if c, loadErr := bootstrap.LoadCatalog(cmdCtx.Config.Site.CatalogPath); loadErr == nil {
		cat = c
	} else {
		cmdCtx.Logger.Warn("catalog unavailable; job titles omitted", "error", loadErr)
	}
	return printResolution(cmdCtx.Ctx, os.Stdout, view.Resolve(q), cat)
}

// parseStartupQuery accepts a full URL, a path with a query or a bare query.
func parseStartupQuery(raw string) (url.Values, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return url.Values{}, nil
	}
	if !strings.Contains(raw, "?") && !strings.Contains(raw, "/") {
		raw = "?" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	return u.Query(), nil
}

func printResolution(ctx context.Context, w io.Writer, in view.Initial, cat ports.JobCatalog) error {
	if err := writef(w, "Page:  %s\n", in.Page); err != nil {
		return err
	}
	job := formatJobID(in.JobID)
	if in.JobID != nil && cat != nil {
		if j, err := cat.Get(ctx, *in.JobID); err == nil {
			job = fmt.Sprintf("%s (%s at %s)", job, j.Title, j.Company)
		} else {
			job += " (not in catalog)"
		}
	}
	if err := writef(w, "JobID: %s\n", job); err != nil {
		return err
	}
	return writef(w, "Renders: %s\n", describeView(view.Select(view.NewState(in))))
}
