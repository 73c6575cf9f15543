// Package catalog serves a read-only job catalog loaded from a JSON seed.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/jobboard/jobboard-ui/internal/ports"
)

// Catalog implements ports.JobCatalog over an immutable in-memory list.
// Jobs are ordered newest first.
type Catalog struct {
	jobs []ports.Job
	byID map[int64]int
}

// New decodes a JSON array of jobs.
func New(data []byte) (*Catalog, error) {
	var jobs []ports.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("decode job catalog: %w", err)
	}

	slices.SortStableFunc(jobs, func(a, b ports.Job) int {
		return b.PostedAt.Compare(a.PostedAt)
	})

	byID := make(map[int64]int, len(jobs))
	for i, j := range jobs {
		if strings.TrimSpace(j.Title) == "" {
			return nil, fmt.Errorf("job %d: title is required", j.ID)
		}
		if _, dup := byID[j.ID]; dup {
			return nil, fmt.Errorf("job %d: duplicate id", j.ID)
		}
		byID[j.ID] = i
	}
	return &Catalog{jobs: jobs, byID: byID}, nil
}

// Load reads the seed file at name from fsys.
func Load(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read job catalog %s: %w", name, err)
	}
	return New(data)
}

// List returns jobs matching opts. The returned slice is a copy.
func (c *Catalog) List(ctx context.Context, opts ports.JobListOptions) ([]ports.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]ports.Job, 0, len(c.jobs))
	for _, j := range c.jobs {
		if opts.FeaturedOnly && !j.Featured {
			continue
		}
		out = append(out, j)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

// Get returns the job with the given id or ports.ErrJobNotFound.
func (c *Catalog) Get(ctx context.Context, id int64) (ports.Job, error) {
	if err := ctx.Err(); err != nil {
		return ports.Job{}, err
	}
	i, ok := c.byID[id]
	if !ok {
		return ports.Job{}, ports.ErrJobNotFound
	}
	return c.jobs[i], nil
}

// Len reports the number of jobs in the catalog.
func (c *Catalog) Len() int { return len(c.jobs) }
