// Package core holds the template helpers shared by every page template.
package core

import (
	"bytes"
	"errors"
	"html/template"
	"strconv"
	"strings"
	"time"
)

// FriendlyLayout is the absolute timestamp format shown on job details.
const FriendlyLayout = "Jan 2, 2006 3:04 PM"

// Deps wires the func map to the template set it belongs to.
type Deps struct {
	// Template points at the parsed set; renderSection reads it at execution time.
	Template           **template.Template
	ContentTemplateFor func(string) string
	// Now overrides the clock for relativeTime (tests).
	Now func() time.Time
}

// Funcs returns the helpers used by the layout, pages and partials.
func Funcs(deps Deps) template.FuncMap {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return template.FuncMap{
		"renderSection": renderSection(deps),
		"relativeTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return RelativeTime(t, now())
		},
		"friendlyTime": func(ts any) string {
			switch v := ts.(type) {
			case time.Time:
				return FriendlyTime(v)
			case *time.Time:
				if v != nil {
					return FriendlyTime(*v)
				}
			}
			return ""
		},
	}
}

// renderSection executes the content template of a page and embeds it in the
// calling template. Unknown pages resolve through ContentTemplateFor.
func renderSection(deps Deps) func(string, any) (template.HTML, error) {
	return func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - produced by html/template from the same set, already escaped
		return template.HTML(buf.String()), nil
	}
}

// RelativeTime describes how long before now t happened. Future times read
// as "just now"; anything older than a week falls back to FriendlyTime.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff/(24*time.Hour)), "day")
	default:
		return FriendlyTime(t)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return strconv.Itoa(n) + " " + unit + "s ago"
}

// FriendlyTime formats t in local time, or returns "" for the zero time.
func FriendlyTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyLayout)
}

// Truncate shortens text to limit runes, ending with an ellipsis when cut.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	if limit == 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
