package view

import (
	"strconv"
	"strings"
)

// Query parameter names read at startup.
const (
	ParamPage  = "page"
	ParamJobID = "jobId"
)

// QuerySource supplies the query parameters of the initial URL.
// url.Values satisfies it.
type QuerySource interface {
	Get(key string) string
}

// Initial is the state seeded from the initial URL.
type Initial struct {
	Page  Page
	JobID *int64
}

// Resolve derives the initial page and job selection from q.
// Invalid or missing values never fail: the page falls back to DefaultPage
// and the job id to absent.
func Resolve(q QuerySource) Initial {
	if q == nil {
		return Initial{Page: DefaultPage}
	}
	page, _ := ParsePage(q.Get(ParamPage))
	return Initial{
		Page:  page,
		JobID: ParseJobID(q.Get(ParamJobID)),
	}
}

// ParseJobID parses a base-10 job id using leading-integer semantics:
// surrounding whitespace and trailing non-digits are ignored ("42abc" is 42).
// Empty input, input without leading digits and out-of-range values are absent.
func ParseJobID(raw string) *int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	end := 0
	if s[0] == '+' || s[0] == '-' {
		end = 1
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return nil
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// Ptr returns a pointer to id. Convenience for callers building states.
func Ptr(id int64) *int64 { return &id }
