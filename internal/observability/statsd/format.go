package statsd

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxTagValueLen bounds tag values. Page names arrive from visitors, so an
// unbounded value would let one request mint arbitrary series.
const maxTagValueLen = 64

// tagReplacer strips characters that carry meaning in the DogStatsD format.
//
//nolint:gochecknoglobals // immutable replacer
var tagReplacer = strings.NewReplacer(
	"|", "_",
	",", "_",
	"#", "_",
	"@", "_",
	":", "_",
	"\n", "_",
	" ", "_",
)

// nameReplacer keeps metric names to dotted identifiers.
//
//nolint:gochecknoglobals // immutable replacer
var nameReplacer = strings.NewReplacer(
	" ", "_",
	"/", "_",
	":", "_",
	"|", "_",
	"@", "_",
	"#", "_",
)

func sanitizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), ".")
}

func normalizeMetricName(name string) string {
	n := strings.TrimSpace(name)
	if n == "" {
		return ""
	}
	n = nameReplacer.Replace(n)
	for strings.Contains(n, "..") {
		n = strings.ReplaceAll(n, "..", ".")
	}
	return strings.Trim(n, ".")
}

func sanitizeTagKey(k string) string {
	return tagReplacer.Replace(strings.TrimSpace(k))
}

func sanitizeTagValue(v string) string {
	v = tagReplacer.Replace(strings.TrimSpace(v))
	if len(v) <= maxTagValueLen {
		return v
	}
	v = v[:maxTagValueLen]
	for !utf8.ValidString(v) {
		v = v[:len(v)-1]
	}
	return v
}

// formatTags merges global and per-call tags into a sorted "|#k:v,..." suffix.
func formatTags(global, local map[string]string) string {
	total := len(global) + len(local)
	if total == 0 {
		return ""
	}

	merged := make(map[string]string, total)
	for k, v := range global {
		merged[k] = v
	}
	for k, v := range local {
		if key := sanitizeTagKey(k); key != "" {
			merged[key] = sanitizeTagValue(v)
		}
	}
	if len(merged) == 0 {
		return ""
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("|#")
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(merged[k])
	}
	return b.String()
}

// cloneTags copies tags with keys and values sanitised, dropping empty keys.
func cloneTags(tags map[string]string) map[string]string {
	cp := make(map[string]string, len(tags))
	for k, v := range tags {
		if key := sanitizeTagKey(k); key != "" {
			cp[key] = sanitizeTagValue(v)
		}
	}
	return cp
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
