package core

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSection(t *testing.T) {
	var tmpl *template.Template
	funcs := Funcs(Deps{
		Template: &tmpl,
		ContentTemplateFor: func(page string) string {
			if page == "jobs" {
				return "jobs-content"
			}
			return "home-content"
		},
	})
	var err error
	tmpl, err = template.New("root").Funcs(funcs).Parse(
		`{{define "home-content"}}home {{.}}{{end}}` +
			`{{define "jobs-content"}}jobs <b>{{.}}</b>{{end}}` +
			`{{define "page"}}{{renderSection "jobs" .}}|{{renderSection "other" .}}{{end}}`,
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "page", "x<y"))
	assert.Equal(t, "jobs <b>x&lt;y</b>|home x&lt;y", buf.String())
}

func TestRenderSection_Uninitialised(t *testing.T) {
	fn := renderSection(Deps{ContentTemplateFor: func(string) string { return "" }})
	_, err := fn("home", nil)
	require.Error(t, err)
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{ago: -time.Hour, want: "just now"},
		{ago: 30 * time.Second, want: "just now"},
		{ago: 90 * time.Second, want: "1 minute ago"},
		{ago: 45 * time.Minute, want: "45 minutes ago"},
		{ago: time.Hour, want: "1 hour ago"},
		{ago: 5 * time.Hour, want: "5 hours ago"},
		{ago: 26 * time.Hour, want: "1 day ago"},
		{ago: 72 * time.Hour, want: "3 days ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeTime(now.Add(-tt.ago), now), "ago=%s", tt.ago)
	}

	old := now.Add(-30 * 24 * time.Hour)
	assert.Equal(t, FriendlyTime(old), RelativeTime(old, now))
}

func TestTimeFuncs(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	funcs := Funcs(Deps{
		ContentTemplateFor: func(string) string { return "" },
		Now:                func() time.Time { return now },
	})

	relative, ok := funcs["relativeTime"].(func(time.Time) string)
	require.True(t, ok)
	assert.Empty(t, relative(time.Time{}))
	assert.Equal(t, "2 days ago", relative(now.Add(-48*time.Hour)))

	friendly, ok := funcs["friendlyTime"].(func(any) string)
	require.True(t, ok)
	assert.Empty(t, friendly(time.Time{}))
	assert.Empty(t, friendly((*time.Time)(nil)))
	assert.Empty(t, friendly("yesterday"))
	assert.Equal(t, now.Local().Format(FriendlyLayout), friendly(&now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "long…", Truncate("long text", 5))
	assert.Equal(t, "…", Truncate("long text", 1))
	assert.Equal(t, "long text", Truncate("long text", 0))
	assert.Equal(t, "héll…", Truncate("héllo wörld", 5))
}
