package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/http/ui/viewmodel"
	"github.com/jobboard/jobboard-ui/internal/mocks"
	"github.com/jobboard/jobboard-ui/internal/ports"
	"github.com/jobboard/jobboard-ui/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNavItems_PrimaryPagesOnly(t *testing.T) {
	items := navItems(view.Nav{Current: view.PageInvite, Items: view.AllPages()})

	pages := make([]string, 0, len(items))
	for _, it := range items {
		pages = append(pages, it.Page)
		assert.Equal(t, it.Page == "invite", it.Active, it.Page)
	}
	assert.Equal(t, []string{"home", "jobs", "invite", "settings", "register"}, pages)
}

func TestNavItems_UnknownCurrentHasNoActiveItem(t *testing.T) {
	for _, it := range navItems(view.Nav{Current: "bogus", Items: view.AllPages()}) {
		assert.False(t, it.Active, it.Page)
	}
}

func TestChatViewModel(t *testing.T) {
	guest := chatViewModel(view.Chat{})
	assert.Nil(t, guest.User)
	assert.NotEmpty(t, guest.Greeting)

	member := chatViewModel(view.Chat{User: &view.User{Email: "ada@example.com", Name: "ada", Role: view.RoleMember}})
	require.NotNil(t, member.User)
	assert.Equal(t, "A", member.User.Initial)
	assert.Contains(t, member.Greeting, "ada")
}

func TestJobCards_TruncatesSummary(t *testing.T) {
	long := strings.Repeat("word ", 60)
	cards := jobCards([]ports.Job{{ID: 1, Title: "Cook", Description: long, PostedAt: time.Now()}})

	require.Len(t, cards, 1)
	assert.Less(t, len([]rune(cards[0].Description)), len([]rune(long)))
	assert.Equal(t, int64(1), cards[0].ID)
}

func TestJobList(t *testing.T) {
	jobs := []viewmodel.JobCard{{ID: 3}}

	got := jobList(jobs, true, "tok")
	assert.Equal(t, jobListData{Jobs: jobs, Selectable: true, CSRFToken: "tok"}, got)

	got = jobList(nil, false, nil)
	assert.Empty(t, got.CSRFToken)
}

func TestFetchPage_CatalogErrorMarksPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	cat := mocks.NewMockJobCatalog(ctrl)
	cat.EXPECT().
		List(gomock.Any(), ports.JobListOptions{FeaturedOnly: true, Limit: homeFeaturedLimit}).
		Return(nil, errors.New("catalog offline"))

	h := &UIHandlers{Catalog: cat}
	st := view.NewState(view.Initial{})
	res := service.Result{State: st, View: view.Select(st)}

	data := h.pageData(httptest.NewRequest(http.MethodGet, "/", nil), res, renderOpts{})
	assert.Equal(t, true, data["Error"])
	assert.NotEmpty(t, data["ErrorMessage"])
}

func TestFetchPage_JobDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	cat := mocks.NewMockJobCatalog(ctrl)
	posted := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cat.EXPECT().Get(gomock.Any(), int64(7)).Return(ports.Job{
		ID: 7, Title: "Baker", Company: "Crumbs", Location: "Oslo", PostedAt: posted,
	}, nil)
	cat.EXPECT().Get(gomock.Any(), int64(8)).Return(ports.Job{}, ports.ErrJobNotFound)
	cat.EXPECT().Get(gomock.Any(), int64(9)).Return(ports.Job{}, errors.New("boom"))

	h := &UIHandlers{Catalog: cat}
	ctx := context.Background()
	normal := func(id *int64) view.Normal {
		return view.Select(view.State{Page: view.PageJobDetails, JobID: id}).(view.Normal)
	}

	data := map[string]any{"Title": "Job details | Jobboard"}
	require.NoError(t, h.fetchPage(ctx, normal(view.Ptr(7)), data))
	assert.Equal(t, "Baker at Crumbs | Jobboard", data["Title"])
	card, ok := data["Job"].(viewmodel.JobCard)
	require.True(t, ok)
	assert.Equal(t, "Oslo", card.Location)

	data = map[string]any{}
	require.NoError(t, h.fetchPage(ctx, normal(view.Ptr(8)), data))
	assert.Equal(t, true, data["JobNotFound"])

	data = map[string]any{}
	require.NoError(t, h.fetchPage(ctx, normal(nil), data))
	assert.Equal(t, true, data["JobNotFound"])

	data = map[string]any{}
	assert.Error(t, h.fetchPage(ctx, normal(view.Ptr(9)), data))
}

func TestFetchPage_StaticPages(t *testing.T) {
	h := &UIHandlers{Site: SiteOptions{BaseURL: " https://jobs.example.com/ "}}
	ctx := context.Background()

	data := map[string]any{}
	require.NoError(t, h.fetchPage(ctx, view.Normal{Page: view.PageInvite}, data))
	assert.Equal(t, "https://jobs.example.com/?page=register", data["InviteURL"])

	data = map[string]any{}
	require.NoError(t, h.fetchPage(ctx, view.Normal{Page: view.PageAdsPlan}, data))
	plans, ok := data["Plans"].([]viewmodel.AdPlan)
	require.True(t, ok)
	assert.Len(t, plans, 3)

	data = map[string]any{}
	require.NoError(t, h.fetchPage(ctx, view.Normal{Page: view.PageJobs}, data))
	assert.Empty(t, data["Jobs"])
}
