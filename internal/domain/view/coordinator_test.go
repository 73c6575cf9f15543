package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_LoginAdminSelectsAdminShell(t *testing.T) {
	for _, start := range []Page{PageHome, PageJobs, PageJobDetails, Page("bogus")} {
		t.Run(string(start), func(t *testing.T) {
			c := NewCoordinator(State{Page: start})
			admin := User{ID: "u1", Email: "boss@example.com", Role: RoleAdmin}

			c.Login(admin)

			assert.Equal(t, start, c.State().Page, "admin login leaves the page untouched")
			shell, ok := c.View().(AdminShell)
			require.True(t, ok, "expected admin shell, got %T", c.View())
			assert.Equal(t, admin, shell.User)
		})
	}
}

func TestCoordinator_LoginMemberOpensSettings(t *testing.T) {
	c := NewCoordinator(State{Page: PageJobs})
	member := User{ID: "u2", Email: "jane@example.com", Role: RoleMember}

	c.Login(member)

	st := c.State()
	assert.Equal(t, PageSettings, st.Page)
	require.NotNil(t, st.User)
	assert.Equal(t, member, *st.User)

	normal, ok := c.View().(Normal)
	require.True(t, ok)
	assert.Equal(t, PageSettings, normal.Page)
	assert.True(t, normal.Props.CanLogout)
	assert.Equal(t, &member, normal.Props.User)
}

func TestCoordinator_LoginCopiesUser(t *testing.T) {
	c := NewCoordinator(State{})
	u := User{Email: "a@example.com", Role: RoleMember}

	c.Login(u)
	u.Role = RoleAdmin

	assert.Equal(t, RoleMember, c.State().User.Role)
}

func TestCoordinator_SelectJob(t *testing.T) {
	c := NewCoordinator(State{Page: PageJobs})

	eff := c.SelectJob(7)

	assert.True(t, eff.Has(EffectScrollTop))
	st := c.State()
	assert.Equal(t, PageJobDetails, st.Page)
	require.NotNil(t, st.JobID)
	assert.Equal(t, int64(7), *st.JobID)

	normal, ok := c.View().(Normal)
	require.True(t, ok)
	assert.Equal(t, PageJobDetails, normal.Page)
	require.NotNil(t, normal.Props.JobID)
	assert.Equal(t, int64(7), *normal.Props.JobID)
}

func TestCoordinator_SelectJobOverwrites(t *testing.T) {
	c := NewCoordinator(NewState(Initial{Page: PageJobDetails, JobID: Ptr(3)}))

	c.SelectJob(9)

	assert.Equal(t, int64(9), *c.State().JobID)
}

func TestCoordinator_LogoutFromAnyState(t *testing.T) {
	states := []State{
		{Page: PageHome},
		{Page: PageJobs, User: &User{Role: RoleMember}},
		{Page: PageAdsPlan, User: &User{Role: RoleAdmin}},
		{Page: Page("nowhere"), User: &User{Role: RoleGuest}, JobID: Ptr(1)},
	}
	for _, s := range states {
		c := NewCoordinator(s)

		eff := c.Logout()

		assert.Equal(t, EffectNone, eff)
		assert.Nil(t, c.State().User)
		assert.Equal(t, PageSettings, c.State().Page)
		assert.Equal(t, s.JobID, c.State().JobID, "logout keeps the job selection")
	}
}

func TestCoordinator_NavigateIsNotValidated(t *testing.T) {
	c := NewCoordinator(State{Page: PageJobs})

	c.Navigate(Page("nonexistent-page"))

	assert.Equal(t, Page("nonexistent-page"), c.State().Page)
	normal, ok := c.View().(Normal)
	require.True(t, ok)
	assert.Equal(t, PageHome, normal.Page)
	assert.Equal(t, Page("nonexistent-page"), normal.Requested)
	assert.Equal(t, Page("nonexistent-page"), normal.Nav.Current)
}

func TestCoordinator_NavigateValid(t *testing.T) {
	c := NewCoordinator(State{})

	eff := c.Navigate(PageInvite)

	assert.Equal(t, EffectNone, eff)
	normal := c.View().(Normal)
	assert.Equal(t, PageInvite, normal.Page)
	assert.Equal(t, Props{}, normal.Props)
}

func TestNewState_DefaultsPage(t *testing.T) {
	assert.Equal(t, PageHome, NewState(Initial{}).Page)
}
