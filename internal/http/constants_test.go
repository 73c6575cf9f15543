package httpx

import (
	"testing"

	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/stretchr/testify/assert"
)

func TestContentTemplateFor_EveryPageHasTemplate(t *testing.T) {
	for _, p := range view.AllPages() {
		name, ok := ContentTemplateMap()[p.String()]
		assert.True(t, ok, "page %s has no content template", p)
		assert.Equal(t, name, ContentTemplateFor(p.String()))
	}
	assert.Equal(t, "admin-shell-content", ContentTemplateFor(PageAdmin))
}

func TestContentTemplateFor_UnknownFallsBackToHome(t *testing.T) {
	assert.Equal(t, "home-content", ContentTemplateFor("nope"))
	assert.Equal(t, "home-content", ContentTemplateFor(""))
}
