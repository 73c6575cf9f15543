package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvBool(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " yes ", "on"} {
		t.Setenv("TESTUTIL_FLAG", v)
		assert.True(t, envBool("TESTUTIL_FLAG"), v)
	}
	for _, v := range []string{"", "0", "false", "off", "maybe"} {
		t.Setenv("TESTUTIL_FLAG", v)
		assert.False(t, envBool("TESTUTIL_FLAG"), v)
	}
}

func TestRequireRedis(t *testing.T) {
	t.Setenv("TEST_REQUIRE_REDIS", "")
	t.Setenv("TEST_REQUIRE_INFRA", "")
	assert.False(t, requireRedis())

	t.Setenv("TEST_REQUIRE_INFRA", "true")
	assert.True(t, requireRedis())
}
