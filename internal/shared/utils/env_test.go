package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ACCOUNTS_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("ACCOUNTS_TEST_VALUE", "fallback"))

	t.Setenv("ACCOUNTS_TEST_VALUE", "")
	assert.Equal(t, "fallback", GetEnv("ACCOUNTS_TEST_VALUE", "fallback"))
}
