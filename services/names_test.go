package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, uniqueNames([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, uniqueNames(nil))
}

func TestMissingNames(t *testing.T) {
	missing := missingNames([]string{"c", "a", "b"}, []string{"b"})
	assert.Equal(t, []string{"a", "c"}, missing)

	assert.Empty(t, missingNames([]string{"a"}, []string{"a"}))
}
