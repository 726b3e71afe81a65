package util

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomName(t *testing.T) {
	a := assert.New(t)

	random = rand.New(rand.NewSource(0)) // nolint:gosec
	first := []string{GetRandomName(), GetRandomName()}

	random = rand.New(rand.NewSource(0)) // nolint:gosec
	second := []string{GetRandomName(), GetRandomName()}

	a.Equal(first, second)

	parts := strings.Split(first[0], " ")
	if a.Len(parts, 2) {
		a.Contains(adjectives, parts[0])
		a.Contains(animals, parts[1])
	}
}

func TestRandomUsername(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^[a-z]+-[a-z]+-\d{1,2}$`), RandomUsername())
}
