package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/dotbadge/internal/font"
)

func TestSketch(t *testing.T) {
	got := sketch(font.Render("I", 1))
	assert.Equal(t, []string{
		"@@@.",
		".@..",
		".@..",
		".@..",
		"@@@.",
	}, got)
}
