package image

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPosterContentFormatsFigures(t *testing.T) {
	c := DefaultPosterContent()
	assert.Equal(t, "$500,000", c.KeyFacts[0].Value)
	assert.Equal(t, "64", c.KeyFacts[1].Value)
	assert.Equal(t, "$5,000 (group stage) to $50,000 (final)", c.HowItWorked[1])
	assert.Len(t, c.Partnership, 3)
}

func TestBuildPosterPrompt(t *testing.T) {
	prompt := BuildPosterPrompt(DefaultPosterContent())
	for _, want := range []string{
		"VISA WOMEN'S WORLD CUP 2023",
		"SECTION 1 - KEY FACTS",
		"- $500,000: Total funding (USD)",
		"SECTION 3 - CANADA PARTNERSHIP",
		"Visa blue (#1434CB)",
		"Portrait orientation (1024x1536)",
	} {
		assert.Contains(t, prompt, want)
	}
	assert.True(t, strings.HasPrefix(prompt, "Create a clean, professional corporate infographic poster"))
}
