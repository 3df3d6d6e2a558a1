package image

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Poster geometry and palette shared by both producers.
const (
	PosterWidth  = 1024
	PosterHeight = 1536

	colorVisaBlue    = "#1434CB"
	colorGold        = "#FFD700"
	colorWhite       = "#FFFFFF"
	colorNavy        = "#0B1F7A"
	colorPanel       = "#0F2AA6"
	colorMapleRed    = "#D52B1E"
	colorCardInk     = "#1F2937"
	fundingTotalUSD  = 500000
	grantMatches     = 64
	groupStageGrant  = 5000
	finalMatchGrant  = 50000
	posterCampaign   = "Visa Women's World Cup 2023"
	posterProgram    = "Small Business Grant Program"
	posterPartnerOrg = "CCAB (Canadian Council of Aboriginal Business)"
)

// KeyFact is one card in the key-facts row.
type KeyFact struct {
	Value string
	Label string
}

// PosterContent is the copy printed on the infographic.
type PosterContent struct {
	Title       string
	Subtitle    string
	KeyFacts    [3]KeyFact
	HowItWorked []string
	Partnership []string
	Footer      string
}

// DefaultPosterContent returns the grant program copy.
func DefaultPosterContent() PosterContent {
	printer := message.NewPrinter(language.English)
	return PosterContent{
		Title:    posterCampaign,
		Subtitle: posterProgram,
		KeyFacts: [3]KeyFact{
			{Value: printer.Sprintf("$%d", fundingTotalUSD), Label: "Total funding (USD)"},
			{Value: printer.Sprintf("%d", grantMatches), Label: "Matches, one grant opportunity each"},
			{Value: "1st", Label: "Player of the Match award linked to a grant"},
		},
		HowItWorked: []string{
			"Female small business owners received grants",
			printer.Sprintf("$%d (group stage) to $%d (final)", groupStageGrant, finalMatchGrant),
			"One grant per match based on the Player of the Match winner's country",
		},
		Partnership: []string{
			"Partnership with " + posterPartnerOrg,
			"Supporting Indigenous women entrepreneurs",
			"Aligned with the She's Next program mission",
		},
		Footer: "Visa  |  She's Next  |  FIFA Women's World Cup Australia & New Zealand 2023",
	}
}

// BuildPosterPrompt turns the poster copy into the instruction sent to a
// text-to-image model. The wording stresses legible English text because
// image models tend to garble typography.
func BuildPosterPrompt(c PosterContent) string {
	var b strings.Builder
	b.WriteString("Create a clean, professional corporate infographic poster with CLEAR, READABLE TEXT in English.\n\n")
	b.WriteString("CRITICAL: All text must be in ENGLISH, large, bold, and easy to read. No blurry or garbled text.\n\n")
	fmt.Fprintf(&b, "Title at top (large, bold, white text):\n\"%s\n%s\"\n\n",
		strings.ToUpper(c.Title), strings.ToUpper(c.Subtitle))
	b.WriteString("Layout sections from top to bottom with large, readable text:\n\n")
	b.WriteString("SECTION 1 - KEY FACTS (with icons):\n")
	for _, fact := range c.KeyFacts {
		fmt.Fprintf(&b, "- %s: %s\n", fact.Value, fact.Label)
	}
	b.WriteString("\nSECTION 2 - HOW IT WORKED:\n")
	for _, line := range c.HowItWorked {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\nSECTION 3 - CANADA PARTNERSHIP:\n")
	for _, line := range c.Partnership {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	fmt.Fprintf(&b, "\nFooter: %s\n\n", c.Footer)
	b.WriteString("Design Style:\n")
	fmt.Fprintf(&b, "- Visa blue (%s) background\n", colorVisaBlue)
	fmt.Fprintf(&b, "- Gold/yellow (%s) accents and text highlights\n", colorGold)
	b.WriteString("- White text for maximum readability\n")
	b.WriteString("- Simple, clean layout with plenty of white space\n")
	b.WriteString("- Large, bold, sans-serif typography\n")
	b.WriteString("- Simple icons (trophy, soccer ball, money bag, maple leaf)\n")
	b.WriteString("- Professional corporate style\n")
	fmt.Fprintf(&b, "- Portrait orientation (%dx%d)\n\n", PosterWidth, PosterHeight)
	b.WriteString("IMPORTANT: Focus on text clarity and readability. Large fonts, high contrast, simple design.")
	return b.String()
}
