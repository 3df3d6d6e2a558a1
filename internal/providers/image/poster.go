package image

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	posterMargin = 48.0
	cardGap      = 24.0

	titleSize    = 50
	subtitleSize = 38
	headingSize  = 34
	valueSize    = 44
	bodySize     = 25
	labelSize    = 22
	footerSize   = 18
)

// RenderedPromptDescription is stored as the prompt of locally rendered
// infographics.
var RenderedPromptDescription = fmt.Sprintf(
	"Procedurally rendered %dx%d infographic poster: title bar, three key-fact cards, "+
		"how-it-worked section, Canada partnership highlight and footer on Visa blue (%s) with gold (%s) accents.",
	PosterWidth, PosterHeight, colorVisaBlue, colorGold)

// PosterRenderer draws the fixed-layout infographic in-process. Output is
// byte-for-byte deterministic for a given font.
type PosterRenderer struct {
	fontPath string
	content  PosterContent
	logger   zerolog.Logger

	once     sync.Once
	font     *truetype.Font
	fallback bool
	fontErr  error
}

func NewPosterRenderer(fontPath string, logger zerolog.Logger) *PosterRenderer {
	return &PosterRenderer{
		fontPath: strings.TrimSpace(fontPath),
		content:  DefaultPosterContent(),
		logger:   logger,
	}
}

func (p *PosterRenderer) Name() string { return "render" }

// Produce fulfils the Producer interface.
func (p *PosterRenderer) Produce(ctx context.Context) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := p.Render()
	if err != nil {
		return nil, err
	}
	return &Image{
		Data:   data,
		Format: "image/png",
		Width:  PosterWidth,
		Height: PosterHeight,
		Prompt: RenderedPromptDescription,
	}, nil
}

// UsesFallbackFont reports whether the preferred font could not be loaded.
func (p *PosterRenderer) UsesFallbackFont() bool {
	p.loadFont()
	return p.fallback
}

func (p *PosterRenderer) loadFont() {
	p.once.Do(func() {
		if p.fontPath != "" {
			raw, err := os.ReadFile(p.fontPath)
			if err == nil {
				p.font, err = truetype.Parse(raw)
			}
			if err == nil {
				return
			}
			p.logger.Warn().Err(err).Str("font", p.fontPath).Msg("poster font unavailable, using built-in font")
		}
		p.fallback = true
		p.font, p.fontErr = truetype.Parse(gobold.TTF)
	})
}

// faces are created per render because truetype faces cache glyphs and are
// not safe for concurrent use.
type faces struct {
	title, subtitle, heading, value, body, label, footer font.Face
}

func (p *PosterRenderer) newFaces() (*faces, error) {
	p.loadFont()
	if p.fontErr != nil {
		return nil, fmt.Errorf("poster: load font: %w", p.fontErr)
	}
	face := func(size float64) font.Face {
		return truetype.NewFace(p.font, &truetype.Options{Size: size, Hinting: font.HintingFull})
	}
	return &faces{
		title:    face(titleSize),
		subtitle: face(subtitleSize),
		heading:  face(headingSize),
		value:    face(valueSize),
		body:     face(bodySize),
		label:    face(labelSize),
		footer:   face(footerSize),
	}, nil
}

// Render draws the poster and returns PNG bytes.
func (p *PosterRenderer) Render() ([]byte, error) {
	f, err := p.newFaces()
	if err != nil {
		return nil, err
	}
	upper := cases.Upper(language.English)
	c := p.content
	dc := gg.NewContext(PosterWidth, PosterHeight)
	const w, h = float64(PosterWidth), float64(PosterHeight)
	inner := w - 2*posterMargin

	dc.SetHexColor(colorVisaBlue)
	dc.Clear()

	// Title bar.
	dc.SetHexColor(colorNavy)
	dc.DrawRectangle(0, 0, w, 250)
	dc.Fill()
	dc.SetHexColor(colorGold)
	dc.DrawRectangle(0, 250, w, 8)
	dc.Fill()
	dc.SetFontFace(f.title)
	dc.SetHexColor(colorWhite)
	dc.DrawStringAnchored(upper.String(c.Title), w/2, 100, 0.5, 0.5)
	dc.SetFontFace(f.subtitle)
	dc.SetHexColor(colorGold)
	dc.DrawStringAnchored(upper.String(c.Subtitle), w/2, 170, 0.5, 0.5)

	// Key facts.
	drawHeading(dc, f.heading, upper.String("Key facts"), 310)
	cardW := (inner - 2*cardGap) / 3
	const cardY, cardH = 340.0, 270.0
	for i, fact := range c.KeyFacts {
		x := posterMargin + float64(i)*(cardW+cardGap)
		dc.SetHexColor(colorWhite)
		dc.DrawRoundedRectangle(x, cardY, cardW, cardH, 18)
		dc.Fill()
		dc.SetHexColor(colorGold)
		dc.DrawRectangle(x+24, cardY+24, cardW-48, 6)
		dc.Fill()
		dc.SetFontFace(f.value)
		dc.SetHexColor(colorVisaBlue)
		dc.DrawStringAnchored(fact.Value, x+cardW/2, cardY+95, 0.5, 0.5)
		dc.SetFontFace(f.label)
		dc.SetHexColor(colorCardInk)
		dc.DrawStringWrapped(fact.Label, x+cardW/2, cardY+150, 0.5, 0, cardW-40, 1.4, gg.AlignCenter)
	}

	// How it worked.
	drawHeading(dc, f.heading, upper.String("How it worked"), 670)
	const howY, howH = 700.0, 330.0
	dc.SetHexColor(colorPanel)
	dc.DrawRectangle(posterMargin, howY, inner, howH)
	dc.Fill()
	dc.SetHexColor(colorGold)
	dc.DrawRectangle(posterMargin, howY, 10, howH)
	dc.Fill()
	drawBullets(dc, f.body, c.HowItWorked, posterMargin+40, howY+40, inner-80)

	// Partnership highlight, outlined in maple red to set it apart.
	drawHeading(dc, f.heading, upper.String("Canada partnership"), 1090)
	const partY, partH = 1120.0, 250.0
	dc.SetHexColor(colorNavy)
	dc.DrawRectangle(posterMargin, partY, inner, partH)
	dc.Fill()
	dc.SetHexColor(colorMapleRed)
	dc.SetLineWidth(6)
	dc.DrawRectangle(posterMargin, partY, inner, partH)
	dc.Stroke()
	drawBullets(dc, f.body, c.Partnership, posterMargin+40, partY+40, inner-80)

	// Footer.
	dc.SetHexColor(colorGold)
	dc.DrawRectangle(posterMargin, h-120, inner, 3)
	dc.Fill()
	dc.SetFontFace(f.footer)
	dc.SetHexColor(colorWhite)
	dc.DrawStringAnchored(c.Footer, w/2, h-70, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("poster: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeading(dc *gg.Context, face font.Face, text string, y float64) {
	dc.SetFontFace(face)
	dc.SetHexColor(colorGold)
	dc.DrawStringAnchored(text, posterMargin, y, 0, 0.5)
}

func drawBullets(dc *gg.Context, face font.Face, lines []string, x, y, width float64) {
	dc.SetFontFace(face)
	lineHeight := dc.FontHeight() * 1.5
	for _, line := range lines {
		dc.SetHexColor(colorGold)
		dc.DrawCircle(x+6, y+dc.FontHeight()/2, 6)
		dc.Fill()
		dc.SetHexColor(colorWhite)
		wrapped := dc.WordWrap(line, width-32)
		dc.DrawStringWrapped(line, x+32, y, 0, 0, width-32, 1.5, gg.AlignLeft)
		y += float64(len(wrapped))*lineHeight + 28
	}
}

var _ Producer = (*PosterRenderer)(nil)
