// Package render turns the dataset into the timeline SVG and the page.
//
// The timeline geometry is computed once per Page and does not depend on
// which event is active. Selecting an event only changes highlighting,
// the background tint, the big-name overlay and the particle color.
package render

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"autotimeline/internal/carousel"
	"autotimeline/internal/config"
	"autotimeline/internal/dataset"
	"autotimeline/internal/particles"
	"autotimeline/internal/selection"
	"autotimeline/internal/video"
	"autotimeline/pkg/logger"
)

// Title is the page header.
const Title = "HISTORIA DEL AUTOMOTOR"

// tintWeight is how much of the accent bleeds into the background.
const tintWeight = 0.22

//go:embed templates/page.html.tmpl
var pageTemplateText string

var pageTemplate = template.Must(template.New("page").Parse(pageTemplateText))

// Page holds everything needed to render the site.
type Page struct {
	cfg         *config.Config
	cars        []dataset.Car
	meta        map[string]*video.Metadata
	sel         *selection.State
	field       *particles.Field
	timeline    Timeline
	buildID     string
	log         logger.Logger
	unsubscribe func()
}

// PageOption configures a Page.
type PageOption func(*Page)

// WithMetadata attaches fetched video metadata keyed by video id.
func WithMetadata(meta map[string]*video.Metadata) PageOption {
	return func(p *Page) {
		if meta != nil {
			p.meta = meta
		}
	}
}

// WithBuildID stamps the page with a build identifier.
func WithBuildID(id string) PageOption {
	return func(p *Page) { p.buildID = id }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) PageOption {
	return func(p *Page) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPage lays out the timeline and simulates the particle field. The
// caller must Close the page to release the field.
func NewPage(cfg *config.Config, cars []dataset.Car, opts ...PageOption) *Page {
	p := &Page{
		cfg:  cfg,
		cars: dataset.Sorted(cars),
		meta: map[string]*video.Metadata{},
		sel:  selection.New(),
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.timeline = BuildTimeline(p.cars, cfg)
	p.field = particles.NewField(cfg.Particles.Count, cfg.Particles.Seed)
	if err := p.field.SetAccent(cfg.Colors.DefaultAccent); err != nil {
		p.log.Debug(context.Background(), "default accent rejected, keeping particle default",
			logger.String("color", cfg.Colors.DefaultAccent))
	}
	if err := p.field.Step(cfg.Particles.Frames); err != nil {
		p.log.Warn(context.Background(), "particle simulation failed", logger.Error(err))
	}
	p.unsubscribe = p.sel.Subscribe(p.recolor)
	return p
}

// recolor follows the active event's accent; no selection restores the default.
func (p *Page) recolor(_, next string) {
	accent := p.accentFor(next)
	if err := p.field.SetAccent(accent); err != nil {
		p.log.Debug(context.Background(), "particle recolor skipped",
			logger.String("id", next), logger.String("color", accent), logger.Error(err))
	}
}

// Select makes id the active event. An empty id clears the selection.
func (p *Page) Select(id string) error {
	if id == "" {
		p.sel.Leave()
		return nil
	}
	if _, ok := dataset.Find(p.cars, id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, id)
	}
	p.sel.Enter(id)
	return nil
}

// Timeline returns the computed timeline geometry.
func (p *Page) Timeline() Timeline {
	return p.timeline
}

// TimelineSVG draws the timeline with the active event highlighted.
func (p *Page) TimelineSVG() string {
	active, _ := p.sel.Active()
	return p.timeline.SVG(p.cfg, active)
}

// ParticleColor is the current particle tint.
func (p *Page) ParticleColor() string {
	return p.field.Color()
}

// Close releases the particle field and detaches it from the selection.
func (p *Page) Close() error {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	return p.field.Close()
}

type pageData struct {
	Title      string
	BuildID    string
	Colors     config.Colors
	FontFamily template.CSS
	Timeline   template.HTML
	Cards      []cardView
	Affordance carousel.Affordance
	Carousel   config.Carousel
	Active     *activeView
	Particles  particleLayer

	// Backdrop state for the current selection.
	Tint          string
	BackdropImage string

	// What the page falls back to when the pointer leaves every event.
	DefaultAccent string
	DefaultTint   string
}

type cardView struct {
	ID                string
	Year              int
	Name              string
	Brand             string
	Description       string
	Specs             []string
	Accent            string
	CarColor          string
	Tint              string
	BigName           string
	Thumbnail         string
	FallbackThumbnail string
	WatchURL          string
	VideoTitle        string
	VideoAuthor       string
	Active            bool
	Delay             string
}

type activeView struct {
	BigName   string
	Brand     string
	Year      int
	Accent    string
	Thumbnail string
}

type particleLayer struct {
	Width   int
	Height  int
	Color   string
	Opacity float64
	Points  []particles.Point
	Spin    string // CSS duration of one sway stroke; a round trip is one turn
	Loop    string // CSS duration of one upward loop
}

// Render writes the page.
func (p *Page) Render(w io.Writer) error {
	data, err := p.data()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

func (p *Page) data() (*pageData, error) {
	points, err := p.field.Project(p.cfg.Particles.Width, p.cfg.Particles.Height)
	if err != nil {
		return nil, err
	}

	activeID, hasActive := p.sel.Active()
	cc := p.cfg.Carousel
	vp := carousel.NewViewport(
		carousel.ContentWidth(len(p.cars), cc.CardWidth, cc.Gap, cc.Padding),
		cc.ViewportWidth, cc.ScrollStep, cc.EdgeTolerance)

	d := &pageData{
		Title:      Title,
		BuildID:    p.buildID,
		Colors:     p.cfg.Colors,
		FontFamily: template.CSS(p.cfg.Layout.FontFamily),
		Timeline:   template.HTML(p.timeline.SVG(p.cfg, activeID)),
		Affordance: vp.Affordance(),
		Carousel:   cc,
		Tint:          blend(p.cfg.Colors.Background, p.accentFor(activeID)),
		DefaultAccent: p.cfg.Colors.DefaultAccent,
		DefaultTint:   blend(p.cfg.Colors.Background, p.cfg.Colors.DefaultAccent),
		Particles: particleLayer{
			Width:   p.cfg.Particles.Width,
			Height:  p.cfg.Particles.Height,
			Color:   p.field.Color(),
			Opacity: particles.Opacity,
			Points:  points,
			Spin:    cssSeconds(particles.SpinPeriod() / 2),
			Loop:    cssSeconds(particles.LoopPeriod()),
		},
	}

	upper := cases.Upper(language.Spanish)
	for i, c := range p.cars {
		card := cardView{
			ID:          c.ID,
			Year:        c.Year,
			Name:        c.Name,
			Brand:       c.Brand,
			Description: c.Description,
			Specs:       c.Specs,
			Accent:      p.accentFor(c.ID),
			CarColor:    c.Color,
			BigName:     upper.String(c.Name),
			Active:      hasActive && c.ID == activeID,
			Delay:       fmt.Sprintf("%.2fs", float64(i)*0.08),
		}
		if card.CarColor == "" {
			card.CarColor = card.Accent
		}
		card.Tint = blend(p.cfg.Colors.Background, card.Accent)
		if c.VideoID != "" {
			card.Thumbnail = video.ThumbnailURL(c.VideoID)
			card.FallbackThumbnail = video.FallbackThumbnailURL(c.VideoID)
			card.WatchURL = video.WatchURL(c.VideoID)
			if m, ok := p.meta[c.VideoID]; ok && m != nil {
				card.VideoTitle = m.Title
				card.VideoAuthor = m.AuthorName
			}
		}
		d.Cards = append(d.Cards, card)

		if card.Active {
			d.BackdropImage = card.Thumbnail
			d.Active = &activeView{
				BigName:   card.BigName,
				Brand:     c.Brand,
				Year:      c.Year,
				Accent:    card.Accent,
				Thumbnail: card.Thumbnail,
			}
		}
	}
	return d, nil
}

// accentFor returns the accent of id, or the default accent when id is
// empty, unknown or has no accent of its own.
func (p *Page) accentFor(id string) string {
	if c, ok := dataset.Find(p.cars, id); ok && c.AccentColor != "" {
		return c.AccentColor
	}
	return p.cfg.Colors.DefaultAccent
}

func cssSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// blend mixes a little of accent into base. Unparsable input returns base.
func blend(base, accent string) string {
	b, err := colorful.Hex(base)
	if err != nil {
		return base
	}
	a, err := colorful.Hex(accent)
	if err != nil {
		return base
	}
	return b.BlendLab(a, tintWeight).Clamped().Hex()
}
