package render

import (
	"fmt"
	"strings"

	"autotimeline/internal/config"
	"autotimeline/internal/dataset"
	"autotimeline/internal/layout"
)

// axisLabelGap is the distance from the axis line to the start/end years.
const axisLabelGap = 20

// Timeline is the computed geometry of the axis and its labels.
type Timeline struct {
	Axis    layout.Axis
	Result  layout.Result
	Markers []Marker
	Width   int
	Height  int
	LineY   int
}

// Marker is one event ready to draw.
type Marker struct {
	Car   dataset.Car
	X     float64
	Slot  layout.Slot
	TickY float64 // end of the tick, where the label attaches
	TextY float64 // label baseline
}

// BuildTimeline projects cars onto the axis and assigns label slots. cars
// need not be sorted.
func BuildTimeline(cars []dataset.Car, cfg *config.Config) Timeline {
	lc := cfg.Layout
	years := make([]int, len(cars))
	events := make([]layout.Event, len(cars))
	byID := make(map[string]dataset.Car, len(cars))
	for i, c := range cars {
		years[i] = c.Year
		events[i] = layout.Event{ID: c.ID, Year: c.Year}
		byID[c.ID] = c
	}

	axis := layout.NewAxis(years, layout.Padding{Before: lc.PadBefore, After: lc.PadAfter})
	res := layout.Assign(events, axis, layout.Options{LabelWidth: lc.LabelWidth, MaxLanes: lc.MaxLanes})

	levels := (lc.MaxLanes + 1) / 2
	t := Timeline{
		Axis:   axis,
		Result: res,
		Width:  lc.Width,
		Height: lc.LineY + levels*lc.LevelHeight + axisLabelGap,
		LineY:  lc.LineY,
	}
	if axis.Empty() {
		return t
	}

	usable := float64(lc.Width - 2*lc.Margin)
	lineY := float64(lc.LineY)
	for _, p := range res.Placements {
		offset := float64(p.Slot.Offset(lc.LevelHeight))
		m := Marker{
			Car:  byID[p.ID],
			X:    float64(lc.Margin) + p.Pos/100*usable,
			Slot: p.Slot,
		}
		if p.Slot.Side == layout.Above {
			m.TickY = lineY - offset
			m.TextY = m.TickY - 4
		} else {
			m.TickY = lineY + offset
			m.TextY = m.TickY + float64(lc.FontSize) + 2
		}
		t.Markers = append(t.Markers, m)
	}
	return t
}

// SVG draws the timeline. activeID highlights one event; pass "" for none.
func (t Timeline) SVG(cfg *config.Config, activeID string) string {
	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<svg class="timeline" width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
<defs>
<style>
.tl-year { font-family: %s; font-size: %dpx; font-weight: bold; }
.tl-name { font-family: %s; font-size: %dpx; fill: %s; }
.tl-edge { font-family: %s; font-size: %dpx; fill: %s; }
.tl-event.active .tl-name { fill: #ffffff; }
</style>
</defs>
`, t.Width, t.Height, t.Width, t.Height,
		cfg.Layout.FontFamily, cfg.Layout.FontSize,
		cfg.Layout.FontFamily, cfg.Layout.FontSize, cfg.Colors.Text,
		cfg.Layout.FontFamily, cfg.Layout.FontSize-1, cfg.Colors.Muted))

	// Main axis line
	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
		cfg.Layout.Margin, t.LineY, t.Width-cfg.Layout.Margin, t.LineY, cfg.Colors.Axis))

	// Nothing to place: no markers and no year bounds
	if t.Axis.Empty() {
		svg.WriteString("</svg>\n")
		return svg.String()
	}

	for _, m := range t.Markers {
		drawMarker(&svg, m, t.LineY, cfg, m.Car.ID == activeID)
	}

	edgeY := t.LineY + axisLabelGap
	svg.WriteString(fmt.Sprintf(`<text class="tl-edge" x="%d" y="%d" text-anchor="start">%d</text>`+"\n",
		cfg.Layout.Margin, edgeY, t.Axis.MinYear))
	svg.WriteString(fmt.Sprintf(`<text class="tl-edge" x="%d" y="%d" text-anchor="end">%d</text>`+"\n",
		t.Width-cfg.Layout.Margin, edgeY, t.Axis.MaxYear))

	svg.WriteString("</svg>\n")
	return svg.String()
}

// drawMarker draws the tick, the dot on the axis and the label of one event.
func drawMarker(svg *strings.Builder, m Marker, lineY int, cfg *config.Config, active bool) {
	accent := m.Car.AccentColor
	if accent == "" {
		accent = cfg.Colors.DefaultAccent
	}
	class := "tl-event"
	if active {
		class += " active"
	}

	svg.WriteString(fmt.Sprintf(`<g class="%s" data-id="%s" data-accent="%s" data-level="%d" data-side="%s">`,
		class, escapeXML(m.Car.ID), escapeXML(accent), m.Slot.Level, m.Slot.Side))

	svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1" stroke-opacity="0.6"/>`,
		m.X, lineY, m.X, m.TickY, escapeXML(accent)))

	fill := cfg.Colors.Background
	size := cfg.Marker.Size
	if active {
		fill = accent
		size += 2
	}
	drawEventMarker(svg, m.X, float64(lineY), cfg.Marker.Shape, size, fill, accent, cfg.Marker.StrokeWidth)

	svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle"><tspan class="tl-year" fill="%s">%d</tspan> <tspan class="tl-name">%s</tspan></text>`,
		m.X, m.TextY, escapeXML(accent), m.Car.Year, escapeXML(m.Car.Name)))

	svg.WriteString("</g>\n")
}

// drawEventMarker draws the marker shape centred on (x, y). Unknown shapes
// fall back to a circle.
func drawEventMarker(svg *strings.Builder, x, y float64, shape string, size int, fillColor, strokeColor string, strokeWidth int) {
	s := float64(size)
	fillColor, strokeColor = escapeXML(fillColor), escapeXML(strokeColor)

	switch strings.ToLower(shape) {
	case "square":
		svg.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="%d"/>`,
			x-s, y-s, s*2, s*2, fillColor, strokeColor, strokeWidth))

	case "diamond":
		svg.WriteString(fmt.Sprintf(`<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" stroke="%s" stroke-width="%d"/>`,
			x, y-s, // top
			x+s, y, // right
			x, y+s, // bottom
			x-s, y, // left
			fillColor, strokeColor, strokeWidth))

	case "triangle":
		h := s * 1.5
		svg.WriteString(fmt.Sprintf(`<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" stroke="%s" stroke-width="%d"/>`,
			x, y-h,
			x-s, y+h/2,
			x+s, y+h/2,
			fillColor, strokeColor, strokeWidth))

	default:
		svg.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%d" fill="%s" stroke="%s" stroke-width="%d"/>`,
			x, y, size, fillColor, strokeColor, strokeWidth))
	}
}

// escapeXML escapes the characters that would break SVG markup.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)
