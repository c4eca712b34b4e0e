package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"autotimeline/internal/config"
	"autotimeline/internal/dataset"
	"autotimeline/internal/layout"
	"autotimeline/internal/video"
)

func testCars() []dataset.Car {
	return []dataset.Car{
		{ID: "torino", Year: 1966, Name: "Torino 380W", Brand: "IKA", AccentColor: "#06d6a0", Color: "#1b3a5c", VideoID: "vid-torino", Specs: []string{"V6", "176 CV"}},
		{ID: "falcon", Year: 1962, Name: "Ford Falcon", Brand: "Ford", VideoID: "vid-falcon"},
		{ID: "fuego", Year: 1982, Name: "Renault Fuego", Brand: "Renault", AccentColor: "#ffd166"},
	}
}

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Particles.Count = 50
	cfg.Particles.Frames = 10
	return cfg
}

func TestBuildTimeline(t *testing.T) {
	Convey("Given a few cars", t, func() {
		cfg := smallConfig()
		tl := BuildTimeline(testCars(), cfg)

		Convey("The axis is padded around the years", func() {
			So(tl.Axis.MinYear, ShouldEqual, 1959)
			So(tl.Axis.MaxYear, ShouldEqual, 1990)
		})

		Convey("Markers follow chronological order inside the margins", func() {
			So(len(tl.Markers), ShouldEqual, 3)
			So(tl.Markers[0].Car.ID, ShouldEqual, "falcon")
			So(tl.Markers[2].Car.ID, ShouldEqual, "fuego")
			for i, m := range tl.Markers {
				So(m.X, ShouldBeBetweenOrEqual, cfg.Layout.Margin, cfg.Layout.Width-cfg.Layout.Margin)
				if i > 0 {
					So(m.X, ShouldBeGreaterThan, tl.Markers[i-1].X)
				}
			}
		})

		Convey("Labels above sit over the axis and labels below under it", func() {
			for _, m := range tl.Markers {
				if m.Slot.Side == layout.Above {
					So(m.TextY, ShouldBeLessThan, float64(cfg.Layout.LineY))
				} else {
					So(m.TextY, ShouldBeGreaterThan, float64(cfg.Layout.LineY))
				}
			}
		})

		Convey("The height leaves room for every level", func() {
			So(tl.Height, ShouldEqual, 110+4*22+20)
		})
	})

	Convey("Given no cars", t, func() {
		tl := BuildTimeline(nil, smallConfig())

		So(tl.Axis.Empty(), ShouldBeTrue)
		So(tl.Markers, ShouldBeEmpty)
	})
}

func TestTimelineSVG(t *testing.T) {
	Convey("Given a timeline", t, func() {
		cfg := smallConfig()
		tl := BuildTimeline(testCars(), cfg)

		Convey("Every event is drawn with its year bounds", func() {
			svg := tl.SVG(cfg, "")
			So(svg, ShouldStartWith, "<svg")
			So(strings.Count(svg, `class="tl-event"`), ShouldEqual, 3)
			So(svg, ShouldContainSubstring, ">1959</text>")
			So(svg, ShouldContainSubstring, ">1990</text>")
			So(svg, ShouldContainSubstring, `data-id="torino"`)
			So(svg, ShouldNotContainSubstring, `class="tl-event active"`)
		})

		Convey("The active event is highlighted", func() {
			svg := tl.SVG(cfg, "torino")
			So(svg, ShouldContainSubstring, `class="tl-event active" data-id="torino" data-accent="#06d6a0"`)
			So(svg, ShouldContainSubstring, `fill="#06d6a0"`)
		})

		Convey("Events without an accent use the default", func() {
			svg := tl.SVG(cfg, "")
			So(svg, ShouldContainSubstring, `fill="#ff4400">1962</tspan>`)
		})

		Convey("Marker shapes follow the config", func() {
			cfg.Marker.Shape = "diamond"
			So(tl.SVG(cfg, ""), ShouldContainSubstring, "<polygon")
			cfg.Marker.Shape = "square"
			So(tl.SVG(cfg, ""), ShouldContainSubstring, "<rect")
		})
	})

	Convey("Given an empty timeline", t, func() {
		cfg := smallConfig()
		svg := BuildTimeline(nil, cfg).SVG(cfg, "")

		Convey("Only the axis line is drawn", func() {
			So(svg, ShouldContainSubstring, "<line")
			So(svg, ShouldNotContainSubstring, "<text")
			So(svg, ShouldNotContainSubstring, "<circle")
		})
	})

	Convey("Names are escaped", t, func() {
		cfg := smallConfig()
		cars := []dataset.Car{{ID: "x", Year: 1970, Name: `Rally <"A&B">`}}
		svg := BuildTimeline(cars, cfg).SVG(cfg, "")
		So(svg, ShouldContainSubstring, "Rally &lt;&quot;A&amp;B&quot;&gt;")
	})
}

func TestPage(t *testing.T) {
	Convey("Given a page", t, func() {
		cfg := smallConfig()
		meta := map[string]*video.Metadata{
			"vid-torino": {Title: "Torino en Nürburgring", AuthorName: "Archivo"},
		}
		p := NewPage(cfg, testCars(), WithMetadata(meta), WithBuildID("build-123"))
		defer p.Close()

		Convey("Rendering without a selection", func() {
			var buf bytes.Buffer
			So(p.Render(&buf), ShouldBeNil)
			html := buf.String()

			So(html, ShouldContainSubstring, "<h1>HISTORIA DEL AUTOMOTOR</h1>")
			So(html, ShouldContainSubstring, `<meta name="build-id" content="build-123">`)
			So(strings.Count(html, `<article class="card`), ShouldEqual, 3)
			So(html, ShouldContainSubstring, "Torino en Nürburgring")
			So(html, ShouldContainSubstring, "VER EN YOUTUBE")
			So(html, ShouldContainSubstring, `rel="noopener noreferrer"`)
			So(html, ShouldContainSubstring, `target="_blank"`)
			So(html, ShouldContainSubstring, "maxresdefault.jpg")
			So(html, ShouldContainSubstring, "this.onerror=null")
			So(html, ShouldContainSubstring, "hqdefault.jpg")
			So(html, ShouldContainSubstring, "<li>V6</li>")
			So(html, ShouldContainSubstring, `class="bigname hidden"`)
			So(html, ShouldContainSubstring, `fill="#ff4400"`)
		})

		Convey("Cards carry what the pointer handlers need", func() {
			var buf bytes.Buffer
			So(p.Render(&buf), ShouldBeNil)
			html := buf.String()

			So(html, ShouldContainSubstring, `data-id="torino" data-accent="#06d6a0"`)
			So(html, ShouldContainSubstring, `data-name="TORINO 380W"`)
			So(html, ShouldContainSubstring, `data-thumb="https://img.youtube.com/vi/vid-torino/maxresdefault.jpg"`)
			So(html, ShouldContainSubstring, `data-tint="`+blend(cfg.Colors.Background, "#06d6a0")+`"`)
			So(html, ShouldContainSubstring, `data-accent="#ff4400" data-tint="`+blend(cfg.Colors.Background, "#ff4400")+`"`)
			So(html, ShouldContainSubstring, `addEventListener("mouseenter"`)
			So(html, ShouldContainSubstring, `addEventListener("mouseleave"`)
			So(html, ShouldContainSubstring, `querySelectorAll(".card, .tl-event")`)
			So(html, ShouldContainSubstring, `dust.setAttribute("fill", d.accent)`)
		})

		Convey("Each card exposes its body color", func() {
			var buf bytes.Buffer
			So(p.Render(&buf), ShouldBeNil)
			html := buf.String()

			So(html, ShouldContainSubstring, "--car-color: #1b3a5c")
			So(html, ShouldContainSubstring, "--car-color: #ff4400")
		})

		Convey("The particle layer drifts and sways", func() {
			var buf bytes.Buffer
			So(p.Render(&buf), ShouldBeNil)
			html := buf.String()

			So(html, ShouldContainSubstring, "animation: rise-loop 63.94s linear infinite")
			So(html, ShouldContainSubstring, "animation: sway 157.08s ease-in-out infinite alternate")
			So(html, ShouldContainSubstring, `<g transform="translate(0 900)">`)

			layer := html[strings.Index(html, `<g class="drift"`):]
			copyStart := strings.Index(layer, `<g transform="translate(0 900)">`)
			first := layer[strings.Index(layer, "<circle"):copyStart]
			second := layer[copyStart+len(`<g transform="translate(0 900)">`):]
			second = second[:strings.Index(second, "</g>")]
			So(strings.TrimSpace(first), ShouldEqual, second)
			So(strings.Count(second, "<circle"), ShouldBeGreaterThan, 0)
		})

		Convey("The track padding is part of the scroll geometry", func() {
			var buf bytes.Buffer
			So(p.Render(&buf), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "padding: 8px 40px")
		})

		Convey("Cards come in chronological order", func() {
			var buf bytes.Buffer
			So(p.Render(&buf), ShouldBeNil)
			html := buf.String()
			So(strings.Index(html, `id="card-falcon"`), ShouldBeLessThan, strings.Index(html, `id="card-torino"`))
			So(strings.Index(html, `id="card-torino"`), ShouldBeLessThan, strings.Index(html, `id="card-fuego"`))
		})

		Convey("A car without a video gets no link", func() {
			var buf bytes.Buffer
			So(p.Render(&buf), ShouldBeNil)
			html := buf.String()
			So(strings.Count(html, "VER EN YOUTUBE"), ShouldEqual, 2)
		})

		Convey("Selecting an event recolors the particles and shows the big name", func() {
			So(p.Select("torino"), ShouldBeNil)
			So(p.ParticleColor(), ShouldEqual, "#06d6a0")

			var buf bytes.Buffer
			So(p.Render(&buf), ShouldBeNil)
			html := buf.String()
			So(html, ShouldContainSubstring, "TORINO 380W")
			So(html, ShouldContainSubstring, `class="card active"`)
			So(html, ShouldContainSubstring, `fill="#06d6a0"`)
			So(p.TimelineSVG(), ShouldContainSubstring, `class="tl-event active"`)

			Convey("Clearing the selection restores the default accent", func() {
				So(p.Select(""), ShouldBeNil)
				So(p.ParticleColor(), ShouldEqual, "#ff4400")
			})
		})

		Convey("Selecting a car without an accent falls back to the default", func() {
			So(p.Select("falcon"), ShouldBeNil)
			So(p.ParticleColor(), ShouldEqual, "#ff4400")
		})

		Convey("Unknown events are rejected", func() {
			err := p.Select("nope")
			So(errors.Is(err, ErrUnknownEvent), ShouldBeTrue)
		})

		Convey("Slots do not depend on the selection", func() {
			before := p.Timeline().Result.Slots
			So(p.Select("fuego"), ShouldBeNil)
			So(p.Timeline().Result.Slots, ShouldResemble, before)
		})
	})

	Convey("Given a closed page", t, func() {
		p := NewPage(smallConfig(), testCars())
		So(p.Close(), ShouldBeNil)

		Convey("Rendering fails", func() {
			var buf bytes.Buffer
			So(errors.Is(p.Render(&buf), ErrRender), ShouldBeTrue)
		})
	})

	Convey("Given an empty dataset", t, func() {
		p := NewPage(smallConfig(), nil)
		defer p.Close()

		Convey("The page still renders", func() {
			var buf bytes.Buffer
			So(p.Render(&buf), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "0 modelos")
		})
	})
}

func TestBlend(t *testing.T) {
	Convey("Blending", t, func() {
		So(blend("#000000", "#000000"), ShouldEqual, "#000000")
		So(blend("#080808", "#ff4400"), ShouldNotEqual, "#080808")
		So(blend("nope", "#ff4400"), ShouldEqual, "nope")
		So(blend("#080808", "nope"), ShouldEqual, "#080808")
	})
}
