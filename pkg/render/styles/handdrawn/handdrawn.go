package handdrawn

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/energydiagram/pkg/render/styles"
)

const (
	xkcdFont = "xkcd Script, Humor Sans, Comic Neue, Comic Sans MS, cursive"

	segmentLength = 40.0 // pixels per wobble segment
	bendAmplitude = 1.2  // max perpendicular control-point offset
	endJitter     = 0.6  // max endpoint displacement
	maxSegments   = 256  // per stroke
	filterID      = "sketch"
)

// HandDrawn renders strokes as slightly bent paths in a comic font.
type HandDrawn struct {
	seed uint64
}

// New returns a hand-drawn style. The same seed always yields the same
// wobble.
func New(seed uint64) *HandDrawn { return &HandDrawn{seed: seed} }

func (h *HandDrawn) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <filter id="%s" x="-5%%" y="-5%%" width="110%%" height="110%%">`+"\n", filterID)
	fmt.Fprintf(buf, `      <feTurbulence type="fractalNoise" baseFrequency="0.03" numOctaves="2" seed="%d" result="noise"/>`+"\n", h.seed%1000)
	buf.WriteString(`      <feDisplacementMap in="SourceGraphic" in2="noise" scale="1.5" xChannelSelector="R" yChannelSelector="G"/>` + "\n")
	buf.WriteString("    </filter>\n")
	buf.WriteString("  </defs>\n")
}

func (h *HandDrawn) RenderLine(buf *bytes.Buffer, l styles.Line) {
	class := ""
	if l.Class != "" {
		class = fmt.Sprintf(` class="%s"`, l.Class)
	}
	d := wobbledLine(l.X1, l.Y1, l.X2, l.Y2, h.seed, l.ID)
	fmt.Fprintf(buf, `  <path d="%s"%s fill="none" stroke="%s" stroke-width="%.2f" stroke-opacity="%.2f" stroke-linecap="round" stroke-linejoin="round" filter="url(#%s)"%s/>`+"\n",
		d, class, l.Color, l.Width*1.2, l.Alpha, filterID, styles.DashArray(l.Dashes))
}

func (h *HandDrawn) RenderText(buf *bytes.Buffer, t styles.Text) {
	styles.WriteText(buf, t, xkcdFont)
}

func (h *HandDrawn) FontFamily() string { return xkcdFont }

func rngFor(seed uint64, id string) *rand.Rand {
	f := fnv.New64a()
	f.Write([]byte(id))
	return rand.New(rand.NewPCG(seed, f.Sum64()))
}

// wobbledLine approximates the segment (x1,y1)-(x2,y2) with quadratic curves
// whose control points are pushed off the line by a small random amount.
func wobbledLine(x1, y1, x2, y2 float64, seed uint64, id string) string {
	r := rngFor(seed, id)
	jitter := func(amp float64) float64 { return (r.Float64()*2 - 1) * amp }

	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	n := 1
	if segs := math.Round(length / segmentLength); segs > 1 {
		n = int(min(segs, maxSegments))
	}

	// Unit normal for bending.
	nx, ny := 0.0, 0.0
	if length > 0 {
		nx, ny = -dy/length, dx/length
	}

	var b strings.Builder
	px, py := x1+jitter(endJitter), y1+jitter(endJitter)
	fmt.Fprintf(&b, "M%.2f,%.2f", px, py)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		ex, ey := x1+dx*t, y1+dy*t
		if i == n {
			ex, ey = x2+jitter(endJitter), y2+jitter(endJitter)
		}
		bend := jitter(bendAmplitude)
		cx, cy := (px+ex)/2+nx*bend, (py+ey)/2+ny*bend
		fmt.Fprintf(&b, " Q%.2f,%.2f %.2f,%.2f", cx, cy, ex, ey)
		px, py = ex, ey
	}
	return b.String()
}
