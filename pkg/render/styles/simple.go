package styles

import (
	"bytes"
	"fmt"
)

// Simple draws crisp straight strokes in a sans-serif font, close to
// matplotlib's default look.
type Simple struct{}

const simpleFont = "DejaVu Sans, Helvetica, Arial, sans-serif"

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderLine(buf *bytes.Buffer, l Line) {
	class := ""
	if l.Class != "" {
		class = fmt.Sprintf(` class="%s"`, l.Class)
	}
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s stroke="%s" stroke-width="%.2f" stroke-opacity="%.2f" stroke-linecap="butt"%s/>`+"\n",
		l.X1, l.Y1, l.X2, l.Y2, class, l.Color, l.Width, l.Alpha, DashArray(l.Dashes))
}

func (Simple) RenderText(buf *bytes.Buffer, t Text) { WriteText(buf, t, simpleFont) }

func (Simple) FontFamily() string { return simpleFont }
