package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/energydiagram/pkg/diagram"
)

// Anchor maps a horizontal alignment to an SVG text-anchor.
func Anchor(h diagram.HAlign) string {
	switch h {
	case diagram.HAlignLeft:
		return "start"
	case diagram.HAlignRight:
		return "end"
	}
	return "middle"
}

// Baseline maps a vertical alignment to an SVG dominant-baseline. A
// bottom-aligned text sits above its anchor.
func Baseline(v diagram.VAlign) string {
	switch v {
	case diagram.VAlignBottom:
		return "text-after-edge"
	case diagram.VAlignTop:
		return "text-before-edge"
	}
	return "central"
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// DashArray formats a dash pattern as an SVG attribute, or "" for solid.
func DashArray(d []float64) string {
	if len(d) == 0 {
		return ""
	}
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, ","))
}

// WriteText writes t as a <text> element using the given font family. The
// text is split into <tspan> rows on newlines.
func WriteText(buf *bytes.Buffer, t Text, family string) {
	transform := ""
	if t.Rotate != 0 {
		transform = fmt.Sprintf(` transform="rotate(%.2f %.2f %.2f)"`, -t.Rotate, t.X, t.Y)
	}
	class := ""
	if t.Class != "" {
		class = fmt.Sprintf(` class="%s"`, t.Class)
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f"%s font-family="%s" font-size="%.2f" fill="%s" text-anchor="%s" dominant-baseline="%s"%s>`,
		t.X, t.Y, class, family, t.Size, t.Color, t.Anchor, t.Baseline, transform)

	rows := strings.Split(t.Text, "\n")
	if len(rows) == 1 {
		buf.WriteString(EscapeXML(t.Text))
	} else {
		for i, r := range rows {
			dy := "1.2em"
			if i == 0 {
				dy = "0"
			}
			fmt.Fprintf(buf, `<tspan x="%.2f" dy="%s">%s</tspan>`, t.X, dy, EscapeXML(r))
		}
	}
	buf.WriteString("</text>\n")
}
