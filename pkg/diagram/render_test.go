package diagram

import (
	"fmt"
	"reflect"
	"testing"
)

// recorder is a Canvas that logs every call and autoscales y from the lines
// it receives.
type recorder struct {
	calls      []string
	lines      []Segment
	texts      []Text
	lo, hi     float64
	haveData   bool
	spines     map[Spine]bool
	axes       map[Axis]bool
	tickXs     []float64
	tickLabels []string
	tickSize   float64
	bins       int
	title      string
	labels     map[Axis]string
	w, h       float64
}

func newRecorder() *recorder {
	return &recorder{
		spines: map[Spine]bool{},
		axes:   map[Axis]bool{},
		labels: map[Axis]string{},
	}
}

func (r *recorder) Line(s Segment) {
	r.calls = append(r.calls, "line")
	r.lines = append(r.lines, s)
	for _, y := range []float64{s.Y1, s.Y2} {
		if !r.haveData {
			r.lo, r.hi, r.haveData = y, y, true
			continue
		}
		r.lo, r.hi = min(r.lo, y), max(r.hi, y)
	}
}

func (r *recorder) Text(t Text) {
	r.calls = append(r.calls, "text")
	r.texts = append(r.texts, t)
}

func (r *recorder) SetFigureSize(w, h float64) {
	r.calls = append(r.calls, "size")
	r.w, r.h = w, h
}

func (r *recorder) SetSpineVisible(s Spine, v bool) { r.spines[s] = v }
func (r *recorder) SetAxisVisible(a Axis, v bool)   { r.axes[a] = v }

func (r *recorder) YLim() (float64, float64) {
	if !r.haveData {
		return 0, 1
	}
	return r.lo, r.hi
}

func (r *recorder) SetYLim(lo, hi float64) {
	r.calls = append(r.calls, fmt.Sprintf("ylim %g %g", lo, hi))
	r.lo, r.hi, r.haveData = lo, hi, true
}

func (r *recorder) SetXTicks(xs []float64, labels []string, size float64) {
	r.calls = append(r.calls, "xticks")
	r.tickXs, r.tickLabels, r.tickSize = xs, labels, size
}

func (r *recorder) SetYBins(n int)                { r.bins = n }
func (r *recorder) SetTitle(s string)             { r.title = s }
func (r *recorder) SetAxisLabel(a Axis, s string) { r.labels[a] = s }

func sampleDiagram(t *testing.T) *Diagram {
	t.Helper()
	d := New(DefaultConfig())
	d.AddLevel(0, 0)
	d.AddLevel(20, 1)
	d.AddLevel(-10, 2)
	d.AddLink(0, 1)
	d.AddLink(1, 2)
	if err := d.AddLabel(20, "TS", AtPosition(1)); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestRenderDrawOrder(t *testing.T) {
	r := newRecorder()
	if _, err := sampleDiagram(t).Render(r, DefaultPlotOptions()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	want := []string{"line", "line", "line", "line", "line", "text", "ylim -10 21.5"}
	if !reflect.DeepEqual(r.calls, want) {
		t.Errorf("calls = %v, want %v", r.calls, want)
	}
	// Levels come before links.
	if r.lines[0].Width != DefaultLevelStroke || r.lines[3].Style != Dashed {
		t.Errorf("unexpected line order: %+v", r.lines)
	}
}

func TestRenderDefaultPresentation(t *testing.T) {
	r := newRecorder()
	if _, err := sampleDiagram(t).Render(r, DefaultPlotOptions()); err != nil {
		t.Fatal(err)
	}

	wantSpines := map[Spine]bool{SpineTop: false, SpineRight: false, SpineBottom: true, SpineLeft: true}
	if !reflect.DeepEqual(r.spines, wantSpines) {
		t.Errorf("spines = %v, want %v", r.spines, wantSpines)
	}
	if r.axes[AxisX] || !r.axes[AxisY] {
		t.Errorf("axes = %v, want x hidden and y shown", r.axes)
	}
	if r.tickXs != nil {
		t.Errorf("x ticks set without labels: %v", r.tickXs)
	}
	if r.bins != 0 {
		t.Errorf("y bins = %d, want canvas default", r.bins)
	}
}

func TestRenderCustomPresentation(t *testing.T) {
	opts := DefaultPlotOptions()
	opts.XTickLabels = []string{"R", "TS", "P"}
	opts.XTickLabelSize = 0
	opts.YBins = 4
	opts.Title = "SN2"
	opts.XLabel = "reaction coordinate"
	opts.YLabel = "kcal/mol"
	opts.FigureWidth, opts.FigureHeight = 8, 6

	r := newRecorder()
	if _, err := sampleDiagram(t).Render(r, opts); err != nil {
		t.Fatal(err)
	}

	if r.w != 8 || r.h != 6 {
		t.Errorf("figure size = %vx%v, want 8x6", r.w, r.h)
	}
	if !reflect.DeepEqual(r.tickXs, []float64{15, 65, 115}) {
		t.Errorf("tick xs = %v", r.tickXs)
	}
	if !reflect.DeepEqual(r.tickLabels, opts.XTickLabels) {
		t.Errorf("tick labels = %v", r.tickLabels)
	}
	if r.tickSize != DefaultXTickLabelSize {
		t.Errorf("tick size = %v, want fallback %v", r.tickSize, DefaultXTickLabelSize)
	}
	if r.bins != 4 {
		t.Errorf("y bins = %d, want 4", r.bins)
	}
	if r.title != "SN2" || r.labels[AxisX] != "reaction coordinate" || r.labels[AxisY] != "kcal/mol" {
		t.Errorf("title/labels = %q %v", r.title, r.labels)
	}
}

func TestRenderEmptyDiagram(t *testing.T) {
	r := newRecorder()
	l, err := New(DefaultConfig()).Render(r, DefaultPlotOptions())
	if err != nil {
		t.Fatalf("Render() on empty diagram: %v", err)
	}
	if len(r.lines) != 0 || len(l.Levels) != 0 {
		t.Errorf("empty diagram drew %d lines", len(r.lines))
	}
	if r.lo != 0 || !approx(r.hi, 1.05) {
		t.Errorf("ylim = [%v, %v], want [0, 1.05]", r.lo, r.hi)
	}
}

func TestRenderPropagatesLayoutErrors(t *testing.T) {
	d := New(DefaultConfig())
	d.AddLink(0, 1)

	r := newRecorder()
	if _, err := d.Render(r, DefaultPlotOptions()); err == nil {
		t.Fatal("Render() should fail for a dangling link")
	}
	if len(r.calls) != 0 {
		t.Errorf("canvas touched before failure: %v", r.calls)
	}
}
