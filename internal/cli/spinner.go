package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	docio "github.com/matzehuels/energydiagram/pkg/io"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a single status line on w while a render runs. The line
// is cleared on stop so the result summary starts on a clean row.
type spinner struct {
	w       io.Writer
	ctx     context.Context
	message string

	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once

	mu      sync.Mutex
	started bool
	width   int // printable width of the last frame
}

func newSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	return &spinner{
		w:       w,
		ctx:     ctx,
		message: message,
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// renderMessage describes a render run, e.g.
// "Rendering SN2: 3 levels, 2 links → svg, png".
func renderMessage(name string, doc *docio.Document, formats []string) string {
	return fmt.Sprintf("Rendering %s: %s, %s %s %s",
		name, plural(len(doc.Levels), "level"), plural(len(doc.Links), "link"),
		iconArrow, strings.Join(formats, ", "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// start draws the first frame immediately and keeps animating until stop is
// called or the context ends.
func (s *spinner) start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			s.draw(spinnerFrames[i%len(spinnerFrames)])
			select {
			case <-s.ctx.Done():
				return
			case <-s.quit:
				return
			case <-ticker.C:
			}
		}
	}()
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	fmt.Fprint(s.w, "\r"+line)
	s.width = max(s.width, lipgloss.Width(line))
}

// stop ends the animation and clears the line. Safe to call repeatedly,
// before start, or after the context is done.
func (s *spinner) stop() {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return
	}
	s.once.Do(func() { close(s.quit) })
	<-s.stopped

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		s.width = 0
	}
}
