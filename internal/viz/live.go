package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/walksim/internal/playback"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws the revealed prefix on a terminal as frames arrive.
// Drawing is throttled to frameRate, but mode changes and the final frame
// are always drawn.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	width     int
	height    int
	ansi      bool
	lastFrame time.Time
	lastMode  playback.Mode
	drawn     int
	done      chan struct{}
	finished  bool
}

func NewLiveRenderer(out io.Writer, frameRate int, ansi bool) *LiveRenderer {
	if frameRate < 1 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		width:     defaultChartWidth,
		height:    defaultChartHeight,
		ansi:      ansi,
		lastMode:  -1,
		done:      make(chan struct{}),
	}
}

func (r *LiveRenderer) OnFrame(f playback.Frame) {
	due := time.Since(r.lastFrame) >= time.Second/time.Duration(r.frameRate)
	if !due && !f.Done() && f.Mode == r.lastMode {
		return
	}
	r.lastFrame = time.Now()
	r.lastMode = f.Mode

	r.render(f)

	if f.Done() && !r.finished {
		r.finished = true
		close(r.done)
	}
}

// Done is closed once the final step has been drawn.
func (r *LiveRenderer) Done() <-chan struct{} { return r.done }

// Drawn reports how many frames were actually rendered.
func (r *LiveRenderer) Drawn() int { return r.drawn }

func (r *LiveRenderer) render(f playback.Frame) {
	var b strings.Builder
	if r.ansi {
		b.WriteString(clearScreen)
	}
	b.WriteString(fmt.Sprintf("  %s  [%s]\n", Caption(f.Params, f.Presenting, f.Cursor), f.Mode))
	b.WriteString("  " + strings.Repeat("-", r.width) + "\n")
	b.WriteString(Chart(f.Points, ChartOptions{Width: r.width, Height: r.height, Color: r.ansi}))
	b.WriteString("\n  " + strings.Repeat("-", r.width) + "\n")

	if n := len(f.Points); n > 0 {
		last := f.Points[n-1]
		b.WriteString(fmt.Sprintf("  statistic=%.4f  expected=%.4f  deviation=%.4f\n",
			last.Statistic, last.Reference, last.Statistic-last.Reference))
	}

	fmt.Fprint(r.out, b.String())
	r.drawn++
}

func (r *LiveRenderer) Start() {
	if r.ansi {
		fmt.Fprint(r.out, hideCursor)
	}
}

func (r *LiveRenderer) Stop() {
	if r.ansi {
		fmt.Fprint(r.out, showCursor)
	}
}
