package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/clcollins/hero/pkg/tui/style"
)

const (
	fps = 60

	entranceStartOffset = 100.0
	entranceFadeTime    = 800 * time.Millisecond
	// columns the list is pushed right at the start offset
	entranceMaxIndent = 8

	// spring tuned to match a fast, bouncy settle
	springFrequency = 7.0
	springDamping   = 0.3

	settleThreshold = 0.5
)

// interpolate maps x from [inMin, inMax] onto [outMin, outMax]. Without
// clamping, values outside the input range extend the line.
func interpolate(x, inMin, inMax, outMin, outMax float64, clamp bool) float64 {
	if inMax == inMin {
		return outMin
	}
	if clamp {
		x = math.Max(math.Min(x, math.Max(inMin, inMax)), math.Min(inMin, inMax))
	}
	return outMin + (x-inMin)*(outMax-outMin)/(inMax-inMin)
}

// headerLayout is the scroll-driven shape of the header
type headerLayout struct {
	height             float64
	titleOpacity       float64
	titleSize          float64
	descriptionOpacity float64
	descriptionSize    float64
}

func layoutHeader(scrollOffset float64) headerLayout {
	return headerLayout{
		height:             interpolate(scrollOffset, 0, 140, 140, 20, true),
		titleOpacity:       interpolate(scrollOffset, 0, 30, 30, 0, false),
		titleSize:          interpolate(scrollOffset, 0, 30, 30, 0, false),
		descriptionOpacity: interpolate(scrollOffset, 0, 16, 16, 0, false),
		descriptionSize:    interpolate(scrollOffset, 0, 16, 16, 0, false),
	}
}

// pixelsPerLine converts the header height into terminal lines
const pixelsPerLine = 28.0

func (h headerLayout) lines() int {
	return max(1, int(math.Round(h.height/pixelsPerLine)))
}

func (h headerLayout) showTitle() bool       { return h.titleOpacity > 0 }
func (h headerLayout) boldTitle() bool       { return h.titleSize >= 15 }
func (h headerLayout) showDescription() bool { return h.descriptionOpacity > 0 }

// entrance is the slide and fade the list plays when incidents arrive. The
// offset settles on a spring; the opacity is linear over entranceFadeTime.
type entrance struct {
	spring   harmonica.Spring
	offset   float64
	velocity float64
	opacity  float64
	started  time.Time
	running  bool
	// id tags frame messages so a restarted animation drops old frames
	id int
}

func newEntrance() entrance {
	return entrance{
		spring:  harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		offset:  entranceStartOffset,
		opacity: 0,
	}
}

func (e *entrance) settled() bool {
	return math.Abs(e.offset) < settleThreshold &&
		math.Abs(e.velocity) < settleThreshold &&
		e.opacity >= 1
}

// reset puts the list back off-screen for the next start
func (e *entrance) reset() {
	e.offset = entranceStartOffset
	e.velocity = 0
	e.opacity = 0
	e.running = false
}

// start begins animating toward rest. An animation already at rest does
// nothing, so appended pages do not replay it.
func (e *entrance) start(now time.Time) bool {
	if e.running || e.settled() {
		return false
	}
	e.id++
	e.running = true
	e.started = now
	return true
}

// step advances one frame and reports whether more frames are needed
func (e *entrance) step(now time.Time) bool {
	if !e.running {
		return false
	}

	e.offset, e.velocity = e.spring.Update(e.offset, e.velocity, 0)
	e.opacity = math.Min(1, float64(now.Sub(e.started))/float64(entranceFadeTime))

	if e.settled() {
		e.offset, e.velocity, e.opacity = 0, 0, 1
		e.running = false
	}
	return e.running
}

// indent is the left margin for the current offset. Overshoot past rest is
// drawn at rest; a terminal cannot indent by a negative amount.
func (e entrance) indent() int {
	n := int(math.Round(e.offset / entranceStartOffset * entranceMaxIndent))
	return max(0, min(n, entranceMaxIndent))
}

func (e entrance) color() lipgloss.AdaptiveColor {
	i := int(math.Round(e.opacity * float64(len(style.Fade)-1)))
	return style.Fade[max(0, min(i, len(style.Fade)-1))]
}

type animationFrameMsg struct {
	id   int
	time time.Time
}

func nextFrame(id int) tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg {
		return animationFrameMsg{id: id, time: t}
	})
}
