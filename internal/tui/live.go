// Package tui renders stepped physics worlds in the terminal: a plain
// ANSI live renderer and a bubbletea watch view.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/rigid/internal/physics"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws a side view of a world after each step: terrain
// cross-section from the first heightfield body, other bodies as
// markers. It implements physics.Observer.
type LiveRenderer struct {
	frameRate int
	lastFrame time.Time
	canvas    [][]rune

	// World-space window mapped onto the canvas.
	MinX, MaxX float32
	MinY, MaxY float32
}

func NewLiveRenderer(frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		frameRate: frameRate,
		canvas:    canvas,
		MinX:      -20, MaxX: 20,
		MinY: -5, MaxY: 25,
	}
}

// OnStep renders a frame, throttled to the configured frame rate.
func (r *LiveRenderer) OnStep(w *physics.World, t float32) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.clear()
	r.drawTerrain(w)
	r.drawBodies(w)
	r.render(w, t)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) toCanvas(wx, wy float32) (int, int) {
	cx := int((wx - r.MinX) / (r.MaxX - r.MinX) * float32(width-1))
	cy := int((r.MaxY - wy) / (r.MaxY - r.MinY) * float32(height-1))
	return cx, cy
}

func (r *LiveRenderer) drawTerrain(w *physics.World) {
	terrain := firstHeightfield(w)
	if terrain == nil {
		return
	}
	// Stay inside the grid's local span to avoid the out-of-range
	// warning path on every frame.
	halfW := float32(terrain.CollisionShape().Field.Width-1) / 2
	for cx := 0; cx < width; cx++ {
		wx := r.MinX + (r.MaxX-r.MinX)*float32(cx)/float32(width-1)
		if wx < -halfW || wx > halfW {
			continue
		}
		h := terrain.HeightAt(wx, 0)
		_, cy := r.toCanvas(wx, h)
		r.set(cx, cy, '~')
	}
}

func (r *LiveRenderer) drawBodies(w *physics.World) {
	for _, rb := range w.Bodies() {
		if rb.CollisionShape().Kind == physics.Heightfield {
			continue
		}
		p := rb.Node().Position()
		cx, cy := r.toCanvas(p.X(), p.Y())
		marker := '*'
		if rb.IsStatic() {
			marker = '#'
		}
		r.set(cx, cy, marker)
	}
}

// Frame returns the current canvas plus header and body summary.
func (r *LiveRenderer) Frame(w *physics.World, t float32) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  rigid  t=%.2fs  bodies=%d\n", t, len(w.Bodies())))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	line := "  "
	for i, rb := range w.Bodies() {
		if i >= 3 {
			break
		}
		p := rb.Node().Position()
		line += fmt.Sprintf("%s=(%.1f, %.1f, %.1f) ", rb.Node().Name(), p.X(), p.Y(), p.Z())
	}
	b.WriteString(line + "\n")
	return b.String()
}

func (r *LiveRenderer) render(w *physics.World, t float32) {
	fmt.Print(clearScreen + r.Frame(w, t))
}

func (r *LiveRenderer) Start() { fmt.Print(hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Print(showCursor) }

func firstHeightfield(w *physics.World) *physics.RigidBody {
	for _, rb := range w.Bodies() {
		if rb.CollisionShape().Kind == physics.Heightfield {
			return rb
		}
	}
	return nil
}
