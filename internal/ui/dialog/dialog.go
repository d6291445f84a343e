// Package dialog shows short-lived spoken lines floating above speakers.
// Lines live on the screen-space UI layer and follow their speaker every step
// until they expire.
package dialog

import (
	"image/color"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/render/scene"
)

// Defaults for Options fields left at zero.
const (
	DefaultDuration       = 2.0 // seconds
	DefaultVerticalOffset = 256.0
	DefaultTextScale      = 2.0
)

// DefaultColor is the green used for spoken text.
var DefaultColor = color.RGBA{R: 0x00, G: 0xb9, B: 0x13, A: 0xff}

// Speaker is anything a line can be attached to.
type Speaker interface {
	Position() geom.Point
}

// Projector maps world positions to screen pixels.
type Projector interface {
	WorldToScreen(world geom.Point) geom.Point
}

// Options configures a Queue.
type Options struct {
	// Layer is the screen-space container lines are added to.
	Layer     *scene.Node
	Projector Projector

	// Duration is the lifetime of a line in seconds.
	Duration float64
	// VerticalOffset lifts lines above the speaker's projected position.
	VerticalOffset float64
	// StackOffset lifts each further concurrent line of the same speaker.
	// Zero lets concurrent lines overlap.
	StackOffset float64
	TextScale   float64
	Color       color.Color
}

// Line is one spoken line.
type Line struct {
	Text      string
	Remaining float64 // seconds

	node *scene.Node
}

// Alive reports whether the line still has lifetime left.
func (l *Line) Alive() bool {
	return l.Remaining > 0
}

// Node returns the text node showing the line.
func (l *Line) Node() *scene.Node {
	return l.node
}

// Queue holds the live lines of every speaker.
type Queue struct {
	opts     Options
	lines    map[Speaker][]*Line
	speakers []Speaker
}

// NewQueue creates an empty queue.
func NewQueue(opts Options) *Queue {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.VerticalOffset == 0 {
		opts.VerticalOffset = DefaultVerticalOffset
	}
	if opts.TextScale <= 0 {
		opts.TextScale = DefaultTextScale
	}
	if opts.Color == nil {
		opts.Color = DefaultColor
	}
	return &Queue{
		opts:  opts,
		lines: make(map[Speaker][]*Line),
	}
}

// Add makes the speaker say text. The line is appended after any lines the
// speaker is already showing.
func (q *Queue) Add(speaker Speaker, text string) *Line {
	line := &Line{
		Text:      text,
		Remaining: q.opts.Duration,
		node:      scene.NewText("dialog", text, q.opts.Color, q.opts.TextScale),
	}
	line.node.SetAnchor(0.5, 0.5)

	if _, ok := q.lines[speaker]; !ok {
		q.speakers = append(q.speakers, speaker)
	}
	q.lines[speaker] = append(q.lines[speaker], line)

	q.place(speaker, line, len(q.lines[speaker])-1)
	if q.opts.Layer != nil {
		q.opts.Layer.AddChild(line.node)
	}
	return line
}

// Step ages every line by dt seconds, drops expired lines and moves the rest
// to their speaker's current position.
func (q *Queue) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}

	speakers := q.speakers[:0]
	for _, speaker := range q.speakers {
		live := q.lines[speaker][:0]
		for _, line := range q.lines[speaker] {
			line.Remaining -= dt
			if !line.Alive() {
				line.node.RemoveFromParent()
				continue
			}
			live = append(live, line)
		}

		if len(live) == 0 {
			delete(q.lines, speaker)
			continue
		}
		q.lines[speaker] = live
		speakers = append(speakers, speaker)

		for i, line := range live {
			q.place(speaker, line, i)
		}
	}
	q.speakers = speakers
}

// Lines returns the live lines of a speaker, oldest first.
func (q *Queue) Lines(speaker Speaker) []*Line {
	return q.lines[speaker]
}

// Speakers returns the number of speakers with live lines.
func (q *Queue) Speakers() int {
	return len(q.speakers)
}

// Len returns the total number of live lines.
func (q *Queue) Len() int {
	n := 0
	for _, lines := range q.lines {
		n += len(lines)
	}
	return n
}

// Clear removes every line immediately.
func (q *Queue) Clear() {
	for _, lines := range q.lines {
		for _, line := range lines {
			line.node.RemoveFromParent()
		}
	}
	q.lines = make(map[Speaker][]*Line)
	q.speakers = nil
}

func (q *Queue) place(speaker Speaker, line *Line, index int) {
	p := speaker.Position()
	if q.opts.Projector != nil {
		p = q.opts.Projector.WorldToScreen(p)
	}
	y := p.Y - q.opts.VerticalOffset - float64(index)*q.opts.StackOffset
	line.node.SetPosition(p.X, y)
}
