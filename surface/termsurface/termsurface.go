// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package termsurface presents frames in a terminal using tcell.
//
// Each cell shows two vertically stacked pixels as an upper half block with
// the top pixel as foreground and the bottom pixel as background, so a
// terminal of C columns and R rows is a C x 2R pixel surface.
//
// Importing the package registers the "term" backend with the surface
// registry.
package termsurface

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/gogpu/nebula/surface"
)

const halfBlock = '▀'

// Surface draws frames into a tcell screen.
type Surface struct {
	screen tcell.Screen

	mu     sync.Mutex
	status string
	events chan tcell.Event
	quit   chan struct{}
	closed bool
}

// Open initializes the controlling terminal and wraps it.
func Open() (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("termsurface: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("termsurface: init: %w", err)
	}
	return New(screen), nil
}

// New wraps an initialized screen. Close finalizes it.
func New(screen tcell.Screen) *Surface {
	screen.HideCursor()
	return &Surface{screen: screen}
}

// Screen returns the underlying screen.
func (s *Surface) Screen() tcell.Screen { return s.screen }

// Size implements surface.Surface: columns by twice the rows.
func (s *Surface) Size() (width, height int) {
	cols, rows := s.screen.Size()
	return cols, rows * 2
}

// PixelRatio implements surface.Surface. Cells are always 1:1.
func (s *Surface) PixelRatio() float64 { return 1 }

// SetStatus sets a line of text drawn over the top row on every Present.
func (s *Surface) SetStatus(text string) {
	s.mu.Lock()
	s.status = text
	s.mu.Unlock()
}

// Present implements surface.Surface. Frames smaller than the screen leave
// the remaining cells black; larger frames are cropped.
func (s *Surface) Present(frame *image.RGBA) error {
	s.mu.Lock()
	closed, status := s.closed, s.status
	s.mu.Unlock()
	if closed {
		return surface.ErrClosed
	}

	cols, rows := s.screen.Size()
	b := frame.Bounds()
	for row := range rows {
		for x := range cols {
			top := pixel(frame, b.Min.X+x, b.Min.Y+row*2)
			bottom := pixel(frame, b.Min.X+x, b.Min.Y+row*2+1)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			s.screen.SetContent(x, row, halfBlock, nil, style)
		}
	}
	if status != "" && rows > 0 {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
		x := 0
		for _, r := range status {
			if x >= cols {
				break
			}
			s.screen.SetContent(x, 0, r, nil, style)
			x++
		}
	}
	s.screen.Show()
	return nil
}

// pixel returns the color at (x, y) or black outside the frame.
func pixel(frame *image.RGBA, x, y int) tcell.Color {
	if !(image.Point{X: x, Y: y}).In(frame.Rect) {
		return tcell.NewRGBColor(0, 0, 0)
	}
	c := frame.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Events starts forwarding terminal events and returns the channel they
// arrive on. The channel is closed by Close. Calling Events again returns
// the same channel.
func (s *Surface) Events() <-chan tcell.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.events == nil {
		s.events = make(chan tcell.Event, 64)
		s.quit = make(chan struct{})
		go s.screen.ChannelEvents(s.events, s.quit)
	}
	return s.events
}

// Close stops event forwarding and restores the terminal. Close is
// idempotent.
func (s *Surface) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.quit != nil {
		close(s.quit)
	}
	s.mu.Unlock()
	s.screen.Fini()
	return nil
}

var _ surface.Surface = (*Surface)(nil)

func init() {
	surface.Register(surface.Backend{
		Name:     "term",
		Priority: 100,
		Open: func(surface.Options) (surface.Surface, error) {
			return Open()
		},
		Available: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	})
}
