// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/nebula"
	"github.com/gogpu/nebula/camera"
	"github.com/gogpu/nebula/config"
)

// Pixels of drag simulated by one key press.
const (
	rotateStep = 24
	panStep    = 16
)

// controls maps terminal keys onto the camera rig:
//
//	arrows      orbit
//	w a s d     pan
//	+ -         zoom
//	1 .. 9      fly to the waypoint bound to the key
//	r           fly back to the starting pose
//	q Esc C-c   quit
type controls struct {
	rig    *camera.Rig
	cfg    config.Config
	home   camera.Command
	events <-chan tcell.Event
	quit   func()

	// sync repaints the whole terminal after a resize.
	sync func()
}

func newControls(rig *camera.Rig, cfg config.Config, events <-chan tcell.Event, quit func()) *controls {
	cam := rig.Camera()
	q := cam.Orientation
	return &controls{
		rig:    rig,
		cfg:    cfg,
		home:   camera.Command{Position: cam.Position, Orientation: &q},
		events: events,
		quit:   quit,
	}
}

// pump drains pending events without blocking. It runs as a pipeline input
// hook at the start of each frame.
func (c *controls) pump(time.Time) {
	for c.events != nil {
		select {
		case ev, ok := <-c.events:
			if !ok {
				c.events = nil
				return
			}
			c.handle(ev)
		default:
			return
		}
	}
}

func (c *controls) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		if c.sync != nil {
			c.sync()
		}
	case *tcell.EventKey:
		c.key(ev)
	}
}

func (c *controls) key(ev *tcell.EventKey) {
	orbit := c.rig.Orbit()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		c.quit()
		return
	case tcell.KeyLeft:
		orbit.Rotate(-rotateStep, 0)
		return
	case tcell.KeyRight:
		orbit.Rotate(rotateStep, 0)
		return
	case tcell.KeyUp:
		orbit.Rotate(0, -rotateStep)
		return
	case tcell.KeyDown:
		orbit.Rotate(0, rotateStep)
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch r := ev.Rune(); r {
	case 'q', 'Q':
		c.quit()
	case 'w':
		orbit.Pan(0, panStep)
	case 's':
		orbit.Pan(0, -panStep)
	case 'a':
		orbit.Pan(panStep, 0)
	case 'd':
		orbit.Pan(-panStep, 0)
	case '+', '=':
		orbit.Zoom(1)
	case '-', '_':
		orbit.Zoom(-1)
	case 'r':
		c.flyTo("home", c.home)
	default:
		if wp, ok := c.cfg.Find(string(r)); ok {
			c.flyTo(wp.Name, wp.Command())
		}
	}
}

func (c *controls) flyTo(name string, cmd camera.Command) {
	if err := c.rig.FlyTo(cmd); err != nil {
		nebula.Logger().Warn("nebula: fly-to rejected", slog.String("waypoint", name), slog.Any("err", err))
		return
	}
	nebula.Logger().Info("nebula: fly-to", slog.String("waypoint", name))
}
