// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/nebula/camera"
	"github.com/gogpu/nebula/config"
)

func newTestControls(t *testing.T) (*controls, chan tcell.Event, *bool) {
	t.Helper()
	cfg := config.Default()
	rig, err := cfg.NewRig()
	if err != nil {
		t.Fatal(err)
	}
	events := make(chan tcell.Event, 16)
	quit := new(bool)
	c := newControls(rig, cfg, events, func() { *quit = true })
	return c, events, quit
}

func TestControlsKeys(t *testing.T) {
	tests := []struct {
		name  string
		ev    *tcell.EventKey
		moves bool
		flies bool
		quits bool
	}{
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), true, false, false},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), true, false, false},
		{"pan", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), true, false, false},
		{"zoom in", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), true, false, false},
		{"zoom out", tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone), true, false, false},
		{"waypoint", tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone), false, true, false},
		{"home", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), false, true, false},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, '9', tcell.ModNone), false, false, false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false, false, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false, false, true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, events, quit := newTestControls(t)
			events <- tt.ev
			now := time.Unix(100, 0)
			c.pump(now)

			if moved := !c.rig.Orbit().Idle(); moved != tt.moves {
				t.Errorf("orbit moved = %v, want %v", moved, tt.moves)
			}
			c.rig.Update(now, 360)
			if c.rig.Transitioning() != tt.flies {
				t.Errorf("transitioning = %v, want %v", c.rig.Transitioning(), tt.flies)
			}
			if *quit != tt.quits {
				t.Errorf("quit = %v, want %v", *quit, tt.quits)
			}
		})
	}
}

func TestControlsWaypointReachesTarget(t *testing.T) {
	c, events, _ := newTestControls(t)
	wp, ok := c.cfg.Find("3")
	if !ok {
		t.Fatal("no waypoint on key 3")
	}
	events <- tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone)

	start := time.Unix(100, 0)
	c.pump(start)
	c.rig.Update(start, 360)
	c.rig.Update(start.Add(camera.DefaultFlyDuration), 360)

	if c.rig.Transitioning() {
		t.Fatal("transition still running after its duration")
	}
	if got := c.rig.Camera().Position; got.Sub(wp.Position.Vec()).Len() > 1e-6 {
		t.Errorf("position = %v, want %v", got, wp.Position)
	}
}

func TestControlsPumpDoesNotBlock(t *testing.T) {
	c, events, _ := newTestControls(t)
	c.pump(time.Now())

	resized := false
	c.sync = func() { resized = true }
	events <- tcell.NewEventResize(80, 24)
	close(events)
	c.pump(time.Now())
	if !resized {
		t.Error("resize did not sync the screen")
	}
	if c.events != nil {
		t.Error("closed event channel still polled")
	}
	c.pump(time.Now())
}
