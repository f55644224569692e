// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/nebula"
	"github.com/gogpu/nebula/camera"
)

// hud tracks presented frames and formats the status line.
type hud struct {
	p *message.Printer

	frames uint64
	last   time.Time
	fps    float64
}

func newHUD(tag language.Tag) *hud {
	return &hud{p: message.NewPrinter(tag)}
}

// observe is a pipeline state hook.
func (h *hud) observe(s nebula.State) {
	if s != nebula.Presented {
		return
	}
	h.tick(time.Now())
}

func (h *hud) tick(now time.Time) {
	h.frames++
	if !h.last.IsZero() {
		if dt := now.Sub(h.last).Seconds(); dt > 0 {
			// exponential moving average over roughly ten frames
			fps := 1 / dt
			if h.fps == 0 {
				h.fps = fps
			} else {
				h.fps += (fps - h.fps) * 0.1
			}
		}
	}
	h.last = now
}

// status formats frame count, rate and camera position.
func (h *hud) status(rig *camera.Rig) string {
	cam := rig.Camera()
	pos := cam.Position
	s := h.p.Sprintf("frame %d  %.1f fps  pos %.1f %.1f %.1f  dist %.0f",
		h.frames, h.fps, pos.X(), pos.Y(), pos.Z(), pos.Len())
	if rig.Transitioning() {
		s += "  flying"
	}
	return s
}
