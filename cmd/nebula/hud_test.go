// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/gogpu/nebula"
	"github.com/gogpu/nebula/config"
)

func TestHUDCountsPresentedFrames(t *testing.T) {
	h := newHUD(language.English)
	for _, s := range []nebula.State{nebula.Idle, nebula.RenderingBase, nebula.Compositing, nebula.Presented} {
		h.observe(s)
	}
	if h.frames != 1 {
		t.Errorf("frames = %d, want 1", h.frames)
	}
}

func TestHUDRate(t *testing.T) {
	h := newHUD(language.English)
	start := time.Unix(0, 0)
	for i := range 20 {
		h.tick(start.Add(time.Duration(i) * 40 * time.Millisecond))
	}
	if h.fps < 24.9 || h.fps > 25.1 {
		t.Errorf("fps = %v, want 25", h.fps)
	}
}

func TestHUDStatus(t *testing.T) {
	rig, err := config.Default().NewRig()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		tag  language.Tag
		want string
	}{
		{language.English, "frame 12,345"},
		{language.German, "frame 12.345"},
	}
	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			h := newHUD(tt.tag)
			h.frames = 12345
			got := h.status(rig)
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("status = %q, want prefix %q", got, tt.want)
			}
			if strings.Contains(got, "flying") {
				t.Errorf("status = %q, reports a transition", got)
			}
		})
	}
}
