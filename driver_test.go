// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nebula

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/nebula/camera"
	"github.com/gogpu/nebula/surface"
)

type flakyProvider struct {
	fail map[int]bool
	n    int
}

func (f *flakyProvider) UpdateScale(*camera.Camera) {
	f.n++
	if f.fail[f.n] {
		panic("transient")
	}
}

func TestDriverFailureDoesNotStopNextFrame(t *testing.T) {
	s := surface.NewImageSurface(16, 16)
	p := newTestPipeline(t, s, WithProvider(&flakyProvider{fail: map[int]bool{2: true}}))
	d := NewDriver(p)

	for i := range 4 {
		_ = d.Step(t0.Add(time.Duration(i) * time.Second / 60))
	}
	st := d.Stats()
	if st.Frames != 4 || st.Failed != 1 {
		t.Errorf("stats = %+v, want 4 frames 1 failed", st)
	}
	if !errors.Is(st.LastError, ErrFramePanic) {
		t.Errorf("LastError = %v", st.LastError)
	}
	if s.Frames() != 3 {
		t.Errorf("presented %d frames, want 3", s.Frames())
	}
	if s.Snapshot() == nil {
		t.Error("no valid composite after the failed frame")
	}
}

func TestDriverRunUntilVsyncCloses(t *testing.T) {
	s := surface.NewImageSurface(8, 8)
	d := NewDriver(newTestPipeline(t, s))

	vsync := make(chan time.Time, 3)
	for i := range 3 {
		vsync <- t0.Add(time.Duration(i) * time.Second / 60)
	}
	close(vsync)

	if err := d.Run(context.Background(), vsync); err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}
	if got := d.Stats().Frames; got != 3 {
		t.Errorf("frames = %d, want 3", got)
	}
}

func TestDriverRunCancelled(t *testing.T) {
	d := NewDriver(newTestPipeline(t, surface.NewImageSurface(8, 8)))
	ctx, cancel := context.WithCancel(context.Background())
	vsync := make(chan time.Time)

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx, vsync) }()

	vsync <- t0
	for deadline := time.Now().Add(5 * time.Second); d.Stats().Frames == 0; {
		if time.Now().After(deadline) {
			t.Fatal("tick not processed")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if got := d.Stats().Frames; got != 1 {
		t.Errorf("frames = %d, want 1", got)
	}
}

func TestDriverFlyToFromAnotherGoroutine(t *testing.T) {
	p := newTestPipeline(t, surface.NewImageSurface(8, 8))
	d := NewDriver(p)

	target := p.Rig().Camera().Position.Add(p.Rig().Camera().Position)
	errc := make(chan error, 1)
	go func() {
		errc <- p.Rig().FlyTo(camera.Command{Position: target, Duration: time.Second})
	}()
	if err := <-errc; err != nil {
		t.Fatal(err)
	}

	_ = d.Step(t0)
	if !p.Rig().Transitioning() {
		t.Fatal("fly-to not picked up by the frame")
	}
	_ = d.Step(t0.Add(time.Second))
	if got := p.Rig().Camera().Position; !got.ApproxEqual(target) {
		t.Errorf("position = %v, want %v", got, target)
	}
	if d.Stats().Failed != 0 {
		t.Errorf("failed frames: %v", d.Stats().LastError)
	}
}
