// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestEasesMapUnitInterval(t *testing.T) {
	for name, ease := range easeNames {
		t.Run(name, func(t *testing.T) {
			if got := ease(0); got != 0 {
				t.Errorf("ease(0) = %v, want 0", got)
			}
			if got := ease(1); math.Abs(got-1) > 1e-15 {
				t.Errorf("ease(1) = %v, want 1", got)
			}
			prev := 0.0
			for i := 1; i <= 100; i++ {
				v := ease(float64(i) / 100)
				if v < prev-1e-12 {
					t.Fatalf("ease not monotonic at %v: %v < %v", float64(i)/100, v, prev)
				}
				prev = v
			}
		})
	}
}

func TestEaseByName(t *testing.T) {
	if _, ok := EaseByName("power3.inOut"); !ok {
		t.Error(`EaseByName("power3.inOut") not found`)
	}
	if _, ok := EaseByName("elastic"); ok {
		t.Error(`EaseByName("elastic") found`)
	}
}

func TestTransitionReachesTargetExactly(t *testing.T) {
	start := time.Unix(100, 0)
	from := Pose{Position: mgl64.Vec3{0, 500, 200}, Orientation: mgl64.QuatIdent()}
	q := mgl64.QuatRotate(1.2, mgl64.Vec3{0, 0, 1})
	cmd := Command{
		Position:    mgl64.Vec3{-1000, -200, 50},
		Orientation: &q,
		Duration:    3 * time.Second,
	}
	tr, err := NewTransition(from, cmd, start)
	if err != nil {
		t.Fatal(err)
	}

	for _, at := range []time.Duration{3 * time.Second, 4 * time.Second, time.Hour} {
		p := tr.Pose(start.Add(at))
		if p.Position != cmd.Position {
			t.Errorf("Pose(t0+%v).Position = %v, want %v", at, p.Position, cmd.Position)
		}
		if p.Orientation != q.Normalize() {
			t.Errorf("Pose(t0+%v).Orientation = %v, want %v", at, p.Orientation, q)
		}
	}
	if p := tr.Pose(start); p != from {
		t.Errorf("Pose(t0) = %v, want %v", p, from)
	}
	if !tr.Done(start.Add(3 * time.Second)) {
		t.Error("Done(t0+D) = false")
	}
	if tr.Done(start.Add(2999 * time.Millisecond)) {
		t.Error("Done before t0+D")
	}
}

func TestTransitionMonotonic(t *testing.T) {
	start := time.Unix(0, 0)
	from := Pose{Position: mgl64.Vec3{}, Orientation: mgl64.QuatIdent()}
	q := mgl64.QuatRotate(2.5, mgl64.Vec3{0, 1, 0})
	cmd := Command{Position: mgl64.Vec3{10, -4, 7}, Orientation: &q, Duration: time.Second}
	tr, err := NewTransition(from, cmd, start)
	if err != nil {
		t.Fatal(err)
	}

	prevDist := math.Inf(1)
	prevAngle := math.Inf(1)
	for ms := 0; ms <= 1000; ms += 10 {
		p := tr.Pose(start.Add(time.Duration(ms) * time.Millisecond))
		dist := p.Position.Sub(cmd.Position).Len()
		angle := 1 - math.Abs(p.Orientation.Dot(q))
		if dist > prevDist+1e-9 {
			t.Fatalf("distance to target grew at %dms: %v > %v", ms, dist, prevDist)
		}
		if angle > prevAngle+1e-12 {
			t.Fatalf("angle to target grew at %dms: %v > %v", ms, angle, prevAngle)
		}
		prevDist, prevAngle = dist, angle
	}
}

func TestTransitionDefaults(t *testing.T) {
	tr, err := NewTransition(Pose{Orientation: mgl64.QuatIdent()}, Command{}, time.Unix(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if tr.duration != DefaultFlyDuration {
		t.Errorf("duration = %v, want %v", tr.duration, DefaultFlyDuration)
	}
	if !tr.Aims() {
		t.Error("position-only command does not aim")
	}

	_, err = NewTransition(Pose{}, Command{Duration: -time.Second}, time.Unix(0, 0))
	if !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("negative duration: err = %v, want ErrInvalidDuration", err)
	}
}

func TestSlerpShortestArc(t *testing.T) {
	a := mgl64.QuatIdent()
	b := mgl64.QuatRotate(0.5, mgl64.Vec3{0, 1, 0}).Scale(-1)

	mid := Slerp(a, b, 0.5)
	want := mgl64.QuatRotate(0.25, mgl64.Vec3{0, 1, 0})
	if !QuatEqual(mid, want, 1e-12) {
		t.Errorf("Slerp took the long way: %v, want %v", mid, want)
	}
	if got := Slerp(a, b, 1); got != b.Normalize() {
		t.Errorf("Slerp(a, b, 1) = %v, want %v", got, b)
	}
}
