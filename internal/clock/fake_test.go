package clock

import (
	"testing"
	"time"
)

func TestFakeFiresInDeadlineOrder(t *testing.T) {
	clk := NewFake(time.Unix(0, 0))
	var fired []string
	clk.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	clk.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	clk.AfterFunc(3*time.Second, func() { fired = append(fired, "c") })

	clk.Advance(2 * time.Second)
	if len(fired) != 2 || fired[0] != "a" || fired[1] != "b" {
		t.Fatalf("expected [a b], got %v", fired)
	}
	if clk.Pending() != 1 {
		t.Fatalf("expected one pending timer, got %d", clk.Pending())
	}
	if got := clk.Now(); !got.Equal(time.Unix(2, 0)) {
		t.Fatalf("expected clock at 2s, got %v", got)
	}
}

func TestFakeRunsTimersArmedByCallbacks(t *testing.T) {
	clk := NewFake(time.Unix(0, 0))
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		clk.AfterFunc(time.Second, tick)
	}
	clk.AfterFunc(time.Second, tick)

	clk.Advance(5 * time.Second)
	if ticks != 5 {
		t.Fatalf("expected 5 ticks, got %d", ticks)
	}
}

func TestFakeStop(t *testing.T) {
	clk := NewFake(time.Unix(0, 0))
	fired := false
	timer := clk.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Fatalf("expected pending timer to stop")
	}
	if timer.Stop() {
		t.Fatalf("second stop must report false")
	}
	clk.Advance(time.Minute)
	if fired {
		t.Fatalf("stopped timer fired")
	}
}
