package clock

import (
	"testing"
	"time"
)

func TestFakeSleepAdvances(t *testing.T) {
	f := NewFake()
	start := f.Now()

	var seen time.Time
	f.OnSleep = func(time.Duration) { seen = f.Now() }
	f.Sleep(400 * time.Millisecond)

	if !seen.Equal(start) {
		t.Errorf("OnSleep saw %v, want time before the sleep %v", seen, start)
	}
	if got := f.Now().Sub(start); got != 400*time.Millisecond {
		t.Errorf("clock advanced %v, want 400ms", got)
	}

	f.Advance(time.Second)
	if got := f.Now().Sub(start); got != 1400*time.Millisecond {
		t.Errorf("clock advanced %v, want 1.4s", got)
	}
	if got := f.Sleeps(); len(got) != 1 || got[0] != 400*time.Millisecond {
		t.Errorf("Sleeps() = %v, want [400ms]", got)
	}
}
