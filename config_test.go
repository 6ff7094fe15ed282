package fat

import (
	"testing"
	"time"
)

func TestPackDatetime(t *testing.T) {
	tm := time.Date(2024, time.March, 15, 13, 45, 30, 0, time.UTC)
	got := packDatetime(tm)

	date := got >> 16
	clk := got & 0xffff
	wantDate := uint32((2024-1980)&0x3f)<<9 | uint32(3)<<5 | uint32(15)
	wantClk := uint32((30/2)&0x1f) | uint32(45)<<5 | uint32(13)<<11
	if date != wantDate {
		t.Errorf("date = %#x, want %#x", date, wantDate)
	}
	if clk != wantClk {
		t.Errorf("time = %#x, want %#x", clk, wantClk)
	}
}

func TestPackDatetimeBeforeEpoch(t *testing.T) {
	tm := time.Date(1975, time.January, 1, 0, 0, 0, 0, time.UTC)
	if got := packDatetime(tm); got != 0 {
		t.Errorf("packDatetime before 1980 = %#x, want 0", got)
	}
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
	c := FixedClock{At: at}
	if !c.Now().Equal(at) {
		t.Fatal("FixedClock.Now() did not return At")
	}
}
