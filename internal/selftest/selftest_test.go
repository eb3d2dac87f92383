package selftest

import "testing"

type stubBar struct {
	px []bool
}

func (b *stubBar) Count() int { return len(b.px) }
func (b *stubBar) SetPixel(i int, on bool) {
	if i >= 0 && i < len(b.px) {
		b.px[i] = on
	}
}

func (b *stubBar) lit() int {
	n := 0
	for _, on := range b.px {
		if on {
			n++
		}
	}
	return n
}

func TestIndexSweepVisitsEverySegmentOnce(t *testing.T) {
	b := &stubBar{px: make([]bool, 6)}
	r := NewRunner(Plan{Kind: IndexSweep})

	for i := 0; i < 6; i++ {
		if !r.Step(b) {
			t.Fatalf("sweep ended early at frame %d", i)
		}
		if b.lit() != 1 || !b.px[i] {
			t.Fatalf("frame %d: want only segment %d lit, got %v", i, i, b.px)
		}
	}
	if r.Step(b) {
		t.Fatal("sweep should end after the last segment")
	}
	if b.lit() != 0 {
		t.Fatalf("final frame should be blank, got %v", b.px)
	}
}

func TestAllOnHoldsThenEnds(t *testing.T) {
	b := &stubBar{px: make([]bool, 4)}
	r := NewRunner(Plan{Kind: AllOn})

	frames := 0
	for r.Step(b) {
		frames++
		if b.lit() != 4 {
			t.Fatalf("frame %d: want all 4 lit, got %v", frames, b.px)
		}
		if frames > 100 {
			t.Fatal("all-on check never ends")
		}
	}
	if frames != allOnFrames {
		t.Fatalf("want %d frames, got %d", allOnFrames, frames)
	}
}

func TestAlternateFlipsParityEachFrame(t *testing.T) {
	b := &stubBar{px: make([]bool, 5)}
	r := NewRunner(Plan{Kind: Alternate})

	for frame := 0; frame < alternateFrames; frame++ {
		if !r.Step(b) {
			t.Fatalf("alternate ended early at frame %d", frame)
		}
		for i, on := range b.px {
			if want := i%2 == frame%2; on != want {
				t.Fatalf("frame %d segment %d: want %v", frame, i, want)
			}
		}
	}
	if r.Step(b) {
		t.Fatal("alternate should end after its hold")
	}
}

func TestUnknownKindEndsImmediately(t *testing.T) {
	b := &stubBar{px: make([]bool, 3)}
	b.px[1] = true

	if NewRunner(Plan{Kind: "bogus"}).Step(b) {
		t.Fatal("unknown check should report done")
	}
	if b.lit() != 0 {
		t.Fatal("unknown check should still blank the bar")
	}
}
