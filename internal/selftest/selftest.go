// Package selftest steps wiring checks over a bar, one frame at a
// time, so a mismapped segment or dead driver output shows up before
// any animation runs.
package selftest

// Surface is the slice of the bar a check draws on.
type Surface interface {
	Count() int
	SetPixel(seg int, on bool)
}

// Kind names one check.
type Kind string

const (
	None       Kind = ""
	IndexSweep Kind = "index_sweep" // one segment at a time, in logical order
	AllOn      Kind = "all_on"      // every segment lit for a short hold
	Alternate  Kind = "alternate"   // odd/even segments flipping each frame
)

// Kinds lists the runnable checks.
func Kinds() []Kind {
	return []Kind{IndexSweep, AllOn, Alternate}
}

const (
	allOnFrames     = 16
	alternateFrames = 8
)

type Plan struct {
	Kind Kind
}

// Runner steps a check frame by frame.
type Runner struct {
	plan Plan
	step int
}

func NewRunner(plan Plan) *Runner { return &Runner{plan: plan} }

func (r *Runner) Kind() Kind { return r.plan.Kind }

// Step stages the next frame; it returns false once the check has
// finished. The caller pushes the frame.
func (r *Runner) Step(s Surface) bool {
	n := s.Count()
	for i := 0; i < n; i++ {
		s.SetPixel(i, false)
	}

	switch r.plan.Kind {
	case IndexSweep:
		if r.step >= n {
			return false
		}
		s.SetPixel(r.step, true)
	case AllOn:
		if r.step >= allOnFrames {
			return false
		}
		for i := 0; i < n; i++ {
			s.SetPixel(i, true)
		}
	case Alternate:
		if r.step >= alternateFrames {
			return false
		}
		for i := r.step % 2; i < n; i += 2 {
			s.SetPixel(i, true)
		}
	default:
		return false
	}
	r.step++
	return true
}
