// Command barsim plays the animation set on a simulated bar in the
// terminal. Frames render as a single overwritten line of block
// characters, and the keyboard pokes the engine while it runs: pause,
// direction, logic, looping, block emission, next animation.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/example/barmeter/anim"
	"github.com/example/barmeter/driver/fake"
	"github.com/example/barmeter/layout"
	"github.com/example/barmeter/meter"
)

type inputEvent int

const (
	inputEventPause inputEvent = iota
	inputEventDir
	inputEventLogic
	inputEventLoop
	inputEventBlocks
	inputEventNext
	inputEventQuit
)

// act names one playlist entry and how to start it.
type act struct {
	name  string
	start func(e *anim.Engine)
}

func main() {
	var (
		segments = flag.Int("segments", 28, "number of bar segments")
		fps      = flag.Int("fps", 40, "frames per second")
		hold     = flag.Int("hold", 6, "seconds before the playlist advances")
		seed     = flag.Int64("seed", 0, "seed for randomized animations, 0 uses the clock")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *segments < 1 {
		log.Fatal().Int("segments", *segments).Msg("segment count must be positive")
	}
	if *fps <= 0 {
		*fps = 40
	}
	if *hold < 1 {
		*hold = 1
	}

	drv := fake.New(1, 1, *segments)
	bar := meter.New(drv, layout.NewLinear(drv, 0, *segments, layout.Forward))

	eng := anim.New(bar).Loop()
	if *seed != 0 {
		eng.Seed(*seed)
	}

	bank := newSignalBank(*seed)
	acts := playlist(bank)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	events := startInputListener(ctx)

	fmt.Println("keys: space pause, d direction, i logic, l loop, b blocks, n next, q quit")
	run(ctx, eng, bar, acts, events, *fps, *hold)
}

// playlist cycles through one animation per family. The follower
// entries chase the synthetic signals so they move without an ADC.
func playlist(bank *signalBank) []act {
	return []act{
		{"fill_up", func(e *anim.Engine) { e.FillUpIntv(25, 100, 0) }},
		{"empty_down", func(e *anim.Engine) { e.EmptyDownIntv(25, 100, 0) }},
		{"bounce_up", func(e *anim.Engine) { e.BounceFillUpIntv(25, 35, 100, 0) }},
		{"center_bounce", func(e *anim.Engine) { e.BounceFillFromCenterIntv(25, 35, 100, 0) }},
		{"edges_bounce", func(e *anim.Engine) { e.BounceFillFromEdgesIntv(25, 35, 100, 0) }},
		{"beat", func(e *anim.Engine) { e.BeatPulse(118) }},
		{"scroll_up", func(e *anim.Engine) { e.ScrollingUpBlocks(40, 3, 2, 0) }},
		{"scroll_down", func(e *anim.Engine) { e.ScrollingDownBlocks(40, 3, 2, 0) }},
		{"exploding", func(e *anim.Engine) { e.ExplodingBlocks(45, 2, 2, 0) }},
		{"colliding", func(e *anim.Engine) { e.CollidingBlocks(45, 2, 2, 0) }},
		{"stack_down", func(e *anim.Engine) { e.DownStackingBlocks(30, 2, 1) }},
		{"unstack_up", func(e *anim.Engine) { e.UpUnstackingBlocks(30, 2, 1) }},
		{"random_fill", func(e *anim.Engine) { e.RandomFill(35) }},
		{"random_empty", func(e *anim.Engine) { e.RandomEmpty(35) }},
		{"follow_smooth", func(e *anim.Engine) { e.FollowSignalSmooth(bank.level(), 25, 0, 1023, 3, 50) }},
		{"follow_dual", func(e *anim.Engine) { e.FollowDualFromCenter(bank.bass(), 25, bank.treble(), 0, 1023, 3, 50) }},
		{"follow_peak", func(e *anim.Engine) { e.FollowSignalFloatingPeak(bank.level(), 1200, 25, 0, 1023, 3, 50) }},
	}
}

func run(ctx context.Context, eng *anim.Engine, bar *meter.Meter, acts []act, events <-chan inputEvent, fps, hold int) {
	hideCursor()
	defer showCursor()

	start := time.Now()
	holdMs := int64(hold) * 1000

	idx := 0
	actStart := int64(0)
	actFault := false
	acts[idx].start(eng)

	next := func(now int64) {
		idx = (idx + 1) % len(acts)
		actStart = now
		actFault = false
		acts[idx].start(eng)
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Print("\r\x1b[2K")
			return
		case evt, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			now := time.Since(start).Milliseconds()
			switch evt {
			case inputEventQuit:
				fmt.Print("\r\x1b[2K")
				return
			case inputEventNext:
				next(now)
			case inputEventPause:
				if eng.IsPaused() {
					eng.Resume()
				} else {
					eng.Pause()
				}
			case inputEventDir:
				eng.ToggleDir()
			case inputEventLogic:
				eng.ToggleLogic()
			case inputEventLoop:
				if eng.IsLoopEnabled() {
					eng.NoLoop()
				} else {
					eng.Loop()
				}
			case inputEventBlocks:
				if eng.IsBlockEmissionEnabled() {
					eng.StopBlockEmission()
				} else {
					eng.ResumeBlockEmission()
				}
			}
		case <-ticker.C:
			now := time.Since(start).Milliseconds()
			if now-actStart >= holdMs {
				next(now)
			}
			running := eng.Update(now)
			if !running && !eng.IsPaused() {
				next(now)
			}
			if err := eng.Err(); err != nil && !actFault {
				actFault = true
				log.Warn().Err(err).Str("animation", acts[idx].name).Msg("animation fault")
			}
			drawFrame(bar, eng, acts[idx].name)
		}
	}
}

func drawFrame(bar *meter.Meter, eng *anim.Engine, name string) {
	var b strings.Builder
	fmt.Fprintf(&b, "%-14s [", name)
	for i := 0; i < bar.Count(); i++ {
		if bar.PixelState(i) {
			b.WriteRune('█')
		} else {
			b.WriteRune(' ')
		}
	}
	b.WriteByte(']')
	if eng.IsPaused() {
		b.WriteString(" paused")
	}
	if eng.IsDirectionReversed() {
		b.WriteString(" rev")
	}
	if eng.IsLogicInverted() {
		b.WriteString(" inv")
	}
	if !eng.IsLoopEnabled() {
		b.WriteString(" once")
	}
	if !eng.IsBlockEmissionEnabled() {
		b.WriteString(" drained")
	}
	fmt.Print("\r\x1b[2K" + fitWidth(b.String()))
}

// fitWidth truncates a frame line to the terminal width so a narrow
// window never wraps and scrolls the bar.
func fitWidth(line string) string {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return line
	}
	runes := []rune(line)
	if len(runes) <= w {
		return line
	}
	return string(runes[:w-1])
}

func startInputListener(ctx context.Context) <-chan inputEvent {
	if err := keyboard.Open(); err != nil {
		log.Warn().Err(err).Msg("keyboard input disabled")
		return nil
	}

	events := make(chan inputEvent, 16)

	closeOnce := &sync.Once{}
	go func() {
		<-ctx.Done()
		closeOnce.Do(func() {
			_ = keyboard.Close()
		})
	}()

	go func() {
		defer close(events)
		defer closeOnce.Do(func() {
			_ = keyboard.Close()
		})
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
			var evt inputEvent
			switch {
			case key == keyboard.KeyEsc || key == keyboard.KeyCtrlC:
				events <- inputEventQuit
				return
			case char == 'q' || char == 'Q':
				events <- inputEventQuit
				return
			case key == keyboard.KeySpace:
				evt = inputEventPause
			case char == 'd' || char == 'D':
				evt = inputEventDir
			case char == 'i' || char == 'I':
				evt = inputEventLogic
			case char == 'l' || char == 'L':
				evt = inputEventLoop
			case char == 'b' || char == 'B':
				evt = inputEventBlocks
			case char == 'n' || char == 'N':
				evt = inputEventNext
			default:
				continue
			}
			select {
			case events <- evt:
			default:
			}
		}
	}()
	return events
}

// signalBank synthesizes slowly drifting readings in the 0..1023 range
// so the follower animations have something to chase.
type signalBank struct {
	rng   *rand.Rand
	start time.Time
}

func newSignalBank(seed int64) *signalBank {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &signalBank{
		rng:   rand.New(rand.NewSource(seed)),
		start: time.Now(),
	}
}

func (s *signalBank) bass() anim.Signal {
	return func() uint16 {
		t := time.Since(s.start).Seconds()
		return toReading(0.5 + 0.5*math.Sin(t*0.7) + s.rng.Float64()*0.1)
	}
}

func (s *signalBank) treble() anim.Signal {
	return func() uint16 {
		t := time.Since(s.start).Seconds()
		return toReading(0.3 + 0.3*math.Sin(t*2.1+1.0) + s.rng.Float64()*0.1)
	}
}

func (s *signalBank) level() anim.Signal {
	return func() uint16 {
		t := time.Since(s.start).Seconds()
		return toReading(0.4 + 0.4*math.Sin(t*1.2+0.5) + s.rng.Float64()*0.1)
	}
}

func toReading(v float64) uint16 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint16(v * 1023)
}

func hideCursor() {
	fmt.Print("\x1b[?25l")
}

func showCursor() {
	fmt.Print("\x1b[?25h")
}
