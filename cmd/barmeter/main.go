// Command barmeter runs the animation playlist on bar display hardware.
// Driver, layout and frame rate come from barmeter.yaml with flag
// overrides, and an optional websocket monitor streams frames and takes
// control messages while the show runs. Hardware that fails to open
// falls back to an in-memory driver so the process still comes up on a
// bench without the bus wired.
package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/example/barmeter/anim"
	"github.com/example/barmeter/driver/fake"
	"github.com/example/barmeter/driver/ht16k33"
	"github.com/example/barmeter/driver/max72xx"
	"github.com/example/barmeter/driver/strip"
	"github.com/example/barmeter/internal/config"
	"github.com/example/barmeter/internal/diag"
	"github.com/example/barmeter/internal/selftest"
	"github.com/example/barmeter/internal/ws"
	"github.com/example/barmeter/layout"
	"github.com/example/barmeter/led"
	"github.com/example/barmeter/meter"
)

// act names one playlist entry and how to start it.
type act struct {
	name  string
	start func(e *anim.Engine)
}

func playlist() []act {
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
	}
}

func main() {
	var (
		configPath = flag.String("config", "barmeter.yaml", "path to barmeter.yaml")
		driver     = flag.String("driver", "", "override driver: max72xx | ht16k33 | strip | fake")
		addr       = flag.String("addr", "", "monitor listen address, empty disables")
		fps        = flag.Int("fps", 0, "override frames per second")
		brightness = flag.Int("brightness", -1, "override brightness 0..15")
		hold       = flag.Int("hold", 6, "seconds before the playlist advances")
		check      = flag.String("check", "", "wiring check before the show: index_sweep | all_on | alternate")
		dumpMap    = flag.Bool("dump-mapping", false, "print the segment mapping and exit")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults")
	} else {
		cfg = c
	}
	if *driver != "" {
		cfg.Driver = *driver
	}
	if *addr != "" {
		cfg.Monitor.Addr = *addr
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *brightness >= 0 {
		cfg.Brightness = *brightness
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 50
	}
	if *hold < 1 {
		*hold = 1
	}

	if _, err := host.Init(); err != nil {
		log.Fatal().Err(err).Msg("host init failed")
	}

	drv := openDriver(cfg)
	bar := meter.New(drv, buildLayout(cfg, drv))
	setBright(drv, cfg.Brightness)
	log.Info().Str("driver", cfg.Driver).Int("segments", bar.Count()).Int("fps", cfg.FPS).Msg("bar up")

	if *dumpMap {
		if err := bar.WriteMapping(os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("mapping dump failed")
		}
		return
	}

	eng := anim.New(bar).Loop()
	acts := playlist()

	var checkRun *selftest.Runner
	if *check != "" {
		kind := selftest.Kind(*check)
		if !knownCheck(kind) {
			log.Fatal().Str("check", *check).Msg("unknown wiring check")
		}
		checkRun = selftest.NewRunner(selftest.Plan{Kind: kind})
	}

	epoch := time.Now()
	nowMs := func() int64 { return time.Since(epoch).Milliseconds() }
	holdMs := int64(*hold) * 1000

	idx := 0
	actStart := int64(0)
	actFault := false
	startAct := func(i int) {
		idx = i
		actStart = nowMs()
		actFault = false
		acts[idx].start(eng)
	}

	// Control traffic lands here and runs on the render goroutine; the
	// engine is not safe to touch from the websocket handlers.
	cmds := make(chan func(), 16)
	post := func(fn func()) {
		select {
		case cmds <- fn:
		default:
		}
	}

	var state *ws.State
	var srv *http.Server
	if cfg.Monitor.Addr != "" {
		hooks := ws.Hooks{
			Pause: func(on bool) {
				post(func() {
					if on {
						eng.Pause()
					} else {
						eng.Resume()
					}
				})
			},
			Loop: func(on bool) {
				post(func() {
					if on {
						eng.Loop()
					} else {
						eng.NoLoop()
					}
				})
			},
			ReverseDir:  func() { post(func() { eng.ToggleDir() }) },
			InvertLogic: func() { post(func() { eng.ToggleLogic() }) },
			Start: func(name string) bool {
				i := actIndex(acts, name)
				if i < 0 {
					return false
				}
				post(func() { startAct(i) })
				return true
			},
			RunCheck: func(name string) bool {
				kind := selftest.Kind(name)
				if !knownCheck(kind) {
					return false
				}
				post(func() { checkRun = selftest.NewRunner(selftest.Plan{Kind: kind}) })
				return true
			},
			Brightness: func(level int) { post(func() { setBright(drv, level) }) },
		}
		state = ws.NewState(cfg.Driver, bar.Count(), cfg.FPS, actNames(acts), hooks)

		mux := http.NewServeMux()
		state.Routes(mux)
		srv = &http.Server{
			Addr:         cfg.Monitor.Addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Info().Str("addr", cfg.Monitor.Addr).Msg("monitor listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("monitor server crashed")
			}
		}()
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	if checkRun == nil {
		startAct(0)
	}
	showFault := false

	for {
		select {
		case s := <-ch:
			log.Info().Str("signal", s.String()).Msg("shutting down")
			if srv != nil {
				_ = srv.Close()
			}
			haltDriver(drv)
			return

		case fn := <-cmds:
			fn()

		case <-ticker.C:
			if checkRun != nil {
				if !checkRun.Step(bar) {
					checkRun = nil
					if state != nil {
						state.PushDiag(diag.New(diag.Info, "TEST.DONE", "wiring check finished"))
					}
					startAct(idx)
				}
			} else {
				now := nowMs()
				if now-actStart >= holdMs {
					startAct((idx + 1) % len(acts))
				}
				running := eng.Update(now)
				if !running && !eng.IsPaused() {
					startAct((idx + 1) % len(acts))
				}
				if err := eng.Err(); err != nil && !actFault {
					actFault = true
					log.Warn().Err(err).Str("animation", acts[idx].name).Msg("animation fault")
					if state != nil {
						state.PushDiag(diag.New(diag.Warn, "ANIM.FAULT", err.Error()))
					}
				}
			}
			if err := bar.Show(); err != nil {
				if !showFault {
					showFault = true
					log.Error().Err(err).Msg("driver show failed")
				}
			} else {
				showFault = false
			}
			if state != nil {
				state.PublishFrame(bar)
			}
		}
	}
}

// openDriver opens the configured hardware, falling back to an
// in-memory driver of the same geometry when the bus is missing.
func openDriver(cfg *config.Config) led.Driver {
	switch cfg.Driver {
	case "max72xx":
		p, err := spireg.Open(cfg.SPI.Dev)
		if err != nil {
			log.Warn().Err(err).Str("dev", cfg.SPI.Dev).Msg("SPI open failed; using the in-memory driver")
			return fake.New(cfg.SPI.Devices, 8, 8)
		}
		d, err := max72xx.New(p, cfg.SPI.Devices)
		if err != nil {
			log.Warn().Err(err).Msg("max72xx init failed; using the in-memory driver")
			return fake.New(cfg.SPI.Devices, 8, 8)
		}
		return d

	case "ht16k33":
		b, err := i2creg.Open(cfg.I2C.Dev)
		if err != nil {
			log.Warn().Err(err).Str("dev", cfg.I2C.Dev).Msg("I2C open failed; using the in-memory driver")
			return fake.New(cfg.I2C.Devices, 8, 16)
		}
		d, err := ht16k33.New(b, cfg.I2C.Addr, cfg.I2C.Devices)
		if err != nil {
			log.Warn().Err(err).Msg("ht16k33 init failed; using the in-memory driver")
			return fake.New(cfg.I2C.Devices, 8, 16)
		}
		return d

	case "strip":
		n := wantSegments(cfg)
		p, err := spireg.Open(cfg.SPI.Dev)
		if err != nil {
			log.Warn().Err(err).Msg("no SPI port; rendering the strip at the console")
			return strip.NewScreen(&strip.Opts{NumPixels: n})
		}
		d, err := strip.NewSPI(p, &strip.Opts{NumPixels: n})
		if err != nil {
			log.Warn().Err(err).Msg("strip init failed; rendering at the console")
			return strip.NewScreen(&strip.Opts{NumPixels: n})
		}
		return d

	case "fake":
		// Grid large enough for any layout mode to resolve.
		return fake.New(8, 8, 16)

	default:
		log.Warn().Str("driver", cfg.Driver).Msg("unknown driver; using the in-memory driver")
		return fake.New(8, 8, 16)
	}
}

// wantSegments is the segment count the configured layout will produce,
// used to size drivers that have no fixed grid.
func wantSegments(cfg *config.Config) int {
	switch cfg.Layout.Mode {
	case "matrix":
		return cfg.Layout.Rows * cfg.Layout.Cols
	case "linear":
		return cfg.Layout.Segments
	case "table":
		return len(cfg.Layout.Table)
	}
	return 28
}

func buildLayout(cfg *config.Config, g layout.Geometry) *layout.Layout {
	dir := layout.Forward
	if cfg.Layout.Direction == "reverse" {
		dir = layout.Reverse
	}

	var l *layout.Layout
	switch cfg.Layout.Mode {
	case "matrix":
		l = layout.NewMatrix(g, cfg.Layout.Device, cfg.Layout.Rows, cfg.Layout.Cols, dir)
	case "linear":
		l = layout.NewLinear(g, cfg.Layout.Device, cfg.Layout.Segments, dir)
	case "table":
		t := make(layout.SliceTable, 0, len(cfg.Layout.Table))
		for _, e := range cfg.Layout.Table {
			t = append(t, [3]uint8{uint8(e.Dev), uint8(e.Row), uint8(e.Col)})
		}
		l = layout.NewTable(g, cfg.Layout.Device, t, dir)
	default:
		l = layout.NewPreset(g, cfg.Layout.Device, presetByName(cfg.Layout.Preset), dir)
	}

	if cfg.Layout.RowOffset != 0 || cfg.Layout.ColOffset != 0 {
		l.SetMatrixOffset(cfg.Layout.RowOffset, cfg.Layout.ColOffset)
	}
	if cfg.Layout.SegOffset != 0 {
		l.SetSegmentOffset(cfg.Layout.SegOffset)
	}
	return l
}

func presetByName(name string) layout.Preset {
	switch name {
	case "BL28SK":
		return layout.BL28SK
	case "BL28SA":
		return layout.BL28SA
	}
	return layout.PresetNone
}

func setBright(drv led.Driver, level int) {
	switch d := drv.(type) {
	case *max72xx.Dev:
		if err := d.SetIntensity(level); err != nil {
			log.Warn().Err(err).Msg("set intensity failed")
		}
	case *ht16k33.Dev:
		if err := d.SetBrightness(level); err != nil {
			log.Warn().Err(err).Msg("set brightness failed")
		}
	}
}

func haltDriver(drv led.Driver) {
	if h, ok := drv.(interface{ Halt() error }); ok {
		_ = h.Halt()
		return
	}
	drv.Clear()
	_ = drv.Show()
}

func knownCheck(kind selftest.Kind) bool {
	for _, k := range selftest.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

func actIndex(acts []act, name string) int {
	for i := range acts {
		if acts[i].name == name {
			return i
		}
	}
	return -1
}

func actNames(acts []act) []string {
	names := make([]string, len(acts))
	for i := range acts {
		names[i] = acts[i].name
	}
	return names
}
