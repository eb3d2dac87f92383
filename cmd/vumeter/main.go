// Command vumeter runs the bar as a live audio level meter. PortAudio
// captures the default input, the band levels feed the signal follower
// animations, and the bar renders as an overwritten line of block
// characters in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/example/barmeter/anim"
	"github.com/example/barmeter/driver/fake"
	"github.com/example/barmeter/internal/audio"
	"github.com/example/barmeter/layout"
	"github.com/example/barmeter/meter"
)

func main() {
	var (
		deviceName = flag.String("audio-device", "", "PortAudio input device name (substring match)")
		listDevs   = flag.Bool("list-audio-devices", false, "list audio input devices and exit")
		segments   = flag.Int("segments", 28, "number of bar segments")
		fps        = flag.Int("fps", 50, "frames per second")
		mode       = flag.String("mode", "dual", "meter mode: dual | level | pointer | peak")
		bufferSize = flag.Int("buffer-size", 4096, "capture ring size in samples")
		smoothing  = flag.Int("smoothing", 3, "follower smoothing strength 0..6")
		peakHold   = flag.Int64("peak-hold", 1200, "peak marker hold time in ms")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *segments < 1 {
		log.Fatal().Int("segments", *segments).Msg("segment count must be positive")
	}
	if *fps <= 0 {
		*fps = 50
	}

	if err := audio.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("portaudio init failed")
	}
	defer audio.Terminate()

	if *listDevs {
		devices, err := audio.ListDevices()
		if err != nil {
			log.Fatal().Err(err).Msg("list devices failed")
		}
		for _, dev := range devices {
			if dev.MaxInputChannels == 0 {
				continue
			}
			fmt.Printf("- %s [%s] inputs:%d sample:%.0f Hz\n",
				dev.Name, dev.HostApi.Name, dev.MaxInputChannels, dev.DefaultSampleRate)
		}
		return
	}

	capture, err := audio.NewCapture(audio.Config{
		DeviceName: *deviceName,
		BufferSize: *bufferSize,
		Channels:   2,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("audio capture failed")
	}
	defer capture.Close()
	if dev := capture.Device(); dev != nil {
		log.Info().Str("device", dev.Name).Float64("sample_rate", capture.SampleRate()).Msg("capturing")
	}

	levels := audio.NewLevels(capture)

	drv := fake.New(1, 1, *segments)
	bar := meter.New(drv, layout.NewLinear(drv, 0, *segments, layout.Forward))

	eng := anim.New(bar).Loop()
	startMode(eng, levels, *mode, *smoothing, *peakHold)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bass, mid, treble := levels.Bass(), levels.Mid(), levels.Treble()

	hideCursor()
	defer showCursor()

	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Print("\r\x1b[2K")
			return
		case <-ticker.C:
			levels.Refresh()
			eng.Update(-1)
			drawFrame(bar, bass(), mid(), treble())
		}
	}
}

// startMode arms the follower animation for the chosen meter shape.
func startMode(eng *anim.Engine, levels *audio.Levels, mode string, smoothing int, peakHold int64) {
	switch mode {
	case "level":
		eng.FollowSignalSmooth(levels.Overall(), 25, 0, 1023, smoothing, 50)
	case "pointer":
		eng.FollowSignalPointer(levels.Overall(), 25, 0, 1023, smoothing, 50)
	case "peak":
		eng.FollowSignalFloatingPeak(levels.Overall(), peakHold, 25, 0, 1023, smoothing, 50)
	case "dual":
		eng.FollowDualFromCenter(levels.Bass(), 25, levels.Treble(), 0, 1023, smoothing, 50)
	default:
		log.Warn().Str("mode", mode).Msg("unknown mode; using dual")
		eng.FollowDualFromCenter(levels.Bass(), 25, levels.Treble(), 0, 1023, smoothing, 50)
	}
}

func drawFrame(bar *meter.Meter, bass, mid, treble uint16) {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < bar.Count(); i++ {
		if bar.PixelState(i) {
			b.WriteRune('█')
		} else {
			b.WriteRune(' ')
		}
	}
	fmt.Fprintf(&b, "] bass %4d mid %4d treble %4d", bass, mid, treble)
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

func hideCursor() {
	fmt.Print("\x1b[?25l")
}

func showCursor() {
	fmt.Print("\x1b[?25h")
}
