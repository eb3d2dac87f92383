// Package audio captures an input stream and condenses it into band
// levels the signal-follower animations can read.
package audio

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const defaultBufferSize = 4096

// Config controls how a Capture is opened.
type Config struct {
	// DeviceName selects an input by case-insensitive substring match.
	// Empty picks the default input.
	DeviceName string
	BufferSize int
	Channels   int
}

// Capture wraps a PortAudio input stream behind a ring buffer of the
// newest samples, mixed down to mono.
type Capture struct {
	stream     *portaudio.Stream
	sampleRate float64
	channels   int
	device     *portaudio.DeviceInfo

	mu     sync.RWMutex
	buffer []float32
	index  int
}

// NewCapture opens and starts an input stream.
func NewCapture(cfg Config) (*Capture, error) {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}

	device, err := findDevice(cfg.DeviceName)
	if err != nil {
		return nil, err
	}

	c := &Capture{
		sampleRate: device.DefaultSampleRate,
		channels:   cfg.Channels,
		device:     device,
		buffer:     make([]float32, cfg.BufferSize),
	}

	framesPerBuffer := len(c.buffer) / cfg.Channels
	if framesPerBuffer < 64 {
		framesPerBuffer = portaudio.FramesPerBufferUnspecified
	}

	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: cfg.Channels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      c.sampleRate,
		FramesPerBuffer: framesPerBuffer,
	}, c.process)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	c.stream = stream

	if err := c.stream.Start(); err != nil {
		_ = c.stream.Close()
		return nil, fmt.Errorf("start stream: %w", err)
	}
	return c, nil
}

// Close stops and closes the stream.
func (c *Capture) Close() error {
	if c.stream == nil {
		return nil
	}
	if err := c.stream.Stop(); err != nil && !isStoppedStreamErr(err) {
		return err
	}
	return c.stream.Close()
}

// SampleRate returns the stream sample rate.
func (c *Capture) SampleRate() float64 { return c.sampleRate }

// Device returns the input device backing the stream.
func (c *Capture) Device() *portaudio.DeviceInfo { return c.device }

// Samples copies the newest samples out of the ring buffer, oldest
// first.
func (c *Capture) Samples() []float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cp := make([]float32, len(c.buffer))
	copy(cp, c.buffer[c.index:])
	copy(cp[len(c.buffer)-c.index:], c.buffer[:c.index])
	return cp
}

func (c *Capture) process(in []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channels > 1 {
		mono := make([]float32, len(in)/c.channels)
		for i := range mono {
			sum := float32(0)
			base := i * c.channels
			for ch := 0; ch < c.channels; ch++ {
				sum += in[base+ch]
			}
			mono[i] = sum / float32(c.channels)
		}
		c.mixIntoBuffer(mono)
		return
	}
	c.mixIntoBuffer(in)
}

func (c *Capture) mixIntoBuffer(in []float32) {
	if len(in) == 0 {
		return
	}
	if len(in) >= len(c.buffer) {
		copy(c.buffer, in[len(in)-len(c.buffer):])
		c.index = 0
		return
	}
	if c.index+len(in) <= len(c.buffer) {
		copy(c.buffer[c.index:], in)
		c.index += len(in)
		if c.index == len(c.buffer) {
			c.index = 0
		}
		return
	}
	remaining := len(c.buffer) - c.index
	copy(c.buffer[c.index:], in[:remaining])
	copy(c.buffer, in[remaining:])
	c.index = len(in) - remaining
}

// ListDevices returns every device PortAudio reports.
func ListDevices() ([]*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list audio devices: %w", err)
	}
	return devices, nil
}

func findDevice(name string) (*portaudio.DeviceInfo, error) {
	if name != "" {
		devices, err := ListDevices()
		if err != nil {
			return nil, err
		}
		name = strings.ToLower(name)
		for _, d := range devices {
			if d.MaxInputChannels == 0 {
				continue
			}
			if strings.Contains(strings.ToLower(d.Name), name) {
				return d, nil
			}
		}
		return nil, fmt.Errorf("audio device %q not found", name)
	}

	if dev, err := portaudio.DefaultInputDevice(); err == nil && dev != nil && dev.MaxInputChannels > 0 {
		return dev, nil
	}
	if host, err := portaudio.DefaultHostApi(); err == nil && host != nil {
		if d := host.DefaultInputDevice; d != nil && d.MaxInputChannels > 0 {
			return d, nil
		}
	}
	return nil, fmt.Errorf("no suitable audio input device found")
}

// isStoppedStreamErr reports whether err stems from stopping an already
// stopped stream.
func isStoppedStreamErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "PaErrorCode -9986")
}
