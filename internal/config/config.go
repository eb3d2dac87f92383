// Package config loads and saves the bar meter configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one custom wiring table row.
type Entry struct {
	Dev int `yaml:"dev"`
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// Layout describes how the bar sits on the driver chain.
type Layout struct {
	Mode      string  `yaml:"mode"` // "preset" | "matrix" | "linear" | "table"
	Preset    string  `yaml:"preset,omitempty"`
	Device    int     `yaml:"device"`
	Rows      int     `yaml:"rows,omitempty"`
	Cols      int     `yaml:"cols,omitempty"`
	Segments  int     `yaml:"segments,omitempty"`
	Direction string  `yaml:"direction"` // "forward" | "reverse"
	RowOffset int     `yaml:"row_offset,omitempty"`
	ColOffset int     `yaml:"col_offset,omitempty"`
	SegOffset int     `yaml:"seg_offset,omitempty"`
	Table     []Entry `yaml:"table,omitempty"`
}

type SPI struct {
	Dev     string `yaml:"dev"` // e.g. /dev/spidev0.0, empty for first port
	Devices int    `yaml:"devices"`
}

type I2C struct {
	Dev     string `yaml:"dev"` // e.g. /dev/i2c-1, empty for first bus
	Addr    uint16 `yaml:"addr"`
	Devices int    `yaml:"devices"`
}

type Monitor struct {
	Addr string `yaml:"addr,omitempty"` // e.g. :8137, empty disables
}

type Config struct {
	Driver     string `yaml:"driver"` // "max72xx" | "ht16k33" | "strip" | "fake"
	Brightness int    `yaml:"brightness"`
	FPS        int    `yaml:"fps"`

	Layout  Layout  `yaml:"layout"`
	SPI     SPI     `yaml:"spi,omitempty"`
	I2C     I2C     `yaml:"i2c,omitempty"`
	Monitor Monitor `yaml:"monitor,omitempty"`
}

// Default is the shipped configuration: one MAX72xx on the first SPI
// port carrying a 28 segment common-cathode bar module.
func Default() *Config {
	return &Config{
		Driver:     "max72xx",
		Brightness: 8,
		FPS:        50,
		Layout: Layout{
			Mode:      "preset",
			Preset:    "BL28SK",
			Direction: "forward",
		},
		SPI: SPI{Devices: 1},
		I2C: I2C{Addr: 0x70, Devices: 1},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
