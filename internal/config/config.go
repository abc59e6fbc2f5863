package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/dotbadge/internal/brightness"
	"github.com/coreman2200/dotbadge/internal/model"
)

type GPIO struct {
	Backend string `yaml:"backend"` // "periph" | "cdev" | "sim"
	Chip    string `yaml:"chip"`    // cdev only, e.g. gpiochip0
	Rows    []int  `yaml:"rows"`    // BCM numbers, row slot 0 first
	Cols    []int  `yaml:"cols"`    // BCM numbers, top line first
	ButtonA int    `yaml:"button_a"`
	ButtonB int    `yaml:"button_b"`
}

type Refresh struct {
	RowSlot       time.Duration `yaml:"row_slot"`
	CyclesPerPoll int           `yaml:"cycles_per_poll"`
}

type Scroll struct {
	Period  time.Duration `yaml:"period"`
	Spacing int           `yaml:"spacing"`
}

type Brightness struct {
	Mode    string                   `yaml:"mode"` // "thermal" | "gesture" | "fixed"
	Fixed   float64                  `yaml:"fixed"`
	Thermal brightness.ThermalConfig `yaml:"thermal"`
	Gesture brightness.GestureConfig `yaml:"gesture"`
}

type Sensor struct {
	Source      string `yaml:"source"` // "ads1115" | "thermal_zone" | "sim"
	I2CBus      string `yaml:"i2c_bus"`
	Address     uint16 `yaml:"address"`
	Channel     int    `yaml:"channel"` // thermal input
	Pads        []int  `yaml:"pads"`    // gesture inputs, pad 0 first
	ThermalZone string `yaml:"thermal_zone"`
	SimRaw      int32  `yaml:"sim_raw"`
}

type Text struct {
	User     string `yaml:"user"`
	Preset   string `yaml:"preset"`
	Easter   string `yaml:"easter"`
	Capacity int    `yaml:"capacity"`
}

type Video struct {
	Enabled bool    `yaml:"enabled"`
	FPS     float64 `yaml:"fps"`
}

type Serial struct {
	Port  string `yaml:"port"` // empty reads stdin
	Baud  int    `yaml:"baud"`
	Stdin bool   `yaml:"stdin"`
}

type Store struct {
	Path string `yaml:"path"`
}

type Preview struct {
	Addr  string        `yaml:"addr"` // empty disables
	Every time.Duration `yaml:"every"`
}

type NRZ struct {
	SPI        string `yaml:"spi"` // periph spireg name, empty picks the first port
	FreqKHz    int    `yaml:"freq_khz"`
	Serpentine bool   `yaml:"serpentine"`
	Color      [3]int `yaml:"color,flow"`
}

type Console struct {
	Every time.Duration `yaml:"every"`
}

type Config struct {
	Driver     string     `yaml:"driver"` // "multiplex" | "nrz" | "console" | "sim"
	Mode       string     `yaml:"mode"`   // initial display mode
	GPIO       GPIO       `yaml:"gpio"`
	Refresh    Refresh    `yaml:"refresh"`
	Scroll     Scroll     `yaml:"scroll"`
	Brightness Brightness `yaml:"brightness"`
	Sensor     Sensor     `yaml:"sensor"`
	Text       Text       `yaml:"text"`
	Video      Video      `yaml:"video"`
	Serial     Serial     `yaml:"serial"`
	Store      Store      `yaml:"store"`
	Preview    Preview    `yaml:"preview"`
	NRZ        NRZ        `yaml:"nrz"`
	Console    Console    `yaml:"console"`
	LogLevel   string     `yaml:"log_level"`
	Banner     string     `yaml:"banner"`
}

const defaultBanner = `------------------------------------------
 dotbadge
------------------------------------------
 Send a new line over serial to change the
 scrolling text. Every printable ASCII
 character is supported.
 Try both buttons at once.
------------------------------------------`

// Default returns a configuration for the reference board.
func Default() *Config {
	return &Config{
		Driver: "multiplex",
		Mode:   model.User.String(),
		GPIO: GPIO{
			Backend: "periph",
			Chip:    "gpiochip0",
			Rows:    []int{4, 17, 27, 22, 10, 9, 11, 5, 6, 13, 19, 26, 12, 16, 20},
			Cols:    []int{21, 18, 23, 24, 25},
			ButtonA: 7,
			ButtonB: 8,
		},
		Refresh: Refresh{RowSlot: 100 * time.Microsecond, CyclesPerPoll: 100},
		Scroll:  Scroll{Period: 100 * time.Millisecond, Spacing: 2},
		Brightness: Brightness{
			Mode:    "thermal",
			Fixed:   0.5,
			Thermal: brightness.DefaultThermalConfig(),
			Gesture: brightness.DefaultGestureConfig(),
		},
		Sensor: Sensor{
			Source:      "ads1115",
			I2CBus:      "",
			Address:     0x48,
			Channel:     0,
			Pads:        []int{0, 1, 2, 3},
			ThermalZone: "/sys/class/thermal/thermal_zone0/temp",
			SimRaw:      2000,
		},
		Text: Text{
			User:     " Send text over serial (115200 baud)",
			Preset:   " HELLO FROM DOTBADGE",
			Easter:   " YOU FOUND THE SECRET",
			Capacity: 127,
		},
		Video:    Video{Enabled: true, FPS: 6},
		Serial:   Serial{Baud: 115200, Stdin: true},
		Store:    Store{Path: "dotbadge.page"},
		Preview:  Preview{Every: 50 * time.Millisecond},
		NRZ:      NRZ{FreqKHz: 2500, Serpentine: true, Color: [3]int{255, 255, 255}},
		Console:  Console{Every: 100 * time.Millisecond},
		LogLevel: "info",
		Banner:   defaultBanner,
	}
}

// Load decodes path over the defaults, so a file need only name what it
// changes.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Validate reports every problem found.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	switch c.Driver {
	case "multiplex", "nrz", "console", "sim":
	default:
		add("driver %q: want multiplex, nrz, console or sim", c.Driver)
	}
	if _, err := model.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	switch c.GPIO.Backend {
	case "periph", "cdev", "sim":
	default:
		add("gpio.backend %q: want periph, cdev or sim", c.GPIO.Backend)
	}
	if c.Driver == "multiplex" {
		if len(c.GPIO.Rows) != model.Rows {
			add("gpio.rows: need %d pins, got %d", model.Rows, len(c.GPIO.Rows))
		}
		if len(c.GPIO.Cols) != model.Cols {
			add("gpio.cols: need %d pins, got %d", model.Cols, len(c.GPIO.Cols))
		}
		seen := map[int]bool{c.GPIO.ButtonA: true}
		if c.GPIO.ButtonB == c.GPIO.ButtonA {
			add("gpio: buttons share pin %d", c.GPIO.ButtonA)
		}
		seen[c.GPIO.ButtonB] = true
		for _, p := range append(append([]int{}, c.GPIO.Rows...), c.GPIO.Cols...) {
			if seen[p] {
				add("gpio: pin %d used twice", p)
			}
			seen[p] = true
		}
	}
	if c.Refresh.CyclesPerPoll < 1 {
		add("refresh.cycles_per_poll must be at least 1")
	}
	if c.Refresh.RowSlot <= 0 {
		add("refresh.row_slot must be positive")
	}
	if c.Scroll.Period <= 0 {
		add("scroll.period must be positive")
	}
	if c.Scroll.Spacing < 0 {
		add("scroll.spacing must not be negative")
	}

	switch c.Brightness.Mode {
	case "thermal":
		if err := c.Brightness.Thermal.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("brightness.thermal: %w", err))
		}
	case "gesture":
		if err := c.Brightness.Gesture.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("brightness.gesture: %w", err))
		}
		if len(c.Sensor.Pads) != brightness.Channels {
			add("sensor.pads: need %d channels, got %d", brightness.Channels, len(c.Sensor.Pads))
		}
	case "fixed":
		if c.Brightness.Fixed < 0 || c.Brightness.Fixed > 1 {
			add("brightness.fixed must be within [0, 1]")
		}
	default:
		add("brightness.mode %q: want thermal, gesture or fixed", c.Brightness.Mode)
	}
	switch c.Sensor.Source {
	case "ads1115", "thermal_zone", "sim":
	default:
		add("sensor.source %q: want ads1115, thermal_zone or sim", c.Sensor.Source)
	}

	if c.Text.Capacity < 2 {
		add("text.capacity must be at least 2")
	}
	if c.Video.Enabled && c.Video.FPS <= 0 {
		add("video.fps must be positive")
	}
	if c.NRZ.FreqKHz < 0 {
		add("nrz.freq_khz must not be negative")
	}
	for _, v := range c.NRZ.Color {
		if v < 0 || v > 255 {
			add("nrz.color components must be within [0, 255]")
			break
		}
	}
	return errors.Join(errs...)
}
