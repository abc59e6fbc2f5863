package hw

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/coreman2200/dotbadge/internal/brightness"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// Source selects where analog readings come from.
type Source string

const (
	ADS1115     Source = "ads1115"
	ThermalZone Source = "thermal_zone"
	SimSource   Source = "sim"
)

// DefaultThermalZone is the SoC temperature on Raspberry Pi OS.
const DefaultThermalZone = "/sys/class/thermal/thermal_zone0/temp"

// ADC is an ADS1115 with one opened pin per requested channel.
type ADC struct {
	bus  i2c.BusCloser
	dev  *ads1x15.Dev
	pins []ads1x15.PinADC
}

// OpenADS1115 opens the converter at addr on the named I²C bus ("" picks
// the first bus) and prepares channels, single ended, 5 V range.
func OpenADS1115(bus string, addr uint16, channels []int) (*ADC, error) {
	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c %q: %w", bus, err)
	}
	opts := ads1x15.DefaultOpts
	if addr != 0 {
		opts.I2cAddress = addr
	}
	d, err := ads1x15.NewADS1115(b, &opts)
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("ads1115: %w", err)
	}
	a := &ADC{bus: b, dev: d}
	for _, c := range channels {
		if c < 0 || c > 3 {
			_ = a.Close()
			return nil, fmt.Errorf("ads1115: channel %d out of range", c)
		}
		p, err := d.PinForChannel(ads1x15.Channel(c), 5*physic.Volt, 250*physic.Hertz, ads1x15.SaveEnergy)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("ads1115 channel %d: %w", c, err)
		}
		a.pins = append(a.pins, p)
	}
	return a, nil
}

// Sampler returns the i-th requested channel.
func (a *ADC) Sampler(i int) brightness.Sampler { return a.pins[i] }

func (a *ADC) Close() error {
	var errs []error
	for _, p := range a.pins {
		errs = append(errs, p.Halt())
	}
	a.pins = nil
	errs = append(errs, a.dev.Halt(), a.bus.Close())
	return errors.Join(errs...)
}

// Zone reads a sysfs thermal zone. Raw is in half degrees Celsius so a
// small warm-up registers as a few counts.
type Zone struct {
	Path string
}

func (z Zone) Read() (analog.Sample, error) {
	b, err := os.ReadFile(z.Path)
	if err != nil {
		return analog.Sample{}, fmt.Errorf("thermal zone: %w", err)
	}
	milli, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 32)
	if err != nil {
		return analog.Sample{}, fmt.Errorf("thermal zone %s: %w", z.Path, err)
	}
	return analog.Sample{Raw: int32(milli / 500)}, nil
}

// Constant always reads Raw.
type Constant struct {
	Raw int32
}

func (c Constant) Read() (analog.Sample, error) {
	return analog.Sample{Raw: c.Raw}, nil
}
