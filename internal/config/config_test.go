package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
driver: console
scroll:
  period: 80ms
brightness:
  mode: gesture
  gesture:
    step: 0.2
text:
  preset: " HI"
`), 0o644))

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "console", c.Driver)
	assert.Equal(t, 80*time.Millisecond, c.Scroll.Period)
	assert.Equal(t, 2, c.Scroll.Spacing, "untouched fields keep defaults")
	assert.Equal(t, "gesture", c.Brightness.Mode)
	assert.Equal(t, 0.2, c.Brightness.Gesture.Step)
	assert.Equal(t, time.Second, c.Brightness.Gesture.Timeout)
	assert.Equal(t, " HI", c.Text.Preset)
	assert.Equal(t, 127, c.Text.Capacity)
	assert.NoError(t, c.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	want := Default()
	want.Brightness.Thermal.Min = 0.2
	want.Serial.Port = "/dev/ttyACM0"
	require.NoError(t, Save(p, want))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("driver: [oops"), 0o644))
	_, err = Load(p)
	assert.Error(t, err)
}

func TestValidateCatches(t *testing.T) {
	cases := map[string]func(c *Config){
		"driver":    func(c *Config) { c.Driver = "laser" },
		"mode":      func(c *Config) { c.Mode = "party" },
		"rows":      func(c *Config) { c.GPIO.Rows = c.GPIO.Rows[:3] },
		"dup pin":   func(c *Config) { c.GPIO.Cols[0] = c.GPIO.Rows[0] },
		"buttons":   func(c *Config) { c.GPIO.ButtonB = c.GPIO.ButtonA },
		"cycles":    func(c *Config) { c.Refresh.CyclesPerPoll = 0 },
		"period":    func(c *Config) { c.Scroll.Period = 0 },
		"bounds":    func(c *Config) { c.Brightness.Thermal.Min = 2 },
		"pads":      func(c *Config) { c.Brightness.Mode = "gesture"; c.Sensor.Pads = []int{0} },
		"source":    func(c *Config) { c.Sensor.Source = "moon" },
		"capacity":  func(c *Config) { c.Text.Capacity = 1 },
		"video fps": func(c *Config) { c.Video.FPS = 0 },
		"color":     func(c *Config) { c.NRZ.Color[1] = 300 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
