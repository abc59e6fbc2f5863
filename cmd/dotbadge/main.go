package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/coreman2200/dotbadge/internal/badge"
	"github.com/coreman2200/dotbadge/internal/brightness"
	"github.com/coreman2200/dotbadge/internal/config"
	"github.com/coreman2200/dotbadge/internal/font"
	"github.com/coreman2200/dotbadge/internal/hw"
	"github.com/coreman2200/dotbadge/internal/input"
	"github.com/coreman2200/dotbadge/internal/led"
	"github.com/coreman2200/dotbadge/internal/model"
	"github.com/coreman2200/dotbadge/internal/selftest"
	"github.com/coreman2200/dotbadge/internal/sequence"
	"github.com/coreman2200/dotbadge/internal/store"
	"github.com/coreman2200/dotbadge/internal/ws"
)

func main() {
	// ---- Flags (explicitly set flags win over config.yaml) ----
	var (
		configPath  = flag.String("config", "config.yaml", "path to config.yaml")
		driver      = flag.String("driver", "multiplex", "driver: multiplex | nrz | console | sim")
		simOnly     = flag.Bool("sim", false, "force simulation (no hardware access)")
		selfTest    = flag.String("selftest", "", "run a test pattern first: row_sweep | column_sweep | pixel_sweep | all_on")
		logLevel    = flag.String("log-level", "info", "log level: debug | info | warn | error")
		addr        = flag.String("preview", "", "preview HTTP listen address, e.g. :8080")
		serialPort  = flag.String("serial", "", "serial port for text input; empty reads stdin")
		mode        = flag.String("mode", "user", "initial mode: user | preset | easter")
		writeConfig = flag.String("write-config", "", "write the default config to this path and exit")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *writeConfig != "" {
		if err := config.Save(*writeConfig, config.Default()); err != nil {
			log.Fatal().Err(err).Msg("write config")
		}
		log.Info().Str("path", *writeConfig).Msg("default config written")
		return
	}

	// ---- Load config.yaml (optional) ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults and flags")
		cfg = config.Default()
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "driver":
			cfg.Driver = *driver
		case "log-level":
			cfg.LogLevel = *logLevel
		case "preview":
			cfg.Preview.Addr = *addr
		case "serial":
			cfg.Serial.Port = *serialPort
		case "mode":
			cfg.Mode = *mode
		}
	})
	if *simOnly {
		cfg.Driver = "sim"
	}
	if cfg.Driver == "sim" {
		cfg.GPIO.Backend = string(hw.Sim)
		cfg.Sensor.Source = string(hw.SimSource)
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level; using info")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	initial, _ := model.ParseMode(cfg.Mode)

	// ---- Hardware ----
	if cfg.GPIO.Backend == string(hw.Periph) || cfg.Driver == "nrz" || cfg.Sensor.Source == string(hw.ADS1115) {
		if _, err := host.Init(); err != nil {
			log.Warn().Err(err).Msg("periph host init failed; falling back to SIM")
			cfg.Driver = "sim"
			cfg.GPIO.Backend = string(hw.Sim)
			cfg.Sensor.Source = string(hw.SimSource)
		}
	}
	bank, err := hw.NewBank(hw.Backend(cfg.GPIO.Backend), cfg.GPIO.Chip, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("gpio")
	}
	defer bank.Close()

	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	// ---- Driver selection: -sim overrides; otherwise -driver then config.driver ----
	var drv led.Driver
	layout := led.Layout{Serpentine: cfg.NRZ.Serpentine}
	console := func() led.Driver { return led.NewConsole(layout, cfg.Console.Every) }
	stepPause := time.Duration(0)

	switch cfg.Driver {
	case "multiplex":
		m, err := openMultiplex(bank, cfg)
		if err != nil {
			log.Warn().Err(err).Str("driver", "multiplex").Msg("matrix init failed; falling back to console")
			drv = console()
			stepPause = cfg.Console.Every
		} else {
			drv = m
		}

	case "nrz":
		port, err := spireg.Open(cfg.NRZ.SPI)
		if err == nil {
			closers = append(closers, port)
			c := cfg.NRZ.Color
			var n *led.NRZ
			n, err = led.NewNRZ(port, layout, led.RGB{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2])},
				physic.Frequency(cfg.NRZ.FreqKHz)*physic.KiloHertz)
			if err == nil {
				drv = n
			}
		}
		if err != nil {
			log.Warn().Err(err).Str("driver", "nrz").Str("spi", cfg.NRZ.SPI).Msg("SPI init failed; falling back to console")
			drv = console()
		}
		stepPause = cfg.Console.Every

	default:
		drv = console()
		stepPause = cfg.Console.Every
	}

	// ---- Preview ----
	var preview *ws.State
	var srv *http.Server
	if cfg.Preview.Addr != "" {
		preview = ws.NewState(cfg.Preview.Every, log.Logger)
		drv = led.Fanout{drv, preview}
		srv = &http.Server{
			Addr:         cfg.Preview.Addr,
			Handler:      withCORS(preview.Mux()),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
	}

	// ---- Inputs ----
	var buttons badge.Buttons
	if a, err := bank.Input(cfg.GPIO.ButtonA); err != nil {
		log.Warn().Err(err).Msg("button A unavailable; buttons disabled")
	} else if b, err := bank.Input(cfg.GPIO.ButtonB); err != nil {
		log.Warn().Err(err).Msg("button B unavailable; buttons disabled")
	} else {
		buttons = input.NewButtons(a, b)
	}

	var serial badge.Bytes
	switch {
	case cfg.Serial.Port != "":
		port, err := input.OpenSerial(cfg.Serial.Port, cfg.Serial.Baud)
		if err != nil {
			log.Warn().Err(err).Msg("serial unavailable; text input disabled")
			break
		}
		closers = append(closers, port)
		p := input.NewPoller(port, 4*cfg.Text.Capacity, log.Logger)
		defer p.Close()
		serial = p
	case cfg.Serial.Stdin:
		p := input.NewPoller(os.Stdin, 4*cfg.Text.Capacity, log.Logger)
		defer p.Close()
		serial = p
	}

	ctrl, err := openBrightness(cfg, &closers)
	if err != nil {
		log.Fatal().Err(err).Msg("brightness")
	}

	var st badge.Store
	if s, err := store.Open(cfg.Store.Path); err != nil {
		log.Warn().Err(err).Str("path", cfg.Store.Path).Msg("store unavailable; text will not persist")
	} else {
		st = s
	}

	var video *sequence.Program
	if cfg.Video.Enabled {
		video = &sequence.Program{Name: "easter", FPS: cfg.Video.FPS, Frames: font.Frames()}
	}

	// ---- App ----
	deps := badge.Deps{
		Driver:     drv,
		Brightness: ctrl,
		Buttons:    buttons,
		Serial:     serial,
		Store:      st,
		Console:    os.Stdout,
		Log:        log.Logger,
	}
	if preview != nil {
		deps.Diag = preview
		deps.OnMode = preview.SetMode
	}
	app, err := badge.New(badge.Options{
		Sources: badge.Sources{
			User:   cfg.Text.User,
			Preset: cfg.Text.Preset,
			Easter: cfg.Text.Easter,
		},
		Initial:       initial,
		Capacity:      cfg.Text.Capacity,
		Spacing:       cfg.Scroll.Spacing,
		ScrollPeriod:  cfg.Scroll.Period,
		CyclesPerPoll: cfg.Refresh.CyclesPerPoll,
		StepPause:     stepPause,
		Video:         video,
		Banner:        cfg.Banner,
	}, deps)
	if err != nil {
		log.Fatal().Err(err).Msg("badge")
	}
	if preview != nil {
		preview.SetControl(ws.Control{
			Text: func(s string) { app.Do(func() { app.SetUser(s) }) },
			Mode: func(m model.Mode) { app.Do(func() { app.Enter(m) }) },
			Test: func(kind string) {
				k, err := selftest.ParseKind(kind)
				if err != nil {
					log.Warn().Str("test", kind).Msg("unknown test name")
					return
				}
				app.Do(func() { app.RunTest(k) })
			},
		})
	}
	if *selfTest != "" {
		k, err := selftest.ParseKind(*selfTest)
		if err != nil {
			log.Fatal().Err(err).Msg("selftest")
		}
		app.RunTest(k)
	}

	// ---- Run loop & server ----
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	if srv != nil {
		go func() {
			log.Info().Str("addr", srv.Addr).Msg("preview server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("preview server stopped")
			}
		}()
	}
	log.Info().
		Str("driver", cfg.Driver).
		Str("gpio", cfg.GPIO.Backend).
		Str("sensor", cfg.Sensor.Source).
		Str("brightness", cfg.Brightness.Mode).
		Str("mode", initial.String()).
		Msg("badge running")

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-ch:
		log.Info().Str("signal", s.String()).Msg("shutting down")
	case err := <-done:
		log.Error().Err(err).Msg("loop exited")
		done <- err
	}
	cancel()
	if srv != nil {
		_ = srv.Close()
	}
	if err := <-done; err != nil {
		log.Warn().Err(err).Msg("driver close")
	}
}

func openMultiplex(bank *hw.Bank, cfg *config.Config) (*led.Multiplex, error) {
	rows, err := bank.Outputs(cfg.GPIO.Rows, gpio.High)
	if err != nil {
		return nil, err
	}
	cols, err := bank.Outputs(cfg.GPIO.Cols, gpio.Low)
	if err != nil {
		return nil, err
	}
	return led.NewMultiplex(pins(rows), pins(cols), cfg.Refresh.RowSlot, nil)
}

func pins(lines []hw.Line) []led.Pin {
	out := make([]led.Pin, len(lines))
	for i, l := range lines {
		out[i] = l
	}
	return out
}

func openBrightness(cfg *config.Config, closers *[]io.Closer) (brightness.Controller, error) {
	switch cfg.Brightness.Mode {
	case "fixed":
		return brightness.Fixed(cfg.Brightness.Fixed), nil
	case "gesture":
		var pads [brightness.Channels]brightness.Sampler
		samplers := openSamplers(cfg, cfg.Sensor.Pads, closers)
		copy(pads[:], samplers)
		return brightness.NewGesture(cfg.Brightness.Gesture, pads, log.Logger)
	}
	s := openSamplers(cfg, []int{cfg.Sensor.Channel}, closers)
	return brightness.NewThermal(cfg.Brightness.Thermal, s[0], log.Logger)
}

// openSamplers returns one sampler per channel, falling back to constant
// readings when the sensor cannot be opened.
func openSamplers(cfg *config.Config, channels []int, closers *[]io.Closer) []brightness.Sampler {
	out := make([]brightness.Sampler, len(channels))
	switch hw.Source(cfg.Sensor.Source) {
	case hw.ADS1115:
		adc, err := hw.OpenADS1115(cfg.Sensor.I2CBus, cfg.Sensor.Address, channels)
		if err == nil {
			*closers = append(*closers, adc)
			for i := range out {
				out[i] = adc.Sampler(i)
			}
			return out
		}
		log.Warn().Err(err).Msg("ADC init failed; brightness will stay at its resting level")
	case hw.ThermalZone:
		for i := range out {
			out[i] = hw.Zone{Path: cfg.Sensor.ThermalZone}
		}
		return out
	}
	for i := range out {
		out[i] = hw.Constant{Raw: cfg.Sensor.SimRaw}
	}
	return out
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
