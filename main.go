package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kinetiklab/silhouette/capture"
	"github.com/kinetiklab/silhouette/config"
	"github.com/kinetiklab/silhouette/display"
	"github.com/kinetiklab/silhouette/engine"
	"github.com/kinetiklab/silhouette/imaging"
	"github.com/kinetiklab/silhouette/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	modeFlag := flag.String("mode", "dual", "Run mode: dual, pointer or single")
	sourceFlag := flag.String("source", "synthetic", "Frame source: synthetic, webcam or file")
	filePath := flag.String("file", "", "Video file for the first stream (source=file)")
	filePath2 := flag.String("file2", "", "Video file for the second stream (source=file, dual mode)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output windowed stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxCycles := flag.Int64("max-cycles", 0, "Stop after N cycles (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	mode, err := engine.ParseRunMode(*modeFlag)
	if err != nil {
		slog.Error("invalid mode", "error", err)
		os.Exit(1)
	}
	slots := 1
	if mode == engine.ModeDual {
		slots = 2
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	eng, err := engine.New(engine.Options{
		Mode:                 mode,
		Slots:                slots,
		Width:                cfg.Screen.Width,
		Height:               cfg.Screen.Height,
		Threshold:            uint8(cfg.Tracking.BrightnessThreshold),
		Stride:               cfg.Derived.Stride,
		ParticleSize:         cfg.Tracking.PixelSize,
		PushRadiusSq:         cfg.Derived.PushRadiusSq,
		Fade:                 cfg.Effects.Fade,
		InterferenceDistance: cfg.Tracking.InterferenceDistance,
		Seed:                 rngSeed,
	})
	if err != nil {
		slog.Error("failed to create engine", "error", err)
		os.Exit(1)
	}
	eng.Perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindowCycles)
	eng.Stats = telemetry.NewCollector(cfg.Telemetry.StatsWindowCycles)

	sources, err := buildSources(*sourceFlag, slots, cfg, rngSeed, *filePath, *filePath2)
	if err != nil {
		slog.Error("failed to open sources", "error", err)
		os.Exit(1)
	}
	defer func() {
		for _, s := range sources {
			s.Close()
		}
	}()

	outputManager, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	if outputManager != nil {
		defer outputManager.Close()
		if err := cfg.WriteYAML(filepath.Join(outputManager.Dir(), "config.yaml")); err != nil {
			slog.Error("failed to snapshot config", "error", err)
		}
		slog.Info("output enabled", "run_id", outputManager.RunID().String(), "dir", outputManager.Dir())
	}

	loop := &appLoop{
		eng:      eng,
		sources:  sources,
		output:   outputManager,
		logStats: *logStats,
		max:      *maxCycles,
	}

	slog.Info("starting",
		"mode", mode.String(),
		"source", *sourceFlag,
		"seed", rngSeed,
		"canvas", fmt.Sprintf("%dx%d", cfg.Screen.Width, cfg.Screen.Height),
		"headless", *headless,
	)

	if *headless {
		err = loop.runHeadless()
	} else {
		err = loop.runGraphical(cfg)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// buildSources opens one frame source per engine slot, all rescaled to the
// canvas size. Dual synthetic sources orbit in opposite phase so the blobs
// periodically approach each other.
func buildSources(kind string, slots int, cfg *config.Config, seed int64, file, file2 string) ([]capture.Source, error) {
	sources := make([]capture.Source, 0, slots)
	for i := 0; i < slots; i++ {
		var (
			src capture.Source
			err error
		)
		switch kind {
		case "synthetic":
			src = capture.NewSynthetic(cfg.Screen.Width, cfg.Screen.Height, seed+int64(i), float64(i)*3.14159)
		case "webcam":
			src, err = capture.OpenDevice(cfg.Capture.Device+i, cfg.Capture.Width, cfg.Capture.Height)
		case "file":
			path := file
			if i == 1 {
				path = file2
			}
			if path == "" {
				return nil, fmt.Errorf("source=file needs -file%s", strings.Repeat("2", i))
			}
			src, err = capture.OpenFile(path)
		default:
			err = fmt.Errorf("unknown source %q (want synthetic, webcam or file)", kind)
		}
		if err != nil {
			for _, s := range sources {
				s.Close()
			}
			return nil, err
		}
		sources = append(sources, capture.Resized(src, cfg.Screen.Width, cfg.Screen.Height))
	}
	return sources, nil
}

// appLoop drives the engine from the frame sources and flushes telemetry.
type appLoop struct {
	eng      *engine.Engine
	sources  []capture.Source
	output   *telemetry.OutputManager
	logStats bool
	max      int64
}

// nextFrames pulls one frame from every source. A clean end of stream
// returns (nil, nil).
func (l *appLoop) nextFrames() ([]*imaging.Frame, error) {
	frames := make([]*imaging.Frame, len(l.sources))
	for i, s := range l.sources {
		f, err := s.Next()
		if errors.Is(err, capture.ErrEndOfStream) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		frames[i] = f
	}
	return frames, nil
}

// flushStats emits a window when enough cycles accumulated.
func (l *appLoop) flushStats() {
	stats := l.eng.Stats
	if stats == nil || !stats.WindowFull() {
		return
	}
	ws := stats.Flush(l.eng.CycleCount())
	if l.logStats {
		ws.LogStats()
		l.eng.Perf.LogSummary(l.eng.CycleCount())
	}
	if l.output != nil {
		if err := l.output.WriteStats(ws); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
	}
}

func (l *appLoop) done() bool {
	return l.max > 0 && l.eng.CycleCount() >= l.max
}

// runHeadless drives cycles as fast as the sources deliver, with the
// pointer pinned to the canvas center.
func (l *appLoop) runHeadless() error {
	pointer := image.Pt(l.eng.Width()/2, l.eng.Height()/2)
	for !l.done() {
		frames, err := l.nextFrames()
		if err != nil {
			return err
		}
		if frames == nil {
			slog.Info("end of stream", "cycle", l.eng.CycleCount())
			return nil
		}
		if _, err := l.eng.Cycle(frames, pointer); err != nil {
			return err
		}
		l.flushStats()
	}
	slog.Info("max cycles reached", "cycle", l.eng.CycleCount())
	return nil
}

// runGraphical drives the window loop: input, cycle, render, present.
func (l *appLoop) runGraphical(cfg *config.Config) error {
	app := display.Open(cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.TargetFPS, "Silhouette", display.Calibration{
		BrightnessThreshold:  float32(cfg.Tracking.BrightnessThreshold),
		InterferenceDistance: float32(cfg.Tracking.InterferenceDistance),
		Fade:                 cfg.Effects.Fade,
	})
	defer app.Close()

	paused := false
	var lastRes engine.Result

	for !app.ShouldClose() && !l.done() {
		in := app.HandleInput()
		if in.Advance {
			l.eng.Advance()
		}
		if in.Pause {
			paused = !paused
		}

		if paused {
			hud := display.HUDData{
				State:     "paused",
				Cycle:     l.eng.CycleCount(),
				Particles: l.eng.ParticleCount(),
				PairFound: lastRes.Pair.Found,
				PairDist:  lastRes.Pair.Dist,
				P1:        lastRes.Pair.P1,
				P2:        lastRes.Pair.P2,
			}
			app.Draw(l.eng.Render(), hud, nil)
			continue
		}

		frames, err := l.nextFrames()
		if err != nil {
			return err
		}
		if frames == nil {
			slog.Info("end of stream", "cycle", l.eng.CycleCount())
			return nil
		}

		res, err := l.eng.Cycle(frames, app.MousePoint())
		if err != nil {
			return err
		}
		lastRes = res

		canvas := l.eng.Render()
		hud := display.HUDData{
			State:     res.State.String(),
			Cycle:     l.eng.CycleCount(),
			Particles: l.eng.ParticleCount(),
			PairFound: res.Pair.Found,
			PairDist:  res.Pair.Dist,
			P1:        res.Pair.P1,
			P2:        res.Pair.P2,
		}

		var contours []imaging.Contour
		if app.ShowContours() {
			for i := 0; i < len(l.sources); i++ {
				if c, err := l.eng.Contour(i); err == nil && len(c) > 0 {
					contours = append(contours, c)
				}
			}
		}

		cal := app.Calibration()
		if cal.MaskOverlay {
			canvas = imaging.ThresholdMask(frames[0], l.eng.Threshold()).Frame()
		}

		cal = app.Draw(canvas, hud, contours)
		if cal.Changed {
			l.eng.SetThreshold(uint8(cal.BrightnessThreshold))
			l.eng.SetInterferenceDistance(float64(cal.InterferenceDistance))
			l.eng.SetFade(cal.Fade)
		}

		l.flushStats()
	}
	return nil
}
