package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/asciikey/internal/clock"
	"github.com/san-kum/asciikey/internal/config"
	"github.com/san-kum/asciikey/internal/engine"
	"github.com/san-kum/asciikey/internal/export"
	"github.com/san-kum/asciikey/internal/metrics"
	"github.com/san-kum/asciikey/internal/storage"
	"github.com/san-kum/asciikey/internal/tui"
)

// headless builds a loop on a synthetic clock stepped one refresh per tick.
func headless(cmd *cobra.Command, opts ...engine.Option) (*engine.Loop, *clock.Manual, *config.Config, *slog.Logger, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	log, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	target, err := newRasterizer(cfg)
	if err != nil {
		closeLog()
		return nil, nil, nil, nil, nil, err
	}
	c := clock.NewManual(0)
	lp := engine.New(c, target, append([]engine.Option{engine.WithLogger(log)}, opts...)...)
	return lp, c, cfg, log, closeLog, nil
}

func untilCycles(n int) func(engine.Tick) bool {
	return func(t engine.Tick) bool { return t.State.Cycle >= n }
}

func runExport(cmd *cobra.Command, args []string) error {
	lp, c, cfg, log, closeLog, err := headless(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	step := clock.FrameInterval(cfg.FPS)
	if err := lp.Run(c, step, func(t engine.Tick) bool { return t.Now >= at }); err != nil {
		log.Warn("some ticks were not presented", "ticks", lp.Ticks())
	}

	pal := tui.GetTheme(cfg.Theme).Palette()
	frame := lp.Frame()
	var path string
	switch format {
	case "png":
		path, err = export.SavePNG(cfg.ExportDir, export.DefaultName, frame, pal)
	case "svg":
		var svg string
		if svg, err = export.FrameToSVG(frame, pal, 4); err == nil {
			path = filepath.Join(cfg.ExportDir, "scene.svg")
			err = os.WriteFile(path, []byte(svg), 0644)
		}
	case "txt":
		if frame == nil {
			return export.ErrNoFrame
		}
		path = filepath.Join(cfg.ExportDir, "scene.txt")
		err = os.WriteFile(path, []byte(frame.String()), 0644)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	st := lp.State()
	log.Info("exported", "path", path, "at", at, "phase", st.Phase, "camera", st.Camera)
	return nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	rec := &export.Recording{}
	capture := &frameCapture{rec: rec, every: max(every, 1)}
	lp, c, cfg, log, closeLog, err := headless(cmd, engine.WithObserver(capture))
	if err != nil {
		return err
	}
	defer closeLog()

	start := time.Now()
	if err := lp.Run(c, clock.FrameInterval(cfg.FPS), untilCycles(cycles)); err != nil {
		log.Warn("some ticks were not presented", "ticks", lp.Ticks())
	}
	log.Info("recorded", "ticks", lp.Ticks(), "frames", rec.Len(), "elapsed", time.Since(start))

	if err := os.MkdirAll(cfg.ExportDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(cfg.ExportDir, output)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	delay := max(1, 100*capture.every/cfg.FPS)
	if err := export.EncodeGIF(context.Background(), f, rec.Frames(), tui.GetTheme(cfg.Theme).Palette(), delay); err != nil {
		return err
	}
	log.Info("exported", "path", path)
	return f.Close()
}

// frameCapture keeps every nth presented frame.
type frameCapture struct {
	rec   *export.Recording
	every int
}

func (f *frameCapture) OnTick(t engine.Tick) {
	if t.N%f.every == 0 {
		f.rec.Capture(t.Frame)
	}
}

func runTrace(cmd *cobra.Command, args []string) error {
	rec := &storage.Recorder{}
	summary := metrics.Default()
	lp, c, cfg, log, closeLog, err := headless(cmd, engine.WithObserver(rec), engine.WithObserver(summary))
	if err != nil {
		return err
	}
	defer closeLog()

	if err := lp.Run(c, clock.FrameInterval(cfg.FPS), untilCycles(cycles)); err != nil {
		log.Warn("some ticks were not presented", "ticks", lp.Ticks())
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.TraceMetadata{
		FPS:     cfg.FPS,
		Cycles:  cycles,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Metrics: summary.Values(),
	}, rec.Samples)
	if err != nil {
		return err
	}
	log.Info("trace saved", "id", id, "ticks", len(rec.Samples))
	fmt.Println(id)
	return nil
}
