package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/asciikey/internal/clock"
	"github.com/san-kum/asciikey/internal/config"
	"github.com/san-kum/asciikey/internal/engine"
	"github.com/san-kum/asciikey/internal/render"
	"github.com/san-kum/asciikey/internal/storage"
	"github.com/san-kum/asciikey/internal/tui"
)

var (
	configFile string
	preset     string
	dataDir    string
	logFile    string
	verbose    bool

	fps       int
	width     int
	height    int
	effect    string
	ramp      string
	invert    bool
	theme     string
	exportDir string

	at      time.Duration
	format  string
	cycles  int
	every   int
	output  string
	channel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "asciikey",
		Short:         "ascii key and door animation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "trace directory")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "log file (play discards logs when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", config.DefaultFPS, "refresh rate")
	rootCmd.PersistentFlags().IntVar(&width, "width", config.DefaultWidth, "surface width in cells")
	rootCmd.PersistentFlags().IntVar(&height, "height", config.DefaultHeight, "surface height in cells")
	rootCmd.PersistentFlags().StringVar(&effect, "effect", config.DefaultEffect, "ascii or braille")
	rootCmd.PersistentFlags().StringVar(&ramp, "ramp", config.DefaultRamp, "ascii brightness ramp, darkest first")
	rootCmd.PersistentFlags().BoolVar(&invert, "invert", false, "invert the ramp")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "colour theme")
	rootCmd.PersistentFlags().StringVar(&exportDir, "export-dir", config.DefaultExportDir, "export directory")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play the animation in the terminal",
		RunE:  runPlay,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "render the frame reached at a point in time",
		RunE:  runExport,
	}
	exportCmd.Flags().DurationVar(&at, "at", 3*time.Second, "animation time to render")
	exportCmd.Flags().StringVar(&format, "format", "png", "png, svg or txt")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record whole cycles to an animated gif",
		RunE:  runRecord,
	}
	recordCmd.Flags().IntVar(&cycles, "cycles", 1, "cycles to record")
	recordCmd.Flags().IntVar(&every, "every", 3, "keep every nth tick")
	recordCmd.Flags().StringVarP(&output, "out", "o", "scene.gif", "output file name")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "store per-tick samples of whole cycles",
		RunE:  runTrace,
	}
	traceCmd.Flags().IntVar(&cycles, "cycles", 1, "cycles to trace")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list traces",
		RunE:  listTraces,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [trace_id]",
		Short: "plot a trace channel",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTrace,
	}
	plotCmd.Flags().StringVar(&channel, "channel", "", "channel to plot (default: key_y, door_scale, ground_scale)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [trace_id]",
		Short: "export a trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := args[0] + ".json"
			if err := storage.New(cfg.DataDir).ExportJSON(args[0], path); err != nil {
				return err
			}
			fmt.Printf("exported to %s\n", path)
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEFFECT\tFPS\tINVERT\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%s\n", name, p.Effect, p.FPS, p.Invert, p.Theme)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\nthemes: %s\n", strings.Join(tui.ThemeNames(), ", "))
			return nil
		},
	}

	rootCmd.AddCommand(playCmd, exportCmd, recordCmd, traceCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("effect") {
		cfg.Effect = effect
	}
	if flags.Changed("ramp") {
		cfg.Ramp = ramp
	}
	if flags.Changed("invert") {
		cfg.Invert = invert
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("export-dir") {
		cfg.ExportDir = exportDir
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	return cfg, cfg.Validate()
}

// newLogger returns a text logger writing to the --log file, or to fallback
// when no file is given.
func newLogger(fallback io.Writer) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if logFile == "" {
		return slog.New(slog.NewTextHandler(fallback, &slog.HandlerOptions{Level: level})), func() error { return nil }, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f.Close, nil
}

func newRasterizer(cfg *config.Config) (*render.Rasterizer, error) {
	e, err := render.NewEffect(cfg.Effect, cfg.Ramp, cfg.Invert)
	if err != nil {
		return nil, err
	}
	return render.NewRasterizer(cfg.Width, cfg.Height, e), nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The terminal belongs to the TUI, so logs only go to --log.
	log, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	target, err := newRasterizer(cfg)
	if err != nil {
		return err
	}
	lp := engine.New(clock.NewSystem(), target, engine.WithLogger(log))
	log.Info("starting", "fps", cfg.FPS, "effect", target.Effect().Name(), "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	return tui.Run(tui.NewModel(lp, cfg.FPS, cfg.Theme, cfg.ExportDir, log))
}

func listTraces(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	traces, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(traces) == 0 {
		fmt.Println("no traces found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCYCLES\tTICKS\tFPS\tSIZE\tCYCLE")
	for _, tr := range traces {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%dx%d\t%.0fms\n",
			tr.ID,
			tr.Timestamp.Format("2006-01-02 15:04:05"),
			tr.Cycles,
			tr.Ticks,
			tr.FPS,
			tr.Width, tr.Height,
			tr.Metrics["cycle_ms"],
		)
	}
	return w.Flush()
}

func plotTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("trace: %s\n", meta.ID)
	fmt.Printf("samples: %d\n", len(samples))
	for _, name := range []string{"ball", "ground_to_key", "key_jump", "key_to_door"} {
		fmt.Printf("  %-14s %d ticks\n", name, meta.PhaseTicks[name])
	}
	for _, name := range sortedKeys(meta.Metrics) {
		fmt.Printf("  %-14s %.2f\n", name, meta.Metrics[name])
	}
	fmt.Println()

	names := []string{"key_y", "door_scale", "ground_scale"}
	if channel != "" {
		names = []string{channel}
	}
	for _, name := range names {
		data, err := storage.Channel(samples, name)
		if err != nil {
			return fmt.Errorf("%w (available: %v)", err, storage.Channels())
		}
		fmt.Println(asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption(name)))
		fmt.Println()
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
