package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/maxwell/internal/analysis"
	"github.com/san-kum/maxwell/internal/automation"
	"github.com/san-kum/maxwell/internal/audio"
	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/export"
	"github.com/san-kum/maxwell/internal/gui"
	"github.com/san-kum/maxwell/internal/metrics"
	"github.com/san-kum/maxwell/internal/physics"
	"github.com/san-kum/maxwell/internal/sim"
	"github.com/san-kum/maxwell/internal/storage"
	"github.com/san-kum/maxwell/internal/tui"
	"github.com/san-kum/maxwell/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir      string
	variant      string
	configFile   string
	seed         int64
	dt           float64
	audioOn      bool
	audioBackend string
	frameRate    int
	verbose      bool
	// run
	runFrames int
	every     int
	jsonPath  string
	// plot
	svgDir string
	// listen
	listenFrames int
	// snapshot
	snapshotFrames int
	outPath        string
	braille        bool
	// analyze
	analyzeFrames int
	numPeaks      int
	// sweep, ensemble
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	sweepFrames int
	trials      int
)

// main registers the maxwell commands and runs the live terminal view when
// no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "maxwell",
		Short: "maxwell's demon in spinning lobes",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".maxwell", "data directory")
	rootCmd.PersistentFlags().StringVar(&variant, "variant", config.VariantFull, "variant (full, visual, audio)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", config.DefaultDt, "time step in ms")
	rootCmd.PersistentFlags().BoolVar(&audioOn, "audio", true, "enable sound")
	rootCmd.PersistentFlags().StringVar(&audioBackend, "audio-backend", config.BackendPortAudio, "audio backend (portaudio, beep, none)")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", 60, "frame rate")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "terminal view of the spinner",
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "desktop window (raylib)",
		RunE:  runGUI,
	}

	listenCmd := &cobra.Command{
		Use:   "listen",
		Short: "sound with a text info panel",
		RunE:  runListen,
	}
	listenCmd.Flags().IntVar(&listenFrames, "frames", 0, "stop after n frames (0 = until interrupted)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless run, saved to the data directory",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&runFrames, "frames", 600, "number of frames")
	runCmd.Flags().IntVar(&every, "every", 1, "record every n-th frame")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "also write a json report (- for stdout)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgDir, "svg", "", "also write svg charts to this directory")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame to svg",
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 120, "frames to advance before the snapshot")
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "maxwell.svg", "output file")
	snapshotCmd.Flags().BoolVar(&braille, "braille", false, "render the terminal canvas instead of vector shapes")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "frequency analysis of the rendered sound",
		RunE:  analyzeSound,
	}
	analyzeCmd.Flags().IntVar(&analyzeFrames, "frames", 300, "frames to render")
	analyzeCmd.Flags().IntVar(&numPeaks, "peaks", 8, "number of spectral peaks to report")

	variantsCmd := &cobra.Command{
		Use:   "variants",
		Short: "list variants",
		RunE:  listVariants,
	}

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "pick and tune a variant interactively",
		RunE:  runMenu,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of headless runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "sweep one setting and compare the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.05, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")
	sweepCmd.Flags().IntVar(&sweepFrames, "frames", 300, "frames per run")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "repeat a variant over many seeds",
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	ensembleCmd.Flags().IntVar(&sweepFrames, "frames", 300, "frames per trial")

	rootCmd.AddCommand(liveCmd, guiCmd, listenCmd, runCmd, listCmd, plotCmd,
		snapshotCmd, analyzeCmd, variantsCmd, menuCmd, scenarioCmd, sweepCmd, ensembleCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig resolves the variant or config file, then applies the flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.GetPreset(variant)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownVariant, variant, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("dt") {
		cfg.Physics.Dt = dt
	}
	if flags.Changed("audio") {
		cfg.Audio = audioOn
	}
	if flags.Changed("audio-backend") {
		cfg.Sound.Backend = audioBackend
	}
	if flags.Changed("fps") {
		cfg.Display.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("config", "variant", cfg.Variant, "depth", cfg.Depth,
		"particles_per_lobe", cfg.ParticlesPerLobe, "audio", cfg.Audio, "backend", cfg.Sound.Backend)
	return cfg, nil
}

func mapperFor(cfg *config.Config) audio.Mapper {
	return audio.Mapper{
		FrequencyScale: cfg.Sound.FrequencyScale,
		VolumeScale:    cfg.Sound.VolumeScale,
		MaxVolume:      cfg.Sound.MaxVolume,
	}
}

func newSink(cfg *config.Config) audio.Sink {
	synth := audio.NewSynth(cfg.Sound.SampleRate)
	switch cfg.Sound.Backend {
	case config.BackendPortAudio:
		return audio.NewPortAudioSink(synth)
	case config.BackendBeep:
		return audio.NewBeepSink(synth)
	default:
		return audio.Nop{}
	}
}

// newSonifier builds the audio path for cfg. Interactive views pass gated
// so that sound waits for the first key press or click.
func newSonifier(cfg *config.Config, gated bool) (*audio.Sonifier, *audio.GatedSink) {
	if !cfg.Audio || cfg.Sound.Backend == config.BackendNone {
		return nil, nil
	}
	sink := newSink(cfg)
	if !gated {
		return audio.NewSonifier(mapperFor(cfg), sink), nil
	}
	gate := audio.NewGatedSink(sink)
	return audio.NewSonifier(mapperFor(cfg), gate), gate
}

func startAudio(scene *sim.Scene) {
	if err := scene.StartAudio(); err != nil {
		slog.Warn("audio unavailable, continuing silently", "err", err)
	}
}

func buildLive(cfg *config.Config) (viz.Model, *sim.Scene, error) {
	surface := viz.NewCanvasSurface(80, 24)
	son, gate := newSonifier(cfg, true)
	scene, err := sim.New(cfg, surface, son)
	if err != nil {
		return viz.Model{}, nil, err
	}
	startAudio(scene)
	return viz.NewModel(scene, surface, gate), scene, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	model, scene, err := buildLive(cfg)
	if err != nil {
		return err
	}
	defer scene.Close()
	return viz.Run(model)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	surface := gui.NewSurface(cfg)
	son, gate := newSonifier(cfg, true)
	scene, err := sim.New(cfg, surface, son)
	if err != nil {
		return err
	}
	defer scene.Close()
	startAudio(scene)
	gui.Run(scene, surface, gate)
	return nil
}

func runListen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	renderer := tui.NewLiveRenderer(os.Stdout, "maxwell · "+cfg.Variant, 10)
	son, _ := newSonifier(cfg, false)
	scene, err := sim.New(cfg, renderer, son)
	if err != nil {
		return err
	}
	defer scene.Close()
	startAudio(scene)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer.Start()
	defer renderer.Stop()

	err = sim.RunWithCallback(ctx, scene, cfg.Display.FPS, func(f *sim.Frame) bool {
		return listenFrames <= 0 || f.Index < listenFrames
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := automation.Run(ctx, cfg, runFrames, every)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		slog.Warn("run interrupted, saving partial result", "frames", out.Meta.Frames)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(out.Meta, out.Summaries)
	if err != nil {
		return err
	}
	out.Meta.ID = runID

	meta := out.Meta
	fmt.Printf("run: %s\n", runID)
	fmt.Printf("variant: %s  seed: %d\n", meta.Variant, meta.Seed)
	fmt.Printf("frames: %d (%.0f ms simulated) in %v\n", meta.Frames, out.Final.Time, out.Elapsed.Round(time.Millisecond))
	fmt.Printf("lobes: %d  particles: %d  hot: %.0f%%  sorted: %.0f%%\n",
		meta.Lobes, meta.Particles, 100*out.Final.HotFraction, 100*out.Final.SortedFraction)
	fmt.Printf("energy: %.4f  drift: %.2f%%  containment: %.4f\n",
		out.Final.TotalEnergy, 100*meta.Metrics["energy_drift"], meta.Metrics["containment"])

	switch jsonPath {
	case "":
	case "-":
		return storage.WriteJSON(os.Stdout, meta, out.Summaries)
	default:
		if err := storage.ExportJSON(jsonPath, meta, out.Summaries); err != nil {
			return err
		}
		fmt.Printf("report: %s\n", jsonPath)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	outcomes, err := automation.RunScenario(ctx, sc, st)

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tID\tVARIANT\tSEED\tPARTICLES\tFRAMES\tSORTED\tDRIFT")
	for i, out := range outcomes {
		id := out.Meta.ID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%.3f\t%.4f\n",
			i+1, id, out.Meta.Variant, out.Meta.Seed, out.Meta.Particles, out.Meta.Frames,
			out.Final.SortedFraction, out.Meta.Metrics["energy_drift"])
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	sweep := &automation.ParameterSweep{
		Variant: variant,
		Param:   args[0],
		Min:     sweepMin,
		Max:     sweepMax,
		Steps:   sweepSteps,
		Frames:  sweepFrames,
		Seed:    seed,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep)
	if err != nil {
		return err
	}

	fmt.Printf("sweep: %s over %s [%g, %g]\n\n", variant, sweep.Param, sweep.Min, sweep.Max)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSORTED\tHOT\tDRIFT\tCONTAINED\n", strings.ToUpper(sweep.Param))
	sorted := make([]float64, len(results))
	for i, r := range results {
		sorted[i] = r.SortedFraction
		fmt.Fprintf(w, "%g\t%.3f\t%.3f\t%.4f\t%.3f\n", r.Value, r.SortedFraction, r.HotFraction, r.EnergyDrift, r.Containment)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(sorted) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(sorted, asciigraph.Height(8), asciigraph.Caption("sorted fraction by "+sweep.Param)))
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	results, err := automation.RunEnsemble(cmd.Context(), &automation.Ensemble{
		Variant: variant,
		Trials:  trials,
		Frames:  sweepFrames,
		Seed:    seed,
	})
	if err != nil {
		return err
	}

	contained, escaped := automation.EnsembleStats(results)
	fmt.Printf("ensemble: %s, %d trials of %d frames\n", variant, len(results), sweepFrames)
	fmt.Printf("contained: %d  escaped: %d\n", contained, escaped)
	for _, r := range results {
		if !r.Contained {
			fmt.Printf("  trial %d escaped (seed %d)\n", r.Trial, r.Seed)
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIANT\tTIME\tSEED\tLOBES\tPARTICLES\tFRAMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Variant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Lobes,
			run.Particles,
			run.Frames,
		)
	}

	return w.Flush()
}

type series struct {
	name    string
	caption string
	color   string
	value   func(metrics.Summary) float64
}

var plotSeries = []series{
	{"total_energy", "total kinetic energy", "#FFD93D", func(s metrics.Summary) float64 { return s.TotalEnergy }},
	{"mean_energy", "mean kinetic energy", "#6BE36B", func(s metrics.Summary) float64 { return s.MeanEnergy }},
	{"hot_fraction", "hot fraction", "#FF6B6B", func(s metrics.Summary) float64 { return s.HotFraction }},
	{"sorted_fraction", "sorted fraction", "#7FB2FF", func(s metrics.Summary) float64 { return s.SortedFraction }},
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	summaries, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("variant: %s\n", meta.Variant)
	fmt.Printf("samples: %d\n\n", len(summaries))

	if svgDir != "" {
		if err := os.MkdirAll(svgDir, 0755); err != nil {
			return err
		}
	}

	for _, s := range plotSeries {
		data := make([]float64, len(summaries))
		for i := range summaries {
			data[i] = s.value(summaries[i])
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()

		if svgDir != "" {
			path := filepath.Join(svgDir, runID+"_"+s.name+".svg")
			if err := export.WriteFile(path, export.SeriesToSVG(data, 800, 200, s.color)); err != nil {
				return err
			}
		}
	}

	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var canvas *viz.CanvasSurface
	var surface sim.Surface
	if braille {
		canvas = viz.NewCanvasSurface(cfg.Display.Width/10, cfg.Display.Height/20)
		surface = canvas
	}

	scene, err := sim.New(cfg, surface, nil)
	if err != nil {
		return err
	}
	defer scene.Close()

	f := scene.Frame()
	for i := 0; i < snapshotFrames; i++ {
		f = scene.Step(cfg.Physics.Dt)
	}

	var svg string
	if braille {
		if err := canvas.Draw(f); err != nil {
			return err
		}
		svg = export.CanvasToSVG(canvas.Canvas, 4)
	} else {
		svg = export.FrameToSVG(f, cfg.Display.Width, cfg.Display.Height)
	}
	if err := export.WriteFile(outPath, svg); err != nil {
		return err
	}

	fmt.Printf("snapshot: %s (frame %d, %.0f ms, seed %d)\n", outPath, f.Index, f.Time, scene.Seed())
	return nil
}

func analyzeSound(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Audio = true

	synth := audio.NewSynth(cfg.Sound.SampleRate)
	son := audio.NewSonifier(mapperFor(cfg), audio.SynthSink{Synth: synth})
	scene, err := sim.New(cfg, nil, son)
	if err != nil {
		return err
	}
	defer scene.Close()

	tape := analysis.NewTape(synth)
	result, err := sim.Run(context.Background(), scene, sim.RunConfig{Frames: analyzeFrames, Dt: cfg.Physics.Dt}, tape)
	if err != nil {
		return err
	}

	samples := tape.Tail(cfg.Sound.SampleRate)
	if len(samples) == 0 {
		return fmt.Errorf("no samples rendered")
	}
	spectrum := analysis.NewSpectrum(samples, cfg.Sound.SampleRate)

	mapper := son.Mapper()
	var expected []float64
	lobes := scene.Lobes()
	for i := range lobes {
		for _, p := range lobes[i].Particles {
			expected = append(expected, mapper.Map(p, &lobes[i]).Frequency)
		}
	}
	sort.Float64s(expected)

	fmt.Printf("variant: %s  seed: %d\n", cfg.Variant, scene.Seed())
	fmt.Printf("frames: %d  samples: %d  resolution: %.2f Hz\n", result.Frames, len(samples), spectrum.BinWidth)
	fmt.Printf("voices: %d  hot: %d\n\n", synth.Active(), result.Info.Hot)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PEAK\tFREQ (Hz)\tMAGNITUDE\tNEAREST TONE\tDELTA")
	for i, pk := range spectrum.Peaks(numPeaks) {
		near := nearest(expected, pk.Frequency)
		fmt.Fprintf(w, "%d\t%.1f\t%.4f\t%.1f\t%+.1f\n", i+1, pk.Frequency, pk.Magnitude, near, pk.Frequency-near)
	}
	return w.Flush()
}

// nearest returns the value in sorted closest to f.
func nearest(sorted []float64, f float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	i := sort.SearchFloat64s(sorted, f)
	switch {
	case i == 0:
		return sorted[0]
	case i == len(sorted):
		return sorted[i-1]
	case f-sorted[i-1] <= sorted[i]-f:
		return sorted[i-1]
	default:
		return sorted[i]
	}
}

func listVariants(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tPER LOBE\tDEPTH\tLOBES\tPARTICLES\tAUDIO\tSEED\tJITTER\tPANS")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		_, specs := physics.BuildTree(cfg.Layout())
		seedText := "time"
		if cfg.Seed != 0 {
			seedText = fmt.Sprint(cfg.Seed)
		}
		audioText := "off"
		if cfg.Audio {
			audioText = "on"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%s\t%g\t%v\n",
			name,
			cfg.ParticlesPerLobe,
			cfg.Depth,
			len(specs),
			len(specs)*cfg.ParticlesPerLobe,
			audioText,
			seedText,
			cfg.Physics.Jitter,
			cfg.Sound.Pans,
		)
	}
	return w.Flush()
}

func runMenu(cmd *cobra.Command, args []string) error {
	var scenes []*sim.Scene
	defer func() {
		for _, s := range scenes {
			s.Close()
		}
	}()

	return viz.RunPicker(func(cfg *config.Config) (viz.Model, error) {
		model, scene, err := buildLive(cfg)
		if err != nil {
			return viz.Model{}, err
		}
		scenes = append(scenes, scene)
		return model, nil
	})
}
