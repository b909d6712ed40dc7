package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/gravdeck/internal/config"
	"github.com/san-kum/gravdeck/internal/deck"
	"github.com/san-kum/gravdeck/internal/export"
	"github.com/san-kum/gravdeck/internal/genai"
	"github.com/san-kum/gravdeck/internal/logging"
	"github.com/san-kum/gravdeck/internal/qa"
	"github.com/san-kum/gravdeck/internal/spacetime"
	"github.com/san-kum/gravdeck/internal/tui"
	"github.com/san-kum/gravdeck/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	slidesFile string
	preset     string
	theme      string
	logFile    string
	debug      bool

	// grid export
	pointerX float64
	pointerY float64
	width    float64
	outFile  string
	falloff  bool
)

// main registers the gravdeck commands and runs the presentation when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "gravdeck",
		Short:        "terminal presentation on gravity",
		SilenceUsage: true,
		RunE:         runPresentation,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&slidesFile, "slides", "", "slide deck file (yaml), replaces the built-in deck")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "grid preset")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "log file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose development logging")

	slidesCmd := &cobra.Command{
		Use:   "slides",
		Short: "list slides in the deck",
		RunE:  listSlides,
	}

	askCmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "ask the astrophysicist one question",
		Args:  cobra.MinimumNArgs(1),
		RunE:  askQuestion,
	}

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "export the deformed spacetime grid as svg",
		RunE:  exportGrid,
	}
	gridCmd.Flags().Float64Var(&pointerX, "x", 0, "mass x position (default: center)")
	gridCmd.Flags().Float64Var(&pointerY, "y", 0, "mass y position (default: center)")
	gridCmd.Flags().Float64Var(&width, "width", 800, "grid width in world units")
	gridCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default: stdout)")
	gridCmd.Flags().BoolVar(&falloff, "falloff", false, "print the displacement fall-off chart instead")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list grid presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSPACING\tMASS\tSOFTENING")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.0f\n", name, p.Spacing, p.Mass, p.Softening)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	})

	rootCmd.AddCommand(slidesCmd, askCmd, gridCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers file, environment, and flags, in that order.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	e, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(e)

	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Grid = p
	}
	if theme != "" {
		cfg.Theme = theme
	}
	if slidesFile != "" {
		cfg.Slides = slidesFile
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	return cfg, cfg.Validate()
}

func newGenerator(cfg *config.Config) *genai.Client {
	return genai.NewClient(genai.Config{
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.Timeout,
		Key:      config.APIKey,
	})
}

func runPresentation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d, err := deck.Load(cfg.Slides)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogFile, debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("starting presentation",
		zap.Int("slides", d.Len()),
		zap.String("model", cfg.Model),
		zap.String("language", cfg.LanguageTag().String()))

	return tui.Run(tui.Options{
		Deck:      d,
		Generator: newGenerator(cfg),
		Model:     cfg.Model,
		Persona:   qa.Persona(cfg.LanguageTag()),
		Grid:      cfg.Grid,
		Theme:     viz.GetTheme(cfg.Theme),
		Logger:    log,
	})
}

func listSlides(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d, err := deck.Load(cfg.Slides)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tKIND\tTITLE")
	for i, s := range d.Slides() {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", i+1, s.ID, s.Kind, s.Title)
	}
	return w.Flush()
}

func askQuestion(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogFile, debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	panel := qa.NewPanel(newGenerator(cfg), qa.Options{
		Model:   cfg.Model,
		Persona: qa.Persona(cfg.LanguageTag()),
		Logger:  log,
	})
	msg, ok := panel.Ask(ctx, strings.Join(args, " "))
	if !ok {
		return fmt.Errorf("empty question")
	}
	fmt.Println(msg.Text)
	return nil
}

func exportGrid(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if falloff {
		fmt.Println(viz.FalloffChart(cfg.Grid, 60, viz.NewStyles(viz.GetTheme(cfg.Theme))))
		return nil
	}

	g := spacetime.NewGrid(width, cfg.Grid)
	if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
		a := g.Attractor()
		x, y := a.X, a.Y
		if cmd.Flags().Changed("x") {
			x = pointerX
		}
		if cmd.Flags().Changed("y") {
			y = pointerY
		}
		g.Track(x, y)
	}

	if outFile != "" {
		return export.SaveGridSVG(outFile, g, viz.GetTheme(cfg.Theme))
	}
	return export.WriteGridSVG(os.Stdout, g, viz.GetTheme(cfg.Theme))
}
