package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"clawtrack/cmd/clawtrack/ui"
	"clawtrack/internal/config"
	"clawtrack/internal/inventory"
	"clawtrack/internal/prize"
	"clawtrack/internal/store"
)

var version = "0.3.0"

var (
	// Global flags
	verbose   bool
	storeKind string
	dataDir   string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clawtrack",
	Short: "clawtrack - claw machine prize inventory",
	Long: `clawtrack keeps an inventory of the prizes you've won from claw and
crane games: name, category, manufacturer, quantity, acquisition date,
photo and notes, saved locally as you edit.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive interface owns the terminal; its logger goes
		// to a file instead of stderr.
		interactive := cmd.Use == "clawtrack"

		var err error
		logger, err = buildLogger(interactive)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// listCmd prints the inventory without entering the interface
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the prize list",
	Long: `Prints the filtered, sorted prize list to stdout.

The flags mirror the interactive controls:
  clawtrack list --search bear --category plush --sort name`,
	RunE: runList,
}

// addCmd adds one record without entering the interface
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a prize from the command line",
	Long: `Adds a single prize record and saves immediately.

Example:
  clawtrack add --name "Kirby plush" --category plush --qty 2 --date 2026-08-01`,
	RunE: runAdd,
}

// initCmd writes a default config file for editing
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.File()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
		if err := config.Save(config.DefaultConfig()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the clawtrack version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clawtrack %s\n", version)
	},
}

var (
	// list flags
	listSearch   string
	listCategory string
	listSort     string

	// add flags
	addName     string
	addCategory string
	addMaker    string
	addQty      int
	addDate     string
	addPhoto    string
	addNotes    string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "store backend: file, sqlite or memory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (overrides config)")

	listCmd.Flags().StringVar(&listSearch, "search", "", "substring match on name")
	listCmd.Flags().StringVar(&listCategory, "category", "all", "category filter")
	listCmd.Flags().StringVar(&listSort, "sort", "newest", "sort order: newest, name or name-desc")

	addCmd.Flags().StringVar(&addName, "name", "", "prize name (required)")
	addCmd.Flags().StringVar(&addCategory, "category", string(prize.CategoryOther), "category")
	addCmd.Flags().StringVar(&addMaker, "manufacturer", string(prize.ManufacturerUnknown), "manufacturer")
	addCmd.Flags().IntVar(&addQty, "qty", 1, "quantity")
	addCmd.Flags().StringVar(&addDate, "date", prize.Today().String(), "acquisition date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addPhoto, "photo", "", "path to a photo to embed")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "notes")
	_ = addCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func buildLogger(toFile bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if toFile {
		dir, err := config.Dir()
		if err != nil {
			return zap.NewNop(), nil
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return zap.NewNop(), nil
		}
		cfg.OutputPaths = []string{filepath.Join(dir, "clawtrack.log")}
		cfg.ErrorOutputPaths = cfg.OutputPaths
	}
	return cfg.Build()
}

// loadConfig applies the global flag overrides on top of the config file.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using defaults", zap.Error(err))
	}
	if storeKind != "" {
		cfg.Store = storeKind
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// openStore resolves the configured backend and data directory.
func openStore(cfg config.Config) (store.Store, error) {
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	st, err := store.Open(cfg.Store, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

func runInteractive() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	col := inventory.NewCollection()
	col.Hydrate(inventory.Load(st, logger))

	saver := inventory.NewSaver(st, inventory.SaverOptions{
		SaveDelay:   cfg.SaveDelay(),
		SavedNotice: cfg.SavedNotice(),
		Logger:      logger,
	})
	col.SetOnChange(saver.RecordChange)
	saver.MarkHydrated()

	m := ui.New(col, saver, ui.NewStyles(ui.ThemeByName(cfg.Theme)), logger)

	var p *tea.Program
	m.SetSend(func(msg tea.Msg) {
		if p != nil {
			p.Send(msg)
		}
	})
	p = tea.NewProgram(m, tea.WithAltScreen())

	saver.SetOnStatus(ui.StatusRelay(p.Send))

	_, runErr := p.Run()

	// Quit must not drop the last debounce window's edits.
	if err := saver.Flush(); err != nil {
		logger.Error("final save failed", zap.Error(err))
	}
	saver.Close()

	return runErr
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	sortOrder, err := inventory.ParseSortOrder(listSort)
	if err != nil {
		return err
	}

	cat := prize.Category(listCategory)
	if cat != prize.CategoryAll && !cat.Valid() {
		return fmt.Errorf("unknown category %q", listCategory)
	}

	query := inventory.Query{
		Search:   listSearch,
		Category: cat,
		Sort:     sortOrder,
	}
	projection := query.Apply(inventory.Load(st, logger))

	if len(projection) == 0 {
		fmt.Println("no prizes found")
		return nil
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))
	for _, rec := range projection {
		qty := ""
		if rec.Quantity != 1 {
			qty = fmt.Sprintf(" ×%d", rec.Quantity)
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			styles.Bold.Render(rec.Name+qty),
			styles.Muted.Render(fmt.Sprintf("  %s · %s · %s", rec.Category, rec.Manufacturer, rec.AcquisitionDate)),
		)
		fmt.Println(line)
		if rec.Notes != "" {
			first := strings.SplitN(rec.Notes, "\n", 2)[0]
			fmt.Println(styles.Muted.Render("    " + first))
		}
	}
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name := strings.TrimSpace(addName)
	if name == "" {
		return fmt.Errorf("--name must not be empty")
	}
	date, err := prize.ParseDate(addDate)
	if err != nil {
		return err
	}
	if addQty < 0 {
		return fmt.Errorf("--qty must be non-negative")
	}

	cat := prize.Category(addCategory)
	if !cat.Valid() {
		return fmt.Errorf("unknown category %q", addCategory)
	}

	rec := prize.Record{
		Identifier:      prize.NewIdentifier(),
		Name:            name,
		Category:        cat,
		Manufacturer:    prize.Manufacturer(addMaker),
		Quantity:        addQty,
		AcquisitionDate: date,
		Notes:           addNotes,
	}
	if addPhoto != "" {
		rec.Photo, err = prize.EncodePhoto(addPhoto)
		if err != nil {
			return err
		}
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	col := inventory.NewCollection()
	col.Hydrate(inventory.Load(st, logger))

	// Same change/flush path the interface uses, minus the debounce wait.
	saver := inventory.NewSaver(st, inventory.SaverOptions{Logger: logger})
	col.SetOnChange(saver.RecordChange)
	saver.MarkHydrated()
	defer saver.Close()

	col.Upsert(rec)
	if err := saver.Flush(); err != nil {
		return err
	}

	fmt.Printf("added %q (%s)\n", rec.Name, rec.Identifier)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
