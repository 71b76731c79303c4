package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ammerola/stock-tracker/internal/adapters/jsonfile"
	"github.com/ammerola/stock-tracker/internal/adapters/spreadsheet"
	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/core/services"
	"github.com/ammerola/stock-tracker/internal/pkg/config"
	"github.com/ammerola/stock-tracker/internal/pkg/logger"
)

// App carries the dependencies shared by every subcommand
type App struct {
	Config *config.Config
	Logger *logger.Logger
	Out    io.Writer

	dataFile string
}

// NewRootCommand builds the inventory command tree
func NewRootCommand(app *App) *cobra.Command {
	if app.Out == nil {
		app.Out = os.Stdout
	}

	rootCmd := &cobra.Command{
		Use:           "inventory",
		Short:         "File-backed stock tracker",
		Long:          "Track item quantities and tags in a JSON data file, report low stock and exchange items with spreadsheets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := logger.WithRunID(cmd.Context())
			ctx = logger.WithCommand(ctx, cmd.Name())
			ctx = logger.WithDataFile(ctx, app.dataFile)
			cmd.SetContext(ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.dataFile, "file", "f", app.Config.Inventory.DataFile, "Inventory data file")

	rootCmd.AddCommand(NewAddCommand(app))
	rootCmd.AddCommand(NewRemoveCommand(app))
	rootCmd.AddCommand(NewQuantityCommand(app))
	rootCmd.AddCommand(NewReportCommand(app))
	rootCmd.AddCommand(NewLowStockCommand(app))
	rootCmd.AddCommand(NewDescribeCommand(app))
	rootCmd.AddCommand(NewExportCommand(app))
	rootCmd.AddCommand(NewImportCommand(app))
	rootCmd.AddCommand(NewVersionCommand(app))

	return rootCmd
}

// NewAddCommand creates the add command
func NewAddCommand(app *App) *cobra.Command {
	var (
		quantity int
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add or replace an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd)
			if err != nil {
				return err
			}

			opts := []domain.RecordOption{domain.WithQuantity(quantity)}
			if len(tags) > 0 {
				opts = append(opts, domain.WithTags(tags...))
			}
			if err := store.Add(args[0], opts...); err != nil {
				return err
			}

			return store.Save(app.dataFile)
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", app.Config.Inventory.DefaultQuantity, "Item quantity")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "Comma separated item tags")

	return cmd
}

// NewRemoveCommand creates the remove command
func NewRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd)
			if err != nil {
				return err
			}

			// An absent item is only a warning; nothing to save
			if !store.Remove(args[0]) {
				return nil
			}

			return store.Save(app.dataFile)
		},
	}
}

// NewQuantityCommand creates the quantity command
func NewQuantityCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quantity NAME",
		Short: "Print the quantity of an item (0 if absent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd)
			if err != nil {
				return err
			}

			fmt.Fprintln(app.Out, store.Quantity(args[0]))
			return nil
		},
	}
}

// NewReportCommand creates the report command
func NewReportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print every item with its quantity and tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd)
			if err != nil {
				return err
			}

			store.Report()

			items := store.Items()
			for _, name := range store.Names() {
				record := items[name]
				fmt.Fprintf(app.Out, "%s\t%d\t%s\n", name, record.Quantity, strings.Join(record.Tags, ","))
			}
			return nil
		},
	}
}

// NewLowStockCommand creates the low-stock command
func NewLowStockCommand(app *App) *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "low-stock",
		Short: "Print the items whose quantity is below the threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd)
			if err != nil {
				return err
			}

			for _, name := range store.LowStock(threshold) {
				fmt.Fprintln(app.Out, name)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", app.Config.Inventory.LowStockThreshold, "Low stock threshold")

	return cmd
}

// NewDescribeCommand creates the describe command
func NewDescribeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print a one-line summary of the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd)
			if err != nil {
				return err
			}

			fmt.Fprintln(app.Out, store.String())
			return nil
		},
	}
}

// NewExportCommand creates the export command
func NewExportCommand(app *App) *cobra.Command {
	var (
		out       string
		threshold int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the inventory to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd)
			if err != nil {
				return err
			}

			if out == "" {
				out = filepath.Join(app.Config.Inventory.ExportDir,
					fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("20060102_150405")))
			}

			exporter := spreadsheet.NewExporter(app.Logger.WithContext(cmd.Context()))
			err = writeFile(out, func(w io.Writer) error {
				return exporter.Export(w, store.Items(), threshold)
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(app.Out, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output workbook path (default: timestamped file in the export directory)")
	cmd.Flags().IntVar(&threshold, "threshold", app.Config.Inventory.LowStockThreshold, "Low stock threshold used for the flag column")

	return cmd
}

// NewImportCommand creates the import command
func NewImportCommand(app *App) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Add the items listed in an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd)
			if err != nil {
				return err
			}

			importer := spreadsheet.NewImporter(store, app.Logger.WithContext(cmd.Context()))
			result, err := importer.ImportFile(in)
			if err != nil {
				return err
			}

			if err := store.Save(app.dataFile); err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "added %d, skipped %d, rejected %d\n",
				result.Added, result.Skipped, result.Rejected)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "Workbook to import (required)")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stock tracker version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(app.Out, "%s %s\n", app.Config.App.Name, app.Config.App.Version)
		},
	}
}

// writeFile creates path and fills it with write. A failed write removes the
// partial file.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close export file: %w", err)
	}
	return nil
}

// openStore loads the data file into a fresh store. A file that exists but
// cannot be loaded aborts the command so a later save cannot overwrite it.
func (app *App) openStore(cmd *cobra.Command) (*services.InventoryStore, error) {
	log := app.Logger.WithContext(cmd.Context())
	log.Debug("opening inventory", slog.String("path", app.dataFile))

	store := services.NewInventoryStore(jsonfile.NewRepository(), log)
	if err := store.Load(app.dataFile); err != nil {
		return nil, err
	}
	return store, nil
}
