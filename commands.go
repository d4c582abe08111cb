package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"datacleaners/models"
	"datacleaners/services"
	"datacleaners/storage"
	"datacleaners/web"
)

// createServeCmd starts the browser front end.
func createServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				cfg.HTTPPort = port
			}
			logger.Info("=== Data Cleaners starting ===")
			logger.Info("Config: addr %s | max upload %d MB | default city %s",
				cfg.Addr(), cfg.MaxUploadMB, cfg.DefaultCity)

			srv, err := web.NewServer(cfg, logger, pipeline)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides HTTP_PORT)")

	return cmd
}

func createLeadsCmd() *cobra.Command {
	var input, output, city string

	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Clean a scraped business-listing CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(city) == "" {
				city = cfg.DefaultCity
			}
			upload, err := readInput(input)
			if err != nil {
				return err
			}
			leads, err := pipeline.CleanLeads(upload, city)
			if err != nil {
				var schemaErr *services.SchemaError
				if errors.As(err, &schemaErr) {
					logger.Warn("%s", schemaErr.Hint())
				}
				return err
			}
			if output == "" {
				output = services.LeadsFileName(city)
			}
			if err := writeOutput(output, "Leads", models.LeadHeader, storage.LeadRecords(leads)); err != nil {
				return err
			}

			fmt.Printf("\nCleaning complete! Found %d valid leads.\n", len(leads))
			fmt.Printf("Saved → %s\n\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Raw scraped CSV file")
	cmd.Flags().StringVar(&output, "output", "", "Output file (.csv or .xlsx); defaults to Cleaned_<city>_Leads.csv")
	cmd.Flags().StringVar(&city, "city", "", "City label for every lead (defaults to DEFAULT_CITY)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func createKeywordsCmd() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Extract commercial high-intent keywords from a Keyword Planner export",
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, err := readInput(input)
			if err != nil {
				return err
			}
			res, err := pipeline.FilterKeywords(upload)
			if err != nil {
				return err
			}
			if output == "" {
				output = services.CommercialKeywordsFileName
			}
			if err := writeOutput(output, "Keywords", res.Header, storage.KeywordRecords(res.Keywords)); err != nil {
				return err
			}

			m := res.Metrics
			fmt.Printf("\n=== Commercial High-Intent Keywords ===\n")
			fmt.Printf("Total Commercial Keywords: %d\n", m.Total)
			fmt.Printf("Total Commercial Volume:   %s\n", services.FormatVolume(m.TotalSearches))
			fmt.Printf("Avg. Market CPC:           %s\n", services.FormatCPC(cfg.CurrencySymbol, m.AvgCPC))
			fmt.Printf("Saved → %s\n\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Keyword Planner CSV export (UTF-16 or UTF-8, tab-separated)")
	cmd.Flags().StringVar(&output, "output", "", "Output file (.csv or .xlsx)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func createReportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "report FILE...",
		Short: "Compare commercial keyword demand across niche exports",
		Long:  `Builds one report row per Keyword Planner export, named after the file. Files that cannot be read are skipped and listed.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uploads := make([]models.Upload, 0, len(args))
			var skipped []*services.FileError
			for _, path := range args {
				u, err := readInput(path)
				if err != nil {
					skipped = append(skipped, &services.FileError{File: filepath.Base(path), Err: err})
					continue
				}
				uploads = append(uploads, u)
			}

			reports, errs := pipeline.Report(uploads)
			skipped = append(skipped, errs...)
			pipeline.Reporter.Print(os.Stdout, cfg.CurrencySymbol, reports, skipped)

			if len(reports) == 0 {
				return errors.New("none of the files could be processed")
			}
			if output == "" {
				return nil
			}
			if err := writeOutput(output, "Niche Report", models.NicheReportHeader, storage.NicheReportRecords(reports)); err != nil {
				return err
			}
			logger.Info("[report] Saved → %s", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Also write the report to this file (.csv or .xlsx)")

	return cmd
}

func createCleanExportCmd() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "clean-export",
		Short: "Normalize percentages and fill gaps in a converted keyword export",
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, err := readInput(input)
			if err != nil {
				return err
			}
			res, err := pipeline.CleanExport(upload)
			if err != nil {
				return err
			}
			if output == "" {
				output = services.CleanedExportFileName
			}
			if err := writeOutput(output, "Keywords", res.Table.Header, res.Table.Rows); err != nil {
				return err
			}

			fmt.Printf("\nCleaned %d rows; dropped %d empty columns.\n", len(res.Table.Rows), len(res.DroppedColumns))
			fmt.Printf("Saved → %s\n\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Comma-separated keyword export")
	cmd.Flags().StringVar(&output, "output", "", "Output file (.csv or .xlsx)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// readInput loads a local file the same way an upload is loaded.
func readInput(path string) (models.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Upload{}, fmt.Errorf("read input: %w", err)
	}
	return models.Upload{Name: filepath.Base(path), Data: data}, nil
}

// writeOutput writes records to path as XLSX when the extension says so,
// CSV otherwise.
func writeOutput(path, sheet string, header []string, records [][]string) error {
	f, err := storage.CreateFile(path)
	if err != nil {
		return err
	}

	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		cw, err := storage.NewCSVWriter(f, header)
		if err != nil {
			_ = f.Close()
			return err
		}
		return storage.WriteTable(cw, records)
	}

	xw, err := storage.NewXLSXWriter(f, sheet, header)
	if err != nil {
		_ = f.Close()
		return err
	}
	if err := storage.WriteTable(xw, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
