package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thiruselvaa/odcs-converter/internal/codec"
	"github.com/thiruselvaa/odcs-converter/internal/config"
	"github.com/thiruselvaa/odcs-converter/internal/contract"
	"github.com/thiruselvaa/odcs-converter/internal/converter"
	"github.com/thiruselvaa/odcs-converter/internal/logging"
	"github.com/thiruselvaa/odcs-converter/internal/web"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// app carries the loaded configuration and service shared by all commands.
type app struct {
	cfg *config.Config
	svc *converter.Service
}

func rootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "odcs-converter",
		Short: "Convert ODCS data contracts between JSON, YAML and Excel",
		Long: `odcs-converter transforms Open Data Contract Standard documents into
multi-sheet Excel workbooks and back, preserving every field and nested
relationship.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
			a.cfg = cfg
			a.svc = converter.New(cfg)
			return nil
		},
	}

	root.AddCommand(
		convertCmd(a),
		toExcelCmd(a),
		toODCSCmd(a),
		validateCmd(a),
		templateCmd(a),
		formatsCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return root
}

func convertCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert between contract documents and workbooks",
		Long: `Convert infers the direction from the file extensions: a .xlsx input is
parsed back to a document, a .json/.yaml input is projected to a workbook,
and two textual paths convert between JSON and YAML.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]
			if dryRun {
				result, _, err := a.svc.ValidateFile(cmd.Context(), input)
				if err != nil {
					return err
				}
				printValidation(cmd, input, result)
				fmt.Fprintf(cmd.OutOrStdout(), "dry run: would write %s\n", output)
				return nil
			}
			if err := a.svc.Convert(cmd.Context(), input, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the input and report the plan without writing")
	return cmd
}

func toExcelCmd(a *app) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "to-excel [input] <output.xlsx>",
		Short: "Generate an Excel workbook from a contract document",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if url != "" {
				if len(args) != 1 {
					return fmt.Errorf("with --url, pass only the output path")
				}
				if err := a.svc.GenerateFromURL(cmd.Context(), url, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
				return nil
			}
			if len(args) != 2 {
				return fmt.Errorf("pass an input document and an output path, or use --url")
			}
			if err := a.svc.GenerateFromFile(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "fetch the contract document from a URL instead of a file")
	return cmd
}

func toODCSCmd(a *app) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "to-odcs <input.xlsx> <output>",
		Short: "Reconstruct a contract document from an Excel workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(a, formatName, args[1])
			if err != nil {
				return err
			}
			report, err := a.svc.ParseToFile(cmd.Context(), args[0], args[1], format)
			if err != nil {
				return err
			}
			for _, w := range report.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&formatName, "format", "", "output format: json or yaml (default: by extension)")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input>",
		Short: "Validate a contract document or workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, report, err := a.svc.ValidateFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if report != nil {
				for _, w := range report.Warnings {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
				}
			}
			printValidation(cmd, args[0], result)
			if !result.Valid {
				return fmt.Errorf("contract validation failed with %d error(s)", len(result.Errors))
			}
			return nil
		},
	}
}

func templateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "template <output.xlsx>",
		Short: "Write an empty workbook template with all sheets and headers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.WriteTemplate(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}

func formatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported input and output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range a.svc.Formats() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %-14s %s\n", f.Name, strings.Join(f.Extensions, ", "), f.Direction)
			}
			return nil
		},
	}
}

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the converter HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := web.NewServer(a.svc, a.cfg)

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh

				slog.Info("shutting down...")
				ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
				defer cancel()
				if err := server.Shutdown(ctx); err != nil {
					slog.Error("shutdown error", "error", err)
				}
			}()

			slog.Info("server starting", "addr", a.cfg.Server.Addr())
			err := server.Start(a.cfg.Server.Addr())
			slog.Info("server stopped", "error", err)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the converter version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "odcs-converter %s\n", version)
		},
	}
}

// outputFormat resolves the textual output format from the flag, the output
// path extension, or the configured default, in that order.
func outputFormat(a *app, flag, outputPath string) (codec.Format, error) {
	if flag != "" {
		return codec.ParseFormat(flag)
	}
	if f, err := codec.DetectFormat(outputPath); err == nil {
		return f, nil
	}
	return a.svc.DefaultFormat(), nil
}

func printValidation(cmd *cobra.Command, path string, result *contract.ValidationResult) {
	if result.Valid {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", path)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d validation error(s)\n", path, len(result.Errors))
	for _, e := range result.Errors {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", e.Error())
	}
}
