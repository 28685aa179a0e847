// Package converter orchestrates conversions between contract documents and
// Excel workbooks. It ties together the codec, workbook, contract and fetch
// packages behind one service used by both the CLI and the HTTP API.
package converter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/thiruselvaa/odcs-converter/internal/codec"
	"github.com/thiruselvaa/odcs-converter/internal/config"
	"github.com/thiruselvaa/odcs-converter/internal/contract"
	"github.com/thiruselvaa/odcs-converter/internal/fetch"
	"github.com/thiruselvaa/odcs-converter/internal/logging"
	"github.com/thiruselvaa/odcs-converter/internal/workbook"
)

// Service performs contract conversions according to configuration.
type Service struct {
	cfg    *config.Config
	client *fetch.Client
}

// New builds a conversion service.
func New(cfg *config.Config) *Service {
	return &Service{
		cfg:    cfg,
		client: fetch.New(cfg.Fetch),
	}
}

// DefaultFormat is the textual output format used when none is requested.
func (s *Service) DefaultFormat() codec.Format {
	f, err := codec.ParseFormat(s.cfg.Convert.DefaultFormat)
	if err != nil {
		return codec.FormatYAML
	}
	return f
}

// Convert transforms input into output, inferring the direction from the
// file extensions: a workbook input is parsed to a document, a document
// input is projected to a workbook, and two textual paths convert between
// JSON and YAML.
func (s *Service) Convert(ctx context.Context, inputPath, outputPath string) error {
	log := logging.WithFields(ctx,
		"run_id", uuid.NewString(),
		"input", inputPath,
		"output", outputPath,
	)

	switch {
	case codec.IsWorkbookPath(inputPath) && codec.IsWorkbookPath(outputPath):
		return fmt.Errorf("unknown format: workbook to workbook conversion is not supported")
	case codec.IsWorkbookPath(inputPath):
		format, err := codec.DetectFormat(outputPath)
		if err != nil {
			return err
		}
		report, err := s.ParseToFile(ctx, inputPath, outputPath, format)
		if err != nil {
			return err
		}
		log.Info("workbook parsed", "warnings", len(report.Warnings))
		return nil
	case codec.IsWorkbookPath(outputPath):
		if err := s.GenerateFromFile(ctx, inputPath, outputPath); err != nil {
			return err
		}
		log.Info("workbook generated")
		return nil
	default:
		if err := s.ConvertFormat(ctx, inputPath, outputPath); err != nil {
			return err
		}
		log.Info("format converted")
		return nil
	}
}

// GenerateWorkbook projects document bytes into a workbook. Validation runs
// first; failures are advisory unless strict mode is configured.
func (s *Service) GenerateWorkbook(ctx context.Context, data []byte, format codec.Format) (*excelize.File, *contract.ValidationResult, error) {
	doc, raw, err := codec.Decode(data, format)
	if err != nil {
		return nil, nil, err
	}

	result := contract.ValidateRaw(doc, raw)
	if !result.Valid {
		logging.FromContext(ctx).Warn("contract validation failed",
			"errors", len(result.Errors))
		if s.cfg.Convert.Strict {
			return nil, &result, &ValidationFailedError{Result: &result}
		}
	}

	f, err := workbook.Project(doc)
	if err != nil {
		return nil, &result, err
	}
	return f, &result, nil
}

// GenerateFromFile reads a document file and writes a workbook.
func (s *Service) GenerateFromFile(ctx context.Context, inputPath, outputPath string) error {
	format, err := codec.DetectFormat(inputPath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	f, _, err := s.GenerateWorkbook(ctx, data, format)
	if err != nil {
		return err
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}

// GenerateFromURL fetches a remote document and writes a workbook.
func (s *Service) GenerateFromURL(ctx context.Context, url, outputPath string) error {
	data, format, err := s.client.Document(ctx, url)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info("document fetched", "url", url, "format", format, "bytes", len(data))

	f, _, err := s.GenerateWorkbook(ctx, data, format)
	if err != nil {
		return err
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}

// ParseWorkbook reconstructs a document from workbook bytes.
func (s *Service) ParseWorkbook(ctx context.Context, r io.Reader) (*contract.Document, *workbook.ParseReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	doc, report, err := workbook.Reconstruct(f)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range report.Warnings {
		logging.FromContext(ctx).Warn("workbook row skipped",
			"sheet", w.Sheet, "row", w.Row, "reason", w.Message)
	}
	return doc, report, nil
}

// ParseToFile reads a workbook file and writes the reconstructed document in
// the given textual format.
func (s *Service) ParseToFile(ctx context.Context, inputPath, outputPath string, format codec.Format) (*workbook.ParseReport, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", inputPath, err)
	}
	defer in.Close()

	doc, report, err := s.ParseWorkbook(ctx, in)
	if err != nil {
		return nil, err
	}

	out, err := codec.EncodeDocument(doc, format)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", outputPath, err)
	}
	return report, nil
}

// ConvertFormat rewrites a textual document between JSON and YAML. The
// document goes through the generic map form, so unknown fields survive and
// empty values are stripped.
func (s *Service) ConvertFormat(ctx context.Context, inputPath, outputPath string) error {
	_, raw, _, err := codec.DecodeFile(inputPath)
	if err != nil {
		return err
	}
	format, err := codec.DetectFormat(outputPath)
	if err != nil {
		return err
	}

	out, err := codec.EncodeMap(contract.Clean(raw), format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}

// ValidateFile validates a contract in any supported input format. Workbook
// inputs are reconstructed first; the parse report is returned alongside the
// validation result so callers can show dropped rows.
func (s *Service) ValidateFile(ctx context.Context, path string) (*contract.ValidationResult, *workbook.ParseReport, error) {
	if codec.IsWorkbookPath(path) {
		in, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		defer in.Close()

		doc, report, err := s.ParseWorkbook(ctx, in)
		if err != nil {
			return nil, nil, err
		}
		result := contract.Validate(doc)
		return &result, report, nil
	}

	doc, raw, _, err := codec.DecodeFile(path)
	if err != nil {
		return nil, nil, err
	}
	result := contract.ValidateRaw(doc, raw)
	return &result, nil, nil
}

// WriteTemplate writes an empty, ready-to-fill workbook.
func (s *Service) WriteTemplate(outputPath string) error {
	f, err := workbook.Template()
	if err != nil {
		return err
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}

// FormatInfo describes one supported input/output format.
type FormatInfo struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
	Direction  string   `json:"direction"`
}

// Formats lists the formats the converter accepts and produces.
func (s *Service) Formats() []FormatInfo {
	return []FormatInfo{
		{Name: "json", Extensions: []string{".json"}, Direction: "input/output"},
		{Name: "yaml", Extensions: []string{".yaml", ".yml"}, Direction: "input/output"},
		{Name: "excel", Extensions: []string{".xlsx"}, Direction: "input/output"},
	}
}
