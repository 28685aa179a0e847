package web

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/thiruselvaa/odcs-converter/internal/codec"
	"github.com/thiruselvaa/odcs-converter/internal/contract"
	"github.com/thiruselvaa/odcs-converter/internal/workbook"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeJSON = "application/json"
	contentTypeYAML = "application/yaml"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleFormats lists supported input/output formats.
func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"formats": s.service.Formats(),
		"default": string(s.service.DefaultFormat()),
	})
}

// handleTemplate streams an empty workbook ready for hand editing.
func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	f, err := workbook.Template()
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="odcs-template.xlsx"`)
	if _, err := f.WriteTo(w); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
	}
}

// validateResponse is the JSON body returned by POST /api/validate.
type validateResponse struct {
	Valid    bool                  `json:"valid"`
	Errors   []contract.FieldError `json:"errors,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
}

// handleValidate validates a contract supplied as JSON, YAML, or a workbook.
// Validation is advisory: the response is 200 either way, with the result in
// the body.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if isWorkbookRequest(r) {
		doc, report, err := s.service.ParseWorkbook(r.Context(), bodyReader(r, s.cfg.Server.MaxBodySize))
		if err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
		result := contract.Validate(doc)
		writeJSON(w, http.StatusOK, validateResponse{
			Valid:    result.Valid,
			Errors:   result.Errors,
			Warnings: warningStrings(report),
		})
		return
	}

	data, format, err := readDocumentBody(r, s.cfg.Server.MaxBodySize, s.service.DefaultFormat())
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	doc, raw, err := codec.Decode(data, format)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	result := contract.ValidateRaw(doc, raw)
	writeJSON(w, http.StatusOK, validateResponse{Valid: result.Valid, Errors: result.Errors})
}

// handleToExcel converts a JSON/YAML contract in the request body into a
// workbook attachment.
func (s *Server) handleToExcel(w http.ResponseWriter, r *http.Request) {
	data, format, err := readDocumentBody(r, s.cfg.Server.MaxBodySize, s.service.DefaultFormat())
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	f, result, err := s.service.GenerateWorkbook(r.Context(), data, format)
	if err != nil {
		status := http.StatusBadRequest
		if isValidationError(err) {
			status = http.StatusUnprocessableEntity
		}
		s.respondError(w, r, err, status)
		return
	}

	if result != nil && !result.Valid {
		w.Header().Set("X-Validation-Errors", strconv.Itoa(len(result.Errors)))
	}
	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="contract.xlsx"`)
	if _, err := f.WriteTo(w); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
	}
}

// handleToODCS converts a workbook in the request body back into a contract
// document. The output format comes from the "format" query parameter,
// defaulting to the configured format.
func (s *Server) handleToODCS(w http.ResponseWriter, r *http.Request) {
	format := s.service.DefaultFormat()
	if q := r.URL.Query().Get("format"); q != "" {
		var err error
		if format, err = codec.ParseFormat(q); err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
	}

	doc, report, err := s.service.ParseWorkbook(r.Context(), bodyReader(r, s.cfg.Server.MaxBodySize))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	out, err := codec.EncodeDocument(doc, format)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	if len(report.Warnings) > 0 {
		w.Header().Set("X-Parse-Warnings", strconv.Itoa(len(report.Warnings)))
	}
	if format == codec.FormatJSON {
		w.Header().Set("Content-Type", contentTypeJSON)
	} else {
		w.Header().Set("Content-Type", contentTypeYAML)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// readDocumentBody reads a bounded textual document body and resolves its
// format from the "format" query parameter or the Content-Type.
func readDocumentBody(r *http.Request, maxSize int64, fallback codec.Format) ([]byte, codec.Format, error) {
	data, err := io.ReadAll(bodyReader(r, maxSize))
	if err != nil {
		return nil, "", err
	}

	if q := r.URL.Query().Get("format"); q != "" {
		format, err := codec.ParseFormat(q)
		if err != nil {
			return nil, "", err
		}
		return data, format, nil
	}

	ct := r.Header.Get("Content-Type")
	switch {
	case strings.Contains(ct, "json"):
		return data, codec.FormatJSON, nil
	case strings.Contains(ct, "yaml"):
		return data, codec.FormatYAML, nil
	}
	return data, fallback, nil
}

func bodyReader(r *http.Request, maxSize int64) io.Reader {
	return io.LimitReader(r.Body, maxSize)
}

func isWorkbookRequest(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), "spreadsheet") ||
		strings.Contains(r.Header.Get("Content-Type"), "octet-stream")
}

func warningStrings(report *workbook.ParseReport) []string {
	if report == nil || len(report.Warnings) == 0 {
		return nil
	}
	out := make([]string, len(report.Warnings))
	for i, w := range report.Warnings {
		out[i] = w.String()
	}
	return out
}
