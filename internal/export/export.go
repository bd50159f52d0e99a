// Package export serializes association lists to downloadable files.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/basket-insights/internal/model"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Format is an export file format.
type Format string

// Supported export formats.
const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatExcel Format = "xlsx"
)

// BaseName is the file name stem used for every export.
const BaseName = "associations"

// CSVHeader is the first line of every CSV export.
const CSVHeader = "customer_id,products,confidence"

const sheetName = "Associations"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatExcel:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// FileName returns the download name for a format, e.g. associations.csv.
func (f Format) FileName() string {
	return BaseName + "." + string(f)
}

// CSV renders associations as CSV text. Products are joined with commas and
// nothing is quoted, so product names containing commas or quotes produce
// rows with extra columns. Confidence is written the way a JavaScript
// template literal prints a number.
func CSV(associations []model.Association) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	for _, a := range associations {
		b.WriteByte('\n')
		b.WriteString(a.CustomerID.String())
		b.WriteByte(',')
		b.WriteString(strings.Join(a.Products, ","))
		b.WriteByte(',')
		b.WriteString(formatNumber(a.Confidence))
	}
	return b.String()
}

// formatNumber prints f in its shortest round-trip form, switching to
// exponent notation below 1e-6 and from 1e21 up (1e-7, 1.5e+21).
func formatNumber(f float64) string {
	switch {
	case f == 0:
		return "0"
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// JSON renders associations as an indented JSON array.
func JSON(associations []model.Association) ([]byte, error) {
	if associations == nil {
		associations = []model.Association{}
	}
	data, err := json.MarshalIndent(associations, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal associations: %w", err)
	}
	return data, nil
}

// XLSX renders associations as an Excel workbook with the CSV columns plus
// the description.
func XLSX(associations []model.Association) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []any{"customer_id", "products", "confidence", "description"}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, a := range associations {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve row %d: %w", i+2, err)
		}
		row := []any{
			a.CustomerID.String(),
			strings.Join(a.Products, ","),
			a.Confidence,
			a.Description,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Render encodes associations in the requested format.
func Render(format Format, associations []model.Association) ([]byte, error) {
	switch format {
	case FormatCSV:
		return []byte(CSV(associations)), nil
	case FormatJSON:
		return JSON(associations)
	case FormatExcel:
		return XLSX(associations)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteFile writes the full association list to dir using the format's
// download name and returns the written path.
func WriteFile(dir string, format Format, associations []model.Association) (string, error) {
	data, err := Render(format, associations)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	// Write next to the target and rename so a reader never sees a partial file.
	path := filepath.Join(dir, format.FileName())
	tmp := filepath.Join(dir, fmt.Sprintf(".%s_%s.tmp", BaseName, uuid.New().String()))
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
