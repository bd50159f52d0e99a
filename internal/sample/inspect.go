package sample

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// RequiredColumns are the columns the prediction backend needs.
var RequiredColumns = []string{"customer_id", "product_name", "product_category", "store_id"}

// ErrEmptyFile indicates the CSV has a header but no rows, or nothing at all.
var ErrEmptyFile = errors.New("uploaded file is empty")

// Summary describes a transactions CSV.
type Summary struct {
	Missing   []string
	Products  []string
	Rows      int
	Customers int
}

// OK reports whether every required column is present.
func (s Summary) OK() bool {
	return len(s.Missing) == 0
}

// Inspect reads a transactions CSV and reports its shape.
func Inspect(r io.Reader) (Summary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Summary{}, ErrEmptyFile
	}
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	var summary Summary
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			summary.Missing = append(summary.Missing, col)
		}
	}

	customerCol, hasCustomer := index["customer_id"]
	productCol, hasProduct := index["product_name"]
	customers := make(map[string]struct{})
	products := make(map[string]struct{})

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("failed to read row %d: %w", summary.Rows+2, err)
		}
		summary.Rows++

		if hasCustomer && customerCol < len(record) {
			customers[record[customerCol]] = struct{}{}
		}
		if hasProduct && productCol < len(record) {
			products[record[productCol]] = struct{}{}
		}
	}

	if summary.Rows == 0 {
		return summary, ErrEmptyFile
	}

	summary.Customers = len(customers)
	for p := range products {
		summary.Products = append(summary.Products, p)
	}
	sort.Strings(summary.Products)

	return summary, nil
}
