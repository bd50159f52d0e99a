package sample

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/basket-insights/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedEnd = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	rows, err := Generate(&buf, Options{Transactions: 50, Seed: 42, End: fixedEnd})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	assert.Equal(t, Columns, records[0])
	assert.Len(t, records[1:], rows)
	assert.GreaterOrEqual(t, rows, 50*minBasket)
	assert.LessOrEqual(t, rows, 50*maxBasket)

	names := make(map[string]bool, len(Catalog))
	for _, p := range Catalog {
		names[p.Name] = true
	}
	for _, r := range records[1:] {
		assert.True(t, names[r[3]], "unexpected product %q", r[3])
		assert.Contains(t, []string{"55", "56", "57", "58"}, r[8])

		date, err := time.Parse("2006-01-02", r[7])
		require.NoError(t, err)
		assert.False(t, date.After(fixedEnd))
		assert.False(t, date.Before(fixedEnd.AddDate(-1, 0, 0)))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	_, err := Generate(&a, Options{Transactions: 20, Seed: 7, End: fixedEnd})
	require.NoError(t, err)
	_, err = Generate(&b, Options{Transactions: 20, Seed: 7, End: fixedEnd})
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestGenerate_Train(t *testing.T) {
	var buf bytes.Buffer
	_, err := Generate(&buf, Options{Transactions: 10, Seed: 1, End: fixedEnd, Train: true})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, BundleColumn, records[0][len(records[0])-1])
	for _, r := range records[1:] {
		assert.Contains(t, []string{"0", "1"}, r[len(r)-1])
	}
}

func TestGenerate_NoDuplicateProductsPerBasket(t *testing.T) {
	var buf bytes.Buffer
	_, err := Generate(&buf, Options{Transactions: 30, Seed: 3, End: fixedEnd})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	seen := map[string]map[string]bool{}
	for _, r := range records[1:] {
		txn, product := r[0], r[2]
		if seen[txn] == nil {
			seen[txn] = map[string]bool{}
		}
		assert.False(t, seen[txn][product], "product %s repeated in transaction %s", product, txn)
		seen[txn][product] = true
	}
}

func TestGenerate_NegativeCount(t *testing.T) {
	_, err := Generate(&bytes.Buffer{}, Options{Transactions: -1})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestInspect(t *testing.T) {
	var buf bytes.Buffer
	rows, err := Generate(&buf, Options{Transactions: 15, Seed: 9, End: fixedEnd})
	require.NoError(t, err)

	summary, err := Inspect(&buf)
	require.NoError(t, err)
	assert.True(t, summary.OK())
	assert.Equal(t, rows, summary.Rows)
	assert.Positive(t, summary.Customers)
	assert.NotEmpty(t, summary.Products)
}

func TestInspect_MissingColumns(t *testing.T) {
	summary, err := Inspect(strings.NewReader("customer_id,product_name\n1,Milk\n"))
	require.NoError(t, err)
	assert.False(t, summary.OK())
	assert.Equal(t, []string{"product_category", "store_id"}, summary.Missing)
	assert.Equal(t, []string{"Milk"}, summary.Products)
}

func TestInspect_Empty(t *testing.T) {
	_, err := Inspect(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = Inspect(strings.NewReader(strings.Join(RequiredColumns, ",") + "\n"))
	require.ErrorIs(t, err, ErrEmptyFile)
}
