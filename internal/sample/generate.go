// Package sample produces and inspects basket transaction CSV files of the
// shape the prediction backend expects.
package sample

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/Veraticus/basket-insights/internal/common"
	"github.com/Veraticus/basket-insights/internal/model"
)

// Product is a catalog entry used for synthetic baskets.
type Product struct {
	Name     string
	Category string
	ID       int
	Price    float64
}

// Catalog is the fixed product list baskets are drawn from.
var Catalog = []Product{
	{ID: 101, Name: "Diapers", Category: "Baby Products", Price: 15.99},
	{ID: 102, Name: "Baby Food", Category: "Baby Products", Price: 3.99},
	{ID: 103, Name: "Milk", Category: "Dairy", Price: 2.99},
	{ID: 104, Name: "Bread", Category: "Bakery", Price: 1.99},
	{ID: 105, Name: "Butter", Category: "Dairy", Price: 4.49},
	{ID: 106, Name: "Cereal", Category: "Breakfast", Price: 3.49},
	{ID: 107, Name: "Eggs", Category: "Dairy", Price: 2.79},
	{ID: 108, Name: "Coffee", Category: "Beverages", Price: 6.99},
	{ID: 109, Name: "Pasta", Category: "Pantry", Price: 1.49},
	{ID: 110, Name: "Sauce", Category: "Pantry", Price: 2.29},
}

// Stores are the store IDs transactions are spread across.
var Stores = []int{55, 56, 57, 58}

// Columns is the header of a generated test file.
var Columns = []string{
	"transaction_id",
	"customer_id",
	"product_id",
	"product_name",
	"product_category",
	"quantity",
	"price",
	"purchase_date",
	"store_id",
}

// BundleColumn is appended to training files.
const BundleColumn = "is_bundle_target"

const (
	minBasket       = 2
	maxBasket       = 10
	firstCustomerID = 1000
	diapersID       = 101
	babyFoodID      = 102
)

// Options controls synthetic data generation.
type Options struct {
	End          time.Time
	Transactions int
	Seed         int64
	Train        bool
}

// Generate writes opts.Transactions synthetic baskets as CSV rows, one row
// per product. Output is deterministic for a given seed and end date.
func Generate(w io.Writer, opts Options) (int, error) {
	if opts.Transactions < 0 {
		return 0, fmt.Errorf("%w: transactions must not be negative, got %d", common.ErrInvalidInput, opts.Transactions)
	}
	if opts.End.IsZero() {
		opts.End = time.Now()
	}

	rng := rand.New(rand.NewSource(opts.Seed)) //nolint:gosec // synthetic data
	cw := csv.NewWriter(w)

	header := append([]string(nil), Columns...)
	if opts.Train {
		header = append(header, BundleColumn)
	}
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	start := opts.End.AddDate(-1, 0, 0)
	span := int(opts.End.Sub(start).Hours()/24) + 1

	rows := 0
	customerID := firstCustomerID
	for txn := 1; txn <= opts.Transactions; txn++ {
		size := minBasket + rng.Intn(maxBasket-minBasket+1)
		basket := pick(rng, size)
		date := start.AddDate(0, 0, rng.Intn(span))

		for _, p := range basket {
			line := model.Transaction{
				TransactionID:   txn,
				CustomerID:      customerID,
				ProductID:       p.ID,
				ProductName:     p.Name,
				ProductCategory: p.Category,
				Quantity:        1 + rng.Intn(5),
				Price:           p.Price,
				Date:            date,
				StoreID:         Stores[rng.Intn(len(Stores))],
			}
			record := line.Record()
			if opts.Train {
				record = append(record, bundleTarget(rng, p, basket))
			}
			if err := cw.Write(record); err != nil {
				return rows, fmt.Errorf("failed to write row: %w", err)
			}
			rows++
		}

		customerID += rng.Intn(6)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return rows, fmt.Errorf("failed to flush csv: %w", err)
	}
	return rows, nil
}

// pick draws size distinct products from the catalog.
func pick(rng *rand.Rand, size int) []Product {
	perm := rng.Perm(len(Catalog))
	out := make([]Product, 0, size)
	for _, i := range perm[:size] {
		out = append(out, Catalog[i])
	}
	return out
}

// bundleTarget marks Diapers and Baby Food bought together, plus a 30%
// background rate for everything else.
func bundleTarget(rng *rand.Rand, p Product, basket []Product) string {
	has := func(id int) bool {
		for _, b := range basket {
			if b.ID == id {
				return true
			}
		}
		return false
	}

	if (p.ID == diapersID && has(babyFoodID)) || (p.ID == babyFoodID && has(diapersID)) || rng.Float64() < 0.3 {
		return "1"
	}
	return "0"
}
