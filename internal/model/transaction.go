package model

import (
	"strconv"
	"time"
)

// Transaction is one product line of a purchase, the row format the
// prediction service accepts.
type Transaction struct {
	Date            time.Time
	ProductName     string
	ProductCategory string
	TransactionID   int
	CustomerID      int
	ProductID       int
	Quantity        int
	StoreID         int
	Price           float64
}

// Record renders the transaction in column order: transaction_id,
// customer_id, product_id, product_name, product_category, quantity, price,
// purchase_date, store_id.
func (t Transaction) Record() []string {
	return []string{
		strconv.Itoa(t.TransactionID),
		strconv.Itoa(t.CustomerID),
		strconv.Itoa(t.ProductID),
		t.ProductName,
		t.ProductCategory,
		strconv.Itoa(t.Quantity),
		strconv.FormatFloat(t.Price, 'f', 2, 64),
		t.Date.Format("2006-01-02"),
		strconv.Itoa(t.StoreID),
	}
}
