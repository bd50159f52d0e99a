package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransaction_Record(t *testing.T) {
	txn := Transaction{
		TransactionID:   7,
		CustomerID:      1001,
		ProductID:       101,
		ProductName:     "Diapers",
		ProductCategory: "Baby",
		Quantity:        2,
		Price:           12.5,
		Date:            time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC),
		StoreID:         55,
	}

	assert.Equal(t,
		[]string{"7", "1001", "101", "Diapers", "Baby", "2", "12.50", "2025-03-04", "55"},
		txn.Record(),
	)
}
