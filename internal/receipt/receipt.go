package receipt

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/zombor/receipt-reader/internal/parsing"
)

var (
	// ErrNotFound is returned when a receipt or its file does not exist
	ErrNotFound = errors.New("receipt not found")
	// ErrInvalidReceipt is returned when a confirmed receipt fails validation
	ErrInvalidReceipt = errors.New("invalid receipt")
)

// Receipt is a scanned receipt. Amounts are in agorot/cents.
type Receipt struct {
	ID          string    `json:"id"`
	StoreName   string    `json:"store_name"`
	Date        time.Time `json:"date"`
	Total       int       `json:"total"`
	Items       []Item    `json:"items"`
	Filename    string    `json:"filename,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Item is one purchased line; Price is per unit
type Item struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
}

// LineTotal is the price of all units on the line
func (i Item) LineTotal() int {
	return i.Price * i.Quantity
}

// ItemsTotal sums the line totals of every item
func (r *Receipt) ItemsTotal() int {
	total := 0
	for _, item := range r.Items {
		total += item.LineTotal()
	}
	return total
}

// Validate checks a receipt before it is persisted
func (r *Receipt) Validate() error {
	if strings.TrimSpace(r.StoreName) == "" {
		return fmt.Errorf("%w: store name is required", ErrInvalidReceipt)
	}
	if r.Total < 0 {
		return fmt.Errorf("%w: total cannot be negative", ErrInvalidReceipt)
	}
	for i, item := range r.Items {
		switch {
		case strings.TrimSpace(item.Name) == "":
			return fmt.Errorf("%w: item %d has no name", ErrInvalidReceipt, i+1)
		case item.Price <= 0:
			return fmt.Errorf("%w: item %q must have a positive price", ErrInvalidReceipt, item.Name)
		case item.Quantity < parsing.MinQuantity || item.Quantity > parsing.MaxQuantity:
			return fmt.Errorf("%w: item %q quantity must be between %d and %d", ErrInvalidReceipt, item.Name, parsing.MinQuantity, parsing.MaxQuantity)
		}
	}
	return nil
}

// fromReceiptData converts parser output into an unsaved Receipt
func fromReceiptData(data *parsing.ReceiptData) *Receipt {
	items := make([]Item, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, Item{
			Name:     item.Name,
			Price:    toCents(item.Price),
			Quantity: item.Quantity,
			Category: item.Category,
		})
	}
	return &Receipt{
		StoreName: data.StoreName,
		Date:      data.Date,
		Total:     toCents(data.TotalAmount),
		Items:     items,
	}
}

func toCents(amount float64) int {
	return int(math.Round(amount * 100))
}
