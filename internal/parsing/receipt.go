package parsing

import "time"

const (
	// UnrecognizedStore is reported when no known store alias appears in the header lines
	UnrecognizedStore = "unrecognized"

	// Uncategorized is the category given to items no keyword matches
	Uncategorized = "uncategorized"
)

// ReceiptData is the structured result of interpreting one receipt transcript
type ReceiptData struct {
	StoreName   string        `json:"store_name"`
	TotalAmount float64       `json:"total_amount"`
	Date        time.Time     `json:"date"` // capture time, not read from the receipt
	Items       []ReceiptItem `json:"items"`
}

// ReceiptItem is a single purchased line
type ReceiptItem struct {
	Name     string  `json:"name"`
	// Price is per unit: the line amount divided by Quantity, rounded to
	// cents, so Price × Quantity can differ from the printed amount by a cent.
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category"`
}

// ItemsTotal sums price × quantity over the items
func (r *ReceiptData) ItemsTotal() float64 {
	var sum float64
	for _, item := range r.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}
