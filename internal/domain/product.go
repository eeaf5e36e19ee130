package domain

// Status is the one-character lifecycle code stored in the product table.
// The coding is fixed by the existing data: "A" active, "I" inactive.
type Status string

const (
	StatusActive   Status = "A"
	StatusInactive Status = "I"
)

// Valid reports whether s is one of the two recognized status codes.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Product represents an inventory product row
type Product struct {
	ID            int64   `json:"id" db:"id"`
	Type          string  `json:"type" db:"type"`
	Description   string  `json:"description" db:"description"`
	PackageWeight float64 `json:"packageWeight" db:"package_weight"`
	Stock         int     `json:"stock" db:"stock"`
	EntryDate     Date    `json:"entryDate" db:"entry_date"`
	TypeProduct   string  `json:"typeProduct" db:"type_product"`
	Status        Status  `json:"status" db:"status"`
}

// StockState returns the product's current stock/status pair as seen by the
// stock rules.
func (p *Product) StockState() StockState {
	return StockState{Stock: p.Stock, Status: p.Status}
}

// ApplyStockState writes a rules-engine result back onto the product.
func (p *Product) ApplyStockState(s StockState) {
	p.Stock = s.Stock
	p.Status = s.Status
}
