package common

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Retailer identifies one of the supported supermarket chains.
type Retailer string

const (
	RetailerDisco         Retailer = "disco"
	RetailerTiendaInglesa Retailer = "tienda_inglesa"
)

// Retailers lists the supported chains in display order.
var Retailers = []Retailer{RetailerDisco, RetailerTiendaInglesa}

// DisplayName returns the retailer name as shown to the user.
func (r Retailer) DisplayName() string {
	switch r {
	case RetailerDisco:
		return "Disco"
	case RetailerTiendaInglesa:
		return "Tienda Inglesa"
	}
	return string(r)
}

// ParseRetailer maps free-form retailer names ("Disco", "tienda inglesa")
// onto the enum. Returns false for unknown chains.
func ParseRetailer(s string) (Retailer, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disco":
		return RetailerDisco, true
	case "tienda inglesa", "tienda_inglesa":
		return RetailerTiendaInglesa, true
	}
	return "", false
}

// Product is one catalog record: a product name priced at one retailer.
// The snapshot is read-only input; it is fetched once per resolution run.
type Product struct {
	Name     string          `json:"nombre_producto"`
	Retailer string          `json:"supermercado"`
	Price    decimal.Decimal `json:"precio"`
	Group    string          `json:"grupo,omitempty"`
	ID       string          `json:"id,omitempty"`
}

// OrderLine is a purchasable line in a retailer order.
// Invariant: LineTotal = UnitPrice × PackCount.
type OrderLine struct {
	ProductName string          `json:"nombre"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	PackSize    float64         `json:"presentacion"`
	PackCount   int             `json:"cantidad"`
	LineTotal   decimal.Decimal `json:"precio_total"`
	CatalogID   string          `json:"producto_id,omitempty"`
}

// RetailerOrder collects the order lines of a single retailer.
// After consolidation each product name appears at most once.
type RetailerOrder struct {
	Retailer Retailer        `json:"supermercado"`
	Lines    []OrderLine     `json:"productos"`
	Total    decimal.Decimal `json:"total"`
}

// Order maps each retailer to its pending order.
type Order map[Retailer]*RetailerOrder

// RecalcTotal recomputes the order total from its lines.
func (o *RetailerOrder) RecalcTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.LineTotal)
	}
	o.Total = total
}
