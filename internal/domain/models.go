package domain

import (
	"github.com/shopspring/decimal"
)

// Product is one inventory item. Timestamps are milliseconds since the epoch.
type Product struct {
	ID        string  `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
	ImageURI  *string `db:"image_uri" json:"image_uri"` // nil means no photo
	CreatedAt int64   `db:"created_at" json:"created_at"`
	UpdatedAt int64   `db:"updated_at" json:"updated_at"`
}

func (p Product) HasImage() bool { return p.ImageURI != nil }

// DisplayPrice renders the price with two decimals.
func (p Product) DisplayPrice() string { return FormatPrice(p.Price) }

// StockValue is quantity times price.
func (p Product) StockValue() decimal.Decimal {
	return decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Quantity)))
}

type CreateProductInput struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Price    float64 `json:"price" validate:"gte=0"`
	ImageURI *string `json:"image_uri"`
}

// UpdateProductInput names the subset of fields to change. Unset fields are
// left untouched; ImageURI set to nil clears the photo.
type UpdateProductInput struct {
	Name     Optional[string]  `json:"name"`
	Quantity Optional[int]     `json:"quantity"`
	Price    Optional[float64] `json:"price"`
	ImageURI Optional[*string] `json:"image_uri"`
}

// SetImage and ClearImage build the two set states of ImageURI.
func SetImage(uri string) Optional[*string] { return Some(&uri) }
func ClearImage() Optional[*string]         { return Some[*string](nil) }

// FormatPrice rounds half away from zero to two decimals.
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).StringFixed(2)
}

type Summary struct {
	Count      int             `json:"count"`
	Units      int             `json:"units"`
	TotalValue decimal.Decimal `json:"total_value"`
}
