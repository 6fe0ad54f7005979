package domain

import "time"

// ProductData is the brand/material description of a product that scoring works from
type ProductData struct {
	Name           string   `json:"name"`
	Brand          string   `json:"brand"`
	Description    string   `json:"description"`
	Materials      []string `json:"materials"`
	Certifications []string `json:"certifications,omitempty"`
	Origin         string   `json:"origin,omitempty"`
	IsVerified     bool     `json:"isVerified,omitempty"` // verified vs estimated data
}

// Product is a catalog entry (a product group) together with its variants and stored offers
type Product struct {
	ProductData
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	BaseScore int       `json:"baseScore,omitempty"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	Score     int       `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
	CreatedAt time.Time `json:"createdAt"`

	Variants []ProductVariant `json:"variants,omitempty"`
	Offers   []SellerOffer    `json:"offers,omitempty"`
}

// OfferSubject returns the brand/name pair used to label generated offers
func (p *Product) OfferSubject() OfferSubject {
	return OfferSubject{Brand: p.Brand, Name: p.Name}
}

// ProductVariant is a purchasable configuration (size, colour...) of a product
type ProductVariant struct {
	ID        string                 `json:"id"`
	GroupID   string                 `json:"groupId"`
	Name      string                 `json:"name"` // e.g. "Size 10, White"
	Specs     map[string]interface{} `json:"specs,omitempty"`
	BasePrice float64                `json:"basePrice"`
}

// OfferSubject identifies the product group an offer is quoted for
type OfferSubject struct {
	Brand string `json:"brand"`
	Name  string `json:"name"`
}

// StockStatus describes seller availability
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLowStock   StockStatus = "low_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// SellerOffer is a price/availability quote from one seller for a variant
type SellerOffer struct {
	ID           string      `json:"id"`
	VariantID    string      `json:"variantId"`
	SellerName   string      `json:"sellerName"`
	Price        float64     `json:"price"`
	Currency     string      `json:"currency"`
	ShippingCost float64     `json:"shippingCost"`
	DeliveryTime string      `json:"deliveryTime"` // e.g. "2-3 days"
	StockStatus  StockStatus `json:"stockStatus"`
	BuyLink      string      `json:"buyLink"`
	IsVerified   bool        `json:"isVerified"`
}

// ProductDetail is a product with the variant currently selected and the offers for it
type ProductDetail struct {
	Product         *Product       `json:"product"`
	SelectedVariant ProductVariant `json:"selectedVariant"`
	Offers          []SellerOffer  `json:"offers"`
}

// ScanResult is returned by the find-or-add product scanner
type ScanResult struct {
	Product *Product   `json:"product"`
	Created bool       `json:"created"`
	Steps   []ScanStep `json:"steps,omitempty"`
}

// ProductComparison lines up several products side by side
type ProductComparison struct {
	Products []Product `json:"products"`
	Missing  []string  `json:"missing"` // requested ids with no product
}
