package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/sustainabuy/backend/internal/domain"
)

const (
	defaultBasePrice  = 100.0
	offerCurrency     = "USD"
	shoppingSearchURL = "https://www.google.com/search"
	fastDelivery      = "2-3 days"
	slowDelivery      = "5-7 days"
	lowStockIndex     = 3
)

type seller struct {
	name            string
	priceMultiplier float64
	shipping        float64
}

// sellers is the fixed list of quoted sellers, in output order
var sellers = []seller{
	{name: "Amazon", priceMultiplier: 0.95, shipping: 0},
	{name: "eBay", priceMultiplier: 0.85, shipping: 5.99},
	{name: "Allbirds", priceMultiplier: 1.1, shipping: 0},
	{name: "Sustainable Goods Co.", priceMultiplier: 1.2, shipping: 0},
}

// GenerateMetaOffers quotes the variant at every known seller, in seller-table order.
// Buy links are shopping search URLs rather than verified product pages.
// A zero (or NaN) base price is treated as 100; negative prices pass through.
func GenerateMetaOffers(subject domain.OfferSubject, variant domain.ProductVariant) []domain.SellerOffer {
	basePrice := variant.BasePrice
	if basePrice == 0 || math.IsNaN(basePrice) {
		basePrice = defaultBasePrice
	}

	offers := make([]domain.SellerOffer, 0, len(sellers))
	for i, s := range sellers {
		deliveryTime := slowDelivery
		if i%2 == 0 {
			deliveryTime = fastDelivery
		}

		stock := domain.StockInStock
		if i == lowStockIndex {
			stock = domain.StockLowStock
		}

		offers = append(offers, domain.SellerOffer{
			ID:           fmt.Sprintf("offer-%s-%d", variant.ID, i),
			VariantID:    variant.ID,
			SellerName:   s.name,
			Price:        roundCents(basePrice * s.priceMultiplier),
			Currency:     offerCurrency,
			ShippingCost: s.shipping,
			DeliveryTime: deliveryTime,
			StockStatus:  stock,
			BuyLink:      buildSearchLink(subject, variant, s.name),
			IsVerified:   i%2 == 0,
		})
	}

	return offers
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func buildSearchLink(subject domain.OfferSubject, variant domain.ProductVariant, sellerName string) string {
	q := fmt.Sprintf("%s %s %s %s", subject.Brand, subject.Name, variant.Name, sellerName)
	return fmt.Sprintf("%s?q=%s&tbm=shop", shoppingSearchURL, encodeURIComponent(q))
}

const upperHex = "0123456789ABCDEF"

// encodeURIComponent percent-encodes every UTF-8 byte outside A-Z a-z 0-9 and -_.!~*'()
func encodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
