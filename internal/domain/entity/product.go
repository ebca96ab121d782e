package entity

import (
	"strings"
	"time"
)

type ProductStatus string

const (
	ProductAvailable     ProductStatus = "Available"
	ProductInNegotiation ProductStatus = "In Negotiation"
	ProductSold          ProductStatus = "Sold"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductAvailable, ProductInNegotiation, ProductSold:
		return true
	}
	return false
}

// Categories is the fixed set of garment classes a listing may use.
var Categories = []string{
	"Ethnic Wear",
	"Casual Wear",
	"Men's Activewear",
	"Women's Activewear",
	"Western Wear",
	"Footwear",
	"Sportswear",
	"Office Wear",
	"Men's Ethnic Wear",
	"Size Inclusive Styles",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Product struct {
	ID          string        `json:"id" firestore:"id" gorm:"primaryKey;size:64"`
	OwnerID     string        `json:"ownerId" firestore:"ownerId" gorm:"index;size:64;not null"`
	Name        string        `json:"productName" firestore:"productName" gorm:"not null"`
	Category    string        `json:"category" firestore:"category" gorm:"index"`
	Description string        `json:"description" firestore:"description"`
	HeroImage   string        `json:"heroImage" firestore:"heroImage"`
	Images      []string      `json:"images" firestore:"images" gorm:"serializer:json"`
	Address     string        `json:"address" firestore:"address"`
	Likes       int64         `json:"likes" firestore:"likes" gorm:"not null;default:0"`
	Status      ProductStatus `json:"status" firestore:"status" gorm:"index;size:32"`
	CreatedAt   time.Time     `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" firestore:"updatedAt"`

	// Lower-cased copies for SQL substring matching. SQLite's LOWER only folds ASCII.
	SearchText string `json:"-" firestore:"-" gorm:"column:search_text"`
	AddressKey string `json:"-" firestore:"-" gorm:"column:address_key"`
}

// FoldSearchFields refreshes SearchText and AddressKey from the listing text.
func (p *Product) FoldSearchFields() {
	p.SearchText = strings.ToLower(strings.Join([]string{p.Name, p.Category, p.Description}, "\n"))
	p.AddressKey = strings.ToLower(p.Address)
}

// ProductView is a product joined with its owner's public projection.
type ProductView struct {
	*Product
	Owner *UserSummary `json:"owner,omitempty"`
}

// RankProducts orders by likes desc, newest first on ties.
func RankProducts(products []*Product) {
	sortProducts(products, func(a, b *Product) bool {
		if a.Likes != b.Likes {
			return a.Likes > b.Likes
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// NewestFirst orders by createdAt desc.
func NewestFirst(products []*Product) {
	sortProducts(products, func(a, b *Product) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
}
