package entity

import (
	"time"
)

// ProductCategory is the fixed set of catalog categories.
type ProductCategory string

const (
	CategoryClothes     ProductCategory = "Clothes"
	CategoryShoes       ProductCategory = "Shoes"
	CategoryBags        ProductCategory = "Bags"
	CategoryAccessories ProductCategory = "Accessories"
)

// Valid reports whether c is one of the known categories.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryClothes, CategoryShoes, CategoryBags, CategoryAccessories:
		return true
	}
	return false
}

type ProductSize string

const (
	SizeSmall  ProductSize = "small"
	SizeMedium ProductSize = "medium"
	SizeLarge  ProductSize = "large"
)

func (s ProductSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Product is a catalog item. Stock is the only field mutated outside the
// admin surface: order placement decrements it transactionally.
type Product struct {
	ID          int64
	Title       string
	Description string
	Price       float64
	Category    ProductCategory
	Gradient    string // frontend styling hint, carried verbatim
	Size        ProductSize
	Stock       int
	ImageURL    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
