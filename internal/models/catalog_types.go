package models

import "time"

// Package is the model for the 'packages' table: a purchasable engagement
// package (followers, likes, views, reviews) on one platform.
type Package struct {
	ID                 string    `json:"id" db:"id"` // e.g. "yt-sub-500"
	Name               string    `json:"name" db:"name"`
	Description        string    `json:"description" db:"description"`
	ServiceType        string    `json:"serviceType" db:"service_type"` // youtube | instagram | tiktok | facebook | google
	ServiceID          string    `json:"serviceId" db:"service_id"`
	Units              int       `json:"units" db:"units"`
	Price              float64   `json:"price" db:"price"`
	DiscountedPrice    *float64  `json:"discountedPrice,omitempty" db:"discounted_price"`
	DiscountPercentage float64   `json:"discountPercentage" db:"discount_percentage"`
	IsFeatured         bool      `json:"isFeatured" db:"is_featured"`
	IsActive           bool      `json:"isActive" db:"is_active"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`

	// EffectivePrice is what the customer pays: resolved server-side by
	// get_packages_with_prices(), or by the manual fallback when the
	// function is absent.
	EffectivePrice float64 `json:"effectivePrice" db:"effective_price"`
}

// Product is the model for the 'products' table (generic storefront
// products managed from the admin panel).
type Product struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Slug            string    `json:"slug" db:"slug"`
	Description     string    `json:"description" db:"description"`
	Price           float64   `json:"price" db:"price"`
	DiscountedPrice *float64  `json:"discountedPrice,omitempty" db:"discounted_price"`
	IsFeatured      bool      `json:"isFeatured" db:"is_featured"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}
