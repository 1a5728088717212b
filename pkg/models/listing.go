package models

import "time"

// ListingStatus is the canonical offer status of a listing.
type ListingStatus string

const (
	ListingStatusForSale ListingStatus = "for_sale"
	ListingStatusForRent ListingStatus = "for_rent"
)

// PropertyCategory is the coarse category of a listing.
type PropertyCategory string

const (
	PropertyCategoryResidential PropertyCategory = "residential"
	PropertyCategoryCommercial  PropertyCategory = "commercial"
	PropertyCategoryLand        PropertyCategory = "land"
)

// Listing is a property offered for sale or rent. During a match computation
// it is treated as a read-only snapshot.
type Listing struct {
	ID           string     `json:"id" db:"id"`
	AgentID      string     `json:"agent_id" db:"agent_id"`
	Title        string     `json:"title" db:"title"`
	Country      string     `json:"country" db:"country"`
	Category     string     `json:"category" db:"category"`
	PropertyType string     `json:"property_type" db:"property_type"`
	Status       string     `json:"status" db:"status"`
	Location     string     `json:"location" db:"location"`
	Price        *float64   `json:"price,omitempty" db:"price"`
	Bedrooms     *float64   `json:"bedrooms,omitempty" db:"bedrooms"`
	Area         *float64   `json:"area,omitempty" db:"area"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// CreateListingRequest is the request for creating a listing.
type CreateListingRequest struct {
	Title        string   `json:"title" validate:"required"`
	Country      string   `json:"country"`
	Category     string   `json:"category"`
	PropertyType string   `json:"property_type" validate:"required"`
	Status       string   `json:"status" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Bedrooms     *float64 `json:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	Area         *float64 `json:"area,omitempty" validate:"omitempty,gt=0"`
}

// ListingListResponse is the response for listing queries.
type ListingListResponse struct {
	Items      []Listing `json:"items"`
	TotalCount int       `json:"total_count"`
}
