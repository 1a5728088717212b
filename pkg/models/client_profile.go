package models

import (
	"encoding/json"
	"time"
)

// ClientIntent is what the client wants to do.
type ClientIntent string

const (
	ClientIntentBuyer   ClientIntent = "buyer"
	ClientIntentRenter  ClientIntent = "renter"
	ClientIntentBoth    ClientIntent = "both"
	ClientIntentUnknown ClientIntent = "unknown"
)

// ClientProfile holds a prospective buyer/renter's stored preferences.
// Numeric preferences are pointers: nil means "no preference", while a zero
// value is a real constraint. PreferredPropertyTypes is kept raw because
// upstream data stores either a single string or an array; it is normalized
// at the boundary via normalizers.NormalizeTypeList.
type ClientProfile struct {
	ID                     string          `json:"id" db:"id"`
	AgentID                string          `json:"agent_id" db:"agent_id"`
	ClientName             string          `json:"client_name" db:"client_name"`
	Phone                  string          `json:"phone" db:"phone"`
	Intent                 string          `json:"intent" db:"intent"`
	PreferredCountry       string          `json:"preferred_country" db:"preferred_country"`
	PreferredCategory      string          `json:"preferred_category" db:"preferred_category"`
	PreferredLocation      string          `json:"preferred_location" db:"preferred_location"`
	PreferredPropertyTypes json.RawMessage `json:"preferred_property_types,omitempty" db:"preferred_property_types"`
	MinRooms               *float64        `json:"min_rooms,omitempty" db:"min_rooms"`
	MaxRooms               *float64        `json:"max_rooms,omitempty" db:"max_rooms"`
	MinArea                *float64        `json:"min_area,omitempty" db:"min_area"`
	MaxArea                *float64        `json:"max_area,omitempty" db:"max_area"`
	MinPrice               *float64        `json:"min_price,omitempty" db:"min_price"`
	MaxPrice               *float64        `json:"max_price,omitempty" db:"max_price"`
	FromCall               bool            `json:"from_call" db:"from_call"`
	CreatedAt              time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt              *time.Time      `json:"deleted_at,omitempty" db:"deleted_at"`
}

// CreateClientProfileRequest is the request for creating a client profile.
type CreateClientProfileRequest struct {
	ClientName             string          `json:"client_name" validate:"required"`
	Phone                  string          `json:"phone"`
	Intent                 string          `json:"intent" validate:"omitempty,oneof=buyer renter both unknown"`
	PreferredCountry       string          `json:"preferred_country"`
	PreferredCategory      string          `json:"preferred_category"`
	PreferredLocation      string          `json:"preferred_location"`
	PreferredPropertyTypes json.RawMessage `json:"preferred_property_types,omitempty"`
	MinRooms               *float64        `json:"min_rooms,omitempty" validate:"omitempty,gte=0"`
	MaxRooms               *float64        `json:"max_rooms,omitempty" validate:"omitempty,gte=0"`
	MinArea                *float64        `json:"min_area,omitempty" validate:"omitempty,gt=0"`
	MaxArea                *float64        `json:"max_area,omitempty" validate:"omitempty,gt=0"`
	MinPrice               *float64        `json:"min_price,omitempty" validate:"omitempty,gte=0"`
	MaxPrice               *float64        `json:"max_price,omitempty" validate:"omitempty,gt=0"`
}

// ClientProfileListResponse is the response for client profile queries.
type ClientProfileListResponse struct {
	Items      []ClientProfile `json:"items"`
	TotalCount int             `json:"total_count"`
}
