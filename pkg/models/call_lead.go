package models

import "time"

// CallLead is a simplified preference record derived from a transcribed phone
// call. It has no intent, country, or category fields; only what the call
// analysis pipeline could extract.
type CallLead struct {
	ID         string     `json:"id" db:"id"`
	AgentID    string     `json:"agent_id" db:"agent_id"`
	ClientName string     `json:"client_name" db:"client_name"`
	Phone      string     `json:"phone" db:"phone"`
	Location   string     `json:"location" db:"location"`
	Rooms      *float64   `json:"rooms,omitempty" db:"rooms"`
	Area       *float64   `json:"area,omitempty" db:"area"`
	Price      *float64   `json:"price,omitempty" db:"price"`
	Summary    string     `json:"summary" db:"summary"`
	CalledAt   *time.Time `json:"called_at,omitempty" db:"called_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// CallLeadListResponse is the response for call lead queries.
type CallLeadListResponse struct {
	Items      []CallLead `json:"items"`
	TotalCount int        `json:"total_count"`
}
