package models

// BudgetStatus describes how a listing's price relates to a client's budget.
type BudgetStatus string

const (
	BudgetStatusWithin   BudgetStatus = "within"
	BudgetStatusAbove    BudgetStatus = "above"
	BudgetStatusWayAbove BudgetStatus = "way_above"
)

// Priority tiers for ranking a seeker's matches. Own inventory always
// precedes external inventory, and perfect scores always precede partial ones.
const (
	TierOwnPerfect      = 1
	TierExternalPerfect = 2
	TierOwnPartial      = 3
	TierExternalPartial = 4
)

// CriterionDetail records one scored criterion for the explanation UI.
type CriterionDetail struct {
	Criterion string `json:"criterion"`
	Label     string `json:"label"`
	Matched   bool   `json:"matched"`
	Wanted    any    `json:"wanted"`
	Actual    any    `json:"actual"`
}

// MatchResult pairs a listing with a client profile or call lead. It is
// ephemeral: constructed fresh per request and never persisted. Exactly one
// of Client/Call is set.
type MatchResult struct {
	Listing          *Listing          `json:"listing,omitempty"`
	Client           *ClientProfile    `json:"client,omitempty"`
	Call             *CallLead         `json:"call,omitempty"`
	Score            int               `json:"score"`
	TotalCriteria    int               `json:"total_criteria"`
	IsMatch          bool              `json:"is_match"`
	MatchDetails     []CriterionDetail `json:"match_details,omitempty"`
	BudgetStatus     BudgetStatus      `json:"budget_status,omitempty"`
	BudgetPercentage float64           `json:"budget_percentage,omitempty"`
	IsExternal       bool              `json:"is_external"`
	Tier             int               `json:"tier,omitempty"`
}

// IsPerfect reports whether every applicable criterion was satisfied.
func (m *MatchResult) IsPerfect() bool {
	return m.TotalCriteria > 0 && m.Score == m.TotalCriteria
}

// ListingMatchSet carries one listing and its matched clients and calls.
type ListingMatchSet struct {
	Listing       Listing       `json:"listing"`
	ClientMatches []MatchResult `json:"client_matches"`
	CallMatches   []MatchResult `json:"call_matches"`
}

// ClientMatchSet carries one client profile and its ranked listing matches.
type ClientMatchSet struct {
	Client  ClientProfile `json:"client"`
	Matches []MatchResult `json:"matches"`
}

// CallMatchSet carries one call lead and its ranked listing matches.
type CallMatchSet struct {
	Call    CallLead      `json:"call"`
	Matches []MatchResult `json:"matches"`
}

// CountMap maps an entity identifier to its match count. Used by the
// summary (fast) path, which never builds MatchResult detail objects.
type CountMap map[string]int
