package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Status is a listing's normalized publication state.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISH"
	StatusDeleted   Status = "DELETED"
	StatusUnknown   Status = ""
)

// NormalizeStatus maps raw status strings to a Status. Matching is
// case-insensitive and "PUBLISHED" is accepted as "PUBLISH".
func NormalizeStatus(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PUBLISH", "PUBLISHED":
		return StatusPublished
	case "DRAFT":
		return StatusDraft
	case "DELETED":
		return StatusDeleted
	default:
		return StatusUnknown
	}
}

// Truthy reports whether a loosely-typed flag value is set. Upstream
// stores booleans as true, 1, "true", or "1" depending on the client.
func Truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int:
		return x == 1
	case float64:
		return x == 1
	case string:
		s := strings.TrimSpace(strings.ToLower(x))
		return s == "true" || s == "1"
	default:
		return false
	}
}

// Flag is a boolean that tolerates the truthy representations upstream
// clients actually send.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Flag(Truthy(v))
	return nil
}

// Category is one category tag on a listing. The first element of a
// listing's category slice is authoritative.
type Category struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// ListingUser is the owning seller account. CreatedAt anchors the
// business-age calculation.
type ListingUser struct {
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Listing is a business-for-sale record with its form-derived question
// banks and raw financials. Listings are read-only inputs; everything
// derived from them is recomputed per catalog fetch.
type Listing struct {
	ID                  string           `json:"id"`
	Title               string           `json:"title,omitempty"`
	Status              string           `json:"status"`
	Category            []Category       `json:"category,omitempty"`
	Brand               []QuestionAnswer `json:"brand,omitempty"`
	Advertisement       []QuestionAnswer `json:"advertisement,omitempty"`
	Statistics          []QuestionAnswer `json:"statistics,omitempty"`
	ProductQuestions    []QuestionAnswer `json:"productQuestion,omitempty"`
	ManagementQuestions []QuestionAnswer `json:"managementQuestion,omitempty"`
	Handover            []QuestionAnswer `json:"handover,omitempty"`
	SocialAccounts      []QuestionAnswer `json:"socialAccount,omitempty"`
	Financials          []FinancialEntry `json:"financials,omitempty"`
	User                ListingUser      `json:"user"`
	ManagedByEx         Flag             `json:"managedByEx,omitempty"`
	CreatedAt           time.Time        `json:"createdAt,omitempty"`
}

// CategoryName returns the canonical category, "Other" when absent.
func (l Listing) CategoryName() string {
	if len(l.Category) == 0 || strings.TrimSpace(l.Category[0].Name) == "" {
		return "Other"
	}
	return l.Category[0].Name
}

// IsPublished reports whether the listing qualifies for the public
// catalog.
func (l Listing) IsPublished() bool {
	return NormalizeStatus(l.Status) == StatusPublished
}

// HasCategory reports whether any category entry matches name exactly.
func (l Listing) HasCategory(name string) bool {
	for _, c := range l.Category {
		if c.Name == name {
			return true
		}
	}
	return false
}
