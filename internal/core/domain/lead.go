package domain

import (
	"errors"
	"time"
)

// LeadStatus represents the pipeline state of a lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusContacted LeadStatus = "Contacted"
	LeadStatusConverted LeadStatus = "Converted"
	LeadStatusLost      LeadStatus = "Lost"
)

// AllLeadStatuses is the fixed enumeration used for dashboard grouping:
// every status appears in aggregates even with zero occurrences.
var AllLeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusConverted,
	LeadStatusLost,
}

// Valid reports whether s is a known lead status.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

var ErrLeadNotFound = errors.New("lead not found")
var ErrInvalidLeadStatus = errors.New("invalid lead status")

// Lead belongs to a customer. Leads carry no owner field of their own:
// access is always decided through the parent customer.
type Lead struct {
	ID          string     `json:"id" bson:"id"`
	CustomerID  string     `json:"customer_id" bson:"customer_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Status      LeadStatus `json:"status" bson:"status"`
	Value       float64    `json:"value" bson:"value"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}
