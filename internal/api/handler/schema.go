package handler

import (
	"time"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

// Request and response shapes for the REST surface. Requests are bound
// and validated per handler; responses are explicit structs so internal
// fields never leak by accident.

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

type createCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

type updateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
}

type customerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type createLeadRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status" validate:"omitempty,oneof=New Contacted Converted Lost"`
	Value       float64 `json:"value" validate:"gte=0"`
}

type updateLeadRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status" validate:"omitempty,oneof=New Contacted Converted Lost"`
	Value       *float64 `json:"value" validate:"omitempty,gte=0"`
}

type leadResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Value       float64   `json:"value"`
	CreatedAt   time.Time `json:"created_at"`
}

type statsResponse struct {
	TotalCustomers int64            `json:"total_customers"`
	TotalLeads     int64            `json:"total_leads"`
	LeadsByStatus  map[string]int64 `json:"leads_by_status"`
	TotalValue     float64          `json:"total_value"`
}

type deleteResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toCustomerResponse(c *domain.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
	}
}

func toCustomerResponses(customers []*domain.Customer) []customerResponse {
	out := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out
}

func toLeadResponse(l *domain.Lead) leadResponse {
	return leadResponse{
		ID:          l.ID,
		CustomerID:  l.CustomerID,
		Title:       l.Title,
		Description: l.Description,
		Status:      string(l.Status),
		Value:       l.Value,
		CreatedAt:   l.CreatedAt,
	}
}

func toLeadResponses(leads []*domain.Lead) []leadResponse {
	out := make([]leadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, toLeadResponse(l))
	}
	return out
}

func toStatsResponse(s *ports.DashboardStats) statsResponse {
	byStatus := make(map[string]int64, len(s.LeadsByStatus))
	for status, n := range s.LeadsByStatus {
		byStatus[string(status)] = n
	}
	return statsResponse{
		TotalCustomers: s.TotalCustomers,
		TotalLeads:     s.TotalLeads,
		LeadsByStatus:  byStatus,
		TotalValue:     s.TotalValue,
	}
}
