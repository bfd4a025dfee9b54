package domain

import "time"

type Service struct {
	ID              string      `json:"id"`
	BusinessID      string      `json:"business_id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Category        string      `json:"category"`
	VehicleType     VehicleType `json:"vehicle_type"`
	Price           float64     `json:"price"`
	DurationMinutes int         `json:"duration_minutes"`
	IsActive        bool        `json:"is_active"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type ServiceCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ServiceCreateRequest struct {
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	Category        string      `json:"category"`
	VehicleType     VehicleType `json:"vehicle_type"`
	Price           float64     `json:"price"`
	DurationMinutes int         `json:"duration_minutes"`
}

// ServicePatch carries partial service updates; nil fields are left untouched.
type ServicePatch struct {
	Name            *string      `json:"name,omitempty"`
	Description     *string      `json:"description,omitempty"`
	Category        *string      `json:"category,omitempty"`
	VehicleType     *VehicleType `json:"vehicle_type,omitempty"`
	Price           *float64     `json:"price,omitempty"`
	DurationMinutes *int         `json:"duration_minutes,omitempty"`
	IsActive        *bool        `json:"is_active,omitempty"`
}

// ServiceFilter is encoded to a query string; zero fields are omitted.
type ServiceFilter struct {
	Category    string      `url:"category,omitempty"`
	VehicleType VehicleType `url:"vehicle_type,omitempty"`
	BusinessID  string      `url:"business_id,omitempty"`
	MinPrice    float64     `url:"min_price,omitempty"`
	MaxPrice    float64     `url:"max_price,omitempty"`
	Limit       int         `url:"limit,omitempty"`
	Offset      int         `url:"offset,omitempty"`
}
