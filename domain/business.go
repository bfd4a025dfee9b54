package domain

import "time"

type Business struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Address     Address    `json:"address"`
	Hours       []DayHours `json:"hours"`
	IsVerified  bool       `json:"is_verified"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country,omitempty"`
}

type DayHours struct {
	Day    string `json:"day"`
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed,omitempty"`
}

type BusinessCreateRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Address     Address    `json:"address"`
	Hours       []DayHours `json:"hours,omitempty"`
}

// BusinessPatch carries partial business updates; nil fields are left untouched.
type BusinessPatch struct {
	Name        *string     `json:"name,omitempty"`
	Description *string     `json:"description,omitempty"`
	Phone       *string     `json:"phone,omitempty"`
	Email       *string     `json:"email,omitempty"`
	Address     *Address    `json:"address,omitempty"`
	Hours       *[]DayHours `json:"hours,omitempty"`
}

// RegistrationDraft is the saved state of the business registration wizard.
// It is persisted client-side so an interrupted registration can resume.
type RegistrationDraft struct {
	Step     int                   `json:"step"`
	Business BusinessCreateRequest `json:"business"`
	SavedAt  time.Time             `json:"saved_at"`
}
