package catalog

import "time"

const (
	TypeDrink = "drink"
	TypeSnack = "snack"
)

type Item struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	Cost      *float64  `json:"cost"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateItemInput struct {
	Type string
	Name string
	Cost *float64
}

type UpdateItemInput struct {
	Name     *string
	IsActive *bool
	// Cost distinguishes "leave alone" (CostSet false) from "clear" (set, nil).
	CostSet bool
	Cost    *float64
}
