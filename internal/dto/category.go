package dto

import "github.com/GregMSThompson/expense-backend/internal/categories"

type CategoryRequest struct {
	Name           categories.Name `json:"name"`
	Keywords       []string        `json:"keywords"`
	IsOtherAccount bool            `json:"isOtherAccount"`
}

type CategoryOptionsResponse struct {
	Options []categories.Name  `json:"options"`
	Groups  []categories.Group `json:"groups"`
}
