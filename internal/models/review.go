package models

import "github.com/google/uuid"

// Review is a customer product review.
type Review struct {
	BaseModel
	ProductID  string     `gorm:"index" json:"product_id"`
	Rating     int        `json:"rating"`
	Review     string     `json:"review"`
	AuthorID   *uuid.UUID `gorm:"type:uuid" json:"author_id,omitempty"`
	AuthorName string     `json:"author_name,omitempty"`
}
