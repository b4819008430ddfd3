package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Stock       int                `json:"stock" bson:"stock"`
	Category    string             `json:"category" bson:"category"`
	Rating      float64            `json:"rating,omitempty" bson:"rating,omitempty"`
	ImageURL    string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// CreateProductInput is the create request body. Image carries optional
// base64 bytes for the external image host; the stored document keeps only
// the returned public URL.
type CreateProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"min=0"`
	Stock       int      `json:"stock" binding:"min=0"`
	Category    string   `json:"category"`
	Rating      *float64 `json:"rating"`
	Image       string   `json:"image"`
}

// UpdateProductInput is the partial-update request body. Nil fields are
// left untouched.
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	Rating      *float64 `json:"rating"`
	Image       string   `json:"image"`
}
