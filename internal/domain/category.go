package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is an independent label record. Nothing ties a product's
// category string to a Category document; callers own that consistency.
type Category struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	ImageURL  string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

type CreateCategoryInput struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

type UpdateCategoryInput struct {
	Name  *string `json:"name"`
	Image string  `json:"image"`
}
