package products

import "time"

// Product is an item in the catalog the storefront renders.
type Product struct {
	ProductID   string    `dynamodbav:"product_id" json:"product_id"` // PK
	Name        string    `dynamodbav:"name" json:"name"`
	Description string    `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Price       float64   `dynamodbav:"price" json:"price"` // major units, INR
	ImageURL    string    `dynamodbav:"image_url,omitempty" json:"image_url,omitempty"`
	InStock     bool      `dynamodbav:"in_stock" json:"in_stock"`
	CreatedAt   time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt   time.Time `dynamodbav:"updated_at" json:"updated_at"`
}
