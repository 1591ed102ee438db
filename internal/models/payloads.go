package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Measures accepted for product quantities.
var Measures = []string{"unidad", "kg", "g", "l", "ml", "m"}

// CreateProduct is the payload for POST /products.
type CreateProduct struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Measure  string  `json:"measure" validate:"required,oneof=unidad kg g l ml m"`
	Brand    string  `json:"brand"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

// Validate reports the first set of field constraint violations.
func (p CreateProduct) Validate() error { return validate.Struct(p) }

// UpdateProduct is the partial payload for PATCH /products/:id. Nil fields
// are omitted from the request body and left untouched by the server.
type UpdateProduct struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Measure  *string  `json:"measure,omitempty" validate:"omitempty,oneof=unidad kg g l ml m"`
	Brand    *string  `json:"brand,omitempty"`
	Quantity *float64 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

// Validate reports constraint violations on the fields that are present.
func (p UpdateProduct) Validate() error { return validate.Struct(p) }

// CreateSupplier is the payload for POST /suppliers.
type CreateSupplier struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
	TaxID string `json:"taxId"`
}

// Validate reports field constraint violations.
func (p CreateSupplier) Validate() error { return validate.Struct(p) }

// CreateCustomer is the payload for POST /customers.
type CreateCustomer struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Validate reports field constraint violations.
func (p CreateCustomer) Validate() error { return validate.Struct(p) }
