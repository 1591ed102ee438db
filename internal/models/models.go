// Package models defines the entity records mirrored from the remote API
// schema. Identifiers always originate from the server; the client never
// invents them.
package models

import "time"

// User is the denormalized profile snapshot returned by /auth/me.
type User struct {
	ID       int    `json:"id" toml:"id"`
	Name     string `json:"name" toml:"name"`
	Email    string `json:"email" toml:"email"`
	Role     string `json:"role" toml:"role"`
	Verified bool   `json:"verified" toml:"verified"`
}

// Product is a single inventory item.
type Product struct {
	ID       int     `json:"id" toml:"id"`
	Name     string  `json:"name" toml:"name"`
	Price    float64 `json:"price" toml:"price"`
	Measure  string  `json:"measure" toml:"measure"`
	Brand    string  `json:"brand" toml:"brand"`
	Quantity float64 `json:"quantity" toml:"quantity"`
}

// RecordID implements store.Record.
func (p Product) RecordID() int { return p.ID }

// Sale statuses as reported by the server.
const (
	SalePending   = "pending"
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
)

// SaleItem is one line of a sale.
type SaleItem struct {
	ID          int     `json:"id" toml:"id"`
	ProductID   int     `json:"productId" toml:"productId"`
	ProductName string  `json:"productName" toml:"productName"`
	Quantity    float64 `json:"quantity" toml:"quantity"`
	UnitPrice   float64 `json:"unitPrice" toml:"unitPrice"`
}

// Sale embeds its customer, line items and any deliveries created for it.
type Sale struct {
	ID         int        `json:"id" toml:"id"`
	Date       time.Time  `json:"date" toml:"date"`
	Status     string     `json:"status" toml:"status"`
	Customer   Customer   `json:"customer" toml:"customer"`
	Items      []SaleItem `json:"items" toml:"items"`
	Deliveries []Delivery `json:"deliveries" toml:"deliveries"`
}

// RecordID implements store.Record.
func (s Sale) RecordID() int { return s.ID }

// Total returns the sale amount over its line items.
func (s Sale) Total() float64 {
	var total float64
	for _, it := range s.Items {
		total += it.Quantity * it.UnitPrice
	}
	return total
}

// Delivery statuses as reported by the server.
const (
	DeliveryPending   = "pending"
	DeliveryShipped   = "shipped"
	DeliveryDelivered = "delivered"
	DeliveryCancelled = "cancelled"
)

// Delivery tracks the shipment of a sale.
type Delivery struct {
	ID      int       `json:"id" toml:"id"`
	SaleID  int       `json:"saleId" toml:"saleId"`
	Address string    `json:"address" toml:"address"`
	Status  string    `json:"status" toml:"status"`
	Date    time.Time `json:"date" toml:"date"`
}

// RecordID implements store.Record.
func (d Delivery) RecordID() int { return d.ID }

// Supplier is a product provider.
type Supplier struct {
	ID    int    `json:"id" toml:"id"`
	Name  string `json:"name" toml:"name"`
	Email string `json:"email" toml:"email"`
	Phone string `json:"phone" toml:"phone"`
	TaxID string `json:"taxId" toml:"taxId"`
}

// RecordID implements store.Record.
func (s Supplier) RecordID() int { return s.ID }

// Customer is a buyer on record.
type Customer struct {
	ID      int    `json:"id" toml:"id"`
	Name    string `json:"name" toml:"name"`
	Email   string `json:"email" toml:"email"`
	Phone   string `json:"phone" toml:"phone"`
	Address string `json:"address" toml:"address"`
}

// RecordID implements store.Record.
func (c Customer) RecordID() int { return c.ID }

// Employee is a staff account.
type Employee struct {
	ID     int    `json:"id" toml:"id"`
	Name   string `json:"name" toml:"name"`
	Email  string `json:"email" toml:"email"`
	Role   string `json:"role" toml:"role"`
	Active bool   `json:"active" toml:"active"`
}

// RecordID implements store.Record.
func (e Employee) RecordID() int { return e.ID }

// TotalRevenue sums quantity times unit price over the line items of every
// non-cancelled sale.
func TotalRevenue(sales []Sale) float64 {
	var total float64
	for _, s := range sales {
		if s.Status == SaleCancelled {
			continue
		}
		total += s.Total()
	}
	return total
}
