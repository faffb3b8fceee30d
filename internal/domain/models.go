package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle stage of a listed product.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusHarvested Status = "Harvested"
	StatusProcessed Status = "Processed"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusSold      Status = "Sold"
)

// Statuses lists the recognised statuses in form order.
var Statuses = []Status{
	StatusAvailable, StatusHarvested, StatusProcessed,
	StatusShipped, StatusDelivered, StatusSold,
}

func (s Status) Known() bool {
	for _, k := range Statuses {
		if s == k {
			return true
		}
	}
	return false
}

// Product is a document of the "products" collection. ID and CreatedAt come
// from the store envelope, everything else from the document body.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
	Status      Status          `json:"status"`
	Description string          `json:"description,omitempty"`
	SellerID    string          `json:"sellerId,omitempty"`
	SellerName  string          `json:"sellerName,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProductDoc is the body written to the store on creation.
type ProductDoc struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
	Status      Status          `json:"status"`
	Description string          `json:"description,omitempty"`
	SellerID    string          `json:"sellerId"`
	SellerName  string          `json:"sellerName"`
}

// Profile is a document of the "users" collection.
type Profile struct {
	ID    string `json:"-"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}
