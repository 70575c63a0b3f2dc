package model

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product as exposed by the remote API.
type Product struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Name        string         `json:"name" gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Price       float64        `json:"price" gorm:"not null"`
	Stock       int            `json:"stock" gorm:"default:0"`
	CategoryID  *uint          `json:"categoryId,omitempty" gorm:"index"`
	ImageURL    *string        `json:"imageUrl"`
	IsActive    bool           `json:"isActive" gorm:"default:true"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// Category represents a product category used for filter options and labels.
type Category struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null;unique"`
	Icon      string         `json:"icon" gorm:"type:varchar(100)"`
	IsActive  bool           `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// ProductPayload is the body sent on product creation.
type ProductPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  *uint   `json:"categoryId,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// ProductUpdate is a partial product payload; nil fields are left untouched.
type ProductUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	CategoryID  *uint    `json:"categoryId,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

// Pagination describes the page window of a product listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ProductPage is one page of products together with its pagination window.
type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}
