package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/RahulGalipelli/AdminApp/pkg/errors"
)

// Product is a catalogue item sold to farmers.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	IsActive      bool            `json:"is_active"`
	StockQuantity int             `json:"stock_quantity"`
	Images        []string        `json:"images"`
}

// Thumbnail returns the first image URL, if any.
func (p Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductInput is the create/update payload sent to the backend.
type ProductInput struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
}

// ProductForm is the product editor as submitted by the operator. Numbers
// arrive as text, the way a form field holds them.
type ProductForm struct {
	Name          string `json:"name" validate:"required,max=200"`
	Description   string `json:"description" validate:"max=5000"`
	Price         string `json:"price" validate:"required,numeric"`
	StockQuantity string `json:"stock_quantity" validate:"required,number"`
	IsActive      *bool  `json:"is_active"`
}

// ProductFormFrom fills a form from an existing product, for editing.
func ProductFormFrom(p Product) ProductForm {
	active := p.IsActive
	return ProductForm{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.String(),
		StockQuantity: strconv.Itoa(p.StockQuantity),
		IsActive:      &active,
	}
}

// Input converts a validated form to the backend payload. IsActive defaults
// to true. Negative prices and non-integer stock are rejected.
func (f ProductForm) Input() (ProductInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		return ProductInput{}, apperrors.InvalidInput("price must be a number")
	}
	if price.IsNegative() {
		return ProductInput{}, apperrors.InvalidInput("price must not be negative")
	}
	stock, err := strconv.Atoi(strings.TrimSpace(f.StockQuantity))
	if err != nil || stock < 0 {
		return ProductInput{}, apperrors.InvalidInput("stock_quantity must be a whole number")
	}

	active := true
	if f.IsActive != nil {
		active = *f.IsActive
	}
	return ProductInput{
		Name:          strings.TrimSpace(f.Name),
		Description:   f.Description,
		Price:         price.Round(2),
		StockQuantity: stock,
		IsActive:      active,
	}, nil
}
