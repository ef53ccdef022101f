package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/RahulGalipelli/AdminApp/pkg/errors"
)

func boolPtr(b bool) *bool { return &b }

func TestProductForm_Input(t *testing.T) {
	in, err := ProductForm{Name: "  Neem oil ", Price: "249.505", StockQuantity: "12"}.Input()
	require.NoError(t, err)

	assert.Equal(t, "Neem oil", in.Name)
	assert.True(t, in.Price.Equal(decimal.RequireFromString("249.51")))
	assert.Equal(t, 12, in.StockQuantity)
	assert.True(t, in.IsActive, "active by default")
}

func TestProductForm_InputInactive(t *testing.T) {
	in, err := ProductForm{Name: "x", Price: "1", StockQuantity: "0", IsActive: boolPtr(false)}.Input()
	require.NoError(t, err)
	assert.False(t, in.IsActive)
}

func TestProductForm_InputRejects(t *testing.T) {
	tests := []struct {
		name string
		form ProductForm
	}{
		{"negative price", ProductForm{Name: "x", Price: "-1", StockQuantity: "1"}},
		{"garbage price", ProductForm{Name: "x", Price: "abc", StockQuantity: "1"}},
		{"fractional stock", ProductForm{Name: "x", Price: "1", StockQuantity: "1.5"}},
		{"negative stock", ProductForm{Name: "x", Price: "1", StockQuantity: "-3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Input()
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestProductFormFrom(t *testing.T) {
	p := Product{Name: "Urea", Price: decimal.RequireFromString("10.5"), StockQuantity: 7, IsActive: true}
	f := ProductFormFrom(p)

	assert.Equal(t, "10.5", f.Price)
	assert.Equal(t, "7", f.StockQuantity)
	require.NotNil(t, f.IsActive)
	assert.True(t, *f.IsActive)
}

func TestProduct_DecodesNumericPriceAndNullDescription(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","name":"Urea","description":null,"price":99.9,"images":["a.jpg","b.jpg"]}`), &p))

	assert.Equal(t, "", p.Description)
	assert.Equal(t, "99.9", p.Price.String())
	assert.Equal(t, "a.jpg", p.Thumbnail())
	assert.Equal(t, "", Product{}.Thumbnail())
}
