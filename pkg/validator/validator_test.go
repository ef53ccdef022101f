package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type productForm struct {
	Name  string `json:"name" validate:"required"`
	Price string `json:"price" validate:"required,numeric"`
	Stock string `json:"stock_quantity" validate:"required,number"`
	State string `json:"state" validate:"omitempty,oneof=placed shipped"`
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(loginForm{Email: "a@b.com", Password: "pw"}))
}

func TestValidate_FieldsUseJSONNames(t *testing.T) {
	err := Validate(loginForm{Email: "not-an-email"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "is required", fields["password"])
}

func TestValidate_NumericMessages(t *testing.T) {
	err := Validate(productForm{Name: "Neem oil", Price: "abc", Stock: "1.5", State: "lost"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "must be a number", fields["price"])
	assert.Equal(t, "must be a whole number", fields["stock_quantity"])
	assert.Equal(t, "must be one of: placed shipped", fields["state"])
	assert.Contains(t, err.Error(), "field 'price'")
}

func TestValidate_DecimalPriceAccepted(t *testing.T) {
	assert.NoError(t, Validate(productForm{Name: "Neem oil", Price: "249.50", Stock: "12"}))
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/session/login",
		strings.NewReader(`{"email":"a@b.com","password":"pw"}`))
	var form loginForm
	require.NoError(t, DecodeAndValidate(req, &form))
	assert.Equal(t, "a@b.com", form.Email)
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/session/login", strings.NewReader(`{`))
	var form loginForm
	err := DecodeAndValidate(req, &form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

type gatewayForm struct {
	Provider string `json:"provider" validate:"oneof=razorpay stripe"`
}

type settingsForm struct {
	Payment gatewayForm `json:"payment_gateway"`
	Courier gatewayForm `json:"courier_api"`
}

func TestValidate_NestedFieldPaths(t *testing.T) {
	err := Validate(settingsForm{Payment: gatewayForm{Provider: "cash"}, Courier: gatewayForm{Provider: "razorpay"}})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Len(t, fields, 1)
	assert.Equal(t, "must be one of: razorpay stripe", fields["payment_gateway.provider"])
}
