package adminapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type assignRequest struct {
	StaffID string `json:"staff_id"`
}

// Login exchanges email and password for a credential and identity.
func (c *Client) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	var res domain.LoginResult
	err := c.do(ctx, request{
		endpoint: "login",
		method:   http.MethodPost,
		path:     "/admin/login",
		body:     loginRequest{Email: email, Password: password},
		login:    true,
	}, &res)
	return res, err
}

// Me returns the identity behind the stored credential.
func (c *Client) Me(ctx context.Context) (domain.Identity, error) {
	var id domain.Identity
	err := c.do(ctx, request{endpoint: "me", method: http.MethodGet, path: "/admin/me"}, &id)
	return id, err
}

func (c *Client) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	err := c.do(ctx, request{endpoint: "dashboard_stats", method: http.MethodGet, path: "/admin/dashboard/stats"}, &stats)
	if stats.TopDiseases == nil {
		stats.TopDiseases = []domain.DiseaseCount{}
	}
	return stats, err
}

func (c *Client) ListUploads(ctx context.Context) ([]domain.Upload, error) {
	uploads := []domain.Upload{}
	if err := c.do(ctx, request{endpoint: "list_uploads", method: http.MethodGet, path: "/admin/uploads"}, &uploads); err != nil {
		return []domain.Upload{}, err
	}
	return nonNil(uploads), nil
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := c.do(ctx, request{endpoint: "list_products", method: http.MethodGet, path: "/admin/products"}, &products); err != nil {
		return []domain.Product{}, err
	}
	return nonNil(products), nil
}

// CreateProduct returns the stored product when the backend echoes it.
func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, request{endpoint: "create_product", method: http.MethodPost, path: "/admin/products", body: in}, &p)
	return p, err
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, request{
		endpoint: "update_product",
		method:   http.MethodPut,
		path:     "/admin/products/" + url.PathEscape(id),
		body:     in,
	}, &p)
	return p, err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, request{
		endpoint: "delete_product",
		method:   http.MethodDelete,
		path:     "/admin/products/" + url.PathEscape(id),
	}, nil)
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders := []domain.Order{}
	if err := c.do(ctx, request{endpoint: "list_orders", method: http.MethodGet, path: "/admin/orders"}, &orders); err != nil {
		return []domain.Order{}, err
	}
	return nonNil(orders), nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	return c.do(ctx, request{
		endpoint: "update_order_status",
		method:   http.MethodPut,
		path:     "/admin/orders/" + url.PathEscape(id) + "/status",
		body:     statusRequest{Status: status},
	}, nil)
}

func (c *Client) ListSupportCalls(ctx context.Context) ([]domain.SupportCall, error) {
	calls := []domain.SupportCall{}
	if err := c.do(ctx, request{endpoint: "list_support_calls", method: http.MethodGet, path: "/admin/support/calls"}, &calls); err != nil {
		return []domain.SupportCall{}, err
	}
	return nonNil(calls), nil
}

func (c *Client) AssignSupportCall(ctx context.Context, id, staffID string) error {
	return c.do(ctx, request{
		endpoint: "assign_support_call",
		method:   http.MethodPut,
		path:     "/admin/support/calls/" + url.PathEscape(id) + "/assign",
		body:     assignRequest{StaffID: staffID},
	}, nil)
}

func (c *Client) ResolveSupportCall(ctx context.Context, id string) error {
	return c.do(ctx, request{
		endpoint: "resolve_support_call",
		method:   http.MethodPut,
		path:     "/admin/support/calls/" + url.PathEscape(id) + "/resolve",
	}, nil)
}

func (c *Client) Analytics(ctx context.Context) (domain.AnalyticsData, error) {
	var data domain.AnalyticsData
	err := c.do(ctx, request{endpoint: "analytics", method: http.MethodGet, path: "/admin/analytics"}, &data)
	return data, err
}

func (c *Client) SaveSettings(ctx context.Context, s domain.Settings) error {
	return c.do(ctx, request{endpoint: "save_settings", method: http.MethodPut, path: "/admin/settings", body: s}, nil)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
