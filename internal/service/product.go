package service

import (
	"context"
	"log/slog"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
	"github.com/RahulGalipelli/AdminApp/internal/event"
	apperrors "github.com/RahulGalipelli/AdminApp/pkg/errors"
	"github.com/RahulGalipelli/AdminApp/pkg/validator"
)

// ProductService manages the product catalogue.
type ProductService struct {
	api      ProductBackend
	producer *event.Producer
	scopes   *Scopes
	logger   *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(api ProductBackend, producer *event.Producer, scopes *Scopes, logger *slog.Logger) *ProductService {
	return &ProductService{api: api, producer: producer, scopes: scopes, logger: logger}
}

// List returns the catalogue.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return fetchView(ctx, s.scopes, s.logger, ViewProducts, []domain.Product{}, s.api.ListProducts)
}

// EditForm returns the editor prefilled from the product with id.
func (s *ProductService) EditForm(ctx context.Context, id string) (domain.ProductForm, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return domain.ProductForm{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return domain.ProductFormFrom(p), nil
		}
	}
	return domain.ProductForm{}, apperrors.NotFound("product", id)
}

// Create validates form, creates the product and returns the refreshed list.
func (s *ProductService) Create(ctx context.Context, form domain.ProductForm) ([]domain.Product, error) {
	in, err := s.input(form)
	if err != nil {
		return nil, mutationFailed(ctx, s.logger, "create_product", "", err)
	}

	created, err := s.api.CreateProduct(ctx, in)
	if err != nil {
		return nil, mutationFailed(ctx, s.logger, "create_product", "", err)
	}

	if err := s.producer.PublishProductCreated(ctx, created.ID, in); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product_created event",
			slog.String("error", err.Error()),
		)
	}
	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", created.ID),
		slog.String("name", in.Name),
	)

	return s.List(ctx)
}

// Update validates form, replaces product id and returns the refreshed list.
func (s *ProductService) Update(ctx context.Context, id string, form domain.ProductForm) ([]domain.Product, error) {
	in, err := s.input(form)
	if err != nil {
		return nil, mutationFailed(ctx, s.logger, "update_product", id, err)
	}

	if _, err := s.api.UpdateProduct(ctx, id, in); err != nil {
		return nil, mutationFailed(ctx, s.logger, "update_product", id, err)
	}

	if err := s.producer.PublishProductUpdated(ctx, id, in); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product_updated event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}
	s.logger.InfoContext(ctx, "product updated", slog.String("product_id", id))

	return s.List(ctx)
}

// Delete removes product id and returns the refreshed list.
func (s *ProductService) Delete(ctx context.Context, id string) ([]domain.Product, error) {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return nil, mutationFailed(ctx, s.logger, "delete_product", id, err)
	}

	if err := s.producer.PublishProductDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product_deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}
	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))

	return s.List(ctx)
}

func (s *ProductService) input(form domain.ProductForm) (domain.ProductInput, error) {
	if err := validator.Validate(form); err != nil {
		return domain.ProductInput{}, err
	}
	return form.Input()
}
