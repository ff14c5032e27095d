package services

import (
	"context"

	"github.com/shopspring/decimal"

	"storekeeper/internal/domain"
	"storekeeper/internal/errs"
	"storekeeper/internal/images"
	"storekeeper/internal/validate"
)

// ProductStore is the access layer the service persists through.
type ProductStore interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, bool, error)
	Create(ctx context.Context, in domain.CreateProductInput) (domain.Product, error)
	Update(ctx context.Context, id string, in domain.UpdateProductInput) error
	Delete(ctx context.Context, id string) error
}

// PhotoPicker is satisfied by *images.Helper.
type PhotoPicker interface {
	TakePhoto(ctx context.Context) (string, bool)
	PickFromGallery(ctx context.Context) (string, bool)
}

type ProductService struct {
	Products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{Products: products}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.Products.ListAll(ctx)
}

// Get returns errs.NotFound when the product does not exist.
func (s *ProductService) Get(ctx context.Context, id string) (domain.Product, error) {
	p, ok, err := s.Products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		return domain.Product{}, errs.New(errs.CodeNotFound, "product "+id+" not found")
	}
	return p, nil
}

// Create validates the form input and stores it.
func (s *ProductService) Create(ctx context.Context, in domain.CreateProductInput) (domain.Product, error) {
	in, err := validate.Create(in)
	if err != nil {
		return domain.Product{}, err
	}
	return s.Products.Create(ctx, in)
}

// Update validates the set fields, applies them and returns the stored
// record.
func (s *ProductService) Update(ctx context.Context, id string, in domain.UpdateProductInput) (domain.Product, error) {
	in, err := validate.Update(in)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.Products.Update(ctx, id, in); err != nil {
		return domain.Product{}, err
	}
	return s.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.Products.Delete(ctx, id)
}

// AttachPhoto runs the picker for kind and stores the result on the
// product. changed is false when the user declined or cancelled.
func (s *ProductService) AttachPhoto(ctx context.Context, id string, picker PhotoPicker, kind images.Kind) (p domain.Product, changed bool, err error) {
	// Fail before opening the picker if the product is gone.
	if p, err = s.Get(ctx, id); err != nil {
		return domain.Product{}, false, err
	}
	var (
		uri string
		ok  bool
	)
	if kind == images.Camera {
		uri, ok = picker.TakePhoto(ctx)
	} else {
		uri, ok = picker.PickFromGallery(ctx)
	}
	if !ok {
		return p, false, nil
	}
	p, err = s.Update(ctx, id, domain.UpdateProductInput{ImageURI: domain.SetImage(uri)})
	if err != nil {
		return domain.Product{}, false, err
	}
	return p, true, nil
}

// RemovePhoto clears the product's image reference.
func (s *ProductService) RemovePhoto(ctx context.Context, id string) (domain.Product, error) {
	return s.Update(ctx, id, domain.UpdateProductInput{ImageURI: domain.ClearImage()})
}

// Summary counts products, units in stock and their total value.
func (s *ProductService) Summary(ctx context.Context) (domain.Summary, error) {
	ps, err := s.Products.ListAll(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	sum := domain.Summary{Count: len(ps), TotalValue: decimal.Zero}
	for _, p := range ps {
		sum.Units += p.Quantity
		sum.TotalValue = sum.TotalValue.Add(p.StockValue())
	}
	sum.TotalValue = sum.TotalValue.Round(2)
	return sum, nil
}
