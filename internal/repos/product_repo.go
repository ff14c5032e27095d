package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"storekeeper/internal/domain"
	"storekeeper/internal/errs"
)

const productColumns = ColID + ", " + ColName + ", " + ColQuantity + ", " + ColPrice + ", " +
	ColImageURI + ", " + ColCreatedAt + ", " + ColUpdatedAt

// ProductRepo is the only writer of the products table.
type ProductRepo struct {
	db    *sqlx.DB
	now   func() time.Time
	newID func() string
}

type ProductRepoOption func(*ProductRepo)

// WithClock replaces time.Now as the source of created_at/updated_at.
func WithClock(now func() time.Time) ProductRepoOption {
	return func(r *ProductRepo) { r.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) ProductRepoOption {
	return func(r *ProductRepo) { r.newID = gen }
}

func NewProductRepo(db *sqlx.DB, opts ...ProductRepoOption) *ProductRepo {
	r := &ProductRepo{db: db, now: time.Now, newID: uuid.NewString}
	for _, o := range opts {
		o(r)
	}
	return r
}

// ListAll returns every product, newest first. An empty table yields an
// empty, non-nil slice.
func (r *ProductRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+productColumns+`
		FROM `+TableProducts+`
		ORDER BY `+ColCreatedAt+` DESC, rowid DESC
	`)
	if err != nil {
		return nil, storageError("list products", err)
	}
	return out, nil
}

// Get returns the product with id; ok is false when there is none.
func (r *ProductRepo) Get(ctx context.Context, id string) (p domain.Product, ok bool, err error) {
	err = r.db.GetContext(ctx, &p, `
		SELECT `+productColumns+`
		FROM `+TableProducts+`
		WHERE `+ColID+` = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, storageError("get product", err)
	}
	return p, true, nil
}

// Create inserts a product with a fresh id and returns the stored record.
func (r *ProductRepo) Create(ctx context.Context, in domain.CreateProductInput) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Product{}, errs.New(errs.CodeConstraintViolation, "name must not be empty")
	}
	now := r.now().UnixMilli()
	p := domain.Product{
		ID:        r.newID(),
		Name:      name,
		Quantity:  in.Quantity,
		Price:     in.Price,
		ImageURI:  imageRef(in.ImageURI),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := insertProduct(ctx, r.db, p, false); err != nil {
		return domain.Product{}, storageError("create product", err)
	}
	return p, nil
}

func insertProduct(ctx context.Context, e sqlx.ExtContext, p domain.Product, skipExisting bool) error {
	q := `INSERT INTO ` + TableProducts + `(` + productColumns + `)
		VALUES (:id, :name, :quantity, :price, :image_uri, :created_at, :updated_at)`
	if skipExisting {
		q += ` ON CONFLICT(` + ColID + `) DO NOTHING`
	}
	_, err := sqlx.NamedExecContext(ctx, e, q, p)
	return err
}

// imageRef stores an empty reference as no image.
func imageRef(uri *string) *string {
	if uri == nil || *uri == "" {
		return nil
	}
	return uri
}

// Update applies the fields set in in and re-stamps updated_at, even when
// nothing else is set. A missing id returns errs.NotFound.
func (r *ProductRepo) Update(ctx context.Context, id string, in domain.UpdateProductInput) error {
	var (
		sets []string
		args []any
	)
	if v, ok := in.Name.Get(); ok {
		v = strings.TrimSpace(v)
		if v == "" {
			return errs.New(errs.CodeConstraintViolation, "name must not be empty")
		}
		sets = append(sets, ColName+" = ?")
		args = append(args, v)
	}
	if v, ok := in.Quantity.Get(); ok {
		sets = append(sets, ColQuantity+" = ?")
		args = append(args, v)
	}
	if v, ok := in.Price.Get(); ok {
		sets = append(sets, ColPrice+" = ?")
		args = append(args, v)
	}
	if v, ok := in.ImageURI.Get(); ok {
		sets = append(sets, ColImageURI+" = ?")
		args = append(args, imageRef(v))
	}
	// MAX keeps updated_at >= created_at if the wall clock steps back.
	sets = append(sets, ColUpdatedAt+" = MAX(?, "+ColUpdatedAt+")")
	args = append(args, r.now().UnixMilli(), id)

	res, err := r.db.ExecContext(ctx,
		`UPDATE `+TableProducts+` SET `+strings.Join(sets, ", ")+` WHERE `+ColID+` = ?`, args...)
	if err != nil {
		return storageError("update product", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageError("update product", err)
	}
	if n == 0 {
		return errs.New(errs.CodeNotFound, "product "+id+" not found")
	}
	return nil
}

// Delete removes the product. Deleting a missing id is not an error.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM `+TableProducts+` WHERE `+ColID+` = ?`, id); err != nil {
		return storageError("delete product", err)
	}
	return nil
}

// Count returns the number of stored products.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+TableProducts); err != nil {
		return 0, storageError("count products", err)
	}
	return n, nil
}
