package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"swapnstay/internal/domain"
	applog "swapnstay/internal/log"
	"swapnstay/internal/repos"
	"swapnstay/internal/validate"
)

// DocumentStore is the remote document database the product repository and
// the session provider write through.
type DocumentStore interface {
	Add(ctx context.Context, collection string, doc any) (string, error)
	Set(ctx context.Context, collection, id string, doc any) error
	Get(ctx context.Context, collection, id string) (repos.Document, error)
	List(ctx context.Context, collection string) ([]repos.Document, error)
	Delete(ctx context.Context, collection, id string) error
}

// Options tune the product repository's write policy.
type Options struct {
	StrictNumbers    bool          // reject unparseable or missing form fields
	GuardReentry     bool          // fail fast with ErrBusy on overlapping writes
	EnforceOwnership bool          // only the seller may delete
	StoreTimeout     time.Duration // 0 waits on the store indefinitely
}

// ProductForm is the raw text of the add-product form.
type ProductForm struct {
	Name        string
	Category    string
	Quantity    string
	Price       string
	Location    string
	Status      string
	Description string
}

// ProductRepository holds one session's snapshot of the products collection
// and routes every write through the store. The snapshot is only consistent
// with the store right after Reload; each successful write reloads it.
type ProductRepository struct {
	store DocumentStore
	opts  Options

	mu       sync.RWMutex
	cache    []domain.Product
	degraded bool

	op   sync.Mutex // held for the duration of a guarded Submit/Remove
	init sync.Once
}

func NewProductRepository(store DocumentStore, opts Options) *ProductRepository {
	return &ProductRepository{store: store, opts: opts}
}

// DemoProducts is the fixed data set shown when the store cannot be read.
func DemoProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "demo1",
			Name:        "Organic Tomatoes",
			Category:    "Crops",
			Quantity:    50,
			Price:       decimal.NewFromInt(15),
			Location:    "Accra",
			Status:      domain.StatusAvailable,
			SellerName:  "Demo Farmer",
			Description: "Fresh organic tomatoes",
		},
		{
			ID:          "demo2",
			Name:        "Maize",
			Category:    "Crops",
			Quantity:    100,
			Price:       decimal.NewFromInt(8),
			Location:    "Kumasi",
			Status:      domain.StatusHarvested,
			SellerName:  "Demo Farmer 2",
			Description: "Quality maize for sale",
		},
	}
}

func (r *ProductRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.StoreTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.StoreTimeout)
	}
	return ctx, func() {}
}

func (r *ProductRepository) replace(products []domain.Product, degraded bool) {
	r.mu.Lock()
	r.cache = products
	r.degraded = degraded
	r.mu.Unlock()
}

// Reload replaces the cache with the store's products, newest first. If the
// store cannot be read the cache becomes the demo set and the store error is
// returned wrapped in ErrStoreUnavailable.
func (r *ProductRepository) Reload(ctx context.Context) error {
	sctx, cancel := r.withTimeout(ctx)
	defer cancel()

	docs, err := r.store.List(sctx, repos.Products)
	if err == nil {
		fresh := make([]domain.Product, 0, len(docs))
		for _, d := range docs {
			var p domain.Product
			if err = d.Decode(&p); err != nil {
				break
			}
			p.ID, p.CreatedAt = d.ID, d.CreatedAt
			fresh = append(fresh, p)
		}
		if err == nil {
			r.replace(fresh, false)
			return nil
		}
	}

	demo := DemoProducts()
	applog.Warn(nil, "products.reload.degraded", err, map[string]any{"fallback": "demo", "count": len(demo)})
	r.replace(demo, true)
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// LoadDemo shows the demo set without touching the store (signed-out view).
func (r *ProductRepository) LoadDemo() {
	r.replace(DemoProducts(), true)
}

// ensureLoaded reloads once for sessions that predate this repository.
func (r *ProductRepository) ensureLoaded(ctx context.Context) {
	r.init.Do(func() { _ = r.Reload(ctx) })
}

func (r *ProductRepository) begin() (func(), error) {
	if !r.opts.GuardReentry {
		return func() {}, nil
	}
	if !r.op.TryLock() {
		return nil, ErrBusy
	}
	return r.op.Unlock, nil
}

func (r *ProductRepository) parse(f ProductForm) (domain.ProductDoc, error) {
	if !r.opts.StrictNumbers {
		qty, _ := validate.Quantity(f.Quantity)
		price, _ := validate.Price(f.Price)
		return domain.ProductDoc{
			Name: f.Name, Category: f.Category, Quantity: qty, Price: price,
			Location: f.Location, Status: domain.Status(f.Status), Description: f.Description,
		}, nil
	}

	var doc domain.ProductDoc
	var ok bool
	if doc.Name, ok = validate.Required(f.Name, 120); !ok {
		return doc, &validate.FieldError{Field: "name", Reason: "required"}
	}
	if doc.Category, ok = validate.Required(f.Category, 60); !ok {
		return doc, &validate.FieldError{Field: "category", Reason: "required"}
	}
	if doc.Quantity, ok = validate.Quantity(f.Quantity); !ok {
		return doc, &validate.FieldError{Field: "quantity", Reason: "must be a whole number of 0 or more"}
	}
	if doc.Price, ok = validate.Price(f.Price); !ok {
		return doc, &validate.FieldError{Field: "price", Reason: "must be a number of 0 or more"}
	}
	if doc.Location, ok = validate.Required(f.Location, 120); !ok {
		return doc, &validate.FieldError{Field: "location", Reason: "required"}
	}
	if doc.Status, ok = validate.Status(f.Status); !ok {
		return doc, &validate.FieldError{Field: "status", Reason: "unknown status"}
	}
	if len(f.Description) > 2000 {
		return doc, &validate.FieldError{Field: "description", Reason: "too long"}
	}
	doc.Description = f.Description
	return doc, nil
}

// Submit creates a product owned by user and reloads the cache. It returns
// the new product id.
func (r *ProductRepository) Submit(ctx context.Context, form ProductForm, user *domain.SessionUser) (string, error) {
	if user == nil {
		return "", ErrUnauthenticated
	}
	doc, err := r.parse(form)
	if err != nil {
		return "", err
	}
	doc.SellerID = user.ID
	doc.SellerName = user.DisplayName()

	done, err := r.begin()
	if err != nil {
		return "", err
	}
	defer done()

	sctx, cancel := r.withTimeout(ctx)
	id, err := r.store.Add(sctx, repos.Products, doc)
	cancel()
	if err != nil {
		return "", fmt.Errorf("add product: %w", err)
	}
	r.reloadAfterWrite(ctx, "product.create", id)
	return id, nil
}

// reloadAfterWrite refreshes the cache once a write has landed. A failed
// reload does not undo the write; the cache is left on the demo set and
// Degraded reports it.
func (r *ProductRepository) reloadAfterWrite(ctx context.Context, action, id string) {
	if err := r.Reload(ctx); err != nil {
		applog.Warn(nil, action+".stale", err, map[string]any{"product_id": id})
	}
}

// Remove deletes a product once confirmed and reloads the cache. Unknown ids
// are passed to the store as-is. A signed-out requester never reaches the
// store, whatever the ownership policy.
func (r *ProductRepository) Remove(ctx context.Context, id string, requester *domain.SessionUser, confirmed bool) error {
	if requester == nil {
		return ErrUnauthenticated
	}
	if !confirmed {
		return ErrNotConfirmed
	}
	done, err := r.begin()
	if err != nil {
		return err
	}
	defer done()

	sctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if r.opts.EnforceOwnership {
		if err := r.checkOwner(sctx, id, requester); err != nil {
			return err
		}
	}
	if err := r.store.Delete(sctx, repos.Products, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	r.reloadAfterWrite(ctx, "product.delete", id)
	return nil
}

func (r *ProductRepository) checkOwner(ctx context.Context, id string, requester *domain.SessionUser) error {
	d, err := r.store.Get(ctx, repos.Products, id)
	if errors.Is(err, repos.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load product %s: %w", id, err)
	}
	var p domain.Product
	if err := d.Decode(&p); err != nil {
		return err
	}
	if p.SellerID != requester.ID {
		return ErrForbidden
	}
	return nil
}

// Products returns a copy of the cache.
func (r *ProductRepository) Products() []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, len(r.cache))
	copy(out, r.cache)
	return out
}

func (r *ProductRepository) Find(id string) (domain.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.cache {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Degraded reports whether the cache holds the demo set.
func (r *ProductRepository) Degraded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.degraded
}

func (r *ProductRepository) StatusDistribution() domain.Distribution {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return domain.CountStatuses(r.cache)
}
