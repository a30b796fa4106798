package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"shopstack/internal/data/entity"
	"shopstack/internal/data/repository"
	"shopstack/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProductRepo struct {
	products map[int64]*entity.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*entity.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	for _, existing := range f.products {
		if existing.SKU == product.SKU {
			return repository.ErrDuplicateSKU
		}
	}
	f.nextID++
	product.ID = f.nextID
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id int64) (*entity.Product, error) {
	product, ok := f.products[id]
	if !ok || product.DeletedAt != nil {
		return nil, nil
	}
	return product, nil
}

func (f *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, product := range f.products {
		if product.SKU == sku && product.DeletedAt == nil {
			return product, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) matches(product *entity.Product, filter repository.ProductFilter) bool {
	if product.DeletedAt != nil {
		return false
	}
	if filter.Search != nil && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(*filter.Search)) {
		return false
	}
	if filter.CategoryID != nil && (product.CategoryID == nil || *product.CategoryID != *filter.CategoryID) {
		return false
	}
	if filter.BrandID != nil && (product.BrandID == nil || *product.BrandID != *filter.BrandID) {
		return false
	}
	if filter.MinPrice != nil && product.PriceCents < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && product.PriceCents > *filter.MaxPrice {
		return false
	}
	if filter.Active != nil && product.Active != *filter.Active {
		return false
	}
	return true
}

func (f *fakeProductRepo) FindAll(_ context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	var matched []*entity.Product
	for id := int64(1); id <= f.nextID; id++ {
		if product, ok := f.products[id]; ok && f.matches(product, filter) {
			matched = append(matched, product)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeProductRepo) CountAll(_ context.Context, filter repository.ProductFilter) (int64, error) {
	var count int64
	for _, product := range f.products {
		if f.matches(product, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range f.products {
		if existing.ID != product.ID && existing.SKU == product.SKU {
			return repository.ErrDuplicateSKU
		}
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	product, ok := f.products[id]
	if !ok || product.DeletedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	product.DeletedAt = &now
	return nil
}

type fakeCategoryRepo struct {
	categories map[int64]*entity.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	for _, existing := range f.categories {
		if existing.Name == category.Name {
			return repository.ErrDuplicateName
		}
	}
	category.ID = int64(len(f.categories) + 1)
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id int64) (*entity.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	var all []*entity.Category
	for id := int64(1); id <= int64(len(f.categories)); id++ {
		if category, ok := f.categories[id]; ok {
			all = append(all, category)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeCategoryRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.categories)), nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	if _, ok := f.categories[category.ID]; !ok {
		return repository.ErrNotFound
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

type fakeBrandRepo struct {
	brands map[int64]*entity.Brand
}

func (f *fakeBrandRepo) Create(_ context.Context, brand *entity.Brand) error {
	for _, existing := range f.brands {
		if existing.Name == brand.Name {
			return repository.ErrDuplicateName
		}
	}
	brand.ID = int64(len(f.brands) + 1)
	f.brands[brand.ID] = brand
	return nil
}

func (f *fakeBrandRepo) FindByID(_ context.Context, id int64) (*entity.Brand, error) {
	return f.brands[id], nil
}

func (f *fakeBrandRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Brand, error) {
	var all []*entity.Brand
	for id := int64(1); id <= int64(len(f.brands)); id++ {
		if brand, ok := f.brands[id]; ok {
			all = append(all, brand)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeBrandRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.brands)), nil
}

func (f *fakeBrandRepo) Update(_ context.Context, brand *entity.Brand) error {
	if _, ok := f.brands[brand.ID]; !ok {
		return repository.ErrNotFound
	}
	f.brands[brand.ID] = brand
	return nil
}

func (f *fakeBrandRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.brands[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.brands, id)
	return nil
}

type catalogFixture struct {
	products   ProductService
	categories CategoryService
	brands     BrandService

	productRepo  *fakeProductRepo
	categoryRepo *fakeCategoryRepo
	brandRepo    *fakeBrandRepo
}

func newCatalogFixture() *catalogFixture {
	productRepo := newFakeProductRepo()
	categoryRepo := &fakeCategoryRepo{categories: make(map[int64]*entity.Category)}
	brandRepo := &fakeBrandRepo{brands: make(map[int64]*entity.Brand)}
	log := zap.NewNop()

	return &catalogFixture{
		products:     NewProductService(productRepo, categoryRepo, brandRepo, log),
		categories:   NewCategoryService(categoryRepo, log),
		brands:       NewBrandService(brandRepo, log),
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

func TestProductCreateAndGet(t *testing.T) {
	fx := newCatalogFixture()

	created, err := fx.products.Create(context.Background(), &request.ProductRequest{
		SKU:        "SKU-001",
		Name:       "Mechanical Keyboard",
		PriceCents: 129900,
		Stock:      10,
	})
	require.NoError(t, err)
	assert.True(t, created.Active, "active defaults to true")

	fetched, err := fx.products.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Keyboard", fetched.Name)
}

func TestProductDuplicateSKU(t *testing.T) {
	fx := newCatalogFixture()

	_, err := fx.products.Create(context.Background(), &request.ProductRequest{
		SKU: "SKU-001", Name: "First", PriceCents: 100, Stock: 1,
	})
	require.NoError(t, err)

	_, err = fx.products.Create(context.Background(), &request.ProductRequest{
		SKU: "SKU-001", Name: "Second", PriceCents: 200, Stock: 1,
	})
	assert.ErrorIs(t, err, ErrDuplicateSKU)
}

func TestProductCreateUnknownCategory(t *testing.T) {
	fx := newCatalogFixture()
	categoryID := int64(77)

	_, err := fx.products.Create(context.Background(), &request.ProductRequest{
		SKU: "SKU-002", Name: "Orphan", PriceCents: 100, Stock: 1,
		CategoryID: &categoryID,
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestProductListFilters(t *testing.T) {
	fx := newCatalogFixture()

	category, err := fx.categories.Create(context.Background(), &request.CategoryRequest{Name: "Peripherals"})
	require.NoError(t, err)

	for _, p := range []struct {
		sku   string
		name  string
		price int64
	}{
		{"SKU-A", "Gaming Mouse", 4900},
		{"SKU-B", "Gaming Keyboard", 12900},
		{"SKU-C", "Webcam", 8900},
	} {
		_, err := fx.products.Create(context.Background(), &request.ProductRequest{
			SKU: p.sku, Name: p.name, PriceCents: p.price, Stock: 5,
			CategoryID: &category.ID,
		})
		require.NoError(t, err)
	}

	search := "gaming"
	minPrice := int64(5000)
	page, err := fx.products.GetAll(context.Background(), &request.ProductListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		Search:           &search,
		MinPrice:         &minPrice,
	})
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, "Gaming Keyboard", page.Data[0].Name)
	assert.Equal(t, int64(1), page.Pagination.Total)
}

func TestProductPartialUpdate(t *testing.T) {
	fx := newCatalogFixture()

	created, err := fx.products.Create(context.Background(), &request.ProductRequest{
		SKU: "SKU-010", Name: "Monitor", PriceCents: 49900, Stock: 3,
	})
	require.NoError(t, err)

	newPrice := int64(39900)
	updated, err := fx.products.Update(context.Background(), created.ID, &request.ProductUpdateRequest{
		PriceCents: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(39900), updated.PriceCents)
	assert.Equal(t, "Monitor", updated.Name, "unset fields keep their value")
}

func TestProductDelete(t *testing.T) {
	fx := newCatalogFixture()

	created, err := fx.products.Create(context.Background(), &request.ProductRequest{
		SKU: "SKU-020", Name: "Headset", PriceCents: 9900, Stock: 2,
	})
	require.NoError(t, err)

	require.NoError(t, fx.products.Delete(context.Background(), created.ID))

	_, err = fx.products.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	err = fx.products.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCategoryDuplicateName(t *testing.T) {
	fx := newCatalogFixture()

	_, err := fx.categories.Create(context.Background(), &request.CategoryRequest{Name: "Audio"})
	require.NoError(t, err)

	_, err = fx.categories.Create(context.Background(), &request.CategoryRequest{Name: "Audio"})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestBrandCRUD(t *testing.T) {
	fx := newCatalogFixture()

	created, err := fx.brands.Create(context.Background(), &request.BrandRequest{Name: "Initech"})
	require.NoError(t, err)

	renamed, err := fx.brands.Update(context.Background(), created.ID, &request.BrandRequest{Name: "Initrode"})
	require.NoError(t, err)
	assert.Equal(t, "Initrode", renamed.Name)

	require.NoError(t, fx.brands.Delete(context.Background(), created.ID))

	_, err = fx.brands.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrBrandNotFound)
}
