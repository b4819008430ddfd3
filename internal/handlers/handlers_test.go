package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AR-Raju/online-nursery-server/internal/catalog"
	"github.com/AR-Raju/online-nursery-server/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProductStore struct {
	products  map[string]*domain.Product
	lastQuery catalog.ProductQuery
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[string]*domain.Product{}}
}

func (s *fakeProductStore) Create(_ context.Context, p *domain.Product) error {
	p.ID = primitive.NewObjectID()
	s.products[p.ID.Hex()] = p
	return nil
}

func (s *fakeProductStore) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
}

func (s *fakeProductStore) GetByIDs(_ context.Context, ids []string) (map[string]*domain.Product, error) {
	byID := map[string]*domain.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			byID[id] = p
		}
	}
	return byID, nil
}

func (s *fakeProductStore) List(_ context.Context, q catalog.ProductQuery) ([]*domain.Product, int64, error) {
	s.lastQuery = q
	var list []*domain.Product
	for _, p := range s.products {
		list = append(list, p)
	}
	return list, int64(len(list)), nil
}

func (s *fakeProductStore) Update(_ context.Context, id string, input domain.UpdateProductInput) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Image != "" {
		p.ImageURL = input.Image
	}
	return p, nil
}

func (s *fakeProductStore) Delete(_ context.Context, id string) error {
	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	delete(s.products, id)
	return nil
}

func (s *fakeProductStore) DecrementStock(_ context.Context, id string, qty int) error {
	p, ok := s.products[id]
	if !ok || p.Stock < qty {
		return fmt.Errorf("product %s: %w", id, domain.ErrInsufficientStock)
	}
	p.Stock -= qty
	return nil
}

type fakeCategoryStore struct {
	categories map[string]*domain.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: map[string]*domain.Category{}}
}

func (s *fakeCategoryStore) Create(_ context.Context, cat *domain.Category) error {
	cat.ID = primitive.NewObjectID()
	s.categories[cat.ID.Hex()] = cat
	return nil
}

func (s *fakeCategoryStore) GetByID(_ context.Context, id string) (*domain.Category, error) {
	if cat, ok := s.categories[id]; ok {
		return cat, nil
	}
	return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
}

func (s *fakeCategoryStore) List(_ context.Context) ([]*domain.Category, error) {
	list := []*domain.Category{}
	for _, cat := range s.categories {
		list = append(list, cat)
	}
	return list, nil
}

func (s *fakeCategoryStore) Update(_ context.Context, id string, input domain.UpdateCategoryInput) (*domain.Category, error) {
	cat, ok := s.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	if input.Name != nil {
		cat.Name = *input.Name
	}
	if input.Image != "" {
		cat.ImageURL = input.Image
	}
	return cat, nil
}

func (s *fakeCategoryStore) Delete(_ context.Context, id string) error {
	if _, ok := s.categories[id]; !ok {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	delete(s.categories, id)
	return nil
}

type fakeOrderService struct {
	placeErr  error
	statusErr error
	order     *domain.Order
}

func (s *fakeOrderService) PlaceOrder(_ context.Context, input domain.CreateOrderInput) (*domain.Order, error) {
	if s.placeErr != nil {
		return nil, s.placeErr
	}
	return s.order, nil
}

func (s *fakeOrderService) UpdateStatus(_ context.Context, _ string, status domain.OrderStatus) (*domain.Order, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	order := *s.order
	order.Status = status
	return &order, nil
}

func (s *fakeOrderService) GetOrder(_ context.Context, id string) (*domain.ResolvedOrder, error) {
	if s.order == nil {
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return &domain.ResolvedOrder{ID: s.order.ID, Status: s.order.Status, TotalAmount: s.order.TotalAmount}, nil
}

func (s *fakeOrderService) ListOrders(_ context.Context) ([]*domain.ResolvedOrder, error) {
	return []*domain.ResolvedOrder{}, nil
}

type fakeUploader struct {
	url string
	err error
}

func (u *fakeUploader) Upload(_ context.Context, _ string) (string, error) {
	return u.url, u.err
}

type testEnv struct {
	router     *gin.Engine
	products   *fakeProductStore
	categories *fakeCategoryStore
	orders     *fakeOrderService
	uploader   *fakeUploader
}

func newTestEnv() *testEnv {
	env := &testEnv{
		products:   newFakeProductStore(),
		categories: newFakeCategoryStore(),
		orders:     &fakeOrderService{},
		uploader:   &fakeUploader{url: "https://img.example.com/x.png"},
	}
	env.router = NewRouter("test",
		NewProductHandler(env.products, env.uploader),
		NewCategoryHandler(env.categories, env.uploader),
		NewOrderHandler(env.orders),
		nil,
	)
	return env
}

func (env *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestUnmatchedRoute(t *testing.T) {
	env := newTestEnv()

	rec, envelope := env.do(t, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, envelope.Success)
	assert.Equal(t, http.StatusNotFound, envelope.StatusCode)
	assert.Equal(t, "Route not found", envelope.Message)
}

func TestListProducts_EnvelopeAndPagination(t *testing.T) {
	env := newTestEnv()
	_ = env.products.Create(context.Background(), &domain.Product{Name: "Fern", Price: 10})

	rec, envelope := env.do(t, http.MethodGet, "/api/products?page=2&limit=5&sortTerm=price", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, http.StatusOK, envelope.StatusCode)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, int64(2), envelope.Pagination.Page)
	assert.Equal(t, int64(5), envelope.Pagination.Limit)
	assert.Equal(t, int64(1), envelope.Pagination.Total)

	// the parsed query reached the store intact
	assert.Equal(t, "price", env.products.lastQuery.SortField)
	assert.Equal(t, int64(2), env.products.lastQuery.Page)
}

func TestGetProduct_NotFound(t *testing.T) {
	env := newTestEnv()

	rec, envelope := env.do(t, http.MethodGet, "/api/products/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, envelope.Success)
}

func TestCreateProduct_UploadsImage(t *testing.T) {
	env := newTestEnv()

	rec, envelope := env.do(t, http.MethodPost, "/api/products",
		`{"name":"Fern","price":10,"stock":3,"category":"indoor","image":"aGVsbG8="}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, envelope.Success)

	require.Len(t, env.products.products, 1)
	for _, p := range env.products.products {
		assert.Equal(t, "https://img.example.com/x.png", p.ImageURL)
	}
}

func TestCreateProduct_MissingNameFailsValidation(t *testing.T) {
	env := newTestEnv()

	rec, envelope := env.do(t, http.MethodPost, "/api/products", `{"price":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Message, "Invalid input")
}

func TestCreateProduct_ImageHostFailure(t *testing.T) {
	env := newTestEnv()
	env.uploader.err = fmt.Errorf("image host returned status 503: %w", domain.ErrUpstream)

	rec, envelope := env.do(t, http.MethodPost, "/api/products",
		`{"name":"Fern","price":10,"image":"aGVsbG8="}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.False(t, envelope.Success)
	assert.Empty(t, env.products.products)
}

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	env := newTestEnv()
	product := &domain.Product{Name: "Fern", Price: 10}
	_ = env.products.Create(context.Background(), product)

	rec, envelope := env.do(t, http.MethodPut, "/api/products/"+product.ID.Hex(), `{"price":12.5}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, 12.5, product.Price)
	assert.Equal(t, "Fern", product.Name)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv()
	product := &domain.Product{Name: "Fern"}
	_ = env.products.Create(context.Background(), product)

	rec, envelope := env.do(t, http.MethodDelete, "/api/products/"+product.ID.Hex(), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Product deleted successfully", envelope.Message)

	rec, _ = env.do(t, http.MethodDelete, "/api/products/"+product.ID.Hex(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryCRUD(t *testing.T) {
	env := newTestEnv()

	rec, envelope := env.do(t, http.MethodPost, "/api/categories", `{"name":"Indoor","image":"aGVsbG8="}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, envelope.Success)

	var id string
	for key, cat := range env.categories.categories {
		id = key
		assert.Equal(t, "https://img.example.com/x.png", cat.ImageURL)
	}

	rec, _ = env.do(t, http.MethodGet, "/api/categories/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodPut, "/api/categories/"+id, `{"name":"Outdoor"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Outdoor", env.categories.categories[id].Name)

	rec, envelope = env.do(t, http.MethodDelete, "/api/categories/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Category deleted successfully", envelope.Message)

	rec, _ = env.do(t, http.MethodGet, "/api/categories/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_Created(t *testing.T) {
	env := newTestEnv()
	env.orders.order = &domain.Order{
		ID:          primitive.NewObjectID(),
		TotalAmount: 25,
		Status:      domain.StatusPending,
	}

	rec, envelope := env.do(t, http.MethodPost, "/api/orders",
		`{"customerName":"Ada","phone":"0170","address":"12 Garden Row","items":[{"productId":"abc","quantity":2}]}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, http.StatusCreated, envelope.StatusCode)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	env := newTestEnv()
	env.orders.placeErr = fmt.Errorf("product Fern has 2 in stock, 3 requested: %w", domain.ErrInsufficientStock)

	rec, envelope := env.do(t, http.MethodPost, "/api/orders",
		`{"customerName":"Ada","phone":"0170","address":"12 Garden Row","items":[{"productId":"abc","quantity":3}]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Message, "in stock")
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	env := newTestEnv()
	env.orders.placeErr = fmt.Errorf("product abc: %w", domain.ErrNotFound)

	rec, envelope := env.do(t, http.MethodPost, "/api/orders",
		`{"customerName":"Ada","phone":"0170","address":"12 Garden Row","items":[{"productId":"abc","quantity":1}]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, envelope.Success)
}

func TestCreateOrder_MissingCustomerFailsValidation(t *testing.T) {
	env := newTestEnv()

	rec, _ := env.do(t, http.MethodPost, "/api/orders", `{"items":[{"productId":"abc","quantity":1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv()
	env.orders.order = &domain.Order{ID: primitive.NewObjectID(), Status: domain.StatusPending}

	rec, envelope := env.do(t, http.MethodPut, "/api/orders/"+env.orders.order.ID.Hex(), `{"status":"shipped"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
}

func TestUpdateOrderStatus_InvalidValue(t *testing.T) {
	env := newTestEnv()
	env.orders.statusErr = fmt.Errorf("unknown order status %q: %w", "misplaced", domain.ErrValidation)

	rec, envelope := env.do(t, http.MethodPut, "/api/orders/abc", `{"status":"misplaced"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope.Success)
}
