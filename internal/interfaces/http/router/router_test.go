package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/noorfashion/backend/internal/application/cart"
	catalogapp "github.com/noorfashion/backend/internal/application/catalog"
	checkoutapp "github.com/noorfashion/backend/internal/application/checkout"
	fulfillmentapp "github.com/noorfashion/backend/internal/application/fulfillment"
	identityapp "github.com/noorfashion/backend/internal/application/identity"
	ordersapp "github.com/noorfashion/backend/internal/application/orders"
	"github.com/noorfashion/backend/internal/domain/catalog"
	"github.com/noorfashion/backend/internal/domain/delivery"
	"github.com/noorfashion/backend/internal/domain/identity"
	"github.com/noorfashion/backend/internal/domain/order"
	"github.com/noorfashion/backend/internal/domain/payment"
	"github.com/noorfashion/backend/internal/domain/shared"
	"github.com/noorfashion/backend/internal/infrastructure/auth"
	"github.com/noorfashion/backend/internal/infrastructure/cache"
	"github.com/noorfashion/backend/internal/infrastructure/config"
	"github.com/noorfashion/backend/internal/infrastructure/storage"
	"github.com/noorfashion/backend/internal/interfaces/http/handler"
)

// In-memory repositories for a full-router smoke test

type productRepo struct{ products map[uuid.UUID]*catalog.Product }

func (r *productRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *productRepo) FindAll(_ context.Context, _ catalog.ListFilter) ([]catalog.Product, int64, error) {
	var out []catalog.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *productRepo) Save(_ context.Context, p *catalog.Product) error {
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *productRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

type orderRepo struct{ orders map[uuid.UUID]*order.Order }

func (r *orderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *orderRepo) FindByCartID(_ context.Context, cartID string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.CartID == cartID {
			clone := *o
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *orderRepo) FindByTranRef(_ context.Context, tranRef string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.TranRef == tranRef {
			clone := *o
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *orderRepo) FindByTrackingNumber(_ context.Context, tn string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.TrackingNumber == tn {
			clone := *o
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *orderRepo) FindByUserID(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]order.Order, int64, error) {
	var out []order.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *orderRepo) FindAll(_ context.Context, _ shared.Filter) ([]order.Order, int64, error) {
	var out []order.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *orderRepo) Save(_ context.Context, o *order.Order) error {
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *orderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

type userRepo struct{ users map[uuid.UUID]*identity.User }

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *userRepo) Save(_ context.Context, u *identity.User) error {
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

type stubGateway struct{}

func (stubGateway) CreatePayment(_ context.Context, req *payment.CreatePaymentRequest) (*payment.CreatePaymentResponse, error) {
	return &payment.CreatePaymentResponse{
		TranRef:     "TST-" + req.CartID,
		RedirectURL: "https://secure.paytabs.com/payment/page/" + req.CartID,
	}, nil
}

func (stubGateway) VerifyCallback(_ context.Context, fields map[string]string) (*payment.Callback, error) {
	return &payment.Callback{
		TranRef:   fields["tranRef"],
		CartID:    fields["cartId"],
		Status:    payment.StatusAuthorized,
		RawFields: fields,
	}, nil
}

type stubCourier struct{}

func (stubCourier) CreateShipment(_ context.Context, _ *delivery.CreateShipmentRequest) (*delivery.CreateShipmentResponse, error) {
	return &delivery.CreateShipmentResponse{TrackingNumber: "175600000001", CourierOrderID: "42"}, nil
}

func (stubCourier) TrackShipment(context.Context, string) ([]delivery.TrackingEvent, error) {
	return nil, nil
}

func (stubCourier) CancelShipment(_ context.Context, tn string) (*delivery.CancelShipmentResponse, error) {
	return &delivery.CancelShipmentResponse{TrackingNumber: tn}, nil
}

func (stubCourier) ListServices(context.Context) ([]delivery.Service, error) {
	return []delivery.Service{{ID: "1", ServiceType: "Normal"}}, nil
}

func (stubCourier) ListCities(context.Context) ([]delivery.City, error) {
	return []delivery.City{{ID: "1", Name: "Dubai"}}, nil
}

type fixture struct {
	engine     http.Handler
	authSvc    *identityapp.AuthService
	users      *userRepo
	productsID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "storefront-test"
	cfg.App.Env = "test"
	cfg.HTTP.MaxBodySize = 1 << 20
	cfg.JWT = config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters!!",
		AccessTokenExpiration: time.Hour,
		Issuer:                "storefront-test",
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	logger := zap.NewNop()

	products := &productRepo{products: make(map[uuid.UUID]*catalog.Product)}
	p, err := catalog.NewProduct("Silk Scarf", decimal.NewFromInt(60), catalog.CategoryCasual)
	require.NoError(t, err)
	require.NoError(t, p.SetStock(catalog.StockModeSimple, []catalog.VariantStock{{Quantity: 10, InStock: true}}))
	require.NoError(t, products.Save(context.Background(), p))

	orders := &orderRepo{orders: make(map[uuid.UUID]*order.Order)}
	users := &userRepo{users: make(map[uuid.UUID]*identity.User)}

	store := cache.NewInMemoryCartStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })

	productSvc := catalogapp.NewProductService(products, nil, logger)
	imageSvc := catalogapp.NewImageService(products, storage.NewStubImageStorage(), logger)
	cartSvc := cartapp.NewService(store, products, logger)
	authSvc := identityapp.NewAuthService(users, jwtService, logger)
	checkoutSvc := checkoutapp.NewService(store, orders, products, stubGateway{}, checkoutapp.Config{Currency: "AED"}, logger)
	callbackSvc := checkoutapp.NewCallbackService(stubGateway{}, orders, products, logger)
	orderSvc := ordersapp.NewService(orders, logger)
	fulfillmentSvc := fulfillmentapp.NewService(orders, stubCourier{}, logger)

	engine := New(cfg, jwtService, Handlers{
		System:          handler.NewSystemHandler(cfg.App.Name, "test"),
		Auth:            handler.NewAuthHandler(authSvc),
		Product:         handler.NewProductHandler(productSvc, imageSvc),
		Cart:            handler.NewCartHandler(cartSvc),
		Checkout:        handler.NewCheckoutHandler(checkoutSvc),
		PaymentCallback: handler.NewPaymentCallbackHandler(callbackSvc, ""),
		Order:           handler.NewOrderHandler(orderSvc),
		Fulfillment:     handler.NewFulfillmentHandler(fulfillmentSvc),
	}, logger)

	return &fixture{engine: engine, authSvc: authSvc, users: users, productsID: p.ID}
}

func (f *fixture) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *fixture) register(t *testing.T, email, role string) string {
	t.Helper()
	resp, err := f.authSvc.Register(context.Background(), identityapp.RegisterRequest{
		Email:    email,
		Name:     "Test Shopper",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	if role != "user" {
		u, err := f.users.FindByID(context.Background(), resp.User.ID)
		require.NoError(t, err)
		u.Role = identity.Role(role)
		require.NoError(t, f.users.Save(context.Background(), u))

		login, err := f.authSvc.Login(context.Background(), identityapp.LoginRequest{
			Email:    email,
			Password: "correct horse battery",
		})
		require.NoError(t, err)
		return login.AccessToken
	}
	return resp.AccessToken
}

func TestRouter_PublicEndpoints(t *testing.T) {
	f := newFixture(t)

	t.Run("health", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("product listing is public", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/products", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delivery cities are public", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/delivery/cities", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_AuthBoundaries(t *testing.T) {
	f := newFixture(t)
	userToken := f.register(t, "shopper@example.com", "user")
	adminToken := f.register(t, "admin@example.com", "admin")

	t.Run("orders need a token", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/orders", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("orders with a token", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/orders", nil,
			map[string]string{"Authorization": "Bearer " + userToken})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin surface rejects plain users", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/admin/products", map[string]any{
			"name": "X", "price": "10", "category": "Casual",
		}, map[string]string{"Authorization": "Bearer " + userToken})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin surface accepts admins", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/admin/products", map[string]any{
			"name": "Pleated Skirt", "price": "95", "category": "Office",
		}, map[string]string{"Authorization": "Bearer " + adminToken})
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestRouter_ShopToPaidOrder(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "amina@example.com", "user")
	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"X-Session-ID":  "session-e2e",
	}

	w := f.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"product_id": f.productsID.String(),
	}, headers)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/checkout", map[string]any{
		"customer_name":  "Amina Hassan",
		"customer_email": "amina@example.com",
		"customer_phone": "+971501234567",
		"address":        "12 Marina Walk",
		"city":           "Dubai",
	}, headers)
	require.Equal(t, http.StatusCreated, w.Code)

	var checkoutResp struct {
		Data struct {
			CartID      string `json:"cart_id"`
			TranRef     string `json:"tran_ref"`
			RedirectURL string `json:"redirect_url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkoutResp))
	assert.NotEmpty(t, checkoutResp.Data.RedirectURL)

	t.Run("cart is cleared after checkout", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/cart", nil, headers)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"item_count":0`)
	})

	t.Run("gateway callback settles the order", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/payment/callback", map[string]any{
			"tranRef":   checkoutResp.Data.TranRef,
			"cartId":    checkoutResp.Data.CartID,
			"signature": "stubbed",
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"payment_status":"authorized"`)
	})

	t.Run("order shows up in history as paid", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/orders", nil, headers)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), checkoutResp.Data.CartID)
		assert.Contains(t, w.Body.String(), `"status":"processing"`)
	})
}
