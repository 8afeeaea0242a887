package checkout

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noorfashion/backend/internal/domain/cart"
	"github.com/noorfashion/backend/internal/domain/catalog"
	"github.com/noorfashion/backend/internal/domain/order"
	"github.com/noorfashion/backend/internal/domain/payment"
	"github.com/noorfashion/backend/internal/domain/shared"
	"github.com/noorfashion/backend/internal/infrastructure/cache"
)

// fakeOrderRepo is an in-memory order.Repository
type fakeOrderRepo struct {
	orders map[uuid.UUID]*order.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*order.Order)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *fakeOrderRepo) FindByCartID(_ context.Context, cartID string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.CartID == cartID {
			clone := *o
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByTranRef(_ context.Context, tranRef string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.TranRef == tranRef {
			clone := *o
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByTrackingNumber(_ context.Context, trackingNumber string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.TrackingNumber == trackingNumber {
			clone := *o
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]order.Order, int64, error) {
	var out []order.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) FindAll(context.Context, shared.Filter) ([]order.Order, int64, error) {
	var out []order.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) Save(_ context.Context, o *order.Order) error {
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

// fakeGateway is a scripted payment.Gateway
type fakeGateway struct {
	createResp *payment.CreatePaymentResponse
	createErr  error
	callback   *payment.Callback
	verifyErr  error
	lastReq    *payment.CreatePaymentRequest
}

func (g *fakeGateway) CreatePayment(_ context.Context, req *payment.CreatePaymentRequest) (*payment.CreatePaymentResponse, error) {
	g.lastReq = req
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.createResp, nil
}

func (g *fakeGateway) VerifyCallback(context.Context, map[string]string) (*payment.Callback, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.callback, nil
}

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		CustomerName:  "Amina Hassan",
		CustomerEmail: "amina@example.com",
		CustomerPhone: "+971501234567",
		Address:       "12 Marina Walk",
		City:          "Dubai",
		Notes:         "Leave at reception",
	}
}

func setupCheckout(t *testing.T) (*Service, cart.Store, *fakeProductRepo, *fakeOrderRepo, *fakeGateway) {
	t.Helper()
	store := cache.NewInMemoryCartStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })
	products := &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
	orders := newFakeOrderRepo()
	gateway := &fakeGateway{
		createResp: &payment.CreatePaymentResponse{
			TranRef:     "TST-2201",
			RedirectURL: "https://secure.paytabs.com/payment/page/TST-2201",
			RawResponse: `{"tran_ref":"TST-2201"}`,
		},
	}
	svc := NewService(store, orders, products, gateway, Config{
		Currency:    "AED",
		CallbackURL: "https://shop.test/api/payment/callback",
		ReturnURL:   "https://shop.test/checkout/complete",
	}, nil)
	return svc, store, products, orders, gateway
}

func seedStocked(t *testing.T, products *fakeProductRepo, name string, price decimal.Decimal, size, color string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, price, catalog.CategoryCasual)
	require.NoError(t, err)
	require.NoError(t, p.SetStock(catalog.StockModeByVariant, []catalog.VariantStock{
		{Size: size, Color: color, Quantity: 10, InStock: true},
	}))
	require.NoError(t, products.Save(context.Background(), p))
	return p
}

func seedCart(t *testing.T, store cart.Store, products *fakeProductRepo, sessionID string) cart.State {
	t.Helper()
	shirt := seedStocked(t, products, "Linen Shirt", decimal.NewFromInt(120), "M", "White")
	scarf := seedStocked(t, products, "Silk Scarf", decimal.NewFromFloat(89.50), "One Size", "Red")

	state := cart.NewState()
	state = state.AddItem(cart.Item{
		ProductID: shirt.ID.String(),
		Name:      shirt.Name,
		Price:     shirt.Price,
		Size:      "M",
		Color:     "White",
	})
	state = state.AddItem(cart.Item{
		ProductID: scarf.ID.String(),
		Name:      scarf.Name,
		Price:     scarf.Price,
		Size:      "One Size",
		Color:     "Red",
	})
	require.NoError(t, store.Put(context.Background(), sessionID, state))
	return state
}

func TestCheckout_HostedPage(t *testing.T) {
	svc, store, products, orders, gateway := setupCheckout(t)
	ctx := context.Background()
	userID := uuid.New()
	state := seedCart(t, store, products, "sess-1")

	resp, err := svc.Checkout(ctx, userID, "sess-1", validRequest())
	require.NoError(t, err)

	assert.Equal(t, "https://secure.paytabs.com/payment/page/TST-2201", resp.RedirectURL)
	assert.Equal(t, "TST-2201", resp.TranRef)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.True(t, resp.Total.Equal(state.Total))

	t.Run("order snapshots the cart", func(t *testing.T) {
		o, err := orders.FindByID(ctx, resp.OrderID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, o.Status)
		assert.Equal(t, "Amina Hassan", o.CustomerName)
		assert.Equal(t, "Dubai", o.ShippingCity)
		assert.Equal(t, "Leave at reception", o.Notes)

		var items []cart.Item
		require.NoError(t, json.Unmarshal([]byte(o.ItemsJSON), &items))
		assert.Len(t, items, 2)
	})

	t.Run("gateway request carries customer and URLs", func(t *testing.T) {
		require.NotNil(t, gateway.lastReq)
		assert.Equal(t, resp.CartID, gateway.lastReq.CartID)
		assert.Equal(t, "AED", gateway.lastReq.Currency)
		assert.Equal(t, "https://shop.test/api/payment/callback", gateway.lastReq.CallbackURL)
		assert.Equal(t, "amina@example.com", gateway.lastReq.Customer.Email)
	})

	t.Run("session cart is cleared", func(t *testing.T) {
		_, err := store.Get(ctx, "sess-1")
		assert.ErrorIs(t, err, cart.ErrCartNotFound)
	})
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _, _, _, _ := setupCheckout(t)

	_, err := svc.Checkout(context.Background(), uuid.New(), "no-such-session", validRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_DirectCapture(t *testing.T) {
	svc, store, products, orders, gateway := setupCheckout(t)
	gateway.createResp = &payment.CreatePaymentResponse{
		TranRef: "TST-9001",
		Result: &payment.Result{
			Status:          payment.StatusAuthorized,
			ResponseCode:    "G04867",
			ResponseMessage: "Authorised",
		},
	}
	seedCart(t, store, products, "sess-2")

	resp, err := svc.Checkout(context.Background(), uuid.New(), "sess-2", validRequest())
	require.NoError(t, err)

	assert.Empty(t, resp.RedirectURL)
	assert.Equal(t, "authorized", resp.PaymentStatus)

	o, err := orders.FindByID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusProcessing, o.Status)
	assert.True(t, o.IsPaid())
}

func TestCheckout_GatewayFailure(t *testing.T) {
	svc, store, products, orders, gateway := setupCheckout(t)
	gateway.createErr = payment.ErrGatewayUnavailable
	seedCart(t, store, products, "sess-3")

	_, err := svc.Checkout(context.Background(), uuid.New(), "sess-3", validRequest())
	assert.ErrorIs(t, err, payment.ErrGatewayUnavailable)

	// the pending order survives for support follow-up, the cart does too
	all, total, err := orders.FindAll(context.Background(), shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Empty(t, all[0].TranRef)

	_, err = store.Get(context.Background(), "sess-3")
	assert.NoError(t, err)
}

func TestCheckout_FreshCartIDPerAttempt(t *testing.T) {
	svc, store, products, _, _ := setupCheckout(t)
	ctx := context.Background()

	seedCart(t, store, products, "sess-4")
	first, err := svc.Checkout(ctx, uuid.New(), "sess-4", validRequest())
	require.NoError(t, err)

	seedCart(t, store, products, "sess-4")
	second, err := svc.Checkout(ctx, uuid.New(), "sess-4", validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.CartID, second.CartID)
}

func TestCheckout_SoldOutVariant(t *testing.T) {
	svc, store, products, orders, _ := setupCheckout(t)
	ctx := context.Background()
	seedCart(t, store, products, "sess-5")

	// the shirt sells out between add-to-cart and checkout
	for _, p := range products.products {
		if p.Name == "Linen Shirt" {
			require.NoError(t, p.AdjustStock("M", "White", -10))
		}
	}

	_, err := svc.Checkout(ctx, uuid.New(), "sess-5", validRequest())
	assert.ErrorIs(t, err, shared.ErrOutOfStock)

	// nothing is recorded and the cart survives for the shopper to fix
	_, total, err := orders.FindAll(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = store.Get(ctx, "sess-5")
	assert.NoError(t, err)
}

func TestCheckout_DeletedProduct(t *testing.T) {
	svc, store, products, _, _ := setupCheckout(t)
	ctx := context.Background()
	seedCart(t, store, products, "sess-6")

	for id := range products.products {
		delete(products.products, id)
	}

	_, err := svc.Checkout(ctx, uuid.New(), "sess-6", validRequest())
	assert.ErrorIs(t, err, shared.ErrOutOfStock)
}
