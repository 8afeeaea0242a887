package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noorfashion/backend/internal/domain/catalog"
	"github.com/noorfashion/backend/internal/domain/order"
	"github.com/noorfashion/backend/internal/domain/payment"
	"github.com/noorfashion/backend/internal/domain/shared"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeProductRepo is an in-memory catalog.Repository
type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, filter catalog.ListFilter) ([]catalog.Product, int64, error) {
	var out []catalog.Product
	for _, p := range r.products {
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

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

func (r *fakeOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]order.Order, int64, error) {
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
	delete(r.orders, id)
	return nil
}

// fakeGateway is a scripted payment.Gateway
type fakeGateway struct {
	createResp *payment.CreatePaymentResponse
	createErr  error
	callback   *payment.Callback
	verifyErr  error
}

func (g *fakeGateway) CreatePayment(_ context.Context, _ *payment.CreatePaymentRequest) (*payment.CreatePaymentResponse, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.createResp, nil
}

func (g *fakeGateway) VerifyCallback(_ context.Context, fields map[string]string) (*payment.Callback, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	cb := *g.callback
	cb.RawFields = fields
	return &cb, nil
}

// seedProduct stores a Festive dress with per-variant stock
func seedProduct(t *testing.T, repo *fakeProductRepo) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Embroidered Kaftan", decimal.NewFromInt(240), catalog.CategoryFestive)
	require.NoError(t, err)
	require.NoError(t, p.SetStock(catalog.StockModeByVariant, []catalog.VariantStock{
		{Size: "M", Color: "White", Quantity: 5, InStock: true},
		{Size: "L", Color: "Navy", Quantity: 0, InStock: false},
	}))
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

// doJSON performs a JSON request against the engine
func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// decodeResponse unmarshals the standard response envelope
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// errorCode digs the error code out of a response envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeResponse(t, w)
	errInfo, ok := resp["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %s", w.Body.String())
	code, _ := errInfo["code"].(string)
	return code
}
