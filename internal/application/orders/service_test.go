package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noorfashion/backend/internal/domain/order"
	"github.com/noorfashion/backend/internal/domain/payment"
	"github.com/noorfashion/backend/internal/domain/shared"
)

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

func (r *fakeOrderRepo) FindByTranRef(context.Context, string) (*order.Order, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByTrackingNumber(context.Context, string) (*order.Order, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, int64, error) {
	var out []order.Order
	for _, o := range r.orders {
		if o.UserID != userID {
			continue
		}
		if status, ok := filter.Filters["status"].(string); ok && string(o.Status) != status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context, filter shared.Filter) ([]order.Order, int64, error) {
	var out []order.Order
	for _, o := range r.orders {
		if status, ok := filter.Filters["status"].(string); ok && string(o.Status) != status {
			continue
		}
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

func seedOrder(t *testing.T, repo *fakeOrderRepo, userID uuid.UUID, cartID string) *order.Order {
	t.Helper()
	o, err := order.New(userID, cartID, `[]`, decimal.NewFromInt(100), "AED")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), o))
	return o
}

func TestOrderService_GetByID(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	owner := uuid.New()
	stranger := uuid.New()
	o := seedOrder(t, repo, owner, "NF-1")

	t.Run("owner sees the order", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, owner, false, o.ID)
		require.NoError(t, err)
		assert.Equal(t, "NF-1", resp.CartID)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		_, err := svc.GetByID(ctx, stranger, false, o.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, stranger, true, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := svc.GetByID(ctx, owner, true, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_Listing(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	seedOrder(t, repo, alice, "NF-A1")
	paid := seedOrder(t, repo, alice, "NF-A2")
	seedOrder(t, repo, bob, "NF-B1")

	loaded, err := repo.FindByID(ctx, paid.ID)
	require.NoError(t, err)
	require.NoError(t, loaded.ApplyPaymentResult("TST-1", payment.StatusAuthorized, "paytabs", ""))
	require.NoError(t, repo.Save(ctx, loaded))

	t.Run("user history", func(t *testing.T) {
		result, err := svc.ListForUser(ctx, alice, ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Total)
	})

	t.Run("admin sees all", func(t *testing.T) {
		result, err := svc.ListAll(ctx, ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.Total)
	})

	t.Run("status filter", func(t *testing.T) {
		result, err := svc.ListAll(ctx, ListFilter{Status: "processing"})
		require.NoError(t, err)
		require.Len(t, result.Orders, 1)
		assert.Equal(t, "NF-A2", result.Orders[0].CartID)
	})
}

func TestOrderService_Cancel(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	owner := uuid.New()

	t.Run("owner cancels a pending order", func(t *testing.T) {
		o := seedOrder(t, repo, owner, "NF-C1")
		resp, err := svc.Cancel(ctx, owner, false, o.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		o := seedOrder(t, repo, owner, "NF-C2")
		_, err := svc.Cancel(ctx, uuid.New(), false, o.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("booked shipment blocks cancellation", func(t *testing.T) {
		o := seedOrder(t, repo, owner, "NF-C3")
		require.NoError(t, o.ApplyPaymentResult("TST-C3", payment.StatusAuthorized, "paytabs", ""))
		require.NoError(t, o.AssignShipment("speedy", "1756456205000123", "42"))
		require.NoError(t, repo.Save(ctx, o))

		_, err := svc.Cancel(ctx, owner, false, o.ID)
		assert.ErrorIs(t, err, ErrShipmentBooked)
	})

	t.Run("delivered orders cannot be cancelled", func(t *testing.T) {
		o := seedOrder(t, repo, owner, "NF-C4")
		require.NoError(t, o.ApplyPaymentResult("TST-C4", payment.StatusAuthorized, "paytabs", ""))
		require.NoError(t, o.MarkShipped())
		require.NoError(t, o.MarkDelivered())
		require.NoError(t, repo.Save(ctx, o))

		_, err := svc.Cancel(ctx, owner, false, o.ID)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	o := seedOrder(t, repo, uuid.New(), "NF-S1")
	require.NoError(t, o.ApplyPaymentResult("TST-S1", payment.StatusAuthorized, "paytabs", ""))
	require.NoError(t, repo.Save(ctx, o))

	t.Run("ship then deliver", func(t *testing.T) {
		resp, err := svc.UpdateStatus(ctx, o.ID, "shipped")
		require.NoError(t, err)
		assert.Equal(t, "shipped", resp.Status)

		resp, err = svc.UpdateStatus(ctx, o.ID, "delivered")
		require.NoError(t, err)
		assert.Equal(t, "delivered", resp.Status)
	})

	t.Run("invalid target status", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, o.ID, "teleported")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}
