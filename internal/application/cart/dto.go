package cart

import (
	"github.com/shopspring/decimal"

	"github.com/noorfashion/backend/internal/domain/cart"
)

// AddItemRequest adds one unit of a product variant to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// UpdateQuantityRequest sets the quantity for every line of a product
type UpdateQuantityRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// RemoveItemRequest drops every line of a product from the cart
type RemoveItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// ItemResponse is a single cart line in API responses
type ItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
}

// CartResponse is the full cart in API responses
type CartResponse struct {
	Items     []ItemResponse  `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// ToCartResponse converts cart state to the API shape
func ToCartResponse(state cart.State) CartResponse {
	items := make([]ItemResponse, len(state.Items))
	for i, item := range state.Items {
		items[i] = ItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
		}
	}
	return CartResponse{
		Items:     items,
		Total:     state.Total,
		ItemCount: state.ItemCount,
	}
}
