package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noorfashion/backend/internal/domain/order"
	"github.com/noorfashion/backend/internal/domain/payment"
)

// OrderModel is the persistence model for the Order aggregate
type OrderModel struct {
	AggregateModel
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemsJSON string          `gorm:"column:items;type:text;not null"`
	Total     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency  string          `gorm:"type:varchar(3);not null"`
	Status    string          `gorm:"type:varchar(20);not null;index"`
	Notes     string          `gorm:"type:text"`

	CustomerName  string `gorm:"type:varchar(200)"`
	CustomerEmail string `gorm:"type:varchar(200)"`
	CustomerPhone string `gorm:"type:varchar(30)"`

	ShippingAddress string `gorm:"type:text"`
	ShippingCity    string `gorm:"type:varchar(100)"`

	CartID         string `gorm:"type:varchar(100);not null;uniqueIndex"`
	TranRef        string `gorm:"type:varchar(100);index"`
	PaymentStatus  string `gorm:"type:varchar(20);not null"`
	PaymentGateway string `gorm:"type:varchar(50)"`
	PaymentDetails string `gorm:"type:text"`

	DeliveryPartner         string `gorm:"type:varchar(50)"`
	TrackingNumber          string `gorm:"type:varchar(50);index"`
	DeliveryStatus          string `gorm:"type:varchar(50)"`
	DeliveryTrackingHistory string `gorm:"type:text"`
	CourierOrderID          string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		UserID:    m.UserID,
		ItemsJSON: m.ItemsJSON,
		Total:     m.Total,
		Currency:  m.Currency,
		Status:    order.Status(m.Status),
		Notes:     m.Notes,

		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		CustomerPhone: m.CustomerPhone,

		ShippingAddress: m.ShippingAddress,
		ShippingCity:    m.ShippingCity,

		CartID:         m.CartID,
		TranRef:        m.TranRef,
		PaymentStatus:  payment.Status(m.PaymentStatus),
		PaymentGateway: m.PaymentGateway,
		PaymentDetails: m.PaymentDetails,

		DeliveryPartner:         m.DeliveryPartner,
		TrackingNumber:          m.TrackingNumber,
		DeliveryStatus:          m.DeliveryStatus,
		DeliveryTrackingHistory: m.DeliveryTrackingHistory,
		CourierOrderID:          m.CourierOrderID,
	}
	m.PopulateAggregateRoot(&o.BaseAggregateRoot)
	return o
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.UserID = o.UserID
	m.ItemsJSON = o.ItemsJSON
	m.Total = o.Total
	m.Currency = o.Currency
	m.Status = o.Status.String()
	m.Notes = o.Notes

	m.CustomerName = o.CustomerName
	m.CustomerEmail = o.CustomerEmail
	m.CustomerPhone = o.CustomerPhone

	m.ShippingAddress = o.ShippingAddress
	m.ShippingCity = o.ShippingCity

	m.CartID = o.CartID
	m.TranRef = o.TranRef
	m.PaymentStatus = string(o.PaymentStatus)
	m.PaymentGateway = o.PaymentGateway
	m.PaymentDetails = o.PaymentDetails

	m.DeliveryPartner = o.DeliveryPartner
	m.TrackingNumber = o.TrackingNumber
	m.DeliveryStatus = o.DeliveryStatus
	m.DeliveryTrackingHistory = o.DeliveryTrackingHistory
	m.CourierOrderID = o.CourierOrderID
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
