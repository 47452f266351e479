// Package models содержит доменные структуры каталога курсов и записи
// на курс, а также статусы заказа внешнего e-commerce сервиса.
package models

// DefaultModeSlug режим записи на курс по умолчанию.
const DefaultModeSlug = "honor"

// CourseMode описывает режим участия в курсе. Наличие SKU означает,
// что место в этом режиме платное и покупка идёт через внешний
// e-commerce API.
type CourseMode struct {
	CourseID string  // Идентификатор курса
	ModeSlug string  // Режим участия, например honor
	SKU      *string // Артикул во внешнем магазине, nil — место бесплатное
}

// Enrollment представляет запись пользователя на курс.
type Enrollment struct {
	Username string // Имя пользователя
	CourseID string // Идентификатор курса
	Mode     string // Режим участия
	IsActive bool   // Признак активной записи
}

// Статусы заказа внешнего e-commerce сервиса. Система только читает
// статус, жизненным циклом заказа она не управляет.
const (
	OrderStatusOpen             = "Open"
	OrderStatusOrderCancelled   = "Order Cancelled"
	OrderStatusBeingProcessed   = "Being Processed"
	OrderStatusPaymentCancelled = "Payment Cancelled"
	OrderStatusPaid             = "Paid"
	OrderStatusFulfillmentError = "Fulfillment Error"
	OrderStatusComplete         = "Complete"
	OrderStatusRefunded         = "Refunded"
)
