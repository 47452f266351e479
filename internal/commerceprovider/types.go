// Package commerceprovider реализует клиент внешнего e-commerce API,
// принимающего заказы на платные места курсов.
package commerceprovider

// CreateOrderRequest запрос на создание заказа по артикулу.
type CreateOrderRequest struct {
	SKU string `json:"sku"` // Артикул места на курсе
}

// CreateOrderResponse ответ e-commerce API на создание заказа.
type CreateOrderResponse struct {
	Number      string `json:"number"`                 // Номер заказа
	Status      string `json:"status"`                 // Статус заказа
	UserMessage string `json:"user_message,omitempty"` // Сообщение об ошибке при отказе
}
