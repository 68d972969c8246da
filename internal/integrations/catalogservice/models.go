package catalogservice

// PriceRequest запрос расчета цены
type PriceRequest struct {
	Selections map[string]string `json:"selections"`
}

// PriceResponse ответ каталога с ценой
type PriceResponse struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
