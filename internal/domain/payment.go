package domain

import "time"

// PaymentRecord частичная оплата позиции заказа (только добавление)
type PaymentRecord struct {
	ID          int64
	OrderItemID int64
	Amount      float64
	RecordedAt  time.Time
}

// Balance состояние оплаты позиции заказа
type Balance struct {
	FinalPrice float64
	AmountPaid float64
}

// Remaining остаток к оплате; отрицательный при переплате
func (b Balance) Remaining() float64 {
	return b.FinalPrice - b.AmountPaid
}

// IsOverpaid переплата - допустимая бизнес-аномалия
func (b Balance) IsOverpaid() bool {
	return b.Remaining() < -PaymentEpsilon
}

// SumPayments сумма платежей
func SumPayments(payments []*PaymentRecord) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}
