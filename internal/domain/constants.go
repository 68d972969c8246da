package domain

// Значения по умолчанию для шаблонов слотов
const (
	DefaultSlotCapacity = 1
	MinSlotCapacity     = 1
	MaxSlotCapacity     = 100
)

// PaymentEpsilon допуск на округление денежных сумм при проверке полной оплаты
const PaymentEpsilon = 0.01

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DaysInWeek количество строк в недельном расписании
const DaysInWeek = 7
