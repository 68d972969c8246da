package memory

import (
	"sync"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/pkg/keymutex"
)

// Store хранилище в памяти с теми же контрактами, что и postgres-репозитории.
// Счетчики слотов меняются под мьютексом ключа слота, изменения внутри
// транзакции записываются в журнал отката (см. TxManager).
type Store struct {
	mu sync.RWMutex

	schedule []domain.ScheduleDay
	slots    map[domain.SlotKey]*domain.Slot
	bookings map[int64]*domain.Booking
	items    map[int64]*domain.OrderItem
	payments []*domain.PaymentRecord

	nextBookingID int64
	nextItemID    int64
	nextPaymentID int64

	slotLocks *keymutex.KeyMutex[domain.SlotKey]
	itemLocks *keymutex.KeyMutex[int64]
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		slots:     make(map[domain.SlotKey]*domain.Slot),
		bookings:  make(map[int64]*domain.Booking),
		items:     make(map[int64]*domain.OrderItem),
		slotLocks: keymutex.New[domain.SlotKey](),
		itemLocks: keymutex.New[int64](),
	}
}

func (s *Store) Schedule() *ScheduleRepository {
	return &ScheduleRepository{s: s}
}

func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{s: s}
}

func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{s: s}
}

func (s *Store) Payments() *PaymentRepository {
	return &PaymentRepository{s: s}
}

func (s *Store) TxManager() *TxManager {
	return &TxManager{}
}
