package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/booking"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	s *Store
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	r.s.nextBookingID++
	booking.ID = r.s.nextBookingID
	booking.Date = domain.DateOnly(booking.Date)
	booking.CreatedAt = time.Now()
	stored := *booking
	r.s.bookings[stored.ID] = &stored
	r.s.mu.Unlock()

	recordUndo(ctx, func() {
		r.s.mu.Lock()
		delete(r.s.bookings, stored.ID)
		r.s.mu.Unlock()
	})

	return booking, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

// Delete удаляет бронирование и возвращает его; повторное удаление - ErrBookingNotFound
func (r *BookingRepository) Delete(ctx context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	b, ok := r.s.bookings[id]
	if ok {
		delete(r.s.bookings, id)
	}
	r.s.mu.Unlock()

	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}

	recordUndo(ctx, func() {
		r.s.mu.Lock()
		r.s.bookings[b.ID] = b
		r.s.mu.Unlock()
	})

	cp := *b
	return &cp, nil
}

func (r *BookingRepository) ListByOrderItem(_ context.Context, orderItemID int64) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	bookings := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.OrderItemID == orderItemID {
			cp := *b
			bookings = append(bookings, &cp)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].Date.Equal(bookings[j].Date) {
			return bookings[i].Date.Before(bookings[j].Date)
		}
		return bookings[i].TimeOfDay.IsBefore(bookings[j].TimeOfDay)
	})
	return bookings, nil
}

// Count количество бронирований (для проверок в тестах)
func (r *BookingRepository) Count() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.bookings)
}
