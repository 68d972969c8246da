package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	slotRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/slot"
)

// SlotRepository слоты в памяти
type SlotRepository struct {
	s *Store
}

func (r *SlotRepository) EnsureSlots(_ context.Context, slots []*domain.Slot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, slot := range slots {
		key := slot.Key()
		if _, ok := r.s.slots[key]; ok {
			continue
		}
		r.s.slots[key] = &domain.Slot{
			ServiceType: slot.ServiceType,
			Date:        domain.DateOnly(slot.Date),
			TimeOfDay:   slot.TimeOfDay,
			Capacity:    slot.Capacity,
		}
	}
	return nil
}

func (r *SlotRepository) GetSlots(_ context.Context, serviceType domain.ServiceType, date time.Time) ([]*domain.Slot, error) {
	day := date.Format(domain.DateFormat)

	r.s.mu.RLock()
	keys := make([]domain.SlotKey, 0)
	for key := range r.s.slots {
		if key.ServiceType == serviceType && key.Date == day {
			keys = append(keys, key)
		}
	}
	r.s.mu.RUnlock()

	slots := make([]*domain.Slot, 0, len(keys))
	for _, key := range keys {
		if slot, ok := r.snapshot(key); ok {
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].TimeOfDay.IsBefore(slots[j].TimeOfDay) })

	return slots, nil
}

// IncrementBooked проверяет вместимость и занимает место под мьютексом ключа слота
func (r *SlotRepository) IncrementBooked(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	return r.update(ctx, key, +1)
}

func (r *SlotRepository) DecrementBooked(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	return r.update(ctx, key, -1)
}

// update в транзакции блокирует слот до ее завершения, как UPDATE строки в postgres.
// Поэтому откат восстанавливает счетчик без проверки вместимости: чужие
// транзакции не могли изменить слот между изменением и откатом.
func (r *SlotRepository) update(ctx context.Context, key domain.SlotKey, delta int) (*domain.Slot, error) {
	j, inTx := journalFrom(ctx)
	if inTx {
		j.hold(key, func() func() { return r.s.slotLocks.Lock(key) })
	} else {
		unlock := r.s.slotLocks.Lock(key)
		defer unlock()
	}

	updated, err := r.change(key, delta)
	if err != nil {
		return nil, err
	}

	if inTx {
		previous := updated.BookedCount - delta
		j.record(func() { r.restore(key, previous) })
	}
	return updated, nil
}

// change вызывается под блокировкой ключа слота
func (r *SlotRepository) change(key domain.SlotKey, delta int) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slot, ok := r.s.slots[key]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}

	next := slot.BookedCount + delta
	switch {
	case next > slot.Capacity:
		return nil, slotRepo.ErrSlotFull
	case next < 0:
		return nil, slotRepo.ErrSlotEmpty
	}
	slot.BookedCount = next

	cp := *slot
	return &cp, nil
}

func (r *SlotRepository) restore(key domain.SlotKey, bookedCount int) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if slot, ok := r.s.slots[key]; ok {
		slot.BookedCount = bookedCount
	}
}

func (r *SlotRepository) snapshot(key domain.SlotKey) (*domain.Slot, bool) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	slot, ok := r.s.slots[key]
	if !ok {
		return nil, false
	}
	cp := *slot
	return &cp, true
}
