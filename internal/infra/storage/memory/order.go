package memory

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	orderRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/order"
)

// OrderRepository позиции заказа в памяти
type OrderRepository struct {
	s *Store
}

func (r *OrderRepository) Create(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	now := time.Now()

	r.s.mu.Lock()
	r.s.nextItemID++
	stored := *item
	stored.ID = r.s.nextItemID
	stored.ApprovalStatus = domain.NormalizeStatus(string(item.ApprovalStatus))
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.items[stored.ID] = &stored
	r.s.mu.Unlock()

	recordUndo(ctx, func() {
		r.s.mu.Lock()
		delete(r.s.items, stored.ID)
		r.s.mu.Unlock()
	})

	cp := stored
	return &cp, nil
}

func (r *OrderRepository) GetByID(_ context.Context, id int64) (*domain.OrderItem, error) {
	return r.get(id)
}

// GetByIDForUpdate в транзакции удерживает блокировку позиции до ее завершения
func (r *OrderRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.OrderItem, error) {
	if j, ok := journalFrom(ctx); ok {
		j.hold(id, func() func() { return r.s.itemLocks.Lock(id) })
	}
	return r.get(id)
}

func (r *OrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status domain.ApprovalStatus,
	finalPrice *float64,
	updatedAt time.Time,
) (*domain.OrderItem, error) {
	r.s.mu.Lock()
	item, ok := r.s.items[id]
	if !ok {
		r.s.mu.Unlock()
		return nil, orderRepo.ErrOrderItemNotFound
	}
	prev := *item
	item.ApprovalStatus = status
	item.UpdatedAt = updatedAt
	if finalPrice != nil {
		item.FinalPrice = *finalPrice
	}
	cp := *item
	r.s.mu.Unlock()

	recordUndo(ctx, func() {
		r.s.mu.Lock()
		if current, ok := r.s.items[id]; ok {
			*current = prev
		}
		r.s.mu.Unlock()
	})

	return &cp, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	item, ok := r.s.items[id]
	if ok {
		delete(r.s.items, id)
	}
	r.s.mu.Unlock()

	if !ok {
		return orderRepo.ErrOrderItemNotFound
	}

	recordUndo(ctx, func() {
		r.s.mu.Lock()
		r.s.items[id] = item
		r.s.mu.Unlock()
	})
	return nil
}

func (r *OrderRepository) get(id int64) (*domain.OrderItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.items[id]
	if !ok {
		return nil, orderRepo.ErrOrderItemNotFound
	}
	cp := *item
	cp.ApprovalStatus = domain.NormalizeStatus(string(cp.ApprovalStatus))
	return &cp, nil
}

// Put сохраняет позицию как есть, без нормализации статуса (для подготовки данных в тестах)
func (r *OrderRepository) Put(item *domain.OrderItem) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *item
	if cp.ID == 0 {
		r.s.nextItemID++
		cp.ID = r.s.nextItemID
		item.ID = cp.ID
	} else if cp.ID > r.s.nextItemID {
		r.s.nextItemID = cp.ID
	}
	r.s.items[cp.ID] = &cp
}
