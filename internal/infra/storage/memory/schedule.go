package memory

import (
	"context"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// ScheduleRepository недельное расписание в памяти
type ScheduleRepository struct {
	s *Store
}

func (r *ScheduleRepository) GetWeek(_ context.Context) (domain.Week, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return domain.NewWeek(r.s.schedule), nil
}

func (r *ScheduleRepository) ReplaceWeek(ctx context.Context, days []domain.ScheduleDay) error {
	next := make([]domain.ScheduleDay, len(days))
	copy(next, days)

	r.s.mu.Lock()
	prev := r.s.schedule
	r.s.schedule = next
	r.s.mu.Unlock()

	recordUndo(ctx, func() {
		r.s.mu.Lock()
		r.s.schedule = prev
		r.s.mu.Unlock()
	})
	return nil
}
