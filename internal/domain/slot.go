package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AtelierService/pkg/types"
)

// SlotStatus статус занятости слота
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotLimited   SlotStatus = "limited"
	SlotFull      SlotStatus = "full"
)

// SlotKey идентичность слота (услуга, дата, время)
type SlotKey struct {
	ServiceType ServiceType
	Date        string // YYYY-MM-DD
	TimeOfDay   types.TimeString
}

// NewSlotKey строит ключ слота, дата усекается до дня
func NewSlotKey(serviceType ServiceType, date time.Time, timeOfDay types.TimeString) SlotKey {
	return SlotKey{ServiceType: serviceType, Date: date.Format(DateFormat), TimeOfDay: timeOfDay}
}

// Slot бронируемая единица с ограниченной вместимостью.
// Инвариант 0 <= BookedCount <= Capacity поддерживается хранилищем.
type Slot struct {
	ServiceType ServiceType
	Date        time.Time
	TimeOfDay   types.TimeString
	Capacity    int
	BookedCount int
}

func (s *Slot) Key() SlotKey {
	return NewSlotKey(s.ServiceType, s.Date, s.TimeOfDay)
}

// Status вычисляет статус по текущему количеству бронирований
func (s *Slot) Status() SlotStatus {
	switch {
	case s.BookedCount <= 0:
		return SlotAvailable
	case s.BookedCount < s.Capacity:
		return SlotLimited
	default:
		return SlotFull
	}
}

// IsClickable возвращает true, если слот можно выбрать
func (s *Slot) IsClickable() bool {
	return s.Status() != SlotFull
}

// Available количество свободных мест
func (s *Slot) Available() int {
	if s.BookedCount >= s.Capacity {
		return 0
	}
	return s.Capacity - s.BookedCount
}

// SlotTemplate набор времен приема для услуги с вместимостью каждого слота
type SlotTemplate struct {
	ServiceType ServiceType
	Capacity    int
	times       []types.TimeString
}

// NewSlotTemplate строит шаблон; повторяющиеся времена схлопываются, порядок - по возрастанию
func NewSlotTemplate(serviceType ServiceType, capacity int, times []types.TimeString) SlotTemplate {
	seen := make(map[types.TimeString]struct{}, len(times))
	uniq := make([]types.TimeString, 0, len(times))
	for _, t := range times {
		if t.IsZero() {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, t)
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i].IsBefore(uniq[j]) })

	return SlotTemplate{ServiceType: serviceType, Capacity: capacity, times: uniq}
}

// Times возвращает копию упорядоченного списка времен
func (t SlotTemplate) Times() []types.TimeString {
	out := make([]types.TimeString, len(t.times))
	copy(out, t.times)
	return out
}

// Contains проверяет, входит ли время в шаблон
func (t SlotTemplate) Contains(timeOfDay types.TimeString) bool {
	for _, v := range t.times {
		if v == timeOfDay {
			return true
		}
	}
	return false
}

// Materialize создает пустые слоты шаблона на дату
func (t SlotTemplate) Materialize(date time.Time) []*Slot {
	slots := make([]*Slot, len(t.times))
	for i, tod := range t.times {
		slots[i] = &Slot{
			ServiceType: t.ServiceType,
			Date:        DateOnly(date),
			TimeOfDay:   tod,
			Capacity:    t.Capacity,
		}
	}
	return slots
}

// DateOnly обнуляет время суток, сохраняя локацию
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
