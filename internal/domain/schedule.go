package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidWeekday возвращается для дня недели вне диапазона 0..6
	ErrInvalidWeekday = errors.New("domain: day_of_week must be in range 0..6")

	// ErrDuplicateWeekday возвращается, если день недели указан в расписании дважды
	ErrDuplicateWeekday = errors.New("domain: duplicate day_of_week in schedule")
)

// ScheduleDay строка недельного расписания мастерской (0 = воскресенье)
type ScheduleDay struct {
	DayOfWeek time.Weekday
	IsOpen    bool
}

// Week недельное расписание. Дни, для которых строки нет, считаются закрытыми.
type Week struct {
	open  [DaysInWeek]bool
	known [DaysInWeek]bool
}

// NewWeek собирает расписание из строк хранилища; некорректные строки пропускаются
func NewWeek(rows []ScheduleDay) Week {
	var w Week
	for _, row := range rows {
		if row.DayOfWeek < time.Sunday || row.DayOfWeek > time.Saturday {
			continue
		}
		w.open[row.DayOfWeek] = row.IsOpen
		w.known[row.DayOfWeek] = true
	}
	return w
}

// IsOpen возвращает true, только если для дня недели даты есть строка с is_open=true
func (w Week) IsOpen(date time.Time) bool {
	day := date.Weekday()
	return w.known[day] && w.open[day]
}

// IsComplete возвращает true, если расписание содержит все 7 дней
func (w Week) IsComplete() bool {
	for _, ok := range w.known {
		if !ok {
			return false
		}
	}
	return true
}

// IsEmpty возвращает true, если в хранилище нет ни одной строки расписания
func (w Week) IsEmpty() bool {
	for _, ok := range w.known {
		if ok {
			return false
		}
	}
	return true
}

// Days возвращает все 7 дней (неизвестные дни как закрытые), начиная с воскресенья
func (w Week) Days() []ScheduleDay {
	days := make([]ScheduleDay, DaysInWeek)
	for i := range days {
		days[i] = ScheduleDay{DayOfWeek: time.Weekday(i), IsOpen: w.known[i] && w.open[i]}
	}
	return days
}

// NormalizeWeek проверяет обновление расписания от администратора и дополняет его до 7 строк:
// пропущенные дни записываются закрытыми
func NormalizeWeek(rows []ScheduleDay) ([]ScheduleDay, error) {
	if len(rows) > DaysInWeek {
		return nil, fmt.Errorf("%w: got %d rows", ErrDuplicateWeekday, len(rows))
	}

	var seen [DaysInWeek]bool
	for _, row := range rows {
		if row.DayOfWeek < time.Sunday || row.DayOfWeek > time.Saturday {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidWeekday, row.DayOfWeek)
		}
		if seen[row.DayOfWeek] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateWeekday, row.DayOfWeek)
		}
		seen[row.DayOfWeek] = true
	}

	return NewWeek(rows).Days(), nil
}
