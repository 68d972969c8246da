package models

import (
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// DayRequest строка расписания в запросе администратора
type DayRequest struct {
	DayOfWeek int  `json:"dayOfWeek"` // 0 = воскресенье
	IsOpen    bool `json:"isOpen"`
}

// SetScheduleRequest полная неделя; пропущенные дни становятся закрытыми
type SetScheduleRequest struct {
	Days []DayRequest `json:"days"`
}

// DayResponse строка расписания в ответе
type DayResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	DayName   string `json:"dayName"`
	IsOpen    bool   `json:"isOpen"`
}

// ScheduleResponse расписание на неделю, всегда 7 строк начиная с воскресенья
type ScheduleResponse struct {
	Days []DayResponse `json:"days"`
}

// DayStatusResponse открыта ли мастерская в дату
type DayStatusResponse struct {
	Date   string `json:"date"`
	IsOpen bool   `json:"isOpen"`
}

// ToDomainDays конвертирует строки запроса в domain
func (r *SetScheduleRequest) ToDomainDays() []domain.ScheduleDay {
	days := make([]domain.ScheduleDay, len(r.Days))
	for i, d := range r.Days {
		days[i] = domain.ScheduleDay{DayOfWeek: time.Weekday(d.DayOfWeek), IsOpen: d.IsOpen}
	}
	return days
}

// FromDomainWeek конвертирует недельное расписание в ответ
func FromDomainWeek(week domain.Week) *ScheduleResponse {
	days := week.Days()
	resp := &ScheduleResponse{Days: make([]DayResponse, len(days))}
	for i, d := range days {
		resp.Days[i] = DayResponse{
			DayOfWeek: int(d.DayOfWeek),
			DayName:   d.DayOfWeek.String(),
			IsOpen:    d.IsOpen,
		}
	}
	return resp
}
