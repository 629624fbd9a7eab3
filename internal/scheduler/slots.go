package scheduler

import (
	"fmt"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// Request входные данные для генерации слотов
type Request struct {
	ConsultationStart *types.TimeString          // Начало приёма врача (nil - расписания нет)
	Date              time.Time                  // Дата, на которую генерируются слоты
	Booked            []domain.BookedAppointment // Уже записанные приёмы на (врач, дата)
	IntervalMinutes   int                        // Длительность одного слота
	MaxSlots          int                        // Максимум слотов (0 - domain.DefaultMaxSlots)
	Now               time.Time                  // Текущее время для вычисления просроченных слотов
}

// GenerateSlots генерирует упорядоченный список слотов начиная с consultationStart
// с фиксированным шагом IntervalMinutes
// Слот занят, если есть запись с тем же временем начала ИЛИ с тем же номером токена
// Слот просрочен только в текущий день и только если его начало строго раньше текущего времени
// Без времени начала приёма возвращает пустой список
func GenerateSlots(req Request) []domain.Slot {
	if req.ConsultationStart == nil || req.ConsultationStart.Validate() != nil || req.IntervalMinutes <= 0 {
		return []domain.Slot{}
	}

	maxSlots := req.MaxSlots
	if maxSlots <= 0 {
		maxSlots = domain.DefaultMaxSlots
	}

	today := isSameDay(req.Date, req.Now)
	nowSeconds := secondsOfDay(req.Now)

	slots := make([]domain.Slot, 0, maxSlots)
	start := *req.ConsultationStart

	for token := 1; token <= maxSlots; token++ {
		end, err := start.AddMinutes(req.IntervalMinutes)
		if err != nil {
			// Слоты не переходят через полночь
			break
		}

		slots = append(slots, domain.Slot{
			Token:     token,
			StartTime: start,
			EndTime:   end,
			IsBooked:  isBooked(start, token, req.Booked),
			IsExpired: today && start.Minutes()*60 < nowSeconds,
		})

		start = end
	}

	return slots
}

// NeedsAdditionalSlot возвращает true, если в списке нет ни одного доступного слота
// Для пустого списка возвращает false: добавлять слот не к чему
func NeedsAdditionalSlot(slots []domain.Slot) bool {
	if len(slots) == 0 {
		return false
	}
	for i := range slots {
		if slots[i].IsSelectable() {
			return false
		}
	}
	return true
}

// AppendSlot возвращает новый список с дополнительным слотом после последнего
// Новый слот всегда свободен и не просрочен, исходный список не изменяется
func AppendSlot(slots []domain.Slot, intervalMinutes int) ([]domain.Slot, error) {
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}
	if intervalMinutes <= 0 {
		return nil, ErrInvalidInterval
	}

	last := slots[len(slots)-1]
	end, err := last.EndTime.AddMinutes(intervalMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: after %s", ErrDayOverflow, last.EndTime)
	}

	result := make([]domain.Slot, len(slots), len(slots)+1)
	copy(result, slots)

	return append(result, domain.Slot{
		Token:     len(slots) + 1,
		StartTime: last.EndTime,
		EndTime:   end,
	}), nil
}

// Expand добавляет count дополнительных слотов
// Каждое добавление разрешено только если в текущем списке не осталось доступных слотов
// Занятость добавленного слота определяется по booked так же, как в GenerateSlots
func Expand(slots []domain.Slot, booked []domain.BookedAppointment, intervalMinutes int, count int) ([]domain.Slot, error) {
	result := slots
	for i := 0; i < count; i++ {
		if !NeedsAdditionalSlot(result) {
			return nil, fmt.Errorf("%w: cannot add slot %d of %d", ErrAppendNotAllowed, i+1, count)
		}

		var err error
		result, err = AppendSlot(result, intervalMinutes)
		if err != nil {
			return nil, err
		}

		added := &result[len(result)-1]
		added.IsBooked = isBooked(added.StartTime, added.Token, booked)
	}
	return result, nil
}

// Truncated возвращает true, если список слотов короче MaxSlots из-за конца суток
func Truncated(req Request, slots []domain.Slot) bool {
	if len(slots) == 0 {
		return false
	}
	maxSlots := req.MaxSlots
	if maxSlots <= 0 {
		maxSlots = domain.DefaultMaxSlots
	}
	return len(slots) < maxSlots
}

// SelectSlot возвращает новый список, в котором выбран ровно один слот с указанным токеном
// Занятый или просроченный слот выбрать нельзя
func SelectSlot(slots []domain.Slot, token int) ([]domain.Slot, error) {
	idx := -1
	for i := range slots {
		if slots[i].Token == token {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: token %d", ErrSlotNotFound, token)
	}

	target := slots[idx]
	if target.IsBooked {
		return nil, fmt.Errorf("%w: token %d is booked", ErrSlotUnavailable, token)
	}
	if target.IsExpired {
		return nil, fmt.Errorf("%w: token %d has expired", ErrSlotUnavailable, token)
	}

	result := make([]domain.Slot, len(slots))
	for i := range slots {
		result[i] = slots[i]
		result[i].IsSelected = i == idx
	}

	return result, nil
}

// Selected возвращает выбранный слот, если он есть
func Selected(slots []domain.Slot) (domain.Slot, bool) {
	for _, slot := range slots {
		if slot.IsSelected {
			return slot, true
		}
	}
	return domain.Slot{}, false
}

// MatchesCurrentAppointment ищет слот, совпадающий со временем текущей записи
// Используется при переносе для предвыбора: слот возвращается, только если
// он не занят другой записью и не просрочен
func MatchesCurrentAppointment(slots []domain.Slot, currentTime types.TimeString) (domain.Slot, bool) {
	if currentTime.IsZero() {
		return domain.Slot{}, false
	}
	for _, slot := range slots {
		if slot.StartTime.Equal(currentTime) {
			if !slot.IsSelectable() {
				return domain.Slot{}, false
			}
			return slot, true
		}
	}
	return domain.Slot{}, false
}

// WithoutAppointment возвращает занятые слоты без слота самой переносимой записи
func WithoutAppointment(booked []domain.BookedAppointment, appointment *domain.Appointment, date time.Time) []domain.BookedAppointment {
	result := make([]domain.BookedAppointment, 0, len(booked))
	for _, b := range booked {
		if appointment.Holds(b, date) {
			continue
		}
		result = append(result, b)
	}
	return result
}

// isBooked проверяет, занят ли слот по времени начала или по номеру токена
func isBooked(start types.TimeString, token int, booked []domain.BookedAppointment) bool {
	for _, b := range booked {
		if !b.Time.IsZero() && b.Time.Equal(start) {
			return true
		}
		if b.Token == token {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// secondsOfDay возвращает количество секунд от начала суток
func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
