package scheduler

import "errors"

var (
	// ErrNoSlots возвращается, когда операция требует непустой список слотов
	ErrNoSlots = errors.New("scheduler: slot list is empty")

	// ErrInvalidInterval возвращается при неположительной длительности слота
	ErrInvalidInterval = errors.New("scheduler: interval must be positive")

	// ErrDayOverflow возвращается, когда новый слот выходит за пределы суток
	ErrDayOverflow = errors.New("scheduler: slot does not fit into the day")

	// ErrAppendNotAllowed возвращается при попытке добавить слот, когда есть свободные
	ErrAppendNotAllowed = errors.New("scheduler: free slots are still available")

	// ErrSlotNotFound возвращается, когда слот с указанным токеном отсутствует
	ErrSlotNotFound = errors.New("scheduler: slot not found")

	// ErrSlotUnavailable возвращается при выборе занятого или просроченного слота
	ErrSlotUnavailable = errors.New("scheduler: slot is not available")
)
