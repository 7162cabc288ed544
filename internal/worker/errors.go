package worker

import "errors"

var (
	// ErrInvalidSchedule возвращается при некорректном cron-выражении
	ErrInvalidSchedule = errors.New("worker: invalid schedule")
)
