package services

import "time"

// SystemClock возвращает текущее время в UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
