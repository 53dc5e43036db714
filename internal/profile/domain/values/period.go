package values

import "time"

// Period - интервал работы. Даты хранятся без времени суток в UTC.
type Period struct {
	start time.Time
	end   *time.Time
}

// NewPeriod требует дату начала и не допускает окончание раньше начала.
func NewPeriod(start time.Time, end *time.Time) (Period, error) {
	if start.IsZero() {
		return Period{}, invalid("startDate", "must not be empty")
	}
	p := Period{start: dateOnly(start)}
	if end != nil {
		e := dateOnly(*end)
		if e.Before(p.start) {
			return Period{}, invalid("endDate", "must not be earlier than startDate")
		}
		p.end = &e
	}
	return p, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (p Period) Start() time.Time { return p.start }

// End возвращает nil для текущего места работы.
func (p Period) End() *time.Time {
	if p.end == nil {
		return nil
	}
	e := *p.end
	return &e
}

// IsCurrent сообщает, что дата окончания не задана.
func (p Period) IsCurrent() bool { return p.end == nil }
