package utils

import (
	"time"
)

// ParseDate converte yyyy-mm-dd. Uma string vazia resulta em nil, sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// TruncateDay zera o horário mantendo a data no fuso informado pelo valor
func TruncateDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// LookbackRange retorna [hoje - days, ontem], com datas truncadas
func LookbackRange(now time.Time, days int) (time.Time, time.Time) {
	if days < 1 {
		days = 1
	}

	end := TruncateDay(now).AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(days - 1))
	return start, end
}
