package aggregating

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
)

// FieldError descreve um campo inválido em um registro de entrada
type FieldError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todos os campos inválidos de uma requisição de ingestão
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("records[%d].%s: %s", f.Index, f.Field, f.Message))
	}
	return "registros inválidos: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(index int, field, message string) {
	e.Fields = append(e.Fields, FieldError{Index: index, Field: field, Message: message})
}

// ValidateRecords verifica os registros antes da persistência.
// Aggregate não chama esta função: o agregador aceita qualquer entrada numérica.
func ValidateRecords(records []domain.DailyMetricRecord) error {
	if _, verr := BuildEntries("", records); verr != nil {
		return verr
	}
	return nil
}

// BuildEntries converte os registros válidos em entradas da campanha, usando a
// data já interpretada na validação. Registros com algum campo inválido ficam
// de fora e são descritos no *ValidationError, nil quando todos são válidos.
func BuildEntries(campaignID string, records []domain.DailyMetricRecord) ([]*domain.DailyMetricEntry, *ValidationError) {
	verr := &ValidationError{}
	seenDates := make(map[string]int, len(records))
	entries := make([]*domain.DailyMetricEntry, 0, len(records))

	for i, record := range records {
		before := len(verr.Fields)

		var date time.Time
		if record.Date == "" {
			verr.add(i, "date", "obrigatório")
		} else if parsed, err := time.Parse(time.DateOnly, record.Date); err != nil {
			verr.add(i, "date", "formato esperado yyyy-mm-dd")
		} else if first, ok := seenDates[record.Date]; ok {
			verr.add(i, "date", fmt.Sprintf("duplicada com records[%d]", first))
		} else {
			seenDates[record.Date] = i
			date = parsed
		}

		if record.Impressions < 0 {
			verr.add(i, "impressions", "não pode ser negativo")
		}
		if record.Clicks < 0 {
			verr.add(i, "clicks", "não pode ser negativo")
		}
		if record.Conversions < 0 {
			verr.add(i, "conversions", "não pode ser negativo")
		}
		validateAmount(verr, i, "spend", record.Spend)
		validateAmount(verr, i, "revenue", record.Revenue)

		if record.Clicks > record.Impressions {
			verr.add(i, "clicks", "não pode ser maior que impressions")
		}
		if record.Conversions > record.Clicks {
			verr.add(i, "conversions", "não pode ser maior que clicks")
		}

		if len(verr.Fields) == before {
			entries = append(entries, domain.NewDailyMetricEntry(campaignID, date, record))
		}
	}

	if len(verr.Fields) > 0 {
		return entries, verr
	}
	return entries, nil
}

// InvalidRecords conta quantos registros distintos têm ao menos um campo inválido
func (e *ValidationError) InvalidRecords() int {
	indexes := make(map[int]struct{}, len(e.Fields))
	for _, f := range e.Fields {
		indexes[f.Index] = struct{}{}
	}
	return len(indexes)
}

func validateAmount(verr *ValidationError, index int, field string, value float64) {
	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		verr.add(index, field, "deve ser um número finito")
	case value < 0:
		verr.add(index, field, "não pode ser negativo")
	}
}
