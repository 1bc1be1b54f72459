package aggregating

import (
	"errors"
	"fmt"
)

var (
	// Erros de validação
	ErrDateRangeRequired  = errors.New("start_date and end_date are required")
	ErrInvalidDateRange   = errors.New("start_date cannot be after end_date")
	ErrCampaignIDRequired = errors.New("campaign ID is required")
	ErrNoRecords          = errors.New("at least one record is required")
	ErrCampaignNotFound   = errors.New("campaign not found")

	// Erros de banco de dados
	ErrFetchCampaigns = errors.New("error fetching campaigns from database")
	ErrFetchMetrics   = errors.New("error fetching daily metrics from database")
	ErrSaveMetrics    = errors.New("error saving daily metrics")
)

// AnalyticsError é um erro com contexto adicional para as consultas de analytics
type AnalyticsError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	CampaignID string // Campanha envolvida (quando aplicável)
	Details    string
}

func (e *AnalyticsError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

func NewAnalyticsError(err error, code string, details string) *AnalyticsError {
	return &AnalyticsError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewAnalyticsErrorWithCampaign(err error, code string, campaignID string, details string) *AnalyticsError {
	return &AnalyticsError{
		Err:        err,
		Code:       code,
		CampaignID: campaignID,
		Details:    details,
	}
}
