package campaigning

import (
	"errors"
	"fmt"
)

var (
	ErrCampaignIDRequired = errors.New("campaign ID is required")
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrInvalidStatus      = errors.New("invalid campaign status")

	ErrBackendIntegration = errors.New("error fetching campaigns from backend")

	ErrFetchCampaigns = errors.New("error fetching campaigns from database")
	ErrSaveCampaigns  = errors.New("error saving campaigns")

	ErrGenerateID = errors.New("error generating ID")
)

// CampaignError é um erro com contexto adicional para campanhas
type CampaignError struct {
	Err        error
	Code       string
	CampaignID string
	Details    string
}

func (e *CampaignError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CampaignError) Unwrap() error {
	return e.Err
}

func NewCampaignError(err error, code string, details string) *CampaignError {
	return &CampaignError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewCampaignErrorWithID(err error, code string, campaignID string, details string) *CampaignError {
	return &CampaignError{
		Err:        err,
		Code:       code,
		CampaignID: campaignID,
		Details:    details,
	}
}
