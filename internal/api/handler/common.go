package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
	"github.com/vfg2006/vikareta-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/vikareta-analytics-api/internal/usecases/campaigning"
	"github.com/vfg2006/vikareta-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/vikareta-analytics-api/pkg/log"
	"github.com/vfg2006/vikareta-analytics-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Limite do corpo de POST /aggregate e da ingestão
const maxBodyBytes = 5 << 20

type recordsRequest struct {
	Records []domain.DailyMetricRecord `json:"records"`
}

func writeJSON(w http.ResponseWriter, logger log.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("handler: erro ao codificar resposta")
	}
}

// parseFilters lê start_date, end_date e campaign_ids da query string
func parseFilters(w http.ResponseWriter, r *http.Request, logger log.Logger) (*domain.AnalyticsFilters, bool) {
	query := r.URL.Query()

	startDate, err := utils.ParseDate(query.Get("start_date"))
	if err != nil {
		logger.WithField("start_date", query.Get("start_date")).Warn("handler: start_date inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date deve estar no formato yyyy-mm-dd", nil)
		return nil, false
	}

	endDate, err := utils.ParseDate(query.Get("end_date"))
	if err != nil {
		logger.WithField("end_date", query.Get("end_date")).Warn("handler: end_date inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date deve estar no formato yyyy-mm-dd", nil)
		return nil, false
	}

	return &domain.AnalyticsFilters{
		StartDate:   startDate,
		EndDate:     endDate,
		CampaignIDs: utils.SplitCSV(query.Get("campaign_ids")),
	}, true
}

func decodeRecords(w http.ResponseWriter, r *http.Request, logger log.Logger) ([]domain.DailyMetricRecord, bool) {
	var request recordsRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.WithError(err).Warn("handler: corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
		return nil, false
	}

	return request.Records, true
}

// writeServiceError traduz os erros tipados dos usecases para a resposta padrão
func writeServiceError(w http.ResponseWriter, logger log.Logger, err error, fallback string) {
	var analyticsErr *aggregating.AnalyticsError
	if errors.As(err, &analyticsErr) {
		var details any
		var validationErr *aggregating.ValidationError
		if errors.As(err, &validationErr) {
			details = validationErr.Fields
		}

		logger.WithError(err).Warn("handler: erro de analytics")
		apiErrors.WriteError(w, analyticsErr.Code, analyticsErr.Error(), details)
		return
	}

	var campaignErr *campaigning.CampaignError
	if errors.As(err, &campaignErr) {
		logger.WithError(err).Warn("handler: erro de campanhas")
		apiErrors.WriteError(w, campaignErr.Code, campaignErr.Error(), nil)
		return
	}

	logger.WithError(err).Error("handler: erro inesperado")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
}
