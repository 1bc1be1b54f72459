package handler

import (
	"net/http"

	"github.com/vfg2006/vikareta-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/vikareta-analytics-api/pkg/log"
)

// GetAnalyticsOverview agrega todas as campanhas (ou as de campaign_ids) no período
func GetAnalyticsOverview(service aggregating.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, ok := parseFilters(w, r, logger)
		if !ok {
			return
		}

		overview, err := service.GetOverview(filters)
		if err != nil {
			writeServiceError(w, logger, err, "Erro ao calcular visão geral")
			return
		}

		logger.WithField("record_count", overview.RecordCount).Info("analytics: overview calculado")
		writeJSON(w, logger, http.StatusOK, overview)
	})
}

// GetCampaignsRollup devolve o resultado por campanha e o combinado
func GetCampaignsRollup(service aggregating.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, ok := parseFilters(w, r, logger)
		if !ok {
			return
		}

		rollup, err := service.GetCampaignsRollup(filters)
		if err != nil {
			writeServiceError(w, logger, err, "Erro ao calcular métricas por campanha")
			return
		}

		writeJSON(w, logger, http.StatusOK, rollup)
	})
}

// AggregateRecords agrega os registros do corpo sem persistir nem validar
func AggregateRecords(service aggregating.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		records, ok := decodeRecords(w, r, logger)
		if !ok {
			return
		}

		writeJSON(w, logger, http.StatusOK, service.AggregateRecords(records))
	})
}
