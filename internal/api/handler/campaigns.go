package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
	"github.com/vfg2006/vikareta-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/vikareta-analytics-api/internal/usecases/campaigning"
	"github.com/vfg2006/vikareta-analytics-api/pkg/log"
	"github.com/vfg2006/vikareta-analytics-api/pkg/utils"
)

func ListCampaigns(service campaigning.CampaignService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var statuses []domain.CampaignStatus
		for _, status := range utils.SplitCSV(r.URL.Query().Get("status")) {
			statuses = append(statuses, domain.CampaignStatus(status))
		}

		campaigns, err := service.ListCampaigns(statuses)
		if err != nil {
			writeServiceError(w, logger, err, "Erro ao listar campanhas")
			return
		}

		writeJSON(w, logger, http.StatusOK, campaigns)
	})
}

func GetCampaign(service campaigning.CampaignService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		campaign, err := service.GetCampaign(id)
		if err != nil {
			writeServiceError(w, logger, err, "Erro ao buscar campanha")
			return
		}

		writeJSON(w, logger, http.StatusOK, campaign)
	})
}

// GetCampaignMetrics agrega uma campanha e devolve a série diária
func GetCampaignMetrics(service aggregating.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		filters, ok := parseFilters(w, r, logger)
		if !ok {
			return
		}

		response, err := service.GetCampaignMetrics(id, filters)
		if err != nil {
			writeServiceError(w, logger, err, "Erro ao calcular métricas da campanha")
			return
		}

		logger.WithFields(log.Fields{
			"campaign_id":  id,
			"record_count": response.RecordCount,
		}).Info("analytics: métricas da campanha calculadas")

		writeJSON(w, logger, http.StatusOK, response)
	})
}

// IngestCampaignAnalytics valida e grava a série diária enviada para uma campanha
func IngestCampaignAnalytics(service aggregating.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		records, ok := decodeRecords(w, r, logger)
		if !ok {
			return
		}

		saved, err := service.IngestDailyMetrics(id, records)
		if err != nil {
			writeServiceError(w, logger, err, "Erro ao gravar métricas da campanha")
			return
		}

		writeJSON(w, logger, http.StatusCreated, map[string]any{
			"campaign_id":   id,
			"records_saved": saved,
		})
	})
}
