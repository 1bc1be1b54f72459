package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/vikareta-analytics-api/internal/usecases/campaigning"
	"github.com/vfg2006/vikareta-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/vikareta-analytics-api/pkg/log"
)

const (
	CronJobTypeAnalytics = "analytics"
	CronJobTypeCampaigns = "campaigns"
	CronJobTypeAll       = "all"
)

// SyncJob é implementado por scheduler.AnalyticsSyncService
type SyncJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços que podem ser executados manualmente
type CronJobServices struct {
	AnalyticsSyncService SyncJob
	CampaignService      campaigning.CampaignService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		response := map[string]any{"type": cronType}

		switch cronType {
		case CronJobTypeAnalytics, CronJobTypeAll:
			if services.AnalyticsSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de analytics não disponível", nil)
				return
			}

			if !services.AnalyticsSyncService.TriggerManualSync() {
				response["message"] = "Sincronização já em andamento"
				writeJSON(w, logger, http.StatusConflict, response)
				return
			}
			response["message"] = "Cron job iniciada com sucesso"
			writeJSON(w, logger, http.StatusAccepted, response)

		case CronJobTypeCampaigns:
			if services.CampaignService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de campanhas não disponível", nil)
				return
			}

			_, syncResponse, err := services.CampaignService.SyncCampaigns()
			if err != nil {
				writeServiceError(w, logger, err, "Erro ao sincronizar campanhas")
				return
			}
			writeJSON(w, logger, http.StatusOK, syncResponse)

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: analytics, campaigns, all", nil)
		}
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.AnalyticsSyncService != nil {
			status[CronJobTypeAnalytics] = services.AnalyticsSyncService.GetStatus()
		}

		writeJSON(w, log.ForContext(r.Context()), http.StatusOK, status)
	})
}
