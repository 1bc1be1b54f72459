package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/vikareta-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
	"github.com/vfg2006/vikareta-analytics-api/internal/usecases/aggregating"
	analyzermocks "github.com/vfg2006/vikareta-analytics-api/internal/usecases/aggregating/mocks"
	"github.com/vfg2006/vikareta-analytics-api/internal/usecases/campaigning"
	campaignmocks "github.com/vfg2006/vikareta-analytics-api/internal/usecases/campaigning/mocks"
	"github.com/vfg2006/vikareta-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/vikareta-analytics-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

type fakeSyncJob struct {
	started bool
	accept  bool
}

func (f *fakeSyncJob) TriggerManualSync() bool {
	f.started = f.accept
	return f.accept
}

func (f *fakeSyncJob) GetStatus() map[string]any {
	return map[string]any{"sync_running": f.started}
}

type testAPI struct {
	handler   http.Handler
	analyzer  *analyzermocks.MockAnalyzer
	campaigns *campaignmocks.MockCampaignService
	syncJob   *fakeSyncJob
}

func newTestAPI(t *testing.T) *testAPI {
	ctrl := gomock.NewController(t)

	api := &testAPI{
		analyzer:  analyzermocks.NewMockAnalyzer(ctrl),
		campaigns: campaignmocks.NewMockCampaignService(ctrl),
		syncJob:   &fakeSyncJob{accept: true},
	}

	api.handler = router.New(
		router.WithRoutes(Healthcheck(nil)...),
		router.WithRoutes(Analytics(api.analyzer)...),
		router.WithRoutes(Campaigns(api.campaigns)...),
		router.WithRoutes(CronJobs(CronJobServices{
			AnalyticsSyncService: api.syncJob,
			CampaignService:      api.campaigns,
		})...),
	)

	return api
}

func (a *testAPI) do(method, target, role string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if role != "" {
		claims := &domain.Claims{UserID: "u-1", Role: role}
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthcheck(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = api.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error {
	return f.err
}

func TestHealthcheck_Database(t *testing.T) {
	t.Run("banco disponível", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HealthcheckHandler(fakePinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"database":"ok"`)
	})

	t.Run("banco indisponível", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HealthcheckHandler(fakePinger{err: errors.New("connection refused")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
		assert.Contains(t, rec.Body.String(), `"database":"unavailable"`)
	})
}

func TestGetAnalyticsOverview(t *testing.T) {
	api := newTestAPI(t)

	api.analyzer.EXPECT().
		GetOverview(gomock.Any()).
		DoAndReturn(func(filters *domain.AnalyticsFilters) (*domain.AnalyticsOverview, error) {
			assert.Equal(t, "2025-03-01", filters.StartDate.Format(time.DateOnly))
			assert.Equal(t, "2025-03-31", filters.EndDate.Format(time.DateOnly))
			assert.Equal(t, []string{"c1", "c2"}, filters.CampaignIDs)

			return &domain.AnalyticsOverview{
				Metrics:     aggregating.Aggregate([]domain.DailyMetricRecord{{Impressions: 1000, Clicks: 20, Spend: 10}}),
				RecordCount: 1,
			}, nil
		})

	rec := api.do(http.MethodGet, "/v1/analytics/overview?start_date=2025-03-01&end_date=2025-03-31&campaign_ids=c1,c2", domain.RoleSeller, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var overview domain.AnalyticsOverview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	assert.Equal(t, 1, overview.RecordCount)
	assert.InDelta(t, 2.0, overview.Metrics.CTR, 1e-9)
	assert.InDelta(t, 10.0, overview.Metrics.CPM, 1e-9)
	assert.Contains(t, rec.Body.String(), `"conversion_rate":0`)
}

func TestGetAnalyticsOverview_InvalidDate(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/v1/analytics/overview?start_date=01-03-2025&end_date=2025-03-31", domain.RoleSeller, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
}

func TestGetAnalyticsOverview_ServiceError(t *testing.T) {
	api := newTestAPI(t)

	api.analyzer.EXPECT().
		GetOverview(gomock.Any()).
		Return(nil, aggregating.NewAnalyticsError(aggregating.ErrDateRangeRequired, apiErrors.ErrInvalidDateRange, "Informe start_date e end_date"))

	rec := api.do(http.MethodGet, "/v1/analytics/overview", domain.RoleSeller, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidDateRange, decodeError(t, rec).Code)
}

func TestGetCampaignsRollup(t *testing.T) {
	api := newTestAPI(t)

	api.analyzer.EXPECT().
		GetCampaignsRollup(gomock.Any()).
		Return(&domain.CampaignRollupResponse{
			Campaigns:   []domain.CampaignMetricsSummary{{CampaignID: "c1", RecordCount: 2}},
			RecordCount: 2,
		}, nil)

	rec := api.do(http.MethodGet, "/v1/analytics/campaigns?start_date=2025-03-01&end_date=2025-03-31", domain.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"campaign_id":"c1"`)
}

func TestAggregateRecords(t *testing.T) {
	api := newTestAPI(t)

	records := []domain.DailyMetricRecord{
		{Impressions: 10000, Clicks: 200, Conversions: 10, Spend: 500, Revenue: 1000},
		{Impressions: 5000, Clicks: 100, Conversions: 5, Spend: 250, Revenue: 500},
	}
	api.analyzer.EXPECT().
		AggregateRecords(records).
		Return(&domain.AggregateResponse{Metrics: aggregating.Aggregate(records), RecordCount: 2})

	body := []byte(`{"records":[
		{"impressions":10000,"clicks":200,"conversions":10,"spend":500,"revenue":1000},
		{"impressions":5000,"clicks":100,"conversions":5,"spend":250,"revenue":500}
	]}`)

	rec := api.do(http.MethodPost, "/v1/analytics/aggregate", domain.RoleSeller, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var response domain.AggregateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, int64(15000), response.Metrics.Totals.Impressions)
	assert.InDelta(t, 2.5, response.Metrics.CPC, 1e-9)
	assert.InDelta(t, 5.0, response.Metrics.ConversionRate, 1e-9)
}

func TestAggregateRecords_InvalidBody(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/v1/analytics/aggregate", domain.RoleSeller, []byte(`{"records":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)
}

func TestGetCampaignMetrics(t *testing.T) {
	api := newTestAPI(t)

	api.analyzer.EXPECT().
		GetCampaignMetrics("c1", gomock.Any()).
		Return(&domain.CampaignMetricsResponse{Campaign: &domain.Campaign{ID: "c1"}, RecordCount: 3}, nil)

	rec := api.do(http.MethodGet, "/v1/campaigns/c1/metrics?start_date=2025-03-01&end_date=2025-03-31", domain.RoleSeller, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"record_count":3`)
}

func TestGetCampaignMetrics_NotFound(t *testing.T) {
	api := newTestAPI(t)

	api.analyzer.EXPECT().
		GetCampaignMetrics("x", gomock.Any()).
		Return(nil, aggregating.NewAnalyticsErrorWithCampaign(aggregating.ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, "x", "Campanha não encontrada"))

	rec := api.do(http.MethodGet, "/v1/campaigns/x/metrics?start_date=2025-03-01&end_date=2025-03-31", domain.RoleSeller, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrCampaignNotFound, decodeError(t, rec).Code)
}

func TestIngestCampaignAnalytics(t *testing.T) {
	t.Run("admin grava registros", func(t *testing.T) {
		api := newTestAPI(t)

		api.analyzer.EXPECT().
			IngestDailyMetrics("c1", []domain.DailyMetricRecord{{Date: "2025-03-01", Impressions: 10, Clicks: 1}}).
			Return(1, nil)

		rec := api.do(http.MethodPost, "/v1/campaigns/c1/analytics", domain.RoleAdmin, []byte(`{"records":[{"date":"2025-03-01","impressions":10,"clicks":1}]}`))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"records_saved":1`)
	})

	t.Run("seller não pode gravar", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodPost, "/v1/campaigns/c1/analytics", domain.RoleSeller, []byte(`{"records":[]}`))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("registros inválidos retornam os campos", func(t *testing.T) {
		api := newTestAPI(t)

		verr := &aggregating.ValidationError{Fields: []aggregating.FieldError{{Index: 0, Field: "spend", Message: "não pode ser negativo"}}}
		api.analyzer.EXPECT().
			IngestDailyMetrics("c1", gomock.Any()).
			Return(0, &aggregating.AnalyticsError{Err: verr, Code: apiErrors.ErrInvalidRecords, CampaignID: "c1"})

		rec := api.do(http.MethodPost, "/v1/campaigns/c1/analytics", domain.RoleAdmin, []byte(`{"records":[{"date":"2025-03-01","spend":-1}]}`))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRecords, decodeError(t, rec).Code)
		assert.Contains(t, rec.Body.String(), `"field":"spend"`)
	})
}

func TestListCampaigns(t *testing.T) {
	api := newTestAPI(t)

	api.campaigns.EXPECT().
		ListCampaigns([]domain.CampaignStatus{domain.CampaignStatusActive, domain.CampaignStatusPaused}).
		Return([]*domain.Campaign{{ID: "c1"}}, nil)

	rec := api.do(http.MethodGet, "/v1/campaigns?status=active,paused", domain.RoleSeller, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"c1"`)
}

func TestGetCampaign_Error(t *testing.T) {
	api := newTestAPI(t)

	api.campaigns.EXPECT().
		GetCampaign("x").
		Return(nil, campaigning.NewCampaignErrorWithID(campaigning.ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, "x", "Campanha não encontrada"))

	rec := api.do(http.MethodGet, "/v1/campaigns/x", domain.RoleSeller, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCronJobs(t *testing.T) {
	t.Run("dispara sincronização de analytics", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodPost, "/v1/cron/analytics/run", domain.RoleAdmin, nil)
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.True(t, api.syncJob.started)
	})

	t.Run("sincronização já em andamento", func(t *testing.T) {
		api := newTestAPI(t)
		api.syncJob.accept = false

		rec := api.do(http.MethodPost, "/v1/cron/all/run", domain.RoleAdmin, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("sincroniza campanhas", func(t *testing.T) {
		api := newTestAPI(t)
		api.campaigns.EXPECT().SyncCampaigns().Return(nil, &domain.SyncCampaignsResponse{Quantity: 2}, nil)

		rec := api.do(http.MethodPost, "/v1/cron/campaigns/run", domain.RoleAdmin, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"quantity":2`)
	})

	t.Run("tipo inválido", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodPost, "/v1/cron/meta/run", domain.RoleAdmin, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("seller não acessa cron", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodPost, "/v1/cron/analytics/run", domain.RoleSeller, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, api.syncJob.started)
	})

	t.Run("status", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodGet, "/v1/cron", domain.RoleAdmin, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"analytics"`)
	})
}
