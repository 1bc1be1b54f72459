package aggregating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
	"github.com/vfg2006/vikareta-analytics-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func dateRange(start, end string) *domain.AnalyticsFilters {
	s, _ := time.Parse(time.DateOnly, start)
	e, _ := time.Parse(time.DateOnly, end)
	return &domain.AnalyticsFilters{StartDate: &s, EndDate: &e}
}

func entry(campaignID, date string, record domain.DailyMetricRecord) *domain.DailyMetricEntry {
	d, _ := time.Parse(time.DateOnly, date)
	return domain.NewDailyMetricEntry(campaignID, d, record)
}

func newTestService(t *testing.T) (*Service, *mocks.MockCampaignRepository, *mocks.MockDailyMetricRepository) {
	ctrl := gomock.NewController(t)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	dailyRepo := mocks.NewMockDailyMetricRepository(ctrl)

	return NewService(campaignRepo, dailyRepo).(*Service), campaignRepo, dailyRepo
}

func assertAnalyticsCode(t *testing.T, err error, sentinel error, code string) {
	t.Helper()

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	var analyticsErr *AnalyticsError
	require.True(t, errors.As(err, &analyticsErr))
	assert.Equal(t, code, analyticsErr.Code)
}

func TestService_GetOverview(t *testing.T) {
	service, campaignRepo, dailyRepo := newTestService(t)
	filters := dateRange("2025-03-01", "2025-03-02")

	campaignRepo.EXPECT().
		List(gomock.Nil()).
		Return([]*domain.Campaign{{ID: "c1"}, {ID: "c2"}}, nil)

	dailyRepo.EXPECT().
		GetByCampaignsAndDateRange([]string{"c1", "c2"}, *filters.StartDate, *filters.EndDate).
		Return([]*domain.DailyMetricEntry{
			entry("c1", "2025-03-01", domain.DailyMetricRecord{Impressions: 10000, Clicks: 200, Conversions: 10, Spend: 500, Revenue: 1000}),
			entry("c1", "2025-03-02", domain.DailyMetricRecord{Impressions: 2000, Clicks: 50, Spend: 100}),
			entry("c2", "2025-03-02", domain.DailyMetricRecord{Impressions: 3000, Clicks: 50, Conversions: 5, Spend: 150, Revenue: 500}),
		}, nil)

	overview, err := service.GetOverview(filters)
	require.NoError(t, err)

	assert.Equal(t, 3, overview.RecordCount)
	assert.Equal(t, []string{"c1", "c2"}, overview.CampaignIDs)
	assert.Equal(t, "2025-03-01", overview.StartDate)
	assert.Equal(t, "2025-03-02", overview.EndDate)
	assert.Equal(t, domain.MetricTotals{Impressions: 15000, Clicks: 300, Conversions: 15, Spend: 750, Revenue: 1500}, overview.Metrics.Totals)
	assert.InDelta(t, 2.5, overview.Metrics.CPC, delta)

	require.Len(t, overview.Daily, 2)
	assert.Equal(t, "2025-03-01", overview.Daily[0].Date)
	assert.Equal(t, 1, overview.Daily[0].RecordCount)
	assert.Equal(t, "2025-03-02", overview.Daily[1].Date)
	assert.Equal(t, 2, overview.Daily[1].RecordCount)
	assert.Equal(t, int64(5000), overview.Daily[1].Metrics.Totals.Impressions)
}

func TestService_GetOverview_RequestedCampaigns(t *testing.T) {
	service, campaignRepo, dailyRepo := newTestService(t)
	filters := dateRange("2025-03-01", "2025-03-31")
	filters.CampaignIDs = []string{"c2", "", "c2", "c1"}

	campaignRepo.EXPECT().
		ListByIDs([]string{"c2", "c1"}).
		Return([]*domain.Campaign{{ID: "c1"}, {ID: "c2"}}, nil)
	dailyRepo.EXPECT().
		GetByCampaignsAndDateRange([]string{"c1", "c2"}, gomock.Any(), gomock.Any()).
		Return(nil, nil)

	overview, err := service.GetOverview(filters)
	require.NoError(t, err)
	assert.Equal(t, 0, overview.RecordCount)
	assert.Equal(t, domain.AggregateResult{}, overview.Metrics)
	assert.Empty(t, overview.Daily)
}

func TestService_GetOverview_ExternalCampaignIDs(t *testing.T) {
	t.Run("ID do backend resolve para o ID interno", func(t *testing.T) {
		service, campaignRepo, dailyRepo := newTestService(t)
		filters := dateRange("2025-03-01", "2025-03-31")
		filters.CampaignIDs = []string{"ext-1"}

		campaignRepo.EXPECT().
			ListByIDs([]string{"ext-1"}).
			Return([]*domain.Campaign{{ID: "c1", ExternalID: "ext-1"}}, nil)
		dailyRepo.EXPECT().
			GetByCampaignsAndDateRange([]string{"c1"}, gomock.Any(), gomock.Any()).
			Return([]*domain.DailyMetricEntry{
				entry("c1", "2025-03-01", domain.DailyMetricRecord{Impressions: 1000, Clicks: 10, Spend: 5}),
			}, nil)

		overview, err := service.GetOverview(filters)
		require.NoError(t, err)
		assert.Equal(t, 1, overview.RecordCount)
		assert.Equal(t, []string{"c1"}, overview.CampaignIDs)
		assert.InDelta(t, 1.0, overview.Metrics.CTR, delta)
	})

	t.Run("IDs desconhecidos não consultam métricas", func(t *testing.T) {
		service, campaignRepo, _ := newTestService(t)
		filters := dateRange("2025-03-01", "2025-03-31")
		filters.CampaignIDs = []string{"nope"}

		campaignRepo.EXPECT().ListByIDs([]string{"nope"}).Return([]*domain.Campaign{}, nil)

		overview, err := service.GetOverview(filters)
		require.NoError(t, err)
		assert.Equal(t, 0, overview.RecordCount)
		assert.Empty(t, overview.CampaignIDs)
	})

	t.Run("erro ao resolver campanhas", func(t *testing.T) {
		service, campaignRepo, _ := newTestService(t)
		filters := dateRange("2025-03-01", "2025-03-31")
		filters.CampaignIDs = []string{"ext-1"}

		campaignRepo.EXPECT().ListByIDs(gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := service.GetOverview(filters)
		assertAnalyticsCode(t, err, ErrFetchCampaigns, apiErrors.ErrDatabaseOperation)
	})
}

func TestService_GetOverview_NoCampaigns(t *testing.T) {
	service, campaignRepo, _ := newTestService(t)

	campaignRepo.EXPECT().List(gomock.Nil()).Return([]*domain.Campaign{}, nil)

	overview, err := service.GetOverview(dateRange("2025-03-01", "2025-03-31"))
	require.NoError(t, err)
	assert.Equal(t, 0, overview.RecordCount)
	assert.Equal(t, domain.AggregateResult{}, overview.Metrics)
}

func TestService_GetOverview_Errors(t *testing.T) {
	t.Run("datas ausentes", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.GetOverview(&domain.AnalyticsFilters{})
		assertAnalyticsCode(t, err, ErrDateRangeRequired, apiErrors.ErrInvalidDateRange)

		_, err = service.GetOverview(nil)
		assertAnalyticsCode(t, err, ErrDateRangeRequired, apiErrors.ErrInvalidDateRange)
	})

	t.Run("início depois do fim", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.GetOverview(dateRange("2025-03-10", "2025-03-01"))
		assertAnalyticsCode(t, err, ErrInvalidDateRange, apiErrors.ErrInvalidDateRange)
	})

	t.Run("falha ao listar campanhas", func(t *testing.T) {
		service, campaignRepo, _ := newTestService(t)
		campaignRepo.EXPECT().List(gomock.Nil()).Return(nil, errors.New("db down"))

		_, err := service.GetOverview(dateRange("2025-03-01", "2025-03-02"))
		assertAnalyticsCode(t, err, ErrFetchCampaigns, apiErrors.ErrDatabaseOperation)
	})

	t.Run("falha ao buscar métricas", func(t *testing.T) {
		service, _, dailyRepo := newTestService(t)
		filters := dateRange("2025-03-01", "2025-03-02")
		filters.CampaignIDs = []string{"c1"}

		dailyRepo.EXPECT().GetByCampaignsAndDateRange(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := service.GetOverview(filters)
		assertAnalyticsCode(t, err, ErrFetchMetrics, apiErrors.ErrDatabaseOperation)
	})
}

func TestService_GetCampaignMetrics(t *testing.T) {
	service, campaignRepo, dailyRepo := newTestService(t)
	filters := dateRange("2025-03-01", "2025-03-02")
	campaign := &domain.Campaign{ID: "c1", ExternalID: "ext-1", Name: "Verão"}

	campaignRepo.EXPECT().GetByID("ext-1").Return(nil, nil)
	campaignRepo.EXPECT().GetByExternalID("ext-1").Return(campaign, nil)
	dailyRepo.EXPECT().
		GetByDateRange("c1", *filters.StartDate, *filters.EndDate).
		Return([]*domain.DailyMetricEntry{
			entry("c1", "2025-03-02", domain.DailyMetricRecord{Impressions: 0, Clicks: 5, Conversions: 1, Spend: 10, Revenue: 20}),
		}, nil)

	response, err := service.GetCampaignMetrics("ext-1", filters)
	require.NoError(t, err)

	assert.Equal(t, campaign, response.Campaign)
	assert.Equal(t, 1, response.RecordCount)
	assert.Equal(t, 0.0, response.Metrics.CTR)
	assert.InDelta(t, 2.0, response.Metrics.CPC, delta)
	assert.Equal(t, 0.0, response.Metrics.CPM)
	assert.InDelta(t, 2.0, response.Metrics.ROAS, delta)
	assert.InDelta(t, 20.0, response.Metrics.ConversionRate, delta)
	require.Len(t, response.Daily, 1)
	assert.Equal(t, "2025-03-02", response.Daily[0].Date)
}

func TestService_GetCampaignMetrics_Errors(t *testing.T) {
	filters := dateRange("2025-03-01", "2025-03-02")

	t.Run("sem ID", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.GetCampaignMetrics("", filters)
		assertAnalyticsCode(t, err, ErrCampaignIDRequired, apiErrors.ErrMissingRequiredData)
	})

	t.Run("campanha inexistente", func(t *testing.T) {
		service, campaignRepo, _ := newTestService(t)
		campaignRepo.EXPECT().GetByID("x").Return(nil, nil)
		campaignRepo.EXPECT().GetByExternalID("x").Return(nil, nil)

		_, err := service.GetCampaignMetrics("x", filters)
		assertAnalyticsCode(t, err, ErrCampaignNotFound, apiErrors.ErrCampaignNotFound)
	})

	t.Run("falha no repositório de campanhas", func(t *testing.T) {
		service, campaignRepo, _ := newTestService(t)
		campaignRepo.EXPECT().GetByID("c1").Return(nil, errors.New("db down"))

		_, err := service.GetCampaignMetrics("c1", filters)
		assertAnalyticsCode(t, err, ErrFetchCampaigns, apiErrors.ErrDatabaseOperation)
	})

	t.Run("falha ao buscar métricas", func(t *testing.T) {
		service, campaignRepo, dailyRepo := newTestService(t)
		campaignRepo.EXPECT().GetByID("c1").Return(&domain.Campaign{ID: "c1"}, nil)
		dailyRepo.EXPECT().GetByDateRange("c1", gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := service.GetCampaignMetrics("c1", filters)
		assertAnalyticsCode(t, err, ErrFetchMetrics, apiErrors.ErrDatabaseOperation)
	})
}

func TestService_GetCampaignsRollup(t *testing.T) {
	service, campaignRepo, dailyRepo := newTestService(t)
	filters := dateRange("2025-03-01", "2025-03-02")
	filters.CampaignIDs = []string{"c1", "ext-2", "c3"}

	campaigns := []*domain.Campaign{
		{ID: "c1", Name: "A", Status: domain.CampaignStatusActive},
		{ID: "c2", ExternalID: "ext-2", Name: "B", Status: domain.CampaignStatusPaused},
		{ID: "c3", Name: "C", Status: domain.CampaignStatusActive},
	}

	campaignRepo.EXPECT().ListByIDs(filters.CampaignIDs).Return(campaigns, nil)
	dailyRepo.EXPECT().
		GetByCampaignsAndDateRange([]string{"c1", "c2", "c3"}, gomock.Any(), gomock.Any()).
		Return([]*domain.DailyMetricEntry{
			entry("c1", "2025-03-01", domain.DailyMetricRecord{Impressions: 100, Clicks: 10, Spend: 20, Revenue: 40}),
			entry("c2", "2025-03-01", domain.DailyMetricRecord{Impressions: 900, Clicks: 10, Spend: 20}),
			entry("c2", "2025-03-02", domain.DailyMetricRecord{Impressions: 0, Clicks: 0}),
		}, nil)

	rollup, err := service.GetCampaignsRollup(filters)
	require.NoError(t, err)

	require.Len(t, rollup.Campaigns, 3)
	assert.Equal(t, "c1", rollup.Campaigns[0].CampaignID)
	assert.InDelta(t, 10.0, rollup.Campaigns[0].Metrics.CTR, delta)
	assert.Equal(t, 2, rollup.Campaigns[1].RecordCount)
	assert.Equal(t, domain.CampaignStatusPaused, rollup.Campaigns[1].Status)
	assert.Equal(t, 0, rollup.Campaigns[2].RecordCount)
	assert.Equal(t, domain.AggregateResult{}, rollup.Campaigns[2].Metrics)

	assert.Equal(t, 3, rollup.RecordCount)
	assert.InDelta(t, 2.0, rollup.Combined.CTR, delta)
	assert.InDelta(t, 1.0, rollup.Combined.ROAS, delta)
	assert.Equal(t, int64(1000), rollup.Combined.Totals.Impressions)
}

func TestService_GetCampaignsRollup_AllCampaigns(t *testing.T) {
	service, campaignRepo, _ := newTestService(t)

	campaignRepo.EXPECT().List(gomock.Nil()).Return(nil, nil)

	rollup, err := service.GetCampaignsRollup(dateRange("2025-03-01", "2025-03-02"))
	require.NoError(t, err)
	assert.Empty(t, rollup.Campaigns)
	assert.Equal(t, domain.AggregateResult{}, rollup.Combined)
}

func TestService_AggregateRecords(t *testing.T) {
	service, _, _ := newTestService(t)

	response := service.AggregateRecords(scenarioRecords())
	assert.Equal(t, 2, response.RecordCount)
	assert.Equal(t, Aggregate(scenarioRecords()), response.Metrics)

	empty := service.AggregateRecords(nil)
	assert.Equal(t, 0, empty.RecordCount)
	assert.Equal(t, domain.AggregateResult{}, empty.Metrics)
}

func TestService_IngestDailyMetrics(t *testing.T) {
	service, campaignRepo, dailyRepo := newTestService(t)

	campaignRepo.EXPECT().GetByID("c1").Return(&domain.Campaign{ID: "c1"}, nil)
	dailyRepo.EXPECT().
		SaveBatch(gomock.Any()).
		DoAndReturn(func(entries []*domain.DailyMetricEntry) error {
			require.Len(t, entries, 2)
			assert.Equal(t, "c1", entries[0].CampaignID)
			assert.Equal(t, "2025-03-01", entries[0].Date.Format(time.DateOnly))
			assert.Equal(t, int64(200), entries[0].Clicks)
			assert.Equal(t, 250.0, entries[1].Spend)
			return nil
		})

	count, err := service.IngestDailyMetrics("c1", scenarioRecords())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestService_IngestDailyMetrics_ExternalID(t *testing.T) {
	service, campaignRepo, dailyRepo := newTestService(t)

	campaignRepo.EXPECT().GetByID("ext-1").Return(nil, nil)
	campaignRepo.EXPECT().GetByExternalID("ext-1").Return(&domain.Campaign{ID: "c1", ExternalID: "ext-1"}, nil)
	dailyRepo.EXPECT().
		SaveBatch(gomock.Any()).
		DoAndReturn(func(entries []*domain.DailyMetricEntry) error {
			require.Len(t, entries, 2)
			for _, e := range entries {
				assert.Equal(t, "c1", e.CampaignID)
			}
			assert.Equal(t, "2025-03-02", entries[1].Date.Format(time.DateOnly))
			return nil
		})

	count, err := service.IngestDailyMetrics("ext-1", scenarioRecords())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestService_IngestDailyMetrics_Errors(t *testing.T) {
	t.Run("sem ID", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.IngestDailyMetrics("", scenarioRecords())
		assertAnalyticsCode(t, err, ErrCampaignIDRequired, apiErrors.ErrMissingRequiredData)
	})

	t.Run("sem registros", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.IngestDailyMetrics("c1", nil)
		assertAnalyticsCode(t, err, ErrNoRecords, apiErrors.ErrMissingRequiredData)
	})

	t.Run("registros inválidos não chegam ao banco", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.IngestDailyMetrics("c1", []domain.DailyMetricRecord{{Date: "2025-03-01", Spend: -5}})
		require.Error(t, err)

		var analyticsErr *AnalyticsError
		require.True(t, errors.As(err, &analyticsErr))
		assert.Equal(t, apiErrors.ErrInvalidRecords, analyticsErr.Code)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "spend", verr.Fields[0].Field)
	})

	t.Run("falha ao salvar", func(t *testing.T) {
		service, campaignRepo, dailyRepo := newTestService(t)
		campaignRepo.EXPECT().GetByID("c1").Return(&domain.Campaign{ID: "c1"}, nil)
		dailyRepo.EXPECT().SaveBatch(gomock.Any()).Return(errors.New("deadlock"))

		_, err := service.IngestDailyMetrics("c1", scenarioRecords())
		assertAnalyticsCode(t, err, ErrSaveMetrics, apiErrors.ErrDatabaseOperation)
	})
}
