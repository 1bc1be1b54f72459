package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
)

const (
	dailyMetricsTable   = "campaign_daily_metrics cdm"
	dailyMetricsColumns = "cdm.id, cdm.campaign_id, cdm.date, cdm.impressions, cdm.clicks, cdm.conversions, cdm.spend, cdm.revenue, cdm.created_at, cdm.updated_at"
)

//go:generate mockgen -source=daily_metric.go -destination=mocks/mock_daily_metric.go -package=mocks

type DailyMetricRepository interface {
	GetByDateRange(campaignID string, startDate, endDate time.Time) ([]*domain.DailyMetricEntry, error)
	GetByCampaignsAndDateRange(campaignIDs []string, startDate, endDate time.Time) ([]*domain.DailyMetricEntry, error)
	SaveOrUpdate(entry *domain.DailyMetricEntry) error
	SaveBatch(entries []*domain.DailyMetricEntry) error
	DeleteOlderThan(days int) (int64, error)
}

type dailyMetricRepository struct {
	conn postgres.Conn
}

func NewDailyMetricRepository(conn postgres.Conn) DailyMetricRepository {
	return &dailyMetricRepository{
		conn: conn,
	}
}

func (r *dailyMetricRepository) GetByDateRange(campaignID string, startDate, endDate time.Time) ([]*domain.DailyMetricEntry, error) {
	return r.GetByCampaignsAndDateRange([]string{campaignID}, startDate, endDate)
}

func (r *dailyMetricRepository) GetByCampaignsAndDateRange(campaignIDs []string, startDate, endDate time.Time) ([]*domain.DailyMetricEntry, error) {
	query, args, err := squirrel.
		Select(dailyMetricsColumns).
		From(dailyMetricsTable).
		Where(squirrel.Eq{"cdm.campaign_id": campaignIDs}).
		Where(squirrel.GtOrEq{"cdm.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"cdm.date": endDate.Format(time.DateOnly)}).
		OrderBy("cdm.campaign_id ASC", "cdm.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	entries := make([]*domain.DailyMetricEntry, 0)
	for rows.Next() {
		entry := &domain.DailyMetricEntry{}
		if err := rows.Scan(
			&entry.ID,
			&entry.CampaignID,
			&entry.Date,
			&entry.Impressions,
			&entry.Clicks,
			&entry.Conversions,
			&entry.Spend,
			&entry.Revenue,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear métricas diárias")
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return entries, nil
}

func (r *dailyMetricRepository) SaveOrUpdate(entry *domain.DailyMetricEntry) error {
	return saveDailyMetric(r.conn, entry)
}

// SaveBatch grava todas as entradas em uma única transação
func (r *dailyMetricRepository) SaveBatch(entries []*domain.DailyMetricEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		for _, entry := range entries {
			if err := saveDailyMetric(tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *dailyMetricRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("campaign_daily_metrics").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query")
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao executar a query")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao obter número de linhas afetadas")
	}

	return rowsAffected, nil
}

func saveDailyMetric(q postgres.Queryer, entry *domain.DailyMetricEntry) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("campaign_daily_metrics").
		Columns("campaign_id", "date", "impressions", "clicks", "conversions", "spend", "revenue").
		Values(
			entry.CampaignID,
			entry.Date.Format(time.DateOnly),
			entry.Impressions,
			entry.Clicks,
			entry.Conversions,
			entry.Spend,
			entry.Revenue,
		).
		Suffix(`
			ON CONFLICT (campaign_id, date) DO UPDATE SET
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				conversions = EXCLUDED.conversions,
				spend = EXCLUDED.spend,
				revenue = EXCLUDED.revenue,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := q.Exec(query, args...); err != nil {
		return wrapPQError(err, "erro ao salvar métricas diárias")
	}

	return nil
}
