package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
)

const (
	campaignsTable   = "campaigns c"
	campaignsColumns = "c.id, c.external_id, c.name, c.status, c.created_at, c.updated_at"
)

//go:generate mockgen -source=campaign.go -destination=mocks/mock_campaign.go -package=mocks

type CampaignRepository interface {
	GetByID(campaignID string) (*domain.Campaign, error)
	GetByExternalID(externalID string) (*domain.Campaign, error)
	List(statuses []domain.CampaignStatus) ([]*domain.Campaign, error)
	ListByIDs(campaignIDs []string) ([]*domain.Campaign, error)
	// SaveOrUpdate retorna o mapa external_id -> id interno das campanhas gravadas
	SaveOrUpdate(campaigns []*domain.Campaign) (map[string]string, error)
}

type campaignRepository struct {
	conn postgres.Conn
}

func NewCampaignRepository(conn postgres.Conn) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) GetByID(campaignID string) (*domain.Campaign, error) {
	return r.getCampaign(squirrel.Eq{"c.id": campaignID})
}

func (r *campaignRepository) GetByExternalID(externalID string) (*domain.Campaign, error) {
	return r.getCampaign(squirrel.Eq{"c.external_id": externalID})
}

func (r *campaignRepository) getCampaign(where squirrel.Eq) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignsColumns).
		From(campaignsTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	campaign, err := scanCampaign(r.conn.QueryRow(query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao escanear campanha")
	}

	return campaign, nil
}

func (r *campaignRepository) List(statuses []domain.CampaignStatus) ([]*domain.Campaign, error) {
	builder := squirrel.
		Select(campaignsColumns).
		From(campaignsTable).
		OrderBy("c.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, status := range statuses {
			values = append(values, string(status))
		}
		builder = builder.Where(squirrel.Eq{"c.status": values})
	}

	return r.listCampaigns(builder)
}

func (r *campaignRepository) ListByIDs(campaignIDs []string) ([]*domain.Campaign, error) {
	if len(campaignIDs) == 0 {
		return []*domain.Campaign{}, nil
	}

	builder := squirrel.
		Select(campaignsColumns).
		From(campaignsTable).
		Where(squirrel.Or{
			squirrel.Eq{"c.id": campaignIDs},
			squirrel.Eq{"c.external_id": campaignIDs},
		}).
		OrderBy("c.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.listCampaigns(builder)
}

func (r *campaignRepository) listCampaigns(builder squirrel.SelectBuilder) ([]*domain.Campaign, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear campanhas")
		}
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return campaigns, nil
}

func (r *campaignRepository) SaveOrUpdate(campaigns []*domain.Campaign) (map[string]string, error) {
	ids := make(map[string]string, len(campaigns))
	if len(campaigns) == 0 {
		return ids, nil
	}

	err := r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		for _, campaign := range campaigns {
			query, args, err := squirrel.StatementBuilder.
				Insert("campaigns").
				Columns("id", "external_id", "name", "status").
				Values(campaign.ID, campaign.ExternalID, campaign.Name, string(campaign.Status)).
				Suffix(`
					ON CONFLICT (external_id) DO UPDATE SET
						name = EXCLUDED.name,
						status = EXCLUDED.status,
						updated_at = NOW()
					RETURNING id
				`).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return errors.Wrap(err, "erro ao construir a query")
			}

			var id string
			if err := tx.QueryRow(query, args...).Scan(&id); err != nil {
				return wrapPQError(err, "erro ao salvar campanha "+campaign.ExternalID)
			}
			ids[campaign.ExternalID] = id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row scanner) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}
	var status string

	if err := row.Scan(
		&campaign.ID,
		&campaign.ExternalID,
		&campaign.Name,
		&status,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		return nil, err
	}
	campaign.Status = domain.CampaignStatus(status)

	return campaign, nil
}

func wrapPQError(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return errors.Wrapf(pqErr, "%s (código: %s)", message, pqErr.Code)
	}
	return errors.Wrap(err, message)
}
