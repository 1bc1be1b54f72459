// Package migration cria o schema usado pela API de analytics.
package migration

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/database/postgres"
)

type step struct {
	name      string
	statement string
}

// Todos os passos são idempotentes
var steps = []step{
	{
		name: "campaigns",
		statement: `
			CREATE TABLE IF NOT EXISTS campaigns (
				id          VARCHAR(32) PRIMARY KEY,
				external_id VARCHAR(64) NOT NULL UNIQUE,
				name        TEXT NOT NULL DEFAULT '',
				status      VARCHAR(16) NOT NULL DEFAULT 'active',
				created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
	{
		name: "campaign_daily_metrics",
		statement: `
			CREATE TABLE IF NOT EXISTS campaign_daily_metrics (
				id          BIGSERIAL PRIMARY KEY,
				campaign_id VARCHAR(32) NOT NULL REFERENCES campaigns (id) ON DELETE CASCADE,
				date        DATE NOT NULL,
				impressions BIGINT NOT NULL DEFAULT 0 CHECK (impressions >= 0),
				clicks      BIGINT NOT NULL DEFAULT 0 CHECK (clicks >= 0),
				conversions BIGINT NOT NULL DEFAULT 0 CHECK (conversions >= 0),
				spend       DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (spend >= 0),
				revenue     DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (revenue >= 0),
				created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (campaign_id, date)
			)`,
	},
	{
		name:      "idx_campaigns_status",
		statement: `CREATE INDEX IF NOT EXISTS idx_campaigns_status ON campaigns (status)`,
	},
	{
		name:      "idx_campaign_daily_metrics_date",
		statement: `CREATE INDEX IF NOT EXISTS idx_campaign_daily_metrics_date ON campaign_daily_metrics (date)`,
	},
}

// Apply executa os passos em ordem e para no primeiro erro
func Apply(q postgres.Queryer) error {
	for _, s := range steps {
		if _, err := q.Exec(s.statement); err != nil {
			return errors.Wrapf(err, "migration: erro ao aplicar %s", s.name)
		}
		logrus.WithField("step", s.name).Debug("migration: passo aplicado")
	}

	logrus.WithField("steps", len(steps)).Info("migration: schema atualizado")
	return nil
}
