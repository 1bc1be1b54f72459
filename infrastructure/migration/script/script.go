package main

import (
	"context"
	"flag"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/migration"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/repository"
	"github.com/vfg2006/vikareta-analytics-api/internal/config"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
	"github.com/vfg2006/vikareta-analytics-api/pkg/utils"
)

type seedCampaign struct {
	ExternalID string
	Name       string
	Status     domain.CampaignStatus
	// Volume médio diário de impressões
	Impressions int64
}

var seedCampaigns = []seedCampaign{
	{"camp_1001", "Black Friday Eletrônicos", domain.CampaignStatusActive, 12000},
	{"camp_1002", "Moda Verão", domain.CampaignStatusActive, 8000},
	{"camp_1003", "Casa e Decoração", domain.CampaignStatusPaused, 3000},
	{"camp_1004", "Lançamento Smartphones", domain.CampaignStatusCompleted, 20000},
}

func main() {
	days := flag.Int("days", 30, "quantidade de dias de métricas geradas por campanha")
	skipSeed := flag.Bool("schema-only", false, "apenas cria o schema")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx := context.Background()
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := migration.Apply(conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar o schema")
	}

	if *skipSeed {
		return
	}

	startTime := time.Now()
	saved, err := seed(conn, *days, time.Now().UTC())
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao gerar dados de exemplo")
	}

	logrus.WithFields(logrus.Fields{
		"campaigns": len(seedCampaigns),
		"records":   saved,
		"elapsed":   time.Since(startTime).String(),
	}).Info("Carga inicial concluída")
}

func seed(conn postgres.Conn, days int, now time.Time) (int, error) {
	campaignRepo := repository.NewCampaignRepository(conn)
	dailyMetricRepo := repository.NewDailyMetricRepository(conn)

	campaigns := make([]*domain.Campaign, 0, len(seedCampaigns))
	for _, s := range seedCampaigns {
		id, err := utils.GenerateID()
		if err != nil {
			return 0, err
		}
		campaigns = append(campaigns, &domain.Campaign{ID: id, ExternalID: s.ExternalID, Name: s.Name, Status: s.Status})
	}

	ids, err := campaignRepo.SaveOrUpdate(campaigns)
	if err != nil {
		return 0, err
	}

	startDate, _ := utils.LookbackRange(now, days)
	random := rand.New(rand.NewSource(now.Unix()))

	entries := make([]*domain.DailyMetricEntry, 0, len(seedCampaigns)*days)
	for _, s := range seedCampaigns {
		for i := 0; i < days; i++ {
			impressions := s.Impressions/2 + random.Int63n(s.Impressions)
			clicks := impressions * int64(1+random.Intn(4)) / 100
			conversions := clicks * int64(random.Intn(10)) / 100
			spend := float64(clicks) * (0.5 + random.Float64())

			entries = append(entries, domain.NewDailyMetricEntry(ids[s.ExternalID], startDate.AddDate(0, 0, i), domain.DailyMetricRecord{
				Impressions: impressions,
				Clicks:      clicks,
				Conversions: conversions,
				Spend:       spend,
				Revenue:     float64(conversions) * (40 + random.Float64()*80),
			}))
		}
	}

	if err := dailyMetricRepo.SaveBatch(entries); err != nil {
		return 0, err
	}

	return len(entries), nil
}
