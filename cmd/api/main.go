package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/integrator/vikareta"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/integrator/vikareta/vikaretaclient"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/migration"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/repository"
	"github.com/vfg2006/vikareta-analytics-api/internal/api"
	"github.com/vfg2006/vikareta-analytics-api/internal/config"
	"github.com/vfg2006/vikareta-analytics-api/internal/scheduler"
	"github.com/vfg2006/vikareta-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/vikareta-analytics-api/internal/usecases/authorizing"
	"github.com/vfg2006/vikareta-analytics-api/internal/usecases/campaigning"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.Apply(pgConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar o schema do banco")
		}
	}

	campaignRepo := repository.NewCampaignRepository(pgConn)
	dailyMetricRepo := repository.NewDailyMetricRepository(pgConn)

	vikaretaClient := vikaretaclient.NewClient(cfg)
	vikaretaIntegrator := vikareta.NewService(vikaretaClient)

	campaignService := campaigning.NewService(campaignRepo, vikaretaIntegrator)
	analyzer := aggregating.NewService(campaignRepo, dailyMetricRepo)
	validator := authorizing.NewService(cfg)

	analyticsSyncService := scheduler.NewAnalyticsSyncService(
		campaignService,
		vikaretaIntegrator,
		dailyMetricRepo,
		cfg,
	)

	if err := analyticsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de analytics")
	} else {
		logrus.Info("Agendador de sincronização de analytics iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		pgConn,
		analyzer,
		campaignService,
		validator,
		analyticsSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	os.Chdir(path.Dir(file))

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
