package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appsvc "askpilot/internal/app"
	"askpilot/internal/cache"
	"askpilot/internal/config"
	"askpilot/internal/extract"
	"askpilot/internal/model"
	mysqlclient "askpilot/internal/platform/mysql"
	rabbitmqclient "askpilot/internal/platform/rabbitmq"
	redisclient "askpilot/internal/platform/redis"
	"askpilot/internal/qa"
	"askpilot/internal/repository"
	"askpilot/internal/search"
	"askpilot/internal/worker"
	"askpilot/pkg/log"
)

// App holds every wired dependency. Redis, MySQL and RabbitMQ are
// optional: with both disabled the process runs against the credential
// file and an in-memory history store alone.
type App struct {
	Config  *config.Config
	Auth    *appsvc.AuthService
	History *appsvc.HistoryService
	Ask     *appsvc.AskService

	Redis         *redisv9.Client
	MySQL         *gorm.DB
	MQConn        *amqp.Connection
	ArchiveWorker *worker.RecordArchiveWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	log.Init(cfg.Log.Level, cfg.Log.Format)

	a := &App{Config: cfg, StartedAt: time.Now()}

	userRepo := repository.NewUserRepository(cfg.Users.File)
	a.Auth = appsvc.NewAuthService(userRepo)

	historyTTL := time.Duration(cfg.History.TTLMinutes) * time.Minute
	var store appsvc.HistoryStore = cache.NewMemoryHistoryStore()
	if cfg.Redis.Enabled {
		redisCli, err := redisclient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		a.Redis = redisCli
		store = cache.NewRedisHistoryStore(redisCli, historyTTL)
	}
	a.History = appsvc.NewHistoryService(store, cfg.History.Limit, historyTTL)

	searcher := search.NewClient(
		cfg.Search.BaseURL,
		cfg.Search.UserAgent,
		time.Duration(cfg.Search.TimeoutSeconds)*time.Second,
	)
	extractor := extract.NewExtractor(
		cfg.Extract.UserAgent,
		time.Duration(cfg.Extract.TimeoutSeconds)*time.Second,
		cfg.Extract.MaxBytes,
	)
	qaClient := qa.NewClient(
		cfg.QA.Endpoint,
		cfg.QA.APIKey,
		time.Duration(cfg.QA.TimeoutSeconds)*time.Second,
	)
	delegate := qa.NewDelegate(qaClient, extractor)

	var publisher appsvc.RecordPublisher
	if cfg.Archive.Enabled {
		publisher, err = a.initArchive(ctx)
		if err != nil {
			return nil, err
		}
	}

	a.Ask = appsvc.NewAskService(searcher, delegate, a.History, publisher, cfg.Search.MaxResults)
	return a, nil
}

func (a *App) initArchive(ctx context.Context) (appsvc.RecordPublisher, error) {
	db, err := mysqlclient.New(ctx, a.Config.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.QARecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate qa records failed: %w", err)
	}
	a.MySQL = db

	mqConn, err := rabbitmqclient.New(a.Config.Archive.RabbitMQURL)
	if err != nil {
		return nil, err
	}
	a.MQConn = mqConn

	recordRepo := repository.NewQARecordRepository(db)
	a.ArchiveWorker = worker.NewRecordArchiveWorker(mqConn, recordRepo, a.Config.Archive.Queue)
	if err := a.ArchiveWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start archive worker failed: %w", err)
	}

	return rabbitmqclient.NewRecordPublisher(mqConn, a.Config.Archive.Queue), nil
}

func (a *App) Close() error {
	var closeErr error
	if a.ArchiveWorker != nil {
		a.ArchiveWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
