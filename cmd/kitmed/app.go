package main

import (
	"fmt"
	"time"

	"github.com/fekuna/kitmed-catalog-service/config"
	"github.com/fekuna/kitmed-catalog-service/internal/auth"
	"github.com/fekuna/kitmed-catalog-service/internal/banner"
	bannerRepoPkg "github.com/fekuna/kitmed-catalog-service/internal/banner/repository"
	bannerUCPkg "github.com/fekuna/kitmed-catalog-service/internal/banner/usecase"
	"github.com/fekuna/kitmed-catalog-service/internal/category"
	catRepoPkg "github.com/fekuna/kitmed-catalog-service/internal/category/repository"
	catUCPkg "github.com/fekuna/kitmed-catalog-service/internal/category/usecase"
	"github.com/fekuna/kitmed-catalog-service/internal/importer"
	importUCPkg "github.com/fekuna/kitmed-catalog-service/internal/importer/usecase"
	"github.com/fekuna/kitmed-catalog-service/internal/media"
	mediaRepoPkg "github.com/fekuna/kitmed-catalog-service/internal/media/repository"
	mediaUCPkg "github.com/fekuna/kitmed-catalog-service/internal/media/usecase"
	"github.com/fekuna/kitmed-catalog-service/internal/partner"
	partnerRepoPkg "github.com/fekuna/kitmed-catalog-service/internal/partner/repository"
	partnerUCPkg "github.com/fekuna/kitmed-catalog-service/internal/partner/usecase"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/broker"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/cache"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/database/postgres"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/i18n"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/search"
	"github.com/fekuna/kitmed-catalog-service/internal/product"
	prodRepoPkg "github.com/fekuna/kitmed-catalog-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/kitmed-catalog-service/internal/product/usecase"
	"github.com/fekuna/kitmed-catalog-service/internal/rfp"
	rfpRepoPkg "github.com/fekuna/kitmed-catalog-service/internal/rfp/repository"
	rfpUCPkg "github.com/fekuna/kitmed-catalog-service/internal/rfp/usecase"
	"github.com/fekuna/kitmed-catalog-service/internal/user"
	userRepoPkg "github.com/fekuna/kitmed-catalog-service/internal/user/repository"
	userUCPkg "github.com/fekuna/kitmed-catalog-service/internal/user/usecase"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// app holds the connections and use cases shared by every subcommand.
type app struct {
	cfg *config.Config
	log logger.ZapLogger

	db       *sqlx.DB
	redis    *cache.RedisClient
	store    cache.Store
	es       *search.Client
	producer *broker.KafkaProducer

	translator *i18n.Translator
	tokens     *auth.TokenManager
	accounts   user.Repository

	categories category.UseCase
	partners   partner.UseCase
	banners    banner.UseCase
	products   product.UseCase
	users      user.UseCase
	rfps       rfp.UseCase
	media      media.UseCase
	importer   importer.UseCase
}

func openDB(cfg *config.Config, log logger.ZapLogger) (*sqlx.DB, error) {
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	log.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
	return db, nil
}

func newApp(cfg *config.Config, log logger.ZapLogger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	// 1. Connect to Database
	db, err := openDB(cfg, log)
	if err != nil {
		return nil, err
	}
	a.db = db

	// 2. Initialize Redis. Without it carts and caches live in process
	// memory, which only holds for a single instance.
	var locker cache.Locker
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Could not connect to Redis, falling back to in-memory store", zap.Error(err))
		memStore := cache.NewMemoryStore()
		a.store = memStore
		locker = memStore
	} else {
		log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		a.redis = redisClient
		a.store = redisClient
		locker = redisClient
	}

	// 3. Initialize Elasticsearch
	var indexer search.Indexer
	if cfg.Elastic.Enabled {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			log.Warn("Could not connect to Elasticsearch, search falls back to SQL", zap.Error(err))
		} else {
			log.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
			a.es = esClient
			indexer = esClient
		}
	}

	// 4. Initialize Kafka Producer
	var publisher rfpUCPkg.Publisher
	if cfg.Kafka.Enabled {
		a.producer = broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.RFPTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		publisher = a.producer
		log.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.RFPTopic))
	}

	// 5. Initialize i18n and auth
	a.translator, err = i18n.New(cfg.I18n.DefaultLocale)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load translations: %w", err)
	}
	for _, path := range cfg.I18n.MessagesFiles {
		if err := a.translator.Load(path); err != nil {
			a.Close()
			return nil, fmt.Errorf("load translations %s: %w", path, err)
		}
		log.Info("Loaded message overrides", zap.String("path", path))
	}
	a.tokens = auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.TTL)

	// 6. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	partnerRepo := partnerRepoPkg.NewPGRepository(db)
	bannerRepo := bannerRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	userRepo := userRepoPkg.NewPGRepository(db)
	a.accounts = userRepo
	rfpRepo := rfpRepoPkg.NewPGRepository(db)
	mediaRepo := mediaRepoPkg.NewPGRepository(db)

	// 7. Initialize UseCases
	locale := a.translator.DefaultLocale()
	a.categories = catUCPkg.NewCategoryUseCase(catRepo, a.store, locale, log)
	a.partners = partnerUCPkg.NewPartnerUseCase(partnerRepo, locale, log)
	a.banners = bannerUCPkg.NewBannerUseCase(bannerRepo, locale, log)
	a.products = prodUCPkg.NewProductUseCase(prodRepo, a.categories, a.partners, prodUCPkg.Options{
		Cache:         a.store,
		CacheTTL:      cfg.Redis.CacheTTL,
		Search:        indexer,
		Index:         cfg.Elastic.Index,
		DefaultLocale: locale,
	}, log)
	a.users = userUCPkg.NewUserUseCase(userRepo, a.tokens, log)
	a.rfps = rfpUCPkg.NewRFPUseCase(rfpRepo, rfpRepoPkg.NewCartStore(a.store, cfg.Redis.CartTTL), a.products, rfpUCPkg.Options{
		Locker:        locker,
		Publisher:     publisher,
		DefaultLocale: locale,
	}, log)
	a.media = mediaUCPkg.NewMediaUseCase(mediaRepo, mediaUCPkg.Options{
		UploadDir:     cfg.Storage.UploadDir,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
		MaxSize:       cfg.Storage.MaxUploadSize,
	}, log)
	a.importer = importUCPkg.NewImportUseCase(a.products, a.categories, a.partners, a.media, locale, log)

	return a, nil
}

// translate renders messageID in the configured default locale.
func (a *app) translate(messageID string, data map[string]interface{}) string {
	return a.translator.T(a.translator.DefaultLocale(), messageID, data)
}

func (a *app) Close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Warn("close kafka producer", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("close postgres", zap.Error(err))
		}
	}
}
