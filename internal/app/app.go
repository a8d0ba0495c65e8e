package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/footmate/internal/config"
	"github.com/riskibarqy/footmate/internal/domain/ability"
	"github.com/riskibarqy/footmate/internal/domain/achievement"
	"github.com/riskibarqy/footmate/internal/domain/clubacademy"
	"github.com/riskibarqy/footmate/internal/domain/contract"
	"github.com/riskibarqy/footmate/internal/domain/footplayer"
	"github.com/riskibarqy/footmate/internal/domain/location"
	"github.com/riskibarqy/footmate/internal/domain/notification"
	"github.com/riskibarqy/footmate/internal/domain/player"
	"github.com/riskibarqy/footmate/internal/domain/reportcard"
	"github.com/riskibarqy/footmate/internal/domain/user"
	"github.com/riskibarqy/footmate/internal/infrastructure/account"
	"github.com/riskibarqy/footmate/internal/infrastructure/eventbus"
	"github.com/riskibarqy/footmate/internal/infrastructure/mailer"
	"github.com/riskibarqy/footmate/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/footmate/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/footmate/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/footmate/internal/infrastructure/scheduler"
	"github.com/riskibarqy/footmate/internal/infrastructure/storage"
	"github.com/riskibarqy/footmate/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/footmate/internal/platform/cache"
	idgen "github.com/riskibarqy/footmate/internal/platform/id"
	"github.com/riskibarqy/footmate/internal/platform/logging"
	"github.com/riskibarqy/footmate/internal/platform/resilience"
	"github.com/riskibarqy/footmate/internal/usecase"
)

// App owns the HTTP server and every background resource it depends on.
type App struct {
	Server    *http.Server
	logger    *logging.Logger
	db        *sqlx.DB
	mailPool  *ants.Pool
	events    *eventbus.NATSPublisher
	scheduler *scheduler.Scheduler
}

type repositories struct {
	logins       user.Repository
	players      player.Repository
	directory    player.DirectoryRepository
	clubs        clubacademy.Repository
	abilities    ability.Repository
	locations    location.Repository
	reportCards  reportcard.Repository
	cardQueries  reportcard.QueryRepository
	contracts    contract.Repository
	footplayers  footplayer.Repository
	footListing  footplayer.ListRepository
	achievements achievement.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}
	ok := false
	defer func() {
		if !ok {
			a.closeResources()
		}
	}()

	repos, defaultCountryID, err := a.buildRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.abilities = cache.NewAbilityRepository(repos.abilities, store)
		repos.locations = cache.NewLocationRepository(repos.locations, store)
	}

	emailSvc, err := a.buildEmailService(cfg)
	if err != nil {
		return nil, err
	}

	var events usecase.EventPublisher
	if cfg.NATSEnabled {
		a.events, err = eventbus.NewNATSPublisher(eventbus.NATSConfig{
			URL:           cfg.NATSURL,
			Name:          cfg.ServiceName,
			SubjectPrefix: cfg.NATSSubjectPrefix,
			MaxReconnects: cfg.NATSMaxReconnects,
			ReconnectWait: cfg.NATSReconnectWait,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		events = a.events
	}

	var media usecase.MediaStore
	if cfg.S3Enabled {
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			UsePathStyle:    cfg.S3UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("build s3 store: %w", err)
		}
		media = s3Store
	}

	tokens, err := account.NewTokenService(account.TokenConfig{
		Secret:        cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		TTL:           cfg.JWTTTL,
		CacheTTL:      cfg.AuthCacheTTL,
		CacheMaxItems: cfg.AuthCacheMaxItems,
	})
	if err != nil {
		return nil, fmt.Errorf("build token service: %w", err)
	}

	ids := idgen.NewUUIDGenerator()
	contractSvc := usecase.NewEmploymentContractService(repos.contracts, repos.logins, emailSvc, events, ids, logger)
	services := httpapi.Services{
		Accounts: usecase.NewAccountService(usecase.AccountDeps{
			Logins:  repos.logins,
			Players: repos.players,
			Clubs:   repos.clubs,
			Hasher:  account.NewBcryptHasher(cfg.BcryptCost),
			Tokens:  tokens,
			Email:   emailSvc,
			IDGen:   ids,
			Logger:  logger,
		}),
		Members: usecase.NewMemberService(usecase.MemberDeps{
			Logins:    repos.logins,
			Players:   repos.players,
			Directory: repos.directory,
			Clubs:     repos.clubs,
			Media:     media,
			Email:     emailSvc,
			Logger:    logger,
		}),
		Locations:    usecase.NewLocationService(repos.locations, repos.abilities, defaultCountryID, ids, logger),
		Achievements: usecase.NewAchievementService(repos.achievements, media, ids, logger),
		Contracts:    contractSvc,
		Footplayers: usecase.NewFootplayerService(usecase.FootplayerDeps{
			Requests: repos.footplayers,
			Listing:  repos.footListing,
			Logins:   repos.logins,
			Players:  repos.players,
			Clubs:    repos.clubs,
			Email:    emailSvc,
			Events:   events,
			IDGen:    ids,
			Logger:   logger,
		}),
		ReportCards: usecase.NewReportCardService(usecase.ReportCardDeps{
			Cards:       repos.reportCards,
			Queries:     repos.cardQueries,
			Abilities:   repos.abilities,
			Footplayers: repos.footplayers,
			Logins:      repos.logins,
			Players:     repos.players,
			Clubs:       repos.clubs,
			Email:       emailSvc,
			Events:      events,
			IDGen:       ids,
			Logger:      logger,
		}),
	}

	if cfg.ContractExpiryEnabled {
		a.scheduler, err = scheduler.New(logger)
		if err != nil {
			return nil, fmt.Errorf("build scheduler: %w", err)
		}
		if err := a.scheduler.AddContractExpiry(contractSvc, cfg.ContractExpiryInterval, cfg.ContractExpiryTimeout); err != nil {
			return nil, fmt.Errorf("schedule contract expiry: %w", err)
		}
	}

	handler := httpapi.NewHandler(services, logger)
	router := httpapi.NewRouter(handler, tokens, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)
	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ok = true
	return a, nil
}

// Start launches background jobs. The HTTP server is started by the caller.
func (a *App) Start() {
	if a.scheduler != nil {
		a.scheduler.Start()
	}
}

// Shutdown stops the server first, then the resources behind it.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}
	if err := a.closeResources(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeResources() error {
	var errs []error
	if a.scheduler != nil {
		if err := a.scheduler.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("shutdown scheduler: %w", err))
		}
		a.scheduler = nil
	}
	if a.mailPool != nil {
		a.mailPool.Release()
		a.mailPool = nil
	}
	if a.events != nil {
		if err := a.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close nats: %w", err))
		}
		a.events = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
		a.db = nil
	}
	return errors.Join(errs...)
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config) (repositories, string, error) {
	if cfg.DBURL == "" {
		a.logger.Warn("DB_URL empty, using in-memory repositories")
		return memoryRepositories(), firstNonEmpty(cfg.DefaultCountryID, memory.CountryIDIndia), nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, "", err
	}
	a.db = db
	if err := db.PingContext(ctx); err != nil {
		return repositories{}, "", fmt.Errorf("ping db: %w", err)
	}
	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		return repositories{}, "", fmt.Errorf("bootstrap seed: %w", err)
	}

	players := postgres.NewPlayerRepository(db)
	footplayers := postgres.NewFootplayerRepository(db)
	return repositories{
		logins:       postgres.NewLoginRepository(db),
		players:      players,
		directory:    players,
		clubs:        postgres.NewClubAcademyRepository(db),
		abilities:    postgres.NewAbilityRepository(db),
		locations:    postgres.NewLocationRepository(db),
		reportCards:  postgres.NewReportCardRepository(db),
		cardQueries:  postgres.NewReportCardQueryRepository(db),
		contracts:    postgres.NewContractRepository(db),
		footplayers:  footplayers,
		footListing:  footplayers,
		achievements: postgres.NewAchievementRepository(db),
	}, firstNonEmpty(cfg.DefaultCountryID, memory.CountryIDIndia), nil
}

func memoryRepositories() repositories {
	logins, players, clubs := memory.NewMemberRepositories()
	cards := memory.NewReportCardRepository()
	footplayers := memory.NewFootplayerRepository()
	return repositories{
		logins:       logins,
		players:      players,
		directory:    players,
		clubs:        clubs,
		abilities:    memory.NewAbilityRepository(memory.SeedAbilities(), memory.SeedPositions()),
		locations:    memory.NewLocationRepository(memory.SeedCountries(), memory.SeedStates(), memory.SeedCities()),
		reportCards:  cards,
		cardQueries:  memory.NewReportCardQueryRepository(cards, footplayers, players, clubs),
		contracts:    memory.NewContractRepository(),
		footplayers:  footplayers,
		footListing:  memory.NewFootplayerListRepository(footplayers, players),
		achievements: memory.NewAchievementRepository(),
	}
}

func (a *App) buildEmailService(cfg config.Config) (*usecase.EmailService, error) {
	renderer, err := mailer.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("build mail renderer: %w", err)
	}

	var sender notification.Sender
	if cfg.SMTPEnabled {
		sender, err = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			Timeout:  cfg.SMTPTimeout,
			Breaker: resilience.BreakerConfig{
				Enabled:          cfg.SMTPCircuitEnabled,
				FailureThreshold: cfg.SMTPCircuitFailureCount,
				OpenTimeout:      cfg.SMTPCircuitOpenTimeout,
				HalfOpenProbes:   cfg.SMTPCircuitHalfOpenMaxReq,
			},
		}, a.logger)
		if err != nil {
			return nil, fmt.Errorf("build smtp sender: %w", err)
		}
	} else {
		a.logger.Info("smtp disabled, emails are logged only")
		sender = mailer.NewLogSender(a.logger)
	}

	a.mailPool, err = ants.NewPool(cfg.MailPoolSize, ants.WithNonblocking(false))
	if err != nil {
		return nil, fmt.Errorf("build mail pool: %w", err)
	}

	return usecase.NewEmailService(renderer, sender, a.mailPool.Submit, usecase.EmailLinks{
		FrontendBaseURL: cfg.FrontendBaseURL,
	}, a.logger), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
