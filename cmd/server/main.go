package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/tmsiti/institute-api/internal/auth"
	"github.com/tmsiti/institute-api/internal/config"
	"github.com/tmsiti/institute-api/internal/database"
	"github.com/tmsiti/institute-api/internal/handler"
	"github.com/tmsiti/institute-api/internal/i18n"
	"github.com/tmsiti/institute-api/internal/middleware"
	"github.com/tmsiti/institute-api/internal/queue"
	"github.com/tmsiti/institute-api/internal/repository"
	"github.com/tmsiti/institute-api/internal/router"
	"github.com/tmsiti/institute-api/internal/storage"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Language negotiation and phrase tables.
	negotiator := i18n.NewNegotiator(cfg.Languages, cfg.DefaultLang)
	bundle := i18n.LoadBundle(cfg.LocalesDir, cfg.Languages)

	// Token service and file store.
	tokens := auth.NewTokenService(cfg.JWTSecret,
		time.Duration(cfg.AccessTTLMin)*time.Minute,
		time.Duration(cfg.RefreshTTLDays)*24*time.Hour)
	store := storage.NewStore(cfg.UploadDir, cfg.MaxUploadSize)

	// Repositories.
	users := repository.NewUserRepo(db)
	news := repository.NewNewsRepo(db)
	announcements := repository.NewAnnouncementRepo(db)
	laws := repository.NewLawRepo(db)
	urbanNorms := repository.NewUrbanNormRepo(db)
	standards := repository.NewStandardRepo(db)
	buildingRegs := repository.NewBuildingRegulationRepo(db)
	smetaNorms := repository.NewSmetaNormRepo(db)
	references := repository.NewReferenceRepo(db)
	about := repository.NewAboutRepo(db)
	structure := repository.NewStructureRepo(db)
	management := repository.NewManagementRepo(db)
	divisions := repository.NewDivisionRepo(db)
	vacancies := repository.NewVacancyRepo(db)
	systems := repository.NewManagementSystemRepo(db)
	laboratories := repository.NewLaboratoryRepo(db)
	contacts := repository.NewContactRepo(db)
	antiCorruption := repository.NewAntiCorruptionRepo(db)

	// Rate limiter; a missing Redis disables it rather than blocking startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Deps{
		Cfg: cfg,
		DB:  db,

		Auth:  handler.NewAuthHandler(cfg, users, tokens),
		Users: handler.NewUserHandler(cfg, users, store),
		Admin: &handler.AdminHandler{
			Cfg:           cfg,
			Users:         users,
			Contacts:      contacts,
			News:          news,
			Announcements: announcements,
		},
		News: handler.NewNewsHandler(cfg, news, announcements, store),
		Regulations: &handler.RegulationHandler{
			Cfg:          cfg,
			Laws:         laws,
			UrbanNorms:   urbanNorms,
			Standards:    standards,
			BuildingRegs: buildingRegs,
			SmetaNorms:   smetaNorms,
			References:   references,
			Store:        store,
		},
		Institute: &handler.InstituteHandler{
			Cfg:        cfg,
			About:      about,
			Structure:  structure,
			Management: management,
			Divisions:  divisions,
			Vacancies:  vacancies,
			Store:      store,
		},
		Activity: &handler.ActivityHandler{
			Cfg:          cfg,
			Systems:      systems,
			Laboratories: laboratories,
			Store:        store,
		},
		Contact: &handler.ContactHandler{
			Cfg:            cfg,
			Contacts:       contacts,
			AntiCorruption: antiCorruption,
		},

		Language:     middleware.Language(negotiator, bundle),
		Authenticate: middleware.Authenticate(tokens, middleware.RepoPrincipalSource{Users: users}),
		RateLimit:    rateLimit,
	})

	// Inquiry events land in logs/inquiries.log via the broker consumer.
	go func() {
		if err := queue.StartContactConsumer(cfg.AMQPURL); err != nil {
			log.Printf("contact consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
