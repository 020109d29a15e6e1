package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	"venue-booking/internal/app"
	"venue-booking/internal/blob"
	"venue-booking/internal/booking"
	elasticService "venue-booking/internal/elastic_search"
	"venue-booking/internal/etl"
	"venue-booking/internal/feedback"
	handlersBooking "venue-booking/internal/handlers/booking"
	handlersFeedback "venue-booking/internal/handlers/feedback"
	handlersNotice "venue-booking/internal/handlers/notice"
	handlersUser "venue-booking/internal/handlers/user"
	handlersVenue "venue-booking/internal/handlers/venue"
	"venue-booking/internal/kafka"
	"venue-booking/internal/middleware"
	"venue-booking/internal/notice"
	"venue-booking/internal/session"
	"venue-booking/internal/user"
	"venue-booking/internal/venue"

	_ "github.com/lib/pq"
)

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "path to config")
	flag.Parse()

	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	// парсим конфиг
	c, err := app.NewConfig(*cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	loc, err := c.CfgBooking.TimeLocation()
	if err != nil {
		logger.Fatalf("unknown booking location %q: %v", c.CfgBooking.Location, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// init db
	db, err := sql.Open("postgres", c.CfgDB.DSN())
	if err != nil {
		logger.Fatalf("error to database start: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(c.MaxOpenConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Infof("Failed to get response to ping: %v", err)
	}

	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     c.CfgRedis.Addr,
		Password: c.CfgRedis.Password,
		DB:       c.CfgRedis.DB,
	})
	defer redisClient.Close()

	// Необязательные зависимости остаются nil интерфейсом, если не настроены
	var producer kafka.EventProducer
	if len(c.CfgKafka.Brokers) > 0 {
		p := kafka.NewProducer(c.CfgKafka.Brokers, c.CfgKafka.Topic, logger)
		defer p.Close()
		producer = p
	} else {
		logger.Warn("kafka brokers are not configured, booking events are disabled")
	}

	var images blob.ImageStore
	if c.CfgCloudinary.URL != "" {
		store, err := blob.NewCloudinaryStore(c.CfgCloudinary.URL, c.CfgCloudinary.Folder, logger)
		if err != nil {
			logger.Fatalf("error to init cloudinary: %v", err)
		}
		images = store
	} else {
		logger.Warn("cloudinary is not configured, image upload is disabled")
	}

	var (
		searcher venue.Searcher
		index    *elasticService.ElasticService
	)
	if len(c.CfgES.Addresses) > 0 {
		esClient, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: c.CfgES.Addresses})
		if err != nil {
			logger.Fatalf("error to init elasticsearch client: %v", err)
		}
		index = elasticService.NewService(esClient, logger, c.CfgES.Index)
		if err := index.EnsureIndex(ctx); err != nil {
			logger.Warnf("search index is not ready, database search will be used until it is: %v", err)
		}
		searcher = index
	} else {
		logger.Warn("elasticsearch is not configured, database search only")
	}

	// init repository
	userRepository := user.NewUserDBRepository(db, logger)
	sessionRepository := session.NewSessionRepository(redisClient, logger, c.Secret, c.SessionDuration)
	bookingRepository := booking.NewBookingDBRepository(db, logger)
	venueRepository := venue.NewVenueDBRepository(db, logger)
	feedbackRepository := feedback.NewFeedbackDBRepository(db, logger)
	noticeRepository := notice.NewNoticeDBRepository(db, logger)

	// init services
	ledger := booking.NewLedger(bookingRepository, producer, logger, loc, c.CfgBooking.HorizonDays)
	catalog := venue.NewCatalog(venueRepository, images, searcher, producer, logger)
	feedbackService := feedback.NewService(feedbackRepository, logger)
	board := notice.NewBoard(noticeRepository, logger)

	// ETL в полнотекстовый поиск
	if index != nil {
		pipeline := etl.NewPipeline(
			etl.NewPostgresExtractor(db, logger),
			etl.NewTransformer(logger),
			etl.NewElasticLoader(index, logger, db),
			logger,
			c.ETLTimeout,
		)
		go pipeline.Run(ctx)
	}

	// init handlers
	userHandlers := handlersUser.NewUserHandler(logger, userRepository, sessionRepository)
	bookingHandlers := handlersBooking.NewBookingHandler(logger, ledger)
	venueHandlers := handlersVenue.NewVenueHandler(logger, catalog, images)
	feedbackHandlers := handlersFeedback.NewFeedbackHandler(logger, feedbackService)
	noticeHandlers := handlersNotice.NewNoticeHandler(logger, board)

	// init router
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	auth := middleware.Auth(sessionRepository, userRepository, logger)

	// Ручки НЕ требующие авторизации
	noAuthRouter := r.PathPrefix("/api").Subrouter()

	noAuthRouter.HandleFunc("/user/register", userHandlers.Register).Methods("POST")
	noAuthRouter.HandleFunc("/user/login", userHandlers.Login).Methods("POST")

	// hot и search раньше {id}
	noAuthRouter.HandleFunc("/venues", venueHandlers.List).Methods("GET")
	noAuthRouter.HandleFunc("/venues/hot", venueHandlers.Hot).Methods("GET")
	noAuthRouter.HandleFunc("/venues/search", venueHandlers.Search).Methods("GET")
	noAuthRouter.HandleFunc("/venues/{id}", venueHandlers.Get).Methods("GET")

	noAuthRouter.HandleFunc("/venues/{id}/availability", bookingHandlers.Availability).Methods("GET")
	noAuthRouter.HandleFunc("/venues/{id}/fully-booked", bookingHandlers.FullyBooked).Methods("GET")
	noAuthRouter.HandleFunc("/venues/{id}/durations", bookingHandlers.Durations).Methods("GET")
	noAuthRouter.HandleFunc("/venues/{id}/start-times", bookingHandlers.StartTimes).Methods("GET")
	noAuthRouter.HandleFunc("/venues/{id}/bookings", bookingHandlers.Booked).Methods("GET")
	noAuthRouter.HandleFunc("/venues/{id}/feedback", feedbackHandlers.ForVenue).Methods("GET")

	noAuthRouter.HandleFunc("/notices", noticeHandlers.Latest).Methods("GET")

	// Ручки требующие авторизации
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(auth)

	authRouter.HandleFunc("/user/me", userHandlers.Me).Methods("GET")
	authRouter.HandleFunc("/user/logout", userHandlers.Logout).Methods("POST")

	authRouter.HandleFunc("/bookings", bookingHandlers.Create).Methods("POST")
	authRouter.HandleFunc("/bookings/me", bookingHandlers.Mine).Methods("GET")
	authRouter.HandleFunc("/bookings/{id}", bookingHandlers.Cancel).Methods("DELETE")

	authRouter.HandleFunc("/venues", venueHandlers.Create).Methods("POST")
	authRouter.HandleFunc("/venues/images", venueHandlers.UploadImage).Methods("POST")

	authRouter.HandleFunc("/feedback", feedbackHandlers.Create).Methods("POST")
	authRouter.HandleFunc("/feedback/me", feedbackHandlers.Mine).Methods("GET")
	authRouter.HandleFunc("/feedback/{id}", feedbackHandlers.Update).Methods("PUT")
	authRouter.HandleFunc("/feedback/{id}", feedbackHandlers.Delete).Methods("DELETE")

	// Ручки только для админа
	adminRouter := r.PathPrefix("/api").Subrouter()
	adminRouter.Use(auth, middleware.RequireAdmin(logger))

	adminRouter.HandleFunc("/venues/{id}", venueHandlers.Delete).Methods("DELETE")
	adminRouter.HandleFunc("/notices", noticeHandlers.Post).Methods("POST")
	adminRouter.HandleFunc("/notices/{id}", noticeHandlers.Edit).Methods("PUT")
	adminRouter.HandleFunc("/notices/{id}", noticeHandlers.Remove).Methods("DELETE")

	srv := &http.Server{
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", c.ServerPort)
	if err != nil {
		logger.Fatalf("can't listen on %s: %v", c.ServerPort, err)
	}
	listener = netutil.LimitListener(listener, c.MaxConnections)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("error to shutdown server: %v", err)
		}
	}()

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
		"max_connections", c.MaxConnections,
	)

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("can't start server: %v", err)
	}

	logger.Info("server stopped")
}
