package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/config"
	"org-calendar-api/internal/handler"
	"org-calendar-api/internal/logging"
	"org-calendar-api/internal/middleware"
	"org-calendar-api/internal/notify"
	"org-calendar-api/internal/reminder"
	"org-calendar-api/internal/rpc"
	"org-calendar-api/internal/seed"
	"org-calendar-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("logger")
	}
	if _, err := maxprocs.Set(maxprocs.Logger(log.Infof)); err != nil {
		log.WithError(err).Warn("error setting GOMAXPROCS")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// database
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("db")
	}
	defer pool.Close()
	st := store.New(pool)
	if err := st.Ping(ctx); err != nil {
		log.WithError(err).Fatal("db ping")
	}
	log.Info("connected to postgres")

	if err := st.Migrate(ctx, cfg.MigrationsPath); err != nil {
		log.WithError(err).Warn("migration skipped")
	} else {
		log.Info("migration applied")
	}

	if cfg.HolidaySeedFile != "" {
		if err := seedHolidays(ctx, st, cfg.HolidaySeedFile, log); err != nil {
			log.WithError(err).Fatal("holiday seed")
		}
	}

	// notifications: in-app record plus push
	senders := notify.Chain{notify.NewRecordSender(st)}
	if cfg.SNSTopicARN != "" {
		awsConf, err := awscfg.LoadDefaultConfig(ctx)
		if err != nil {
			log.WithError(err).Fatal("aws config")
		}
		senders = append(senders, notify.NewSNSSender(sns.NewFromConfig(awsConf), cfg.SNSTopicARN))
	} else {
		senders = append(senders, notify.LogSender{Log: log.WithField("component", "push")})
	}
	queue := notify.NewQueue(senders, cfg.NotifyWorkers, cfg.NotifyQueueSize, log)

	loc, _ := cfg.Location()
	reminders, err := reminder.Schedule(cfg.ReminderSpec, reminder.New(st, queue, loc, log))
	if err != nil {
		log.WithError(err).Fatal("reminder")
	}
	reminders.Start()

	agg := calendar.NewAggregator(calendar.SourcesFrom(st), log)
	h := handler.New(agg, st, queue, log)

	// grpc server
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rl.Run(ctx)
	opts := append(rpc.ServerOptions(), grpc.ChainUnaryInterceptor(
		middleware.RateLimit(rl),
		middleware.Auth(cfg.JWTSecret),
	))
	srv := grpc.NewServer(opts...)
	rpc.Register(srv, rpc.NewServer(agg, log))
	healthpb.RegisterHealthServer(srv, health.NewServer())

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.WithError(err).Fatal("listen")
	}
	go func() {
		log.Infof("grpc on :%s", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			log.WithError(err).Error("grpc")
		}
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	conn, err := grpc.NewClient("localhost:"+cfg.GRPCPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.WithError(err).Fatal("bridge")
	}
	defer conn.Close()

	router := h.Routes(cfg.JWTSecret, rl)
	router.PathPrefix("/" + rpc.ServiceName + "/").Handler(rpc.NewBridge(conn, log))

	httpSrv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("http on :%s", cfg.WebPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http")
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	log.Info("shutting down")
	shutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdown); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
	srv.GracefulStop()
	<-reminders.Stop().Done()
	queue.Close()
}

func seedHolidays(ctx context.Context, st *store.Store, path string, log *logrus.Entry) error {
	holidays, err := seed.LoadHolidays(path)
	if err != nil {
		return err
	}
	for i := range holidays {
		if err := st.UpsertHoliday(ctx, &holidays[i]); err != nil {
			return err
		}
	}
	log.WithField("count", len(holidays)).Info("holidays seeded")
	return nil
}
