package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Mio254/spacer/internal/notify"
	"github.com/Mio254/spacer/internal/processor"
	"github.com/Mio254/spacer/internal/repository"
	"github.com/Mio254/spacer/internal/service"
	transport "github.com/Mio254/spacer/internal/transport/http"
	"github.com/Mio254/spacer/pkg/auth"
	"github.com/Mio254/spacer/pkg/config"
	"github.com/Mio254/spacer/pkg/db"
	"github.com/Mio254/spacer/pkg/mq"
	"github.com/Mio254/spacer/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	cfg := must(config.Load())

	shutdownTracer := obs.InitTracer("spacer", cfg.OTELEndpoint, cfg.Env)
	defer func() { _ = shutdownTracer(context.Background()) }()

	gdb := db.Open(cfg.PGDSN)

	spaces := repository.NewSpaceRepo(gdb)
	bookings := repository.NewBookingRepo(gdb)
	payments := repository.NewPaymentRepo(gdb)
	users := repository.NewUserRepo(gdb)
	agreements := repository.NewAgreementRepo(gdb)
	must(0, firstErr(
		spaces.Migrate(), bookings.Migrate(), payments.Migrate(),
		users.Migrate(), agreements.Migrate(),
	))

	// Events are optional: without a broker the engine still runs, it just
	// stays quiet.
	var bookingPub, paymentPub service.Publisher
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.RabbitURL != "" {
		bp := must(mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange))
		defer bp.Close()
		pp := must(mq.NewPublisher(cfg.RabbitURL, cfg.PaymentExchange))
		defer pp.Close()
		bookingPub, paymentPub = bp, pp

		cons := must(mq.NewConsumer(cfg.RabbitURL, cfg.NotifyQueue,
			[]string{cfg.BookingExchange, cfg.PaymentExchange}, notify.RoutingKeys, 16))
		defer cons.Close()
		must(0, notify.NewConsumer(cons, notify.NewConsole()).Run(ctx))
		log.Println("[server] notification consumer started")
	}

	proc := must(processor.NewOmise(cfg.OmisePublicKey, cfg.OmiseSecretKey))

	tokens := auth.NewTokens(cfg.JWTSecret,
		time.Duration(cfg.JWTExpireMin)*time.Minute,
		time.Duration(cfg.RefreshExpireHr)*time.Hour)

	svcs := transport.Services{
		Auth:     service.NewAuthSvc(users, tokens),
		Spaces:   service.NewSpaceSvc(spaces),
		Bookings: service.NewBookingSvc(spaces, bookings, bookingPub),
		Payments: service.NewPaymentSvc(bookings, payments, proc, paymentPub,
			cfg.PaymentCurrency,
			time.Duration(cfg.PaymentTimeoutSec)*time.Second,
			time.Duration(cfg.InvoiceDueDays)*24*time.Hour),
		Agreements: service.NewAgreementSvc(agreements, bookings),
		Tokens:     tokens,
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: transport.NewRouter(svcs)}
	go func() {
		log.Println("[server] listening on", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)
	log.Println("[server] stopped")
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
