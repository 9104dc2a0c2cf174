package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldline/fieldline-backend/pkg/apiclient"
	"github.com/fieldline/fieldline-backend/pkg/config"
	"github.com/fieldline/fieldline-backend/pkg/env"
	"github.com/fieldline/fieldline-backend/pkg/logger"
	"github.com/fieldline/fieldline-backend/pkg/metrics"
	"github.com/fieldline/fieldline-backend/pkg/poll"
)

// board is a terminal dispatch board: it logs in, keeps the booking queue
// synchronized through the polling controller, and prints the global/team
// queue counts on every refresh interval.
func main() {
	logg := logger.New(logger.Options{ServiceName: "board"})

	_ = godotenv.Load()

	baseURL := flag.String("api", env.Get("FIELDLINE_BOARD_API", "http://localhost:8080"), "api base url")
	email := flag.String("email", env.First("", "FIELDLINE_BOARD_EMAIL", "BOARD_EMAIL"), "login email")
	password := flag.String("password", env.First("", "FIELDLINE_BOARD_PASSWORD", "BOARD_PASSWORD"), "login password")
	role := flag.String("role", "dispatcher", "login role")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	client, err := apiclient.New(*baseURL)
	if err != nil {
		logg.Error(context.Background(), "failed to create api client", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	identity, err := client.Login(ctx, *email, *password, *role)
	if err != nil {
		logg.Error(ctx, "login failed", err)
		os.Exit(1)
	}
	fmt.Printf("signed in as %s (%s)\n", identity.Name, identity.Role)

	pollMetrics := metrics.NewPollMetrics(prometheus.NewRegistry())
	controller := poll.NewController(
		func(ctx context.Context) ([]apiclient.Booking, error) {
			return client.ListBookings(ctx, nil)
		},
		poll.WithInterval(cfg.Polling.Interval),
		poll.WithPauseTimeout(cfg.Polling.PauseTimeout),
		poll.WithMetrics(pollMetrics, "board"),
		poll.WithAuthErrorHandler(func() {
			fmt.Println("session expired, sign in again")
			stop()
		}),
	)
	controller.Start(ctx)
	defer controller.Close()

	render(controller.Snapshot())

	ticker := time.NewTicker(cfg.Polling.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Println("board shutting down")
			return
		case <-ticker.C:
			render(controller.Snapshot())
		}
	}
}

func render(snap poll.Snapshot) {
	if snap.Err != nil {
		fmt.Printf("last refresh failed: %v\n", snap.Err)
		return
	}

	queues := poll.Categorize(snap.Bookings)
	fmt.Printf("%s  global: %d scheduled / %d enroute / %d on-site / %d completed\n",
		time.Now().Format("15:04:05"),
		len(queues.Global.Scheduled), len(queues.Global.Enroute),
		len(queues.Global.OnSite), len(queues.Global.Completed),
	)
	fmt.Printf("          team:   %d scheduled / %d enroute / %d on-site / %d completed\n",
		len(queues.Team.Scheduled), len(queues.Team.Enroute),
		len(queues.Team.OnSite), len(queues.Team.Completed),
	)
}
