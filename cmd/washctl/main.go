package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	washly "github.com/washly/washly-go"
	"github.com/washly/washly-go/cache"
	"github.com/washly/washly-go/domain"
	"github.com/washly/washly-go/pkg/config"
	"github.com/washly/washly-go/pkg/logger"
	"github.com/washly/washly-go/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env", "error", err)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	client := newClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, client, os.Args[2:])
	case "logout":
		client.Auth.Logout(ctx)
		fmt.Println("signed out")
	case "me":
		err = runMe(ctx, client)
	case "services":
		err = runServices(ctx, client, os.Args[2:])
	case "bookings":
		err = runBookings(ctx, client, os.Args[2:])
	case "book":
		err = runBook(ctx, client, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newClient(cfg *config.Config) *washly.Client {
	var opts []washly.Option

	if cfg.Storage.StateFile != "" {
		fileStore, err := store.NewFileStore(cfg.Storage.StateFile)
		if err != nil {
			logger.Warn("Falling back to in-memory state", "error", err)
		} else {
			opts = append(opts, washly.WithStore(fileStore))
		}
	}

	if cfg.Redis.URL != "" {
		backend, err := cache.NewRedisBackend(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Falling back to in-memory cache", "error", err)
		} else {
			opts = append(opts, washly.WithCacheBackend(backend))
		}
	}

	return washly.New(cfg, opts...)
}

func runLogin(ctx context.Context, client *washly.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}

	session, err := client.Auth.Login(ctx, domain.LoginRequest{
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("signed in as %s %s (%s)\n", session.User.FirstName, session.User.LastName, session.User.Role)
	return nil
}

func runMe(ctx context.Context, client *washly.Client) error {
	user, err := client.Profile.Get(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s <%s> role=%s\n", user.FirstName, user.LastName, user.Email, user.Role)
	return nil
}

func runServices(ctx context.Context, client *washly.Client, args []string) error {
	fs := flag.NewFlagSet("services", flag.ExitOnError)
	category := fs.String("category", "", "filter by category")
	vehicle := fs.String("vehicle", "", "filter by vehicle type")
	fs.Parse(args)

	services := client.Services.List(ctx, &domain.ServiceFilter{
		Category:    *category,
		VehicleType: domain.VehicleType(*vehicle),
	})
	for _, svc := range services {
		fmt.Printf("%s  $%.2f  %dmin  %s\n", svc.Name, svc.Price, svc.DurationMinutes, svc.Category)
	}
	if len(services) == 0 {
		fmt.Println("no services found")
	}
	return nil
}

func runBookings(ctx context.Context, client *washly.Client, args []string) error {
	fs := flag.NewFlagSet("bookings", flag.ExitOnError)
	provider := fs.Bool("provider", false, "list bookings for your business instead")
	status := fs.String("status", "", "filter by status")
	fs.Parse(args)

	filter := &domain.BookingFilter{Status: domain.BookingStatus(*status)}
	var bookings []domain.Booking
	if *provider {
		bookings = client.Bookings.ForProvider(ctx, filter)
	} else {
		bookings = client.Bookings.Mine(ctx, filter)
	}

	for _, b := range bookings {
		fmt.Printf("%s  %-12s  %s  $%.2f\n", b.ID, b.Status, b.ScheduledAt.Format(time.RFC3339), b.TotalAmount)
	}
	if len(bookings) == 0 {
		fmt.Println("no bookings found")
	}
	return nil
}

func runBook(ctx context.Context, client *washly.Client, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	serviceID := fs.String("service", "", "service id to book")
	vehicle := fs.String("vehicle", "sedan", "vehicle type")
	at := fs.String("at", "", "scheduled time (RFC3339)")
	notes := fs.String("notes", "", "special instructions")
	fs.Parse(args)

	if *serviceID == "" || *at == "" {
		return fmt.Errorf("both -service and -at are required")
	}
	scheduledAt, err := time.Parse(time.RFC3339, *at)
	if err != nil {
		return fmt.Errorf("parse -at: %w", err)
	}

	booking, err := client.Bookings.Create(ctx, domain.BookingCreateRequest{
		ServiceID:           *serviceID,
		VehicleType:         domain.VehicleType(*vehicle),
		ScheduledAt:         scheduledAt,
		SpecialInstructions: *notes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("booked %s for %s (status %s)\n", booking.ID, booking.ScheduledAt.Format(time.RFC3339), booking.Status)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: washctl <command> [flags]

commands:
  login     -email -password     sign in and persist the session
  logout                         sign out
  me                             show the current profile
  services  [-category -vehicle] list available services
  bookings  [-provider -status]  list your bookings
  book      -service -at         create a booking`)
}
