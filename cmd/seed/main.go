// Command seed loads a demo account with sample clients and meetings.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/clientbook/clientbook/internal/auth"
	"github.com/clientbook/clientbook/internal/repository"
	"github.com/clientbook/clientbook/internal/service"
)

type output struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Clients  int    `json:"clients"`
	Meetings int    `json:"meetings"`
}

var demoClients = []service.ClientInput{
	{FullName: "John Smith", Email: "john.smith@techcorp.com", Company: "TechCorp Solutions", Phone: "+1 (555) 123-4567"},
	{FullName: "Sarah Johnson", Email: "sarah.johnson@innovate.com", Company: "Innovate Labs", Phone: "+1 (555) 234-5678"},
	{FullName: "Michael Chen", Email: "michael.chen@startup.io", Company: "Startup.io", Phone: "+1 (555) 345-6789"},
	{FullName: "Emily Davis", Email: "emily.davis@enterprise.com", Company: "Enterprise Solutions", Phone: "+1 (555) 456-7890"},
	{FullName: "David Wilson", Email: "david.wilson@consulting.com", Company: "Wilson Consulting", Phone: "+1 (555) 567-8901"},
}

type demoMeeting struct {
	title    string
	days     int
	location string
	notes    string
}

// Meeting i is scheduled with client i.
var demoMeetings = []demoMeeting{
	{"Project Kickoff Meeting", 2, "Conference Room A", "Initial project discussion and timeline planning"},
	{"Quarterly Review", 5, "Virtual Meeting", "Q4 performance review and Q1 planning"},
	{"Product Demo", 1, "Demo Room", "New feature demonstration and feedback session"},
	{"Contract Negotiation", 3, "Board Room", "Contract terms discussion and finalization"},
	{"Strategy Planning", 7, "Strategy Room", "Long-term strategy planning and goal setting"},
}

const (
	demoName  = "Demo User"
	demoPhone = "+1 (555) 999-8888"
)

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "demo@example.com", "Demo user email")
		password    = flag.String("password", "demo123", "Demo user password")
		migrate     = flag.Bool("migrate", true, "Apply database migrations first")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if *migrate {
		if err := repo.Migrate(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	}

	out, err := seed(ctx, repo, *email, *password, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Printf("Seeded %d clients and %d meetings\n", out.Clients, out.Meetings)
		fmt.Printf("Email: %s\nPassword: %s\n", out.Email, out.Password)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

// store is the persistence surface the seeder needs.
type store interface {
	service.UserStore
	service.ClientStore
	service.MeetingStore
}

// seed ensures the demo user exists with the given password and replaces
// that user's clients and meetings with the demo set. Other users are untouched.
func seed(ctx context.Context, st store, email, password string, now time.Time) (*output, error) {
	// The seeder verifies no tokens; a throwaway secret is enough.
	secret, err := auth.GenerateSecret(auth.MinSecretLength)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewTokenManager(secret, auth.DefaultTokenTTL, "clientbook-seed")
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authSvc := service.NewAuthService(st, nil, tokens, nil, logger)
	clientSvc := service.NewClientService(st, nil)
	meetingSvc := service.NewMeetingService(st, st, nil)

	userID, err := ensureUser(ctx, authSvc, email, password)
	if err != nil {
		return nil, err
	}

	if err := clearUserData(ctx, clientSvc, meetingSvc, userID); err != nil {
		return nil, err
	}

	out := &output{UserID: userID, Email: email, Password: password}
	for i, input := range demoClients {
		client, err := clientSvc.Create(ctx, userID, input)
		if err != nil {
			return nil, fmt.Errorf("create client %q: %w", input.FullName, err)
		}
		out.Clients++

		dm := demoMeetings[i%len(demoMeetings)]
		_, err = meetingSvc.Create(ctx, userID, service.MeetingInput{
			Title:    dm.title,
			ClientID: client.ID,
			DateTime: now.Add(time.Duration(dm.days) * 24 * time.Hour),
			Location: dm.location,
			Notes:    dm.notes,
		})
		if err != nil {
			return nil, fmt.Errorf("create meeting %q: %w", dm.title, err)
		}
		out.Meetings++
	}

	return out, nil
}

func ensureUser(ctx context.Context, svc *service.AuthService, email, password string) (string, error) {
	res, err := svc.Register(ctx, service.RegisterInput{FullName: demoName, Email: email, Password: password})
	switch {
	case err == nil:
		phone := demoPhone
		if _, err := svc.UpdateProfile(ctx, res.User.ID, service.ProfilePatch{Phone: &phone}); err != nil {
			return "", fmt.Errorf("set demo phone: %w", err)
		}
		return res.User.ID, nil
	case !errors.Is(err, service.ErrDuplicateEmail):
		return "", fmt.Errorf("create user: %w", err)
	}

	// Existing account: make the advertised password work again.
	if _, err := svc.ResetPassword(ctx, email, password); err != nil {
		return "", fmt.Errorf("reset demo password: %w", err)
	}
	login, err := svc.Login(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("login demo user: %w", err)
	}
	return login.User.ID, nil
}

func clearUserData(ctx context.Context, clients *service.ClientService, meetings *service.MeetingService, userID string) error {
	existingMeetings, err := meetings.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, m := range existingMeetings {
		if err := meetings.Delete(ctx, userID, m.ID); err != nil {
			return fmt.Errorf("delete meeting %s: %w", m.ID, err)
		}
	}

	existingClients, err := clients.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, c := range existingClients {
		if err := clients.Delete(ctx, userID, c.ID); err != nil {
			return fmt.Errorf("delete client %s: %w", c.ID, err)
		}
	}
	return nil
}
