package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"messenger/auth"
	"messenger/domain"
	"messenger/internal"
	"messenger/projection"
	"messenger/repositories"
	"messenger/runtime/workers"
	"messenger/services"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

const usage = `usage: messenger <command> [flags]

commands:
  serve                          run the session sweeper and the debug server
  register -username -password   create an account
  login    -username -password   open a session and print its access token
  logout   -token                terminate a session
  status   -username -set        change the status of an account (Active, Suspended, Deleted)
  inbox    -username             list the chats of an account, most recent first
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// app holds everything built from the configuration.
type app struct {
	config internal.Config
	log    *slog.Logger
	db     *badger.DB
	users  *repositories.UserRepository
	auth   *services.AuthService
	user   *services.UserService
	chat   *services.ChatService
	notify *services.NotificationService
}

// run keeps every defer on the path to exit, unlike os.Exit or log.Fatal.
func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	// A missing .env is fine, the environment may be set by other means
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	a, err := newApp(config)
	if err != nil {
		return err
	}
	defer func() {
		a.log.Info("Closing BadgerDB...")
		_ = a.db.Close()
	}()

	command, flags := args[0], args[1:]
	switch command {
	case "serve":
		return a.serve()
	case "register":
		return a.register(flags)
	case "login":
		return a.login(flags)
	case "logout":
		return a.logout(flags)
	case "status":
		return a.status(flags)
	case "inbox":
		return a.inbox(flags)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func newApp(config internal.Config) (*app, error) {
	log := logs.GetLoggerFromString(config.LogLevel)

	db, err := repositories.OpenBadger(config.BadgerFilepath, false)
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}

	factory := domain.DefaultFactory()
	users := repositories.NewUserRepository(db, log)
	hasher := auth.NewPasswordHasher(
		uint32(config.ArgonMemoryKB), uint32(config.ArgonIterations), uint8(config.ArgonParallelism))
	tokens := auth.NewTokenIssuer(config.JWTSecret, config.JWTIssuer)
	media := repositories.NewMediaRepository(db, log)
	notify := services.NewNotificationService(log, factory, repositories.NewNotificationRepository(db, log))

	return &app{
		config: config,
		log:    log,
		db:     db,
		users:  users,
		auth: services.NewAuthService(log, factory, users,
			repositories.NewSessionRepository(db, log),
			repositories.NewAuthenticationRepository(db, log),
			hasher, tokens, config.SessionTTL),
		user:   services.NewUserService(log, factory.Clock, users),
		chat:   services.NewChatService(log, factory, repositories.NewChatRepository(db, log), users, media, notify),
		notify: notify,
	}, nil
}

func (a *app) serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := workers.NewSessionSweeper(a.log, domain.SystemClock{},
		repositories.NewSessionRepository(a.db, a.log), a.config.SweepInterval)
	monitor, err := workers.NewHealthMonitoringWorker(a.log, a.config.MetricInterval)
	if err != nil {
		return fmt.Errorf("process monitoring failed: %w", err)
	}
	router := internal.NewDebugRouter(a.db, a.log, auth.BearerMiddleware(a.auth))
	debug := workers.NewDebugServerWorker(a.log, a.config.MetricsAddr, router)

	a.log.Info("Messenger started", "metrics", a.config.MetricsAddr, "sweep_interval", a.config.SweepInterval)
	workers.NewSupervisor(a.log, a.config.RestartInterval).
		Add(sweeper, monitor, debug).
		Run(ctx)

	a.log.Info("Program stopped cleanly")
	return nil
}

func (a *app) register(args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.String("username", "", "account name")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.auth.Register(*username, *password)
	if err != nil {
		return err
	}
	fmt.Println(user.ID)
	return nil
}

func (a *app) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "account name")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.auth.Login(*username, *password)
	if err != nil {
		return err
	}
	fmt.Println(session.AccessToken)
	return nil
}

func (a *app) logout(args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	token := fs.String("token", "", "access token returned by login")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.auth.Logout(*token)
}

func (a *app) status(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	username := fs.String("username", "", "account name")
	set := fs.String("set", "", "new status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	status, err := domain.ParseUserStatus(*set)
	if err != nil {
		return err
	}
	user, err := a.users.GetUserByUsername(*username)
	if err != nil {
		return err
	}
	updated, err := a.user.SetStatus(user.ID, status)
	if err != nil {
		return err
	}
	fmt.Printf("%s is now %s\n", updated.Username, updated.Status)
	return nil
}

func (a *app) inbox(args []string) error {
	fs := flag.NewFlagSet("inbox", flag.ContinueOnError)
	username := fs.String("username", "", "account name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.users.GetUserByUsername(*username)
	if err != nil {
		return err
	}
	timeline, err := a.chat.Inbox(user.ID)
	if err != nil {
		return err
	}
	unread, err := a.notify.UnreadCount(user.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d chats, %d unread notifications\n", user.Username, len(timeline.Entries), unread)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Chat", "Kind", "Title", "Members", "Messages", "Active at", "Last message"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, entry := range timeline.Entries {
		last := "-"
		if entry.LastMessage != nil {
			last = projection.Preview(entry.LastMessage)
		}
		table.Append([]string{
			entry.ChatID.String()[:8],
			string(entry.Kind),
			entry.Title,
			strconv.Itoa(entry.Participants),
			strconv.Itoa(entry.MessageCount),
			entry.ActiveAt.Format(time.DateTime),
			last,
		})
	}
	table.Render()
	return nil
}
