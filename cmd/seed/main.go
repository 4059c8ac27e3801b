package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"messenger/auth"
	"messenger/domain"
	msgerrors "messenger/errors"
	"messenger/repositories"
	"messenger/services"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
)

// Config of the seed tool. It shares BADGER_FILEPATH and JWT_* with the daemon.
type Config struct {
	BadgerFilepath  string `envconfig:"BADGER_FILEPATH" required:"true"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"INFO"`
	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer       string `envconfig:"JWT_ISSUER" default:"messenger"`
	Users           int    `envconfig:"SEED_USERS" default:"12"`
	Groups          int    `envconfig:"SEED_GROUPS" default:"3"`
	PrivateChats    int    `envconfig:"SEED_PRIVATE_CHATS" default:"5"`
	MessagesPerChat int    `envconfig:"SEED_MESSAGES_PER_CHAT" default:"20"`
	Password        string `envconfig:"SEED_PASSWORD" default:"SeedPassword#2026"`
	RandomSeed      uint64 `envconfig:"SEED_RANDOM" default:"0"`
}

type seeder struct {
	log           *slog.Logger
	faker         *gofakeit.Faker
	config        Config
	auth          *services.AuthService
	chats         *services.ChatService
	media         *services.MediaService
	notifications *services.NotificationService

	users  []*domain.User
	images []domain.MediaFile
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	db, err := repositories.OpenBadger(config.BadgerFilepath, false)
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() { _ = db.Close() }()

	factory := domain.DefaultFactory()
	userRepo := repositories.NewUserRepository(db, log)
	mediaRepo := repositories.NewMediaRepository(db, log)
	notifications := services.NewNotificationService(log, factory, repositories.NewNotificationRepository(db, log))

	s := &seeder{
		log:    log,
		faker:  gofakeit.New(config.RandomSeed),
		config: config,
		auth: services.NewAuthService(log, factory, userRepo,
			repositories.NewSessionRepository(db, log),
			repositories.NewAuthenticationRepository(db, log),
			auth.DefaultPasswordHasher(),
			auth.NewTokenIssuer(config.JWTSecret, config.JWTIssuer),
			domain.DefaultSessionTTL),
		chats: services.NewChatService(log, factory,
			repositories.NewChatRepository(db, log), userRepo, mediaRepo, notifications),
		media:         services.NewMediaService(log, factory, mediaRepo),
		notifications: notifications,
	}

	if err = s.seedUsers(); err != nil {
		return err
	}
	if err = s.seedMedia(); err != nil {
		return err
	}
	chats, err := s.seedChats()
	if err != nil {
		return err
	}
	for _, chat := range chats {
		if err = s.seedConversation(chat); err != nil {
			return err
		}
	}

	unread, err := s.notifications.UnreadCount(s.users[0].ID)
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %d users, %d chats, %d images. %s has %d unread notifications.\n",
		len(s.users), len(chats), len(s.images), s.users[0].Username, unread)
	fmt.Printf("Every account uses the password %q\n", s.config.Password)
	return nil
}

// seedUsers registers accounts and logs each one in once, plus a failed attempt for the audit trail.
func (s *seeder) seedUsers() error {
	for len(s.users) < s.config.Users {
		user, err := s.auth.Register(s.username(), s.config.Password)
		if errors.Is(err, msgerrors.ErrUserAlreadyExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("register failed: %w", err)
		}
		if _, err = s.auth.Login(user.Username, s.config.Password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		s.users = append(s.users, user)
	}
	if len(s.users) < 2 {
		return fmt.Errorf("at least 2 users are needed, got %d", len(s.users))
	}
	_, _ = s.auth.Login(s.users[0].Username, "not-the-password")
	return nil
}

// username builds a handle accepted by registration: a letter first, 3 to 32 chars.
func (s *seeder) username() string {
	name := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, s.faker.FirstName())
	if name == "" || !unicode.IsLetter(rune(name[0])) {
		name = "user" + name
	}
	return lo.Substring(name, 0, 24) + strconv.Itoa(s.faker.IntRange(100, 99999))
}

func (s *seeder) seedMedia() error {
	for i := range 3 {
		content, err := renderPNG(64+i*32, 48+i*16)
		if err != nil {
			return err
		}
		url := fmt.Sprintf("https://cdn.messenger.local/img/%s.png", uuid.NewString())
		file, err := s.media.Upload(content, url, strings.TrimSuffix(url, ".png")+"_thumb.png")
		if err != nil {
			return fmt.Errorf("image upload failed: %w", err)
		}
		s.images = append(s.images, file)
	}

	content, err := renderPDF(s.faker.Company(), s.faker.Phrase())
	if err != nil {
		return err
	}
	file, err := s.media.Upload(content, "https://cdn.messenger.local/doc/report.pdf", "")
	if err != nil {
		return fmt.Errorf("document upload failed: %w", err)
	}
	_, err = s.media.Attach(file.ID)
	return err
}

func (s *seeder) seedChats() ([]domain.Chat, error) {
	var chats []domain.Chat
	for range s.config.Groups {
		members := lo.Samples(s.users, s.faker.IntRange(2, len(s.users)))
		ids := lo.Map(members, func(u *domain.User, _ int) uuid.UUID { return u.ID })
		group, err := s.chats.CreateGroupChat(s.faker.Company(), s.faker.Phrase(), s.faker.URL(), ids[:len(ids)-1]...)
		if err != nil {
			return nil, err
		}
		// The last member joins later and gets an invite
		if err = s.chats.AddMember(group.ID, ids[len(ids)-1]); err != nil {
			return nil, err
		}
		chats = append(chats, group)
	}

	for range s.config.PrivateChats {
		pair := lo.Samples(s.users, 2)
		chat, err := s.chats.CreatePrivateChat(pair[0].ID, pair[1].ID)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, nil
}

// seedConversation sends messages from random participants, with some images, edits and deletions.
func (s *seeder) seedConversation(chat domain.Chat) error {
	chat, err := s.chats.GetChat(chat.Header().ID)
	if err != nil {
		return err
	}
	participants := chat.Participants()
	chatID := chat.Header().ID

	for i := range s.config.MessagesPerChat {
		sender := participants[s.faker.IntRange(0, len(participants)-1)]

		var message domain.Message
		if i%7 == 6 {
			image := s.images[s.faker.IntRange(0, len(s.images)-1)]
			message, err = s.chats.SendImageMessage(chatID, sender, image.ID, s.faker.Phrase())
		} else {
			message, err = s.chats.SendTextMessage(chatID, sender, s.faker.Phrase())
		}
		if err != nil {
			return err
		}

		switch {
		case i%5 == 4:
			text := s.faker.Phrase()
			_, err = s.chats.EditMessage(chatID, message.Header().ID, &text)
		case i%11 == 10:
			err = s.chats.DeleteMessage(chatID, message.Header().ID)
		}
		if err != nil {
			return err
		}
	}
	s.log.Debug("Conversation seeded", "chat_id", chatID, "messages", s.config.MessagesPerChat)
	return nil
}

// renderPNG draws a gradient of the given size.
func renderPNG(width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 255), G: 100, B: uint8(y % 255), A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPDF(title, body string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(40, 20, title)
	pdf.Ln(20)
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 10, body, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	return buf.Bytes(), nil
}
