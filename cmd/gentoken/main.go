// Command gentoken provisions a member if needed and prints a bearer token for it.
// Development use only.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"

	"Coveloper/internal/auth"
	"Coveloper/internal/config"
	"Coveloper/internal/core/members"
	"Coveloper/internal/db/migrations"
	postgresRepo "Coveloper/internal/db/postgres"
)

func main() {
	envFile := flag.String("env", ".env", "optional .env file loaded over the environment")
	email := flag.String("email", "", "member email (required)")
	nickname := flag.String("nickname", "", "nickname used when the member does not exist yet")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: gentoken -email alice@example.com [-nickname alice] [-ttl 24h]")
		os.Exit(2)
	}

	conf, err := config.New(*envFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	token, err := run(context.Background(), conf, *email, *nickname, *ttl)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}

func run(ctx context.Context, conf *config.Config, email, nickname string, ttl time.Duration) (string, error) {
	db, err := sql.Open("postgres", conf.URL)
	if err != nil {
		return "", err
	}
	defer func() { _ = db.Close() }()

	if err := migrations.Up(db); err != nil {
		return "", err
	}

	service := members.NewMemberService(postgresRepo.NewMemberRepository(db), 1, time.Minute, nil)

	member, err := service.GetMemberByEmail(ctx, email)
	if errors.Is(err, members.ErrMemberNotFound) {
		if nickname == "" {
			return "", fmt.Errorf("member %s does not exist; pass -nickname to create it", email)
		}
		member, err = service.CreateMember(ctx, members.CreateMemberRequest{Email: email, Nickname: nickname})
	}
	if err != nil {
		return "", err
	}

	slog.Info("issuing token", "member_id", member.ID, "email", member.Email, "ttl", ttl)
	return auth.Issue([]byte(conf.JWTSecret), conf.JWTIssuer, member.ID, ttl)
}
