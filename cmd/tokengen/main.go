// Command tokengen issues bearer tokens for local development. Identity is
// owned by an external provider in production; this signs with JWT_SECRET so
// the service accepts the token.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"parking-core/internal/domain/user"
	"parking-core/internal/pkg/clock"
	"parking-core/internal/pkg/config"
	"parking-core/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	var (
		userID   = flag.String("user", "", "user id (random when empty)")
		role     = flag.String("role", string(user.RoleOperator), "viewer | operator | admin")
		duration = flag.String("duration", "", "token lifetime, defaults to JWT_DURATION")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	token, err := issue(*userID, *role, *duration)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func issue(rawUserID, rawRole, rawDuration string) (string, error) {
	var cfg config.JWTConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return "", err
	}

	id := uuid.New()
	if rawUserID != "" {
		parsed, err := uuid.Parse(rawUserID)
		if err != nil {
			return "", fmt.Errorf("invalid user id: %w", err)
		}
		id = parsed
	}

	r, err := user.NewRole(rawRole)
	if err != nil {
		return "", err
	}

	if rawDuration == "" {
		rawDuration = cfg.Duration
	}
	d, err := time.ParseDuration(rawDuration)
	if err != nil {
		return "", fmt.Errorf("invalid duration: %w", err)
	}

	slog.Info("issuing token", "user_id", id, "role", r, "expires_in", d)
	return jwt.NewService(cfg.Secret, d, clock.NewRealClock()).GenerateToken(id, r)
}
