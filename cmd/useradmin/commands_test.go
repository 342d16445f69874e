package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mealscan_backend/internal/app/di"
	authadapters "mealscan_backend/internal/feature/auth/adapters"
	"mealscan_backend/internal/feature/auth/domain/entity"
	authusecase "mealscan_backend/internal/feature/auth/usecase"
	"mealscan_backend/internal/platform/config"
	platformdb "mealscan_backend/internal/platform/db"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cmd     string
		args    []string
		wantErr bool
	}{
		{name: "reset password", cmd: "reset-password", args: []string{"-email", "a@b.c", "-password", "secret1"}},
		{name: "reset without password", cmd: "reset-password", args: []string{"-email", "a@b.c"}, wantErr: true},
		{name: "change role", cmd: "change-role", args: []string{"-email", "a@b.c", "-role", "STUDENT"}},
		{name: "change role without role", cmd: "change-role", args: []string{"-email", "a@b.c"}, wantErr: true},
		{name: "delete", cmd: "delete-user", args: []string{"-email", "a@b.c"}},
		{name: "missing email", cmd: "delete-user", wantErr: true},
		{name: "list needs no email", cmd: "list-users"},
		{name: "unknown command", cmd: "drop-db", args: []string{"-email", "a@b.c"}, wantErr: true},
		{name: "flag of another command", cmd: "delete-user", args: []string{"-email", "a@b.c", "-role", "STUDENT"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parseCommand(tt.cmd, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.cmd != "list-users" {
				assert.Equal(t, "a@b.c", cmd.email)
			}
		})
	}
}

func TestCommand_Exec(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := &config.Config{
		DB:      config.DBConfig{Driver: "sqlite", Path: ":memory:", LogLevel: "silent", AutoMigrate: true},
		Session: config.SessionConfig{IdleTimeout: time.Hour, CookieName: "MEALSCAN_SESSION"},
		Auth:    config.AuthConfig{BcryptCost: bcrypt.MinCost},
	}
	infra, err := di.OpenInfra(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = infra.Close() })

	app, err := di.NewApp(cfg, infra.DB, nil, zap.NewNop())
	require.NoError(t, err)
	_, err = platformdb.Seed(ctx, infra.DB, app.Credentials, zap.NewNop())
	require.NoError(t, err)
	users := authadapters.NewUserGorm(infra.DB)

	t.Run("list-users", func(t *testing.T) {
		var out bytes.Buffer
		cmd := &command{name: "list-users"}
		require.NoError(t, cmd.exec(ctx, app, users, &out))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 4)
		assert.Contains(t, lines[0], "EMAIL")
		assert.Contains(t, out.String(), "student@mealscan.com")
		assert.Contains(t, out.String(), "Mess Contractor")
	})

	t.Run("reset-password", func(t *testing.T) {
		cmd := &command{name: "reset-password", email: "student@mealscan.com", password: "newsecret"}
		require.NoError(t, cmd.exec(ctx, app, users, io.Discard))

		_, _, err := app.Auth.Login(ctx, "student@mealscan.com", "newsecret")
		assert.NoError(t, err)
		_, _, err = app.Auth.Login(ctx, "student@mealscan.com", platformdb.DefaultPassword)
		assert.ErrorIs(t, err, authusecase.ErrInvalidCredentials)
	})

	t.Run("change-role", func(t *testing.T) {
		cmd := &command{name: "change-role", email: "canteen@mealscan.com", role: "mess_contractor"}
		require.NoError(t, cmd.exec(ctx, app, users, io.Discard))

		u, err := users.FindByEmail(ctx, "canteen@mealscan.com")
		require.NoError(t, err)
		assert.Equal(t, entity.RoleMessContractor, u.Role)
	})

	t.Run("delete-user", func(t *testing.T) {
		cmd := &command{name: "delete-user", email: "mess@mealscan.com"}
		require.NoError(t, cmd.exec(ctx, app, users, io.Discard))

		_, err := users.FindByEmail(ctx, "mess@mealscan.com")
		assert.ErrorIs(t, err, authusecase.ErrUserNotFound)
	})

	t.Run("unknown email", func(t *testing.T) {
		cmd := &command{name: "delete-user", email: "ghost@mealscan.com"}
		assert.ErrorIs(t, cmd.exec(ctx, app, users, io.Discard), authusecase.ErrUserNotFound)
	})
}
