package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/mail"
	"os"
	"strings"

	sqliteadapter "github.com/ssokit/svcregistry/internal/adapter/driven/sqlite"
	"github.com/ssokit/svcregistry/internal/domain/model"
)

// useradmin seeds and updates sso_users entries. User accounts are
// provisioned out of band by the SSO platform; this tool covers local
// development and bootstrap of the first admin.
func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		dbPath = flag.String("db", "svcregistry.db", "path to the SQLite database")
		email  = flag.String("email", "", "user email to register")
		role   = flag.String("role", string(model.RoleClient), "user role: CL-USER or ADMIN-USER")
	)
	flag.Parse()

	normalized := strings.ToLower(strings.TrimSpace(*email))
	if normalized == "" {
		return fmt.Errorf("-email is required")
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return fmt.Errorf("invalid email %q: %w", *email, err)
	}

	userRole := model.UserRole(*role)
	if userRole != model.RoleClient && userRole != model.RoleAdmin {
		return fmt.Errorf("invalid role %q: must be %s or %s", *role, model.RoleClient, model.RoleAdmin)
	}

	ctx := context.Background()

	db, err := sqliteadapter.NewDB(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	users := sqliteadapter.NewUserRepo(db)
	if err := users.Upsert(ctx, model.User{Email: normalized, Role: userRole}); err != nil {
		return err
	}

	fmt.Printf("user %s registered with role %s\n", normalized, userRole)
	return nil
}
