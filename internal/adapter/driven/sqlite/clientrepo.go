package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ssokit/svcregistry/internal/domain/model"
	"github.com/ssokit/svcregistry/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ClientStore = (*ClientRepo)(nil)

// ClientRepo is the SQLite implementation of the ClientStore port interface.
type ClientRepo struct {
	db *DB
}

// NewClientRepo creates a new ClientRepo backed by the given DB.
func NewClientRepo(db *DB) *ClientRepo {
	return &ClientRepo{db: db}
}

const clientColumns = `id, client_email, app_key, app_secret, service_name, service_domain, service_uri, is_approved, created_at`

// Insert stores a newly issued client record. The services table carries a
// UNIQUE constraint on app_key, so a concurrent issuance of the same key
// surfaces as ErrDuplicateAppKey rather than a silent overwrite.
func (r *ClientRepo) Insert(ctx context.Context, client model.Client) error {
	const query = `INSERT INTO services (client_email, app_key, app_secret, service_name, service_domain, service_uri, is_approved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query,
		client.ClientEmail,
		client.AppKey,
		client.AppSecret,
		client.ServiceName,
		client.ServiceDomain,
		client.ServiceURI,
		client.Approved,
		client.CreatedAt.Format(model.CreatedAtLayout),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("insert client for %s: %w", client.ClientEmail, driven.ErrDuplicateAppKey)
		}
		return fmt.Errorf("insert client for %s: %w", client.ClientEmail, err)
	}

	return nil
}

// ExistsAppKey reports whether any client record already holds the given app key.
func (r *ClientRepo) ExistsAppKey(ctx context.Context, appKey string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM services WHERE app_key = ?)`

	var exists bool
	if err := r.db.Reader.QueryRowContext(ctx, query, appKey).Scan(&exists); err != nil {
		return false, fmt.Errorf("check app key exists: %w", err)
	}

	return exists, nil
}

// FindByAppKey retrieves a client record by its app key. Returns nil, nil if
// no record holds the key.
func (r *ClientRepo) FindByAppKey(ctx context.Context, appKey string) (*model.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM services WHERE app_key = ?`

	client, err := scanClient(r.db.Reader.QueryRowContext(ctx, query, appKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find client by app key: %w", err)
	}

	return client, nil
}

// ListByEmail returns all client records registered to the given email,
// oldest first.
func (r *ClientRepo) ListByEmail(ctx context.Context, email string) ([]model.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM services WHERE client_email = ? ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("list clients for %s: %w", email, err)
	}
	defer rows.Close()

	return collectClients(rows)
}

// ListAll returns every client record, oldest first.
func (r *ClientRepo) ListAll(ctx context.Context) ([]model.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM services ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

// UpdateService replaces the service metadata on the record matching the
// email and app key, and resets the approval flag so the change goes back
// through review. Returns ErrClientNotFound when no row matches.
func (r *ClientRepo) UpdateService(ctx context.Context, email, appKey, name, domain, uri string) error {
	const query = `UPDATE services SET service_name = ?, service_domain = ?, service_uri = ?, is_approved = 0
		WHERE client_email = ? AND app_key = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, name, domain, uri, email, appKey)
	if err != nil {
		return fmt.Errorf("update service for %s: %w", email, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update service for %s: %w", email, driven.ErrClientNotFound)
	}

	return nil
}

// Approve marks the record matching the email and app key as approved.
// Returns ErrClientNotFound when no row matches and ErrAlreadyApproved when
// the record is already approved.
func (r *ClientRepo) Approve(ctx context.Context, email, appKey string) error {
	const selectQuery = `SELECT is_approved FROM services WHERE client_email = ? AND app_key = ?`

	var approved bool
	err := r.db.Reader.QueryRowContext(ctx, selectQuery, email, appKey).Scan(&approved)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("approve service for %s: %w", email, driven.ErrClientNotFound)
	}
	if err != nil {
		return fmt.Errorf("approve service for %s: %w", email, err)
	}

	if approved {
		return fmt.Errorf("approve service for %s: %w", email, driven.ErrAlreadyApproved)
	}

	const updateQuery = `UPDATE services SET is_approved = 1 WHERE client_email = ? AND app_key = ?`

	if _, err := r.db.Writer.ExecContext(ctx, updateQuery, email, appKey); err != nil {
		return fmt.Errorf("approve service for %s: %w", email, err)
	}

	return nil
}

func collectClients(rows *sql.Rows) ([]model.Client, error) {
	var clients []model.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, *client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}

	return clients, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanClient(s scanner) (*model.Client, error) {
	var client model.Client
	var createdAt string

	err := s.Scan(
		&client.ID,
		&client.ClientEmail,
		&client.AppKey,
		&client.AppSecret,
		&client.ServiceName,
		&client.ServiceDomain,
		&client.ServiceURI,
		&client.Approved,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	client.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &client, nil
}

// parseTime tries the issuance layout first, then the SQLite datetime
// formats produced by CURRENT_TIMESTAMP defaults.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		model.CreatedAtLayout,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
