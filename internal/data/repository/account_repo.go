package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopstack/internal/data/entity"
	"shopstack/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// AccountRepository owns account identity, credentials, flags and the
// lockout counters. Counter transitions are exposed only as atomic
// operations, callers never write raw counter values.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindByID(ctx context.Context, id int64) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Account, error)
	CountAll(ctx context.Context) (int64, error)

	// Lockout state machine
	RecordFailedLogin(ctx context.Context, id int64, threshold int, lockDuration time.Duration) error
	RecordSuccessfulLogin(ctx context.Context, id int64) error
	Unlock(ctx context.Context, id int64) error

	SetVerified(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetPasswordHash(ctx context.Context, id int64, hash string) error

	// Role membership
	FindRoles(ctx context.Context, accountID int64) ([]*entity.Role, error)
	AssignRole(ctx context.Context, accountID, roleID int64) error
	RemoveRole(ctx context.Context, accountID, roleID int64) error
}

type accountRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAccountRepository(db database.PgxIface, log *zap.Logger) AccountRepository {
	return &accountRepository{
		db:  db,
		log: log.With(zap.String("repository", "account")),
	}
}

const accountColumns = `id, email, password, given_name, family_name, phone, birth_date,
	       active, email_verified, failed_login_count, locked_until,
	       last_access_at, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var account entity.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.GivenName,
		&account.FamilyName,
		&account.Phone,
		&account.BirthDate,
		&account.Active,
		&account.EmailVerified,
		&account.FailedLoginCount,
		&account.LockedUntil,
		&account.LastAccessAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Create inserts a new account and fills in the generated id. A unique
// violation on the normalized email maps to ErrDuplicateEmail.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	query := `
		INSERT INTO accounts (email, password, given_name, family_name, phone, birth_date,
		                      active, email_verified, failed_login_count,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		account.Email,
		account.PasswordHash,
		account.GivenName,
		account.FamilyName,
		account.Phone,
		account.BirthDate,
		account.Active,
		account.EmailVerified,
		account.FailedLoginCount,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		r.log.Error("Failed to create account",
			zap.Error(err),
			zap.String("email", account.Email),
		)
		return fmt.Errorf("create account %s: %w", account.Email, err)
	}

	return nil
}

func (r *accountRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find account by ID",
			zap.Error(err),
			zap.Int64("account_id", id),
		)
		return nil, fmt.Errorf("find account by ID %d: %w", id, err)
	}

	return account, nil
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE email = $1
	`

	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find account by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find account by email %s: %w", email, err)
	}

	return account, nil
}

func (r *accountRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all accounts",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all accounts limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var accounts []*entity.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			r.log.Error("Failed to scan account row", zap.Error(err))
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

func (r *accountRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM accounts`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count accounts", zap.Error(err))
		return 0, fmt.Errorf("count all accounts: %w", err)
	}

	return count, nil
}

// RecordFailedLogin increments the counter and arms the lock window in one
// statement, so two concurrent failures cannot both observe the same count
// and under-count towards the threshold.
func (r *accountRepository) RecordFailedLogin(ctx context.Context, id int64, threshold int, lockDuration time.Duration) error {
	query := `
		UPDATE accounts
		SET failed_login_count = failed_login_count + 1,
		    locked_until = CASE
		        WHEN failed_login_count + 1 >= $2 THEN NOW() + make_interval(secs => $3)
		        ELSE locked_until
		    END,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, threshold, lockDuration.Seconds())
	if err != nil {
		r.log.Error("Failed to record failed login",
			zap.Error(err),
			zap.Int64("account_id", id),
		)
		return fmt.Errorf("record failed login for account %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *accountRepository) RecordSuccessfulLogin(ctx context.Context, id int64) error {
	query := `
		UPDATE accounts
		SET failed_login_count = 0,
		    locked_until = NULL,
		    last_access_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to record successful login",
			zap.Error(err),
			zap.Int64("account_id", id),
		)
		return fmt.Errorf("record successful login for account %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Unlock resets the lockout fields unconditionally, regardless of the
// current counter value. Administrator path.
func (r *accountRepository) Unlock(ctx context.Context, id int64) error {
	query := `
		UPDATE accounts
		SET failed_login_count = 0,
		    locked_until = NULL,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to unlock account",
			zap.Error(err),
			zap.Int64("account_id", id),
		)
		return fmt.Errorf("unlock account %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *accountRepository) SetVerified(ctx context.Context, id int64) error {
	query := `UPDATE accounts SET email_verified = true, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to set account verified",
			zap.Error(err),
			zap.Int64("account_id", id),
		)
		return fmt.Errorf("set account %d verified: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *accountRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE accounts SET active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to set account active flag",
			zap.Error(err),
			zap.Int64("account_id", id),
			zap.Bool("active", active),
		)
		return fmt.Errorf("set account %d active=%t: %w", id, active, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *accountRepository) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	query := `UPDATE accounts SET password = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, hash)
	if err != nil {
		r.log.Error("Failed to set password hash",
			zap.Error(err),
			zap.Int64("account_id", id),
		)
		return fmt.Errorf("set password hash for account %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *accountRepository) FindRoles(ctx context.Context, accountID int64) ([]*entity.Role, error) {
	query := `
		SELECT r.id, r.name, r.description, r.active, r.created_at, r.updated_at
		FROM roles r
		JOIN account_roles ar ON ar.role_id = r.id
		WHERE ar.account_id = $1
		ORDER BY r.name
	`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		r.log.Error("Failed to find account roles",
			zap.Error(err),
			zap.Int64("account_id", accountID),
		)
		return nil, fmt.Errorf("find roles for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var roles []*entity.Role
	for rows.Next() {
		var role entity.Role
		err := rows.Scan(
			&role.ID,
			&role.Name,
			&role.Description,
			&role.Active,
			&role.CreatedAt,
			&role.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan role row", zap.Error(err))
			return nil, fmt.Errorf("scan role row: %w", err)
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate role rows: %w", err)
	}

	return roles, nil
}

func (r *accountRepository) AssignRole(ctx context.Context, accountID, roleID int64) error {
	query := `
		INSERT INTO account_roles (account_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, accountID, roleID)
	if err != nil {
		r.log.Error("Failed to assign role",
			zap.Error(err),
			zap.Int64("account_id", accountID),
			zap.Int64("role_id", roleID),
		)
		return fmt.Errorf("assign role %d to account %d: %w", roleID, accountID, err)
	}

	return nil
}

// RemoveRole deletes the membership only while the account keeps another
// role. The count guard lives inside the statement so concurrent removals
// cannot strip the last role.
func (r *accountRepository) RemoveRole(ctx context.Context, accountID, roleID int64) error {
	query := `
		DELETE FROM account_roles
		WHERE account_id = $1 AND role_id = $2
		  AND (SELECT COUNT(*) FROM account_roles WHERE account_id = $1) > 1
	`

	result, err := r.db.Exec(ctx, query, accountID, roleID)
	if err != nil {
		r.log.Error("Failed to remove role",
			zap.Error(err),
			zap.Int64("account_id", accountID),
			zap.Int64("role_id", roleID),
		)
		return fmt.Errorf("remove role %d from account %d: %w", roleID, accountID, err)
	}

	if result.RowsAffected() == 0 {
		// Either the membership does not exist or it is the account's
		// only role. Disambiguate with a follow-up read.
		var assigned bool
		checkQuery := `
			SELECT EXISTS (
				SELECT 1 FROM account_roles WHERE account_id = $1 AND role_id = $2
			)
		`
		if err := r.db.QueryRow(ctx, checkQuery, accountID, roleID).Scan(&assigned); err != nil {
			return fmt.Errorf("check role assignment for account %d: %w", accountID, err)
		}
		if assigned {
			return ErrLastRole
		}
		return ErrRoleNotAssigned
	}

	return nil
}
