package repository

import (
	"context"
	"fmt"

	"shopstack/internal/data/entity"
	"shopstack/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// RecoveryTokenRepository is the ledger of single-use, typed, expiring
// tokens. Rows are never deleted; validity is decided at read time.
type RecoveryTokenRepository interface {
	Create(ctx context.Context, token *entity.RecoveryToken) error
	FindByToken(ctx context.Context, tokenString string) (*entity.RecoveryToken, error)

	// Redeem marks the token used and returns the owning account id.
	// It is a one-shot compare-and-set: a second redemption, an expired
	// token or a type mismatch all return ErrNotFound.
	Redeem(ctx context.Context, tokenString string, tokenType entity.TokenType) (int64, error)

	// InvalidateActive marks every currently-valid token of the given
	// type for the account as used, so at most one token per type is
	// ever redeemable.
	InvalidateActive(ctx context.Context, accountID int64, tokenType entity.TokenType) error
}

type recoveryTokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRecoveryTokenRepository(db database.PgxIface, log *zap.Logger) RecoveryTokenRepository {
	return &recoveryTokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "recovery_token")),
	}
}

func (r *recoveryTokenRepository) Create(ctx context.Context, token *entity.RecoveryToken) error {
	query := `
		INSERT INTO recovery_tokens (account_id, token, token_type,
		                             expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		token.AccountID,
		token.Token,
		token.TokenType,
		token.ExpiresAt,
		token.Used,
		token.CreatedAt,
	).Scan(&token.ID)

	if err != nil {
		r.log.Error("Failed to create recovery token",
			zap.Error(err),
			zap.Int64("account_id", token.AccountID),
			zap.String("token_type", string(token.TokenType)),
		)
		return fmt.Errorf("create recovery token for account %d: %w", token.AccountID, err)
	}

	return nil
}

func (r *recoveryTokenRepository) FindByToken(ctx context.Context, tokenString string) (*entity.RecoveryToken, error) {
	query := `
		SELECT id, account_id, token, token_type, expires_at, is_used, created_at
		FROM recovery_tokens
		WHERE token = $1
	`

	var token entity.RecoveryToken
	err := r.db.QueryRow(ctx, query, tokenString).Scan(
		&token.ID,
		&token.AccountID,
		&token.Token,
		&token.TokenType,
		&token.ExpiresAt,
		&token.Used,
		&token.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find recovery token", zap.Error(err))
		return nil, fmt.Errorf("find recovery token: %w", err)
	}

	return &token, nil
}

func (r *recoveryTokenRepository) Redeem(ctx context.Context, tokenString string, tokenType entity.TokenType) (int64, error) {
	// The guard on is_used and expires_at makes this a compare-and-set:
	// two concurrent redemptions of the same token cannot both match.
	query := `
		UPDATE recovery_tokens
		SET is_used = true
		WHERE token = $1
		  AND token_type = $2
		  AND is_used = false
		  AND expires_at > NOW()
		RETURNING account_id
	`

	var accountID int64
	err := r.db.QueryRow(ctx, query, tokenString, tokenType).Scan(&accountID)

	if err == pgx.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to redeem recovery token",
			zap.Error(err),
			zap.String("token_type", string(tokenType)),
		)
		return 0, fmt.Errorf("redeem recovery token type %s: %w", tokenType, err)
	}

	return accountID, nil
}

func (r *recoveryTokenRepository) InvalidateActive(ctx context.Context, accountID int64, tokenType entity.TokenType) error {
	query := `
		UPDATE recovery_tokens
		SET is_used = true
		WHERE account_id = $1
		  AND token_type = $2
		  AND is_used = false
		  AND expires_at > NOW()
	`

	_, err := r.db.Exec(ctx, query, accountID, tokenType)
	if err != nil {
		r.log.Error("Failed to invalidate active tokens",
			zap.Error(err),
			zap.Int64("account_id", accountID),
			zap.String("token_type", string(tokenType)),
		)
		return fmt.Errorf("invalidate active %s tokens for account %d: %w", tokenType, accountID, err)
	}

	return nil
}
