package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/nutriplan/internal/model"
)

// PostgresHistoryRepo はPostgreSQLを使用したミールプラン履歴リポジトリ。
type PostgresHistoryRepo struct {
	db *sql.DB
}

// NewPostgresHistoryRepo はPostgresHistoryRepoを生成する。
func NewPostgresHistoryRepo(db *sql.DB) *PostgresHistoryRepo {
	return &PostgresHistoryRepo{db: db}
}

// Create は履歴エントリを作成し、採番されたIDと作成日時を設定して返す。
func (r *PostgresHistoryRepo) Create(ctx context.Context, entry *model.HistoryEntry) (*model.HistoryEntry, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO plan_history (account_id, prompt, result, target_calories)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		entry.AccountID, entry.Prompt, entry.Result, entry.TargetCalories,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to insert history entry: %w", err)
	}

	return entry, nil
}

// ListRecentByAccountID は指定アカウントの履歴を作成日時の降順で最大limit件返す。
func (r *PostgresHistoryRepo) ListRecentByAccountID(ctx context.Context, accountID int64, limit int) ([]*model.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, prompt, result, target_calories, created_at
		 FROM plan_history
		 WHERE account_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		accountID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.HistoryEntry
	for rows.Next() {
		entry := &model.HistoryEntry{}
		var target sql.NullInt64
		if err := rows.Scan(&entry.ID, &entry.AccountID, &entry.Prompt, &entry.Result, &target, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		if target.Valid {
			v := int(target.Int64)
			entry.TargetCalories = &v
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history entries: %w", err)
	}

	return entries, nil
}

// compile-time interface check
var _ HistoryRepository = (*PostgresHistoryRepo)(nil)
