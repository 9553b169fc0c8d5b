// Package history はミールプラン生成履歴の参照機能を提供する。
package history

import (
	"context"
	"log/slog"

	"github.com/hitoshi/nutriplan/internal/model"
	"github.com/hitoshi/nutriplan/internal/repository"
)

// maxEntries は1回の参照で返す履歴の最大件数。
const maxEntries = 50

// Service は認証済みアカウントの履歴参照を提供する。
type Service struct {
	repo   repository.HistoryRepository
	logger *slog.Logger
}

// NewService はService の新しいインスタンスを生成する。
func NewService(repo repository.HistoryRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListRecent は呼び出し元アカウントの履歴を新しい順に最大50件返す。
// 履歴が存在しない場合は空スライスを返す（エラーにしない）。
func (s *Service) ListRecent(ctx context.Context, identity model.Identity) ([]*model.HistoryEntry, error) {
	entries, err := s.repo.ListRecentByAccountID(ctx, identity.AccountID, maxEntries)
	if err != nil {
		s.logger.Error("履歴の取得に失敗しました",
			slog.Int64("account_id", identity.AccountID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewStorageError()
	}
	if entries == nil {
		entries = []*model.HistoryEntry{}
	}
	return entries, nil
}
