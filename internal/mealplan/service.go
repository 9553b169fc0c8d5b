package mealplan

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/hitoshi/nutriplan/internal/metrics"
	"github.com/hitoshi/nutriplan/internal/model"
	"github.com/hitoshi/nutriplan/internal/repository"
	"github.com/hitoshi/nutriplan/internal/security"
)

// defaultSystemPrompt はクライアントがシステムプロンプトを指定しなかった場合の既定値。
const defaultSystemPrompt = "You are a helpful assistant."

// 失敗理由ラベル（メトリクス用）。
const (
	failReasonMisconfigured = "misconfigured"
	failReasonValidation    = "validation"
	failReasonUpstream      = "upstream"
	failReasonTransport     = "transport"
)

// ChatCompleter はテキスト生成クライアントのインターフェース。
type ChatCompleter interface {
	ChatComplete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Service はミールプラン生成パイプラインを提供する。
// APIキー検証 → 上流呼び出し → サニタイズ → ベストエフォート履歴保存 の順で処理する。
type Service struct {
	client      ChatCompleter
	sanitizer   security.PlanSanitizerService
	historyRepo repository.HistoryRepository
	collector   metrics.MetricsCollector
	logger      *slog.Logger
	apiKey      string
}

// NewService はService の新しいインスタンスを生成する。
// apiKeyが空の場合でも生成は成功し、Generate呼び出し時に設定不備として検出する。
func NewService(
	client ChatCompleter,
	sanitizer security.PlanSanitizerService,
	historyRepo repository.HistoryRepository,
	collector metrics.MetricsCollector,
	logger *slog.Logger,
	apiKey string,
) *Service {
	return &Service{
		client:      client,
		sanitizer:   sanitizer,
		historyRepo: historyRepo,
		collector:   collector,
		logger:      logger,
		apiKey:      apiKey,
	}
}

// Generate はミールプランを生成し、サニタイズ済みテキストを返す。
// APIキー未設定の場合は上流への通信を一切行わずに設定不備エラーを返す。
// 履歴保存はベストエフォートで、保存失敗はレスポンスに影響しない。
func (s *Service) Generate(ctx context.Context, identity model.Identity, systemPrompt, userPrompt string, targetCalories *float64) (string, error) {
	if s.apiKey == "" {
		s.collector.RecordPlanFailure(failReasonMisconfigured)
		s.logger.Error("APIキーが未設定のためミールプランを生成できません",
			slog.Int64("account_id", identity.AccountID),
		)
		return "", model.NewMisconfiguredError("GROQ_API_KEY")
	}

	if userPrompt == "" {
		s.collector.RecordPlanFailure(failReasonValidation)
		return "", model.NewValidationError("プロンプトは必須です。")
	}

	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	start := time.Now()
	text, err := s.client.ChatComplete(ctx, systemPrompt, userPrompt)
	s.collector.RecordUpstreamLatency(time.Since(start))

	if err != nil {
		var upstreamErr *model.UpstreamError
		if errors.As(err, &upstreamErr) {
			s.collector.RecordUpstreamStatus(upstreamErr.StatusCode)
			s.collector.RecordPlanFailure(failReasonUpstream)
		} else {
			s.collector.RecordPlanFailure(failReasonTransport)
		}
		return "", err
	}
	s.collector.RecordUpstreamStatus(200)

	sanitized := s.sanitizer.Sanitize(text)

	// 履歴保存はベストエフォート: 失敗してもレスポンスは成功のまま
	entry := &model.HistoryEntry{
		AccountID:      identity.AccountID,
		Prompt:         userPrompt,
		Result:         sanitized,
		TargetCalories: roundCalories(targetCalories),
	}
	if _, err := s.historyRepo.Create(ctx, entry); err != nil {
		s.collector.RecordHistoryWriteFailure()
		s.logger.Warn("ミールプラン履歴の保存に失敗しました",
			slog.Int64("account_id", identity.AccountID),
			slog.String("error", err.Error()),
		)
	}

	s.collector.RecordPlanSuccess()
	return sanitized, nil
}

// roundCalories は目標カロリーを最近接整数へ丸める。
// 未指定（nil）の場合はnilのまま保持する。
func roundCalories(calories *float64) *int {
	if calories == nil {
		return nil
	}
	rounded := int(math.Round(*calories))
	return &rounded
}
