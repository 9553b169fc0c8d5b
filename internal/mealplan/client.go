// Package mealplan は生成AIによるミールプラン生成機能を提供する。
// Chat Completions API互換エンドポイントの呼び出しと生成パイプラインを含む。
package mealplan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/hitoshi/nutriplan/internal/model"
)

// generationTemperature は生成時の温度パラメータ。
// 食事プランに適度なバリエーションを持たせる固定値。
const generationTemperature = 0.7

// chatMessage はChat Completions APIのメッセージを表す。
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest はChat Completions APIへのリクエストボディ。
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse はChat Completions APIのレスポンスボディ。
// 必要なフィールドのみデコードする。
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client はChat Completions API互換エンドポイントのクライアント。
// APIキーはサーバー側でのみ保持し、クライアントへ露出しない。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	endpoint   string
	apiKey     string
	model      string
}

// NewClient はClient の新しいインスタンスを生成する。
func NewClient(httpClient *http.Client, logger *slog.Logger, endpoint, apiKey, modelName string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      modelName,
	}
}

// ChatComplete はシステムプロンプトとユーザープロンプトからテキストを生成する。
// 上流が非2xxを返した場合はステータスとボディを保持したUpstreamErrorを返す
// （リトライせず、上流の失敗をそのまま呼び出し元へ透過する）。
func (c *Client) ChatComplete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: generationTemperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("リクエストボディのエンコードに失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Chat Completions APIの呼び出しに失敗しました",
			slog.String("error", err.Error()),
			slog.String("model", c.model),
		)
		return "", fmt.Errorf("Chat Completions APIの呼び出しに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("レスポンスボディの読み取りに失敗しました",
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Chat Completions APIがエラーステータスを返しました",
			slog.Int("http_status", resp.StatusCode),
			slog.String("model", c.model),
		)
		return "", &model.UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Error("Chat Completions APIのレスポンスのパースに失敗しました",
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	// choicesが空、またはcontentが存在しない場合は空文字列を返す
	// （上流の応答形状をそのまま信用しない）。
	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}
