// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/nutriplan/internal/middleware"
	"github.com/hitoshi/nutriplan/internal/model"
)

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// statusForAPIError はエラーコードをHTTPステータスコードへ対応付ける。
func statusForAPIError(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeValidation:
		return http.StatusBadRequest
	case model.ErrCodeDuplicateEmail:
		return http.StatusConflict
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		// MISCONFIGURED / STORAGE_ERROR / 未知のコード
		return http.StatusInternalServerError
	}
}

// writeError はサービス層のエラーをHTTPレスポンスへ変換する。
// UpstreamErrorは上流のステータスとボディをそのまま透過する。
func writeError(w http.ResponseWriter, err error) {
	var upstreamErr *model.UpstreamError
	if errors.As(err, &upstreamErr) {
		writeJSON(w, upstreamErr.StatusCode, map[string]string{
			"code":  model.ErrCodeUpstream,
			"error": upstreamErr.Body,
		})
		return
	}

	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, statusForAPIError(apiErr), apiErr)
		return
	}

	slog.Error("unexpected error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}
