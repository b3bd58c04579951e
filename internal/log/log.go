package log

import (
	"io"
	"log/slog"
	"strings"
)

const redacted = "***"

// 这些键上的值一律不写进日志。
var sensitiveKeys = []string{"password", "secret", "token"}

// New 返回写入到 w 的 slog.Logger（默认 level=INFO）。
// 注意：stdout=数据，日志应始终写 stderr（由调用方传入）。
func New(w io.Writer) *slog.Logger {
	return NewLevel(w, slog.LevelInfo)
}

// NewLevel 同 New，但使用指定的最低级别（--verbose 对应 DEBUG）。
func NewLevel(w io.Writer, level slog.Leveler) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level, ReplaceAttr: redact})
	return slog.New(h)
}

// Discard 返回丢弃所有记录的 logger。
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func redact(_ []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	for _, s := range sensitiveKeys {
		if strings.Contains(key, s) {
			return slog.String(a.Key, redacted)
		}
	}
	return a
}
