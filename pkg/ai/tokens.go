package ai

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

const fallbackEncoding = "cl100k_base"

var (
	encodingOnce sync.Once
	encoding     atomic.Pointer[tiktoken.Tiktoken]
)

// WarmUpTokenizer загружает словарь tiktoken (при первом запуске он скачивается).
// Вызывается при старте в фоне; запросы его не ждут и до загрузки считают токены по словам.
// Возвращает false, если словарь не успел загрузиться за timeout или недоступен.
func WarmUpTokenizer(timeout time.Duration, logger *zap.Logger) bool {
	done := make(chan struct{})
	go func() {
		defer close(done)
		encodingOnce.Do(func() {
			enc, err := tiktoken.GetEncoding(fallbackEncoding)
			if err != nil {
				logger.Warn("Tokenizer is unavailable, token counts will be approximate", zap.Error(err))
				return
			}
			encoding.Store(enc)
			logger.Info("Tokenizer loaded", zap.String("encoding", fallbackEncoding))
		})
	}()

	select {
	case <-done:
		return encoding.Load() != nil
	case <-time.After(timeout):
		logger.Warn("Tokenizer is still loading, token counts will be approximate until it is ready", zap.Duration("timeout", timeout))
		return false
	}
}

// EstimateTokens оценивает число токенов текста. Используется, когда бэкенд
// не вернул счетчики. Пока словарь не загружен, считает грубо по словам.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	if enc := encoding.Load(); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return approximateTokens(text)
}

// approximateTokens - примерно 4 токена на 3 слова.
func approximateTokens(text string) int {
	words := len(strings.Fields(text))
	return (words*4 + 2) / 3
}

// estimateUsage строит UsageInfo по текстам запроса и ответа.
func estimateUsage(req GenerationRequest, completion string) UsageInfo {
	prompt := EstimateTokens(req.SystemPrompt)
	for _, m := range req.Messages {
		prompt += EstimateTokens(m.Content)
	}
	out := EstimateTokens(completion)
	return UsageInfo{PromptTokens: prompt, CompletionTokens: out, TotalTokens: prompt + out}
}
