package llm

import (
	"context"
	"time"

	"edu-quiz/internal/logger"

	"go.uber.org/zap"
)

// LoggingProvider writes one structured log line per generation request.
type LoggingProvider struct {
	inner Provider
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider) Provider {
	return &LoggingProvider{inner: p}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	fields := []zap.Field{
		zap.String("purpose", PurposeFrom(ctx)),
		zap.String("model", l.inner.ModelID()),
		zap.Duration("latency", time.Since(start)),
		zap.Bool("json", req.JSON),
	}
	if resp != nil {
		fields = append(fields,
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
			zap.String("stop_reason", resp.StopReason),
			zap.Int("response_bytes", len(resp.Content)),
		)
	}

	if err != nil {
		logger.Get().Warn("LLM request failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	logger.Get().Info("LLM request completed", fields...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
