package errors

import "go.uber.org/zap"

// ZapHandler is an ErrorHandler that writes reports to a zap logger.
// Recoverable errors are logged at warn level, panics at error level.
type ZapHandler struct {
	logger *zap.Logger
}

// NewZapHandler returns a handler logging to logger. A nil logger is
// replaced by zap.NewNop().
func NewZapHandler(logger *zap.Logger) *ZapHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapHandler{logger: logger.Named("pager")}
}

// HandleError logs a PagerError.
func (h *ZapHandler) HandleError(err *PagerError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Index != NoIndex {
		fields = append(fields, zap.Int("index", err.Index))
	}
	h.logger.Warn("pager error", fields...)
}

// HandlePanic logs a PanicError.
func (h *ZapHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	h.logger.Error("pager panic",
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
		zap.String("stack", err.StackTrace),
	)
}
