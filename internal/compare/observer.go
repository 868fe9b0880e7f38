package compare

import (
	"log/slog"
)

// Observer receives progress notifications from a Comparator. Version is 1
// or 2 for the first or second screenshot of a pair.
type Observer interface {
	HeaderFallback(name string, version int, reason error)
	OCRFailed(name string, version int, err error)
	Compared(result Result)
}

// NopObserver discards every notification.
type NopObserver struct{}

func (NopObserver) HeaderFallback(string, int, error) {}
func (NopObserver) OCRFailed(string, int, error)      {}
func (NopObserver) Compared(Result)                   {}

// LogObserver logs notifications to a structured logger.
type LogObserver struct {
	Logger *slog.Logger
}

// NewLogObserver returns an observer logging to logger, or to the default
// slog logger when logger is nil.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{Logger: logger}
}

func (o *LogObserver) HeaderFallback(name string, version int, reason error) {
	o.Logger.Debug("header detection fell back to percentage crop",
		"image", name, "version", version, "reason", reason)
}

func (o *LogObserver) OCRFailed(name string, version int, err error) {
	o.Logger.Warn("OCR failed", "image", name, "version", version, "error", err)
}

func (o *LogObserver) Compared(r Result) {
	o.Logger.Info("compared",
		"image", r.ImageName,
		"match", r.OverallMatch,
		"text_similarity", r.TextSimilarity,
		"focus_match", r.FocusMatch,
		"field_differences", len(r.FieldDifferences))
}
