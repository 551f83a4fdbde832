package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrConfigValidation   = errors.New("configuration validation error")
	ErrParsing            = errors.New("parsing error")    // Wraps specific parsing error (HTML, YAML, JSON)
	ErrFilesystem         = errors.New("filesystem error") // Wraps os errors
	ErrDatabase           = errors.New("database error")   // Wraps badger errors
	ErrMarkdownRender     = errors.New("failed to render markdown")
	ErrMarkdownConversion = errors.New("failed to convert HTML to markdown")
	ErrUnknownSection     = errors.New("section not found in configuration")
	ErrProgressNotFound   = errors.New("no progress recorded for deck")
	ErrTokenizer          = errors.New("tokenizer error")
)

// WrapErrorf wraps a sentinel error with formatted context.
func WrapErrorf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// CategorizeError maps an error to a predefined category string for logging/metrics.
func CategorizeError(err error) string {
	if err == nil {
		return "None"
	}

	// Check against sentinel errors first
	switch {
	case errors.Is(err, ErrConfigValidation):
		return "Config_Validation"
	case errors.Is(err, ErrUnknownSection):
		return "Config_UnknownSection"
	case errors.Is(err, ErrParsing):
		// Could check wrapped error for HTML vs YAML vs JSON parsing if needed
		errMsg := err.Error()
		if strings.Contains(errMsg, "HTML") {
			return "Content_ParsingHTML"
		}
		if strings.Contains(errMsg, "YAML") {
			return "Content_ParsingYAML"
		}
		if strings.Contains(errMsg, "JSON") {
			return "Content_ParsingJSON"
		}
		return "Content_ParsingOther"
	case errors.Is(err, ErrMarkdownRender):
		return "Content_MarkdownRender"
	case errors.Is(err, ErrMarkdownConversion):
		return "Content_MarkdownExport"
	case errors.Is(err, ErrProgressNotFound):
		return "Progress_NotFound"
	case errors.Is(err, ErrTokenizer):
		return "Search_Tokenizer"
	case errors.Is(err, ErrFilesystem):
		if errors.Is(err, os.ErrPermission) {
			return "Filesystem_Permission"
		}
		if errors.Is(err, os.ErrNotExist) {
			return "Filesystem_NotExist"
		}
		if errors.Is(err, os.ErrExist) {
			return "Filesystem_Exist"
		}
		return "Filesystem_Other"
	case errors.Is(err, ErrDatabase):
		// Could check for specific Badger errors if necessary
		return "Database_Other"
	}

	// Context errors
	if errors.Is(err, context.Canceled) {
		return "System_ContextCanceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "System_ContextDeadlineExceeded"
	}

	return "Unknown"
}
