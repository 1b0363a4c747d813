// ABOUTME: Key and value validation for the SQLite cache
// ABOUTME: Meal ids come from request paths, so odd keys are logged before parameterized use

package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"recipe-finder-api/core/interfaces"
)

const (
	maxKeyLength   = 255
	maxValueLength = 1024 * 1024 // 1MB
	maxKeyPreview  = 50
)

// suspiciousPatterns are harmless under parameterized queries but worth a warning
var suspiciousPatterns = []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}

// ValidateKey rejects keys that cannot be stored and warns about suspicious ones
func ValidateKey(key string, logger interfaces.Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}

	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	if logger == nil {
		return nil
	}
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) {
			logger.Warn("Suspicious pattern detected in cache key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": truncateKey(key),
			})
		}
	}

	return nil
}

// ValidateValue rejects empty or oversized values
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}

	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}

	return nil
}

func truncateKey(key string) string {
	if len(key) <= maxKeyPreview {
		return key
	}
	return key[:maxKeyPreview] + "..."
}
