package runner

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// Run IDs name the per-run output directory and key the history database,
// so they sort chronologically: a UTC timestamp plus a short random suffix
// to disambiguate runs started within the same second.
const runIDRandomBytes = 6

// NewRunID returns the ID for a run starting now.
func NewRunID() (string, error) {
	return NewRunIDWithRand(time.Now().UTC(), rand.Reader)
}

// NewRunIDWithRand builds a run ID from an explicit clock reading and
// randomness source.
func NewRunIDWithRand(now time.Time, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("random reader is nil")
	}
	suffix := make([]byte, runIDRandomBytes)
	if _, err := io.ReadFull(r, suffix); err != nil {
		return "", fmt.Errorf("read run ID suffix: %w", err)
	}
	return FormatRunID(now, hex.EncodeToString(suffix)), nil
}

// FormatRunID joins the timestamp and suffix halves of a run ID.
func FormatRunID(now time.Time, suffix string) string {
	return now.UTC().Format("20060102T150405Z") + "-" + suffix
}
