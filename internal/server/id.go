package server

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// generateID produces a unique identifier with the given prefix, used to
// correlate the log lines of one invocation.
// Format: {prefix}_{YYYYMMDDTHHmmss}_{8 hex chars}
func generateID(prefix string) string {
	ts := time.Now().UTC().Format("20060102T150405")
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return prefix + "_" + ts + "_" + hex.EncodeToString(b)
}
