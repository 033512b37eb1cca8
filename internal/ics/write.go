package ics

import "tnef2ics/internal/fsutil"

// WriteFile atomically replaces path with data. Invites are meant to be
// shared, so the file is world-readable.
func WriteFile(path string, data []byte) error {
	return fsutil.WriteFile(path, data, 0o644)
}
