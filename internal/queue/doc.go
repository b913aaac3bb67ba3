// Package queue persists run history in SQLite: every pipeline run is
// recorded with its status lifecycle, so crashed or failed runs stay
// inspectable after the process exits.
package queue
