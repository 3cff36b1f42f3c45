// Package lib groups integrations that sit outside the request layers: the
// hex.pm API client (lib/hex) and the asynq package sync worker (lib/job).
package lib
