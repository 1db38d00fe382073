// Package common defines shared constants and sentinel errors used across
// terminal and server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrStorage marks a local persistence failure. It is fatal to the
	// operation in progress and must reach the caller synchronously: a ticket
	// must never appear sold while unpersisted.
	ErrStorage = errors.New("storage failure")

	// ErrTransport marks a network-level failure (timeout, refused
	// connection, no response). Always retryable; never mutates record state.
	ErrTransport = errors.New("server unavailable")

	// ErrRejected marks a record the server refused for a permanent reason
	// (validation). Retried a bounded number of times, then surfaced for
	// manual review.
	ErrRejected = errors.New("record rejected")

	// Auth errors.
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// ErrSessionExpired is returned once the offline grace window past the
	// session expiry has elapsed. Selling fails closed until the operator
	// re-authenticates online.
	ErrSessionExpired = errors.New("session expired")
)
