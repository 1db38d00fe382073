// Package cli provides the interactive point-of-sale terminal.
//
// It wires configuration, the local SQLite store, the central-service client
// and the background sync engine into a command loop for the operator.
// Typical flow: prompt for credentials, start the connectivity watcher and
// the sync scheduler, then execute operator commands.
//
// Key features:
//   - Login / Logout with an offline grace window
//   - Sell tickets entirely from the local store
//   - Daily listings, totals and cash remittances
//   - Review of records the sync engine gave up on
//
// The loop is started via App.Root(ctx), which blocks until the operator
// exits. See App and StartOnlineStatusWatcher for details.
package cli
