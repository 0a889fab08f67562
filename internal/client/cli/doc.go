// Package cli provides the interactive moodjournal command-line client.
//
// It wires the session manager, router and domain services into a REPL.
// Typical flow: restore the remembered session, start a background
// connectivity watcher and a forced-logout listener, then execute user
// commands until exit.
//
// Key features:
//   - Signup / Login / Logout and whoami
//   - Dashboard, entry listing and entry detail with AI follow-ups
//   - Create, edit and delete journal entries
//   - Analytics, AI companion readings and pattern analysis
//
// Every screen is reached through the router, so protected commands
// redirect to login when there is no session, and a token rejected by the
// backend sends the user back to login.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
