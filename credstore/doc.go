// Package credstore persists the client's credential bundle — access token,
// refresh token, and cached user profile — across process restarts.
//
// # Design
//
// The bundle is three independent keys behind the [Store] interface. Backends:
// [Memory] (process lifetime only), [Bolt] (durable single-terminal file,
// the default), and [Redis] (terminal-scoped shared storage for multi-POS
// deployments). [Open] never fails: when the durable backend cannot be
// opened, it degrades to an in-memory store so the client keeps working for
// the current process lifetime.
//
// # Architecture boundaries
//
// This package owns credential persistence only. It performs no network calls
// other than those of its own storage backend, and it holds no authentication
// logic: token refresh, verification, and state transitions live in the root
// chalito package.
//
// # What this package must NOT do
//
//   - Decide when tokens are stale or invalid.
//   - Emit user-facing notifications.
//   - Import the chalito root package (no import cycles).
package credstore
