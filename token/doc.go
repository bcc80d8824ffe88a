// Package token inspects access tokens issued by the El Chalito backend
// without verifying their signature.
//
// The client never validates tokens — that is the server's job — but it can
// read the expiry claim to refresh ahead of a guaranteed 401. Parsing is
// strictly read-only: no keys, no signature checks, no trust decisions.
//
// # What this package must NOT do
//
//   - Accept or reject a token. An unparsable token is simply opaque.
//   - Import the chalito root package or credstore.
package token
