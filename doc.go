// Package chalito is the Go client SDK for the El Chalito restaurant
// management backend: login and session lifecycle, article (menu item) CRUD,
// order (pedido) entry and tracking, and sales (venta) listings.
//
// The package is designed around a single request gateway: every call is
// annotated with the current access token, and an expired token is recovered
// transparently through exactly one refresh call shared by all concurrently
// failing requests. Client methods are safe to call from multiple goroutines
// after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// chalito is the public surface. It exposes [Client], [Builder], [Config],
// and value types (Articulo, Pedido, Venta, etc.). Credential persistence
// lives in credstore/, token inspection in token/. Hosting applications react
// to session termination through [Client.SessionEvents]; the SDK never
// navigates, redirects, or renders.
//
// # What this package must NOT do
//
//   - Mutate process-global state: every Client owns its own session state,
//     gateway, and stores, so tests can run independent instances.
//   - Retry a request more than once, or refresh more than once per expiry.
//   - Clear credentials on connection errors. Only a failed refresh or an
//     explicit logout destroys the session.
package chalito
