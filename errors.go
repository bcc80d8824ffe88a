package chalito

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when a request fails authorization even
	// after its single allowed retry.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is returned by Login when the backend rejects
	// the username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionExpired is the terminal session failure: refresh failed or no
	// refresh token was stored. Credentials are cleared before it is returned.
	ErrSessionExpired = errors.New("session expired")
	// ErrNoRefreshToken is joined into ErrSessionExpired outcomes when the
	// refresh path was entered without a stored refresh token.
	ErrNoRefreshToken = errors.New("no refresh token stored")
	// ErrServer marks 5xx responses. The original call's caller decides
	// whether to retry; the gateway never does.
	ErrServer = errors.New("server error")
	// ErrConnection marks transport failures and timeouts. It never clears
	// credentials and never triggers the refresh path.
	ErrConnection = errors.New("connection error")
	// ErrInvalidResponse is returned when the backend answers 2xx with a body
	// the client cannot use (e.g. a login response without a token).
	ErrInvalidResponse = errors.New("invalid server response")
	// ErrClientNotReady is returned when a Client method is called before
	// Builder.Build wired its dependencies.
	ErrClientNotReady = errors.New("client not initialized")

	// ErrPedidoSinCliente is returned by PedidoBuilder when the client name is missing.
	ErrPedidoSinCliente = errors.New("el nombre del cliente es requerido")
	// ErrPedidoVacio is returned by PedidoBuilder when the order has no items.
	ErrPedidoVacio = errors.New("debe agregar al menos un articulo al pedido")
	// ErrPedidoSinFecha is returned by PedidoBuilder when the delivery time is unset.
	ErrPedidoSinFecha = errors.New("la fecha de entrega es requerida")
	// ErrPedidoSinDireccion is returned by PedidoBuilder for delivery orders
	// without an address.
	ErrPedidoSinDireccion = errors.New("la direccion es requerida para delivery")
)

// APIError carries a non-2xx backend response: the HTTP status and the
// backend's user-facing mensaje, when one was sent.
type APIError struct {
	Status  int
	Mensaje string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Mensaje != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Mensaje)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// Is maps 5xx statuses onto ErrServer and 401 onto ErrUnauthorized so callers
// can match with errors.Is without inspecting statuses.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrServer:
		return e.Status >= 500
	case ErrUnauthorized:
		return e.Status == 401
	}
	return false
}
