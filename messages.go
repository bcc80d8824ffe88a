package chalito

import "time"

// User-facing messages, kept verbatim from the production frontend so both
// clients read the same Spanish copy.
const (
	msgSessionExpired  = "Sesión expirada. Por favor inicia sesión nuevamente."
	msgServerError     = "Error del servidor. Intenta nuevamente."
	msgConnectionError = "Error de conexión. Intenta nuevamente."
	msgInvalidResponse = "Respuesta inválida del servidor"
	msgLogoutOK        = "Sesión cerrada correctamente"
	msgWelcomePrefix   = "¡Bienvenido "
)

const (
	welcomeNoticeDuration = 3 * time.Second
	logoutNoticeDuration  = 2 * time.Second
	errorNoticeDuration   = 7 * time.Second
)
