package credstore

import "context"

// Default key names, kept identical to the browser client's localStorage keys
// so a migrated deployment can inspect storage with familiar names.
const (
	DefaultAccessTokenKey  = "chalito_access_token"
	DefaultRefreshTokenKey = "chalito_refresh_token"
	DefaultProfileKey      = "chalito_user_data"
)

// Profile is the cached user record. It is stored alongside the tokens so the
// host can render identity and role information without a round trip.
type Profile struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Rol       string `json:"rol"`
}

// Store persists the credential bundle. Implementations must be safe for
// concurrent use.
//
// Invariant maintained by callers: the profile is written together with the
// access token on login/verify success and removed by ClearTokens. SetTokens
// with an empty refresh value preserves the stored refresh token; it never
// clears it by omission.
type Store interface {
	GetAccessToken(ctx context.Context) (string, bool)
	GetRefreshToken(ctx context.Context) (string, bool)
	SetTokens(ctx context.Context, access, refresh string)
	ClearTokens(ctx context.Context)
	GetProfile(ctx context.Context) (Profile, bool)
	SetProfile(ctx context.Context, p Profile)
}
