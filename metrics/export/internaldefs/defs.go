package internaldefs

import (
	chalito "github.com/elchalito/chalito-go"
)

// CounterDef binds a client counter to its Prometheus name and help text.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable.
type CounterDef struct {
	ID   chalito.MetricID
	Name string
	Help string
}

// CounterDefs lists every client counter in render order.
var CounterDefs = []CounterDef{
	{ID: chalito.MetricLoginSuccess, Name: "chalito_login_success_total", Help: "Successful login attempts."},
	{ID: chalito.MetricLoginFailure, Name: "chalito_login_failure_total", Help: "Failed login attempts."},
	{ID: chalito.MetricLogout, Name: "chalito_logout_total", Help: "Logout operations."},
	{ID: chalito.MetricVerifySuccess, Name: "chalito_verify_success_total", Help: "Successful startup session verifications."},
	{ID: chalito.MetricVerifyFailure, Name: "chalito_verify_failure_total", Help: "Rejected or failed startup session verifications."},
	{ID: chalito.MetricRefreshSuccess, Name: "chalito_refresh_success_total", Help: "Successful token refresh operations."},
	{ID: chalito.MetricRefreshFailure, Name: "chalito_refresh_failure_total", Help: "Failed token refresh operations."},
	{ID: chalito.MetricRefreshCoalesced, Name: "chalito_refresh_coalesced_total", Help: "Requests that joined an in-flight refresh instead of starting one."},
	{ID: chalito.MetricRequestRetried, Name: "chalito_request_retried_total", Help: "Requests replayed after a refresh."},
	{ID: chalito.MetricServerError, Name: "chalito_server_error_total", Help: "Responses in the 5xx class."},
	{ID: chalito.MetricConnectionError, Name: "chalito_connection_error_total", Help: "Transport failures and timeouts."},
	{ID: chalito.MetricSessionExpired, Name: "chalito_session_expired_total", Help: "Sessions terminated by the refresh-failure path."},
}
