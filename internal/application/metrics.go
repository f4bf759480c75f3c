package application

import "expvar"

// Published on /debug/vars.
var (
	metricLoginsOK          = expvar.NewInt("roster_logins_ok")
	metricLoginsFailed      = expvar.NewInt("roster_logins_failed")
	metricCredentialsSet    = expvar.NewInt("roster_credentials_bootstrapped")
	metricSessionsResolved  = expvar.NewInt("roster_sessions_resolved")
	metricSessionsRejected  = expvar.NewInt("roster_sessions_rejected")
	metricSessionCacheHits  = expvar.NewInt("roster_session_cache_hits")
	metricAuthorizationDeny = expvar.NewInt("roster_authorization_denied")
)

// denied counts and returns err when it is an authorization failure.
func denied(err error) error {
	if err == ErrUnauthorized {
		metricAuthorizationDeny.Add(1)
	}
	return err
}
