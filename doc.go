// Package websession decorates a stateless HTTP client with
// per-session state: default headers sent with every request, stored
// credentials applied before dispatch, and an RFC 6265 cookie jar that
// is transparently consulted on the way out and updated from every
// Set-Cookie header on the way back.
//
// The package wraps rather than replaces: Client forwards every
// request to whatever Doer it was given (an *http.Client works as-is)
// and leaves redirects, retries, timeouts and cancellation entirely to
// it. Responses come back unmodified except that their cookies have
// been absorbed into the session's jar.
//
// # Usage
//
//	client := websession.New(&http.Client{Timeout: 10 * time.Second}).
//		AddHeader("Accept", "application/json")
//
//	// Cookies set by the login response are stored...
//	resp, err := client.PostForm("https://api.example.com/login", creds)
//	if err != nil {
//		// handle error
//	}
//	resp.Body.Close()
//
//	// ...and attached to every later request to a matching host/path.
//	resp, err = client.Get("https://api.example.com/account")
//
// # Credentials
//
// Stored credentials are applied through the Credentials interface.
// OAuth2 bearer tokens are supported out of the box via an
// oauth2.TokenSource, with acquisition and refresh delegated to the
// oauth2 package:
//
//	client.WithCredentials(websession.NewTokenCredentials(tokenSource))
//
// A credential failure (an expired refresh token, say) aborts the
// request before dispatch and is returned to the caller; it is never
// swallowed by the session layer.
//
// # Sessions are instances
//
// Session state lives in the Client and its jar, never in process
// globals, so independent sessions in one process cannot contaminate
// each other. Share a jar between clients explicitly with WithJar when
// shared state is what you want.
//
// # Configuration
//
// Config and LoadConfig provide optional environment-driven setup
// (WEBSESSION_* variables, .env supported) for the default user agent,
// request-id stamping and the jar's background expiry sweep.
package websession
