// Package console is the client for the account console API under
// /api/v0/auth: account profile, settings, freeze status, MFA and session
// login.
//
// Calls are authenticated by the session cookie the server sets on Token;
// clients built with NewClient keep it in a public-suffix aware cookie jar.
package console
