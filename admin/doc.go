// Package admin is the client for the satellite admin API.
//
// Every request carries the static admin token as the raw Authorization
// header. Fetch is the generic entry point; the typed operations in this
// package are thin wrappers over it for the routes the admin server serves.
package admin
