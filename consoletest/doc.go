// Package consoletest is an in-memory fake of the v0 document/user API, the
// console auth API and the admin API, served by gin.
//
// Tests start one with NewHTTPTest; cmd/consolectl serve-fake runs it on a
// real port for local use. State lives in a Store and is reset with every
// new Server.
package consoletest
