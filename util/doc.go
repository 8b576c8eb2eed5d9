// Package util holds small generic helpers shared by the clients, the fake
// server and the CLI: pointer helpers for partial updates, byte sizes as
// the console displays them, and secret masking for logs.
package util
