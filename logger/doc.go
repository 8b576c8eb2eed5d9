// Package logger provides structured logging on top of zerolog.
//
// Clients in this module take a *Logger and tag it with a component name:
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "json"}, "consolectl")
//	log.WithComponent("admin").Info("fetch", logger.Fields("method", "GET", "path", "/api/users/x"))
//
// Nop returns a logger that discards everything; it is the default for
// clients constructed without one.
package logger
