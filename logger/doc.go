// Package logger provides structured logging for faber using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("container")
//	log.Debug("factory invoked", logger.Fields("entry", "db", "key", key))
package logger
