// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger writing to stderr, since stdout carries MCP traffic,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Services accept a context and extract the logger from it, enabling
// scoped, structured logging throughout the codebase.
package logger
