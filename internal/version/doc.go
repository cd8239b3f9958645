// Package version exposes build metadata for the alarm agenda server.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags. Short is reported to MCP hosts as the server version; Full is
// printed by the `version` subcommand.
package version
