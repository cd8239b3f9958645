// Package alarm implements the MCP transport for the alarm agenda.
//
// It declares the tools and the prompt exposed to agent hosts and adapts
// service results to the shapes those hosts expect.
package alarm
