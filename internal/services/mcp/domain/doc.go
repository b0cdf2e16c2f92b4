// Package domain exposes dice notation as MCP tools.
//
// Each tool pairs a schema constructor (RollNotationTool) with a typed
// handler (RollNotationHandler). Handlers parse and evaluate through the
// notation packages and return coded errors as MCP tool errors.
package domain
