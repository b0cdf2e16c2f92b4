// Package service wires the dice notation MCP tools to a transport.
//
// It knows how to run MCP over stdio or streamable HTTP and delegates
// tool behavior to the domain package.
package service
