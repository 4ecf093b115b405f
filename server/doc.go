// Package server binds the documentation tools to an MCP server over stdio.
//
// The dispatcher validates arguments, consults the response cache, builds
// the interpreter script, and runs it. Failures never surface as protocol
// errors: every domain failure is returned as a tool result with IsError
// set, so the calling model sees the message and can react to it.
package server
