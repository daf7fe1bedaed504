// Package server implements the MCP (Model Context Protocol) server for letter
// recognition.
//
// This package provides a JSON-RPC 2.0 server that exposes the recognizer
// through the MCP protocol, so MCP-compatible clients can read the letters
// A-J from an image and inspect why a region was or was not recognized.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Recognition:
//   - letters_recognize: Recognize letters, optionally with an annotated image and crops
//   - letters_features: Feature vector of every ink region
//   - letters_feature_area: Render one feature template over one region
//   - letters_binarize: Threshold and bitmap used for segmentation
//   - letters_rules: Feature catalog and letter signatures
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(server.WithWorkers(4))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
