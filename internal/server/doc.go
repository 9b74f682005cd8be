// Package server implements the MCP (Model Context Protocol) server for the
// pixel transform tools.
//
// This package provides a JSON-RPC 2.0 server that exposes grayscale
// conversion, brightness adjustment and histograms through the MCP protocol,
// so MCP clients can transform and measure images without a display.
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
//
// Color Operations:
//   - image_sample_color: Get color and luminance at pixel
//   - image_sample_colors_multi: Sample multiple points
//
// Transforms (result returned as base64 PNG, optionally saved):
//   - image_grayscale: Luminance grayscale conversion
//   - image_brightness: Scale channels by a factor with clamping
//
// Histograms:
//   - image_histogram: Per-channel or luminance tables with statistics
//   - image_histogram_chart: The same tables drawn as a chart
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded images. Images are
// cached by path and reused across tool calls. Transforms never modify a
// cached buffer.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    logger.Error("server stopped", "error", err)
//	}
package server
