// Package server implements the MCP (Model Context Protocol) server for the mask codec.
//
// This package provides a JSON-RPC 2.0 server that exposes the COCO
// mask-to-geometry codec through the MCP protocol, so MCP-compatible
// clients can convert binary masks into annotation geometry.
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
// Mask Cache:
//   - mask_store: Register a named mask for reuse
//   - mask_evict: Remove a stored mask
//
// Run-Length Encoding:
//   - mask_encode_rle: Column-major RLE plus area and bounding box
//   - mask_decode_rle: Expand an RLE record back into a mask
//
// Geometry:
//   - mask_to_polygons: Trace boundary polygons
//   - mask_components: Connected-component decomposition
//   - mask_resample: Resize a mask
//   - mask_component_overlay: Colored component preview (base64 PNG)
//
// Annotation Assembly:
//   - annotation_create: One annotation from a single-instance mask
//   - annotation_create_multi: One annotation per connected component
//   - image_info_create: COCO image metadata record
//
// # Mask Transport
//
// Masks travel as JSON rows of 0/1 values. Tools that take a mask accept
// either an inline "mask" array or the "name" of a mask previously
// registered with mask_store; the named form avoids resending large grids
// on every call. Stored masks persist for the lifetime of the server
// process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Masks that yield no valid annotation are not errors: annotation_create
// returns {"annotation": null} and annotation_create_multi simply omits
// the component.
//
// # Logging
//
// The package logs through a zap logger installed with SetLogger. Logging
// must go to stderr; stdout carries the protocol.
package server
