// Package mask implements the geometry codec for 2D binary object masks.
//
// A mask is a height x width grid of booleans where true marks foreground.
// The package converts masks into the geometry used by COCO-style
// annotations and back:
//
//   - Encode / Decode: column-major alternating run-length encoding, the
//     COCO "uncompressed RLE" variant, plus the area and bounding box the
//     encoding implies
//   - Polygons: sub-pixel boundary tracing at the 0.5 iso-level with
//     optional Douglas-Peucker simplification
//   - Components: connected-component decomposition with 4- or
//     8-connectivity
//   - Resample: boolean-preserving resize to a target resolution
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. RLE traversal is
// column-major: each column is walked top to bottom before moving right.
// Polygon vertices are sub-pixel (x, y) values on the half-integer lattice.
//
// # Thread Safety
//
// Every operation is a pure function of its arguments: inputs are never
// mutated and outputs are freshly allocated, so operations on different
// masks (or repeated operations on the same mask) can run concurrently
// without synchronization. The Cache type is safe for concurrent use.
package mask
