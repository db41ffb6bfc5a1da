package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"time"

	"go.uber.org/zap"

	"github.com/maskforge/coco-mask-mcp/internal/annotation"
	"github.com/maskforge/coco-mask-mcp/internal/mask"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "mask_encode_rle").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		Logger().Warn("tool execution failed",
			zap.String("tool", params.Name),
			zap.Error(err))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Mask Cache
	case "mask_store":
		return s.handleMaskStore(args)
	case "mask_evict":
		return s.handleMaskEvict(args)

	// Run-Length Encoding
	case "mask_encode_rle":
		return s.handleMaskEncodeRLE(args)
	case "mask_decode_rle":
		return s.handleMaskDecodeRLE(args)

	// Geometry
	case "mask_to_polygons":
		return s.handleMaskToPolygons(args)
	case "mask_components":
		return s.handleMaskComponents(args)
	case "mask_resample":
		return s.handleMaskResample(args)
	case "mask_component_overlay":
		return s.handleMaskComponentOverlay(args)

	// Annotation Assembly
	case "annotation_create":
		return s.handleAnnotationCreate(args)
	case "annotation_create_multi":
		return s.handleAnnotationCreateMulti(args)
	case "image_info_create":
		return s.handleImageInfoCreate(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// maskRef references a mask either inline (rows of 0/1) or by the name of
// a previously stored mask. Exactly one of the two must be given.
type maskRef struct {
	Name string  `json:"name,omitempty"`
	Mask [][]int `json:"mask,omitempty"`
}

func (s *Server) resolveMask(ref maskRef) (*mask.Mask, error) {
	if ref.Name != "" && ref.Mask != nil {
		return nil, fmt.Errorf("give either an inline mask or a stored mask name, not both")
	}
	if ref.Name != "" {
		return s.cache.Get(ref.Name)
	}
	if ref.Mask != nil {
		return mask.FromRows(ref.Mask)
	}
	return nil, fmt.Errorf("missing mask: give an inline mask or a stored mask name")
}

func parseConnectivity(v int) (mask.Connectivity, error) {
	switch v {
	case 0:
		return mask.DefaultConnectivity, nil
	case 4:
		return mask.Four, nil
	case 8:
		return mask.Eight, nil
	default:
		return 0, fmt.Errorf("invalid connectivity %d: must be 4 or 8", v)
	}
}

// === Mask Cache Handlers ===

type maskStoreArgs struct {
	Name string  `json:"name"`
	Mask [][]int `json:"mask"`
}

// MaskStoreResult confirms a stored mask.
type MaskStoreResult struct {
	Name             string `json:"name"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	ForegroundPixels int    `json:"foreground_pixels"`
}

func (s *Server) handleMaskStore(args json.RawMessage) (interface{}, error) {
	var a maskStoreArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Name == "" {
		return nil, fmt.Errorf("mask name must not be empty")
	}
	m, err := mask.FromRows(a.Mask)
	if err != nil {
		return nil, err
	}
	s.cache.Store(a.Name, m)
	return &MaskStoreResult{
		Name:             a.Name,
		Width:            m.Width(),
		Height:           m.Height(),
		ForegroundPixels: m.Count(),
	}, nil
}

type maskEvictArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleMaskEvict(args json.RawMessage) (interface{}, error) {
	var a maskEvictArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Name)
	return map[string]interface{}{"evicted": a.Name}, nil
}

// === Run-Length Encoding Handlers ===

// RLEResult contains a mask's run-length encoding and the scalar fields
// derived from it.
type RLEResult struct {
	RLE  *mask.RLE  `json:"rle"`
	Area float64    `json:"area"`
	BBox [4]float64 `json:"bbox"`
}

func (s *Server) handleMaskEncodeRLE(args json.RawMessage) (interface{}, error) {
	var a maskRef
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	m, err := s.resolveMask(a)
	if err != nil {
		return nil, err
	}
	rle := mask.Encode(m)
	return &RLEResult{RLE: rle, Area: rle.Area(), BBox: rle.BBox()}, nil
}

type maskDecodeRLEArgs struct {
	Size   [2]int `json:"size"`
	Counts []int  `json:"counts"`
}

// MaskResult contains a mask as rows of 0/1 values.
type MaskResult struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Mask   [][]int `json:"mask"`
}

func (s *Server) handleMaskDecodeRLE(args json.RawMessage) (interface{}, error) {
	var a maskDecodeRLEArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	rle := &mask.RLE{Size: a.Size, Counts: a.Counts}
	m, err := rle.Decode()
	if err != nil {
		return nil, err
	}
	return &MaskResult{Width: m.Width(), Height: m.Height(), Mask: m.Rows()}, nil
}

// === Geometry Handlers ===

type maskToPolygonsArgs struct {
	maskRef
	Tolerance float64 `json:"tolerance"`
}

// PolygonsResult contains the traced boundary polygons of a mask.
type PolygonsResult struct {
	Polygons []mask.Polygon `json:"polygons"`
	Count    int            `json:"count"`
}

func (s *Server) handleMaskToPolygons(args json.RawMessage) (interface{}, error) {
	var a maskToPolygonsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	m, err := s.resolveMask(a.maskRef)
	if err != nil {
		return nil, err
	}
	polygons := mask.Polygons(m, a.Tolerance)
	return &PolygonsResult{Polygons: polygons, Count: len(polygons)}, nil
}

type maskComponentsArgs struct {
	maskRef
	Connectivity int `json:"connectivity"`
}

// ComponentsResult contains one mask per connected component.
type ComponentsResult struct {
	Components [][][]int `json:"components"`
	Count      int       `json:"count"`
}

func (s *Server) handleMaskComponents(args json.RawMessage) (interface{}, error) {
	var a maskComponentsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	m, err := s.resolveMask(a.maskRef)
	if err != nil {
		return nil, err
	}
	conn, err := parseConnectivity(a.Connectivity)
	if err != nil {
		return nil, err
	}
	components, err := mask.Components(m, conn)
	if err != nil {
		return nil, err
	}
	rows := make([][][]int, len(components))
	for i, comp := range components {
		rows[i] = comp.Rows()
	}
	return &ComponentsResult{Components: rows, Count: len(rows)}, nil
}

type maskResampleArgs struct {
	maskRef
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleMaskResample(args json.RawMessage) (interface{}, error) {
	var a maskResampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	m, err := s.resolveMask(a.maskRef)
	if err != nil {
		return nil, err
	}
	resized, err := mask.Resample(m, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	return &MaskResult{Width: resized.Width(), Height: resized.Height(), Mask: resized.Rows()}, nil
}

type maskComponentOverlayArgs struct {
	maskRef
	Connectivity int `json:"connectivity"`
}

// OverlayResult contains the component overlay image.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Components  int    `json:"components"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleMaskComponentOverlay(args json.RawMessage) (interface{}, error) {
	var a maskComponentOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	m, err := s.resolveMask(a.maskRef)
	if err != nil {
		return nil, err
	}
	conn, err := parseConnectivity(a.Connectivity)
	if err != nil {
		return nil, err
	}
	img, count, err := mask.ComponentOverlay(m, conn)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	return &OverlayResult{
		Width:       m.Width(),
		Height:      m.Height(),
		Components:  count,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// === Annotation Assembly Handlers ===

type annotationArgs struct {
	maskRef
	ID           int                    `json:"id"`
	StartID      int                    `json:"start_id"`
	ImageID      int                    `json:"image_id"`
	Category     annotation.Category    `json:"category"`
	Size         *annotation.TargetSize `json:"size,omitempty"`
	Tolerance    *float64               `json:"tolerance,omitempty"`
	BBox         *[4]float64            `json:"bbox,omitempty"`
	Connectivity int                    `json:"connectivity"`
}

func (a annotationArgs) options() (annotation.Options, error) {
	opts := annotation.Options{Size: a.Size, BBox: a.BBox}
	if a.Tolerance != nil {
		if *a.Tolerance <= 0 {
			opts.Tolerance = -1 // explicit zero: no simplification
		} else {
			opts.Tolerance = *a.Tolerance
		}
	}
	conn, err := parseConnectivity(a.Connectivity)
	if err != nil {
		return opts, err
	}
	opts.Connectivity = conn
	return opts, nil
}

// AnnotationResult wraps a single annotation record. Annotation is null
// when the mask produced no valid annotation.
type AnnotationResult struct {
	Annotation *annotation.Annotation `json:"annotation"`
}

func (s *Server) handleAnnotationCreate(args json.RawMessage) (interface{}, error) {
	var a annotationArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	m, err := s.resolveMask(a.maskRef)
	if err != nil {
		return nil, err
	}
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	ann, err := annotation.Create(a.ID, a.ImageID, a.Category, m, opts)
	if err != nil {
		return nil, err
	}
	if ann == nil {
		Logger().Debug("mask produced no annotation",
			zap.Int("id", a.ID),
			zap.Int("image_id", a.ImageID))
	}
	return &AnnotationResult{Annotation: ann}, nil
}

// AnnotationsResult wraps the per-component annotation records of a
// multi-instance mask.
type AnnotationsResult struct {
	Annotations []*annotation.Annotation `json:"annotations"`
	Count       int                      `json:"count"`
}

func (s *Server) handleAnnotationCreateMulti(args json.RawMessage) (interface{}, error) {
	var a annotationArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	m, err := s.resolveMask(a.maskRef)
	if err != nil {
		return nil, err
	}
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	annotations, err := annotation.CreateMulti(a.StartID, a.ImageID, a.Category, m, opts)
	if err != nil {
		return nil, err
	}
	return &AnnotationsResult{Annotations: annotations, Count: len(annotations)}, nil
}

type imageInfoArgs struct {
	ID           int    `json:"id"`
	FileName     string `json:"file_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	DateCaptured string `json:"date_captured,omitempty"`
	License      int    `json:"license"`
	CocoURL      string `json:"coco_url,omitempty"`
	FlickrURL    string `json:"flickr_url,omitempty"`
}

func (s *Server) handleImageInfoCreate(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	var captured time.Time
	if a.DateCaptured != "" {
		t, err := time.Parse("2006-01-02 15:04:05", a.DateCaptured)
		if err != nil {
			return nil, fmt.Errorf("invalid date_captured %q: %w", a.DateCaptured, err)
		}
		captured = t
	}
	license := a.License
	if license == 0 {
		license = 1
	}
	return annotation.NewImageInfo(a.ID, a.FileName, a.Width, a.Height, captured, license, a.CocoURL, a.FlickrURL), nil
}
