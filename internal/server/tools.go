package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// maskProperty is the schema fragment for an inline binary mask.
func maskProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": "Binary mask as rows of 0/1 values (row-major, all rows the same length)",
		"items": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "integer", "enum": []int{0, 1}},
		},
	}
}

// nameProperty is the schema fragment for referencing a stored mask.
func nameProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Name of a mask previously registered with mask_store (alternative to an inline mask)",
	}
}

func connectivityProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"enum":        []int{4, 8},
		"description": "Pixel adjacency for component labeling: 4 (edges only) or 8 (edges and corners). Default 8",
		"default":     8,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Mask Cache
		{
			Name:        "mask_store",
			Description: "Register a binary mask under a name so later tool calls can reference it without resending the grid.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Name to store the mask under",
					},
					"mask": maskProperty(),
				},
				"required": []string{"name", "mask"},
			},
		},
		{
			Name:        "mask_evict",
			Description: "Remove a stored mask from the cache.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Name of the stored mask to remove",
					},
				},
				"required": []string{"name"},
			},
		},

		// Run-Length Encoding
		{
			Name:        "mask_encode_rle",
			Description: "Encode a binary mask as COCO uncompressed RLE (column-major alternating run lengths, background first) and return the implied area and bounding box.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mask": maskProperty(),
					"name": nameProperty(),
				},
			},
		},
		{
			Name:        "mask_decode_rle",
			Description: "Expand a COCO uncompressed RLE record back into a binary mask.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"size": map[string]interface{}{
						"type":        "array",
						"description": "[height, width] of the encoded mask",
						"items":       map[string]interface{}{"type": "integer"},
						"minItems":    2,
						"maxItems":    2,
					},
					"counts": map[string]interface{}{
						"type":        "array",
						"description": "Alternating run lengths, background first",
						"items":       map[string]interface{}{"type": "integer"},
					},
				},
				"required": []string{"size", "counts"},
			},
		},

		// Geometry
		{
			Name:        "mask_to_polygons",
			Description: "Trace the foreground boundaries of a mask into closed polygons (flat x,y vertex lists), optionally simplified. A shape with a hole yields two rings.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mask": maskProperty(),
					"name": nameProperty(),
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Maximum vertex deviation allowed during simplification. 0 returns the raw contour. Default 0",
						"default":     0,
					},
				},
			},
		},
		{
			Name:        "mask_components",
			Description: "Split a mask into one mask per connected foreground component.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mask":         maskProperty(),
					"name":         nameProperty(),
					"connectivity": connectivityProperty(),
				},
			},
		},
		{
			Name:        "mask_resample",
			Description: "Resize a binary mask to a target resolution. A resampled pixel is foreground when at least half of the source area it covers was foreground.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mask": maskProperty(),
					"name": nameProperty(),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Target width in pixels (>= 1)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Target height in pixels (>= 1)",
					},
				},
				"required": []string{"width", "height"},
			},
		},
		{
			Name:        "mask_component_overlay",
			Description: "Render each connected component of a mask in a distinct color and return the result as base64-encoded PNG. Useful for visually checking a decomposition.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mask":         maskProperty(),
					"name":         nameProperty(),
					"connectivity": connectivityProperty(),
				},
			},
		},

		// Annotation Assembly
		{
			Name:        "annotation_create",
			Description: "Build one COCO annotation record (area, bbox, segmentation) from a single-instance mask. Crowd categories get RLE segmentation, ordinary instances get polygons. Returns a null annotation when the mask covers no pixels or traces to no valid polygon.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":       map[string]interface{}{"type": "integer", "description": "Annotation id"},
					"image_id": map[string]interface{}{"type": "integer", "description": "Id of the image the mask belongs to"},
					"category": map[string]interface{}{
						"type":        "object",
						"description": "Category info: {id, is_crowd}",
						"properties": map[string]interface{}{
							"id":       map[string]interface{}{"type": "integer"},
							"is_crowd": map[string]interface{}{"type": "boolean"},
						},
						"required": []string{"id"},
					},
					"mask": maskProperty(),
					"name": nameProperty(),
					"size": map[string]interface{}{
						"type":        "object",
						"description": "Optional target resolution; the mask is resampled before encoding",
						"properties": map[string]interface{}{
							"width":  map[string]interface{}{"type": "integer"},
							"height": map[string]interface{}{"type": "integer"},
						},
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Polygon simplification tolerance. Default 2; 0 disables simplification",
					},
					"bbox": map[string]interface{}{
						"type":        "array",
						"description": "Optional precomputed bounding box [x, y, width, height]",
						"items":       map[string]interface{}{"type": "number"},
						"minItems":    4,
						"maxItems":    4,
					},
				},
				"required": []string{"id", "image_id", "category"},
			},
		},
		{
			Name:        "annotation_create_multi",
			Description: "Build one COCO annotation per connected component of a multi-instance mask. Ids increment per component attempt; components yielding no record are omitted. Crowd categories are rejected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"start_id": map[string]interface{}{"type": "integer", "description": "Annotation id assigned to the first component"},
					"image_id": map[string]interface{}{"type": "integer", "description": "Id of the image the mask belongs to"},
					"category": map[string]interface{}{
						"type":        "object",
						"description": "Category info: {id, is_crowd}. is_crowd must be false",
						"properties": map[string]interface{}{
							"id":       map[string]interface{}{"type": "integer"},
							"is_crowd": map[string]interface{}{"type": "boolean"},
						},
						"required": []string{"id"},
					},
					"mask": maskProperty(),
					"name": nameProperty(),
					"size": map[string]interface{}{
						"type":        "object",
						"description": "Optional target resolution; the mask is resampled once before decomposition",
						"properties": map[string]interface{}{
							"width":  map[string]interface{}{"type": "integer"},
							"height": map[string]interface{}{"type": "integer"},
						},
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Polygon simplification tolerance. Default 2; 0 disables simplification",
					},
					"connectivity": connectivityProperty(),
				},
				"required": []string{"start_id", "image_id", "category"},
			},
		},
		{
			Name:        "image_info_create",
			Description: "Assemble the COCO image metadata record for an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":        map[string]interface{}{"type": "integer", "description": "Image id"},
					"file_name": map[string]interface{}{"type": "string", "description": "Image file name"},
					"width":     map[string]interface{}{"type": "integer", "description": "Image width in pixels"},
					"height":    map[string]interface{}{"type": "integer", "description": "Image height in pixels"},
					"date_captured": map[string]interface{}{
						"type":        "string",
						"description": "Capture time as 'YYYY-MM-DD HH:MM:SS'. Defaults to the current UTC time",
					},
					"license":    map[string]interface{}{"type": "integer", "description": "License id. Default 1"},
					"coco_url":   map[string]interface{}{"type": "string", "description": "Optional COCO URL"},
					"flickr_url": map[string]interface{}{"type": "string", "description": "Optional Flickr URL"},
				},
				"required": []string{"id", "file_name", "width", "height"},
			},
		},
	}
}
