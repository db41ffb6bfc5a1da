package server

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/maskforge/coco-mask-mcp/internal/mask"
)

func call(t *testing.T, s *Server, tool, args string) interface{} {
	t.Helper()
	result, err := s.executeTool(tool, json.RawMessage(args))
	if err != nil {
		t.Fatalf("%s failed: %v", tool, err)
	}
	return result
}

func callErr(t *testing.T, s *Server, tool, args string) error {
	t.Helper()
	result, err := s.executeTool(tool, json.RawMessage(args))
	if err == nil {
		t.Fatalf("%s: expected an error, got %+v", tool, result)
	}
	return err
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	err := callErr(t, New(), "bogus", `{}`)
	if !strings.Contains(err.Error(), "unknown tool") {
		t.Errorf("error: got %q, want mention of unknown tool", err)
	}
}

func TestMaskStore(t *testing.T) {
	s := New()
	result := call(t, s, "mask_store", `{"name": "obj", "mask": [[1, 0], [1, 1]]}`)

	stored, ok := result.(*MaskStoreResult)
	if !ok {
		t.Fatalf("result: got %T, want *MaskStoreResult", result)
	}
	if stored.Name != "obj" || stored.Width != 2 || stored.Height != 2 {
		t.Errorf("stored: got %+v", stored)
	}
	if stored.ForegroundPixels != 3 {
		t.Errorf("ForegroundPixels: got %d, want 3", stored.ForegroundPixels)
	}

	if _, err := s.cache.Get("obj"); err != nil {
		t.Errorf("mask not retrievable after store: %v", err)
	}
}

func TestMaskStore_EmptyName(t *testing.T) {
	callErr(t, New(), "mask_store", `{"name": "", "mask": [[1]]}`)
}

func TestMaskStore_InvalidMask(t *testing.T) {
	// ragged rows
	callErr(t, New(), "mask_store", `{"name": "bad", "mask": [[1, 0], [1]]}`)
}

func TestMaskEvict(t *testing.T) {
	s := New()
	call(t, s, "mask_store", `{"name": "obj", "mask": [[1]]}`)
	call(t, s, "mask_evict", `{"name": "obj"}`)

	if _, err := s.cache.Get("obj"); err == nil {
		t.Error("mask still present after evict")
	}
}

func TestMaskEncodeRLE_Inline(t *testing.T) {
	result := call(t, New(), "mask_encode_rle", `{"mask": [
		[0, 0, 0, 0],
		[0, 1, 1, 0],
		[0, 1, 1, 0],
		[0, 0, 0, 0]
	]}`)

	r, ok := result.(*RLEResult)
	if !ok {
		t.Fatalf("result: got %T, want *RLEResult", result)
	}
	if r.RLE.Size != [2]int{4, 4} {
		t.Errorf("size: got %v, want [4 4]", r.RLE.Size)
	}
	wantCounts := []int{5, 2, 2, 2, 5}
	if len(r.RLE.Counts) != len(wantCounts) {
		t.Fatalf("counts: got %v, want %v", r.RLE.Counts, wantCounts)
	}
	for i, c := range wantCounts {
		if r.RLE.Counts[i] != c {
			t.Fatalf("counts: got %v, want %v", r.RLE.Counts, wantCounts)
		}
	}
	if r.Area != 4 {
		t.Errorf("area: got %v, want 4", r.Area)
	}
	if r.BBox != [4]float64{1, 1, 2, 2} {
		t.Errorf("bbox: got %v, want [1 1 2 2]", r.BBox)
	}
}

func TestMaskEncodeRLE_StoredName(t *testing.T) {
	s := New()
	call(t, s, "mask_store", `{"name": "obj", "mask": [[1, 1], [0, 0]]}`)
	result := call(t, s, "mask_encode_rle", `{"name": "obj"}`)

	r := result.(*RLEResult)
	if r.Area != 2 {
		t.Errorf("area: got %v, want 2", r.Area)
	}
}

func TestMaskEncodeRLE_MissingName(t *testing.T) {
	callErr(t, New(), "mask_encode_rle", `{"name": "absent"}`)
}

func TestResolveMask_BothGiven(t *testing.T) {
	callErr(t, New(), "mask_encode_rle", `{"name": "obj", "mask": [[1]]}`)
}

func TestResolveMask_NeitherGiven(t *testing.T) {
	callErr(t, New(), "mask_encode_rle", `{}`)
}

func TestMaskDecodeRLE(t *testing.T) {
	result := call(t, New(), "mask_decode_rle", `{"size": [2, 3], "counts": [1, 2, 3]}`)

	r, ok := result.(*MaskResult)
	if !ok {
		t.Fatalf("result: got %T, want *MaskResult", result)
	}
	if r.Width != 3 || r.Height != 2 {
		t.Errorf("dimensions: got %dx%d, want 3x2", r.Width, r.Height)
	}
	// column-major: runs fill (0,0)=0, (0,1)=1, (1,0)=1, then zeros
	want := [][]int{
		{0, 1, 0},
		{1, 0, 0},
	}
	for y := range want {
		for x := range want[y] {
			if r.Mask[y][x] != want[y][x] {
				t.Fatalf("mask: got %v, want %v", r.Mask, want)
			}
		}
	}
}

func TestMaskDecodeRLE_CountMismatch(t *testing.T) {
	callErr(t, New(), "mask_decode_rle", `{"size": [2, 2], "counts": [1, 1]}`)
}

func TestMaskEncodeDecodeRoundTrip(t *testing.T) {
	s := New()
	encoded := call(t, s, "mask_encode_rle", `{"mask": [[1, 0, 1], [0, 1, 0]]}`).(*RLEResult)

	args, err := json.Marshal(map[string]interface{}{
		"size":   encoded.RLE.Size,
		"counts": encoded.RLE.Counts,
	})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	decoded := call(t, s, "mask_decode_rle", string(args)).(*MaskResult)

	want := [][]int{{1, 0, 1}, {0, 1, 0}}
	for y := range want {
		for x := range want[y] {
			if decoded.Mask[y][x] != want[y][x] {
				t.Fatalf("round trip: got %v, want %v", decoded.Mask, want)
			}
		}
	}
}

func TestMaskToPolygons(t *testing.T) {
	result := call(t, New(), "mask_to_polygons", `{"mask": [
		[0, 0, 0],
		[0, 1, 0],
		[0, 0, 0]
	], "tolerance": 0}`)

	r, ok := result.(*PolygonsResult)
	if !ok {
		t.Fatalf("result: got %T, want *PolygonsResult", result)
	}
	if r.Count != 1 || len(r.Polygons) != 1 {
		t.Fatalf("polygons: got %d, want 1", r.Count)
	}
	want := mask.Polygon{0.5, 1, 1, 0.5, 1.5, 1, 1, 1.5, 0.5, 1}
	got := r.Polygons[0]
	if len(got) != len(want) {
		t.Fatalf("polygon: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("polygon: got %v, want %v", got, want)
		}
	}
}

func TestMaskToPolygons_EmptyMask(t *testing.T) {
	result := call(t, New(), "mask_to_polygons", `{"mask": [[0, 0], [0, 0]]}`)
	r := result.(*PolygonsResult)
	if r.Count != 0 {
		t.Errorf("polygons: got %d, want 0", r.Count)
	}
}

func TestMaskComponents(t *testing.T) {
	result := call(t, New(), "mask_components", `{"mask": [
		[1, 0, 0],
		[0, 0, 0],
		[0, 0, 1]
	], "connectivity": 4}`)

	r, ok := result.(*ComponentsResult)
	if !ok {
		t.Fatalf("result: got %T, want *ComponentsResult", result)
	}
	if r.Count != 2 {
		t.Fatalf("components: got %d, want 2", r.Count)
	}
	if r.Components[0][0][0] != 1 || r.Components[1][2][2] != 1 {
		t.Errorf("component pixels misplaced: %v", r.Components)
	}
}

func TestMaskComponents_DefaultConnectivity(t *testing.T) {
	// diagonal pixels merge under the default eight-connectivity
	result := call(t, New(), "mask_components", `{"mask": [[1, 0], [0, 1]]}`)
	r := result.(*ComponentsResult)
	if r.Count != 1 {
		t.Errorf("components: got %d, want 1", r.Count)
	}
}

func TestMaskComponents_InvalidConnectivity(t *testing.T) {
	callErr(t, New(), "mask_components", `{"mask": [[1]], "connectivity": 6}`)
}

func TestMaskResample(t *testing.T) {
	result := call(t, New(), "mask_resample", `{"mask": [[1, 0], [0, 1]], "width": 4, "height": 4}`)

	r, ok := result.(*MaskResult)
	if !ok {
		t.Fatalf("result: got %T, want *MaskResult", result)
	}
	if r.Width != 4 || r.Height != 4 {
		t.Errorf("dimensions: got %dx%d, want 4x4", r.Width, r.Height)
	}
	total := 0
	for _, row := range r.Mask {
		for _, v := range row {
			total += v
		}
	}
	if total != 8 {
		t.Errorf("foreground pixels: got %d, want 8", total)
	}
}

func TestMaskResample_InvalidTarget(t *testing.T) {
	callErr(t, New(), "mask_resample", `{"mask": [[1]], "width": 0, "height": 4}`)
}

func TestMaskComponentOverlay(t *testing.T) {
	result := call(t, New(), "mask_component_overlay", `{"mask": [
		[1, 0],
		[0, 1]
	], "connectivity": 4}`)

	r, ok := result.(*OverlayResult)
	if !ok {
		t.Fatalf("result: got %T, want *OverlayResult", result)
	}
	if r.Width != 2 || r.Height != 2 {
		t.Errorf("dimensions: got %dx%d, want 2x2", r.Width, r.Height)
	}
	if r.Components != 2 {
		t.Errorf("components: got %d, want 2", r.Components)
	}
	if r.MimeType != "image/png" {
		t.Errorf("mime type: got %q", r.MimeType)
	}
	if r.ImageBase64 == "" {
		t.Error("image payload is empty")
	}
}

func TestAnnotationCreate(t *testing.T) {
	result := call(t, New(), "annotation_create", `{
		"id": 7, "image_id": 3,
		"category": {"id": 12, "is_crowd": true},
		"mask": [
			[0, 0, 0, 0],
			[0, 1, 1, 0],
			[0, 1, 1, 0],
			[0, 0, 0, 0]
		]
	}`)

	r, ok := result.(*AnnotationResult)
	if !ok {
		t.Fatalf("result: got %T, want *AnnotationResult", result)
	}
	if r.Annotation == nil {
		t.Fatal("expected an annotation")
	}
	if r.Annotation.ID != 7 || r.Annotation.IsCrowd != 1 || r.Annotation.Area != 4 {
		t.Errorf("annotation: got %+v", r.Annotation)
	}
}

func TestAnnotationCreate_NullForEmptyMask(t *testing.T) {
	result := call(t, New(), "annotation_create", `{
		"id": 1, "image_id": 1,
		"category": {"id": 2},
		"mask": [[0, 0], [0, 0]]
	}`)

	r := result.(*AnnotationResult)
	if r.Annotation != nil {
		t.Errorf("expected a null annotation, got %+v", r.Annotation)
	}

	// degenerate results serialize as {"annotation": null}, not an error
	if text := mustMarshalJSON(r); !strings.Contains(text, `"annotation": null`) {
		t.Errorf("serialized result: got %s", text)
	}
}

func TestAnnotationCreate_ZeroToleranceIsRaw(t *testing.T) {
	// explicit tolerance 0 keeps every traced vertex; a single pixel
	// produces the full four-point diamond instead of simplifying away
	result := call(t, New(), "annotation_create", `{
		"id": 1, "image_id": 1,
		"category": {"id": 2},
		"tolerance": 0,
		"mask": [
			[0, 0, 0],
			[0, 1, 0],
			[0, 0, 0]
		]
	}`)

	r := result.(*AnnotationResult)
	if r.Annotation == nil {
		t.Fatal("expected an annotation at tolerance 0")
	}
	polygons, ok := r.Annotation.Segmentation.([]mask.Polygon)
	if !ok || len(polygons) != 1 {
		t.Fatalf("segmentation: got %T %v", r.Annotation.Segmentation, r.Annotation.Segmentation)
	}
	if len(polygons[0]) != 10 {
		t.Errorf("polygon length: got %d, want 10", len(polygons[0]))
	}
}

func TestAnnotationCreateMulti(t *testing.T) {
	result := call(t, New(), "annotation_create_multi", `{
		"start_id": 10, "image_id": 2,
		"category": {"id": 3},
		"tolerance": 0,
		"connectivity": 4,
		"mask": [
			[1, 0, 0],
			[0, 0, 0],
			[0, 0, 1]
		]
	}`)

	r, ok := result.(*AnnotationsResult)
	if !ok {
		t.Fatalf("result: got %T, want *AnnotationsResult", result)
	}
	if r.Count != 2 {
		t.Fatalf("annotations: got %d, want 2", r.Count)
	}
	if r.Annotations[0].ID != 10 || r.Annotations[1].ID != 11 {
		t.Errorf("ids: got %d and %d, want 10 and 11", r.Annotations[0].ID, r.Annotations[1].ID)
	}
}

func TestAnnotationCreateMulti_RejectsCrowd(t *testing.T) {
	callErr(t, New(), "annotation_create_multi", `{
		"start_id": 1, "image_id": 1,
		"category": {"id": 2, "is_crowd": true},
		"mask": [[1]]
	}`)
}

func TestImageInfoCreate(t *testing.T) {
	result := call(t, New(), "image_info_create", `{
		"id": 42, "file_name": "frame_0042.png",
		"width": 640, "height": 480,
		"date_captured": "2023-04-17 09:30:00",
		"license": 2
	}`)

	b, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(b)
	for _, field := range []string{
		`"id":42`, `"file_name":"frame_0042.png"`,
		`"width":640`, `"height":480`,
		`"date_captured":"2023-04-17 09:30:00"`, `"license":2`,
	} {
		if !strings.Contains(s, field) {
			t.Errorf("image info missing %s:\n%s", field, s)
		}
	}
}

func TestImageInfoCreate_DefaultLicense(t *testing.T) {
	result := call(t, New(), "image_info_create", `{
		"id": 1, "file_name": "a.png", "width": 1, "height": 1,
		"date_captured": "2023-01-01 00:00:00"
	}`)

	b, _ := json.Marshal(result)
	if !strings.Contains(string(b), `"license":1`) {
		t.Errorf("expected default license 1: %s", b)
	}
}

func TestImageInfoCreate_BadTimestamp(t *testing.T) {
	callErr(t, New(), "image_info_create", `{
		"id": 1, "file_name": "a.png", "width": 1, "height": 1,
		"date_captured": "17/04/2023"
	}`)
}
