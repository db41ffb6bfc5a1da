package annotation

import (
	"time"

	"github.com/maskforge/coco-mask-mcp/internal/mask"
)

// Category carries the per-category inputs of the annotation builder.
//
// IsCrowd selects the segmentation format: crowd categories are encoded
// as RLE, ordinary instances as polygon lists.
type Category struct {
	ID      int  `json:"id"`
	IsCrowd bool `json:"is_crowd,omitempty"`
}

// Annotation is one COCO annotation object, ready for JSON serialization
// by the caller.
//
// Segmentation holds either *mask.RLE (crowd) or []mask.Polygon
// (ordinary instance); both marshal to the shapes the COCO schema expects.
type Annotation struct {
	ID           int         `json:"id"`
	ImageID      int         `json:"image_id"`
	CategoryID   int         `json:"category_id"`
	IsCrowd      int         `json:"iscrowd"`
	Area         float64     `json:"area"`
	BBox         [4]float64  `json:"bbox"`
	Segmentation interface{} `json:"segmentation"`
	Width        int         `json:"width"`
	Height       int         `json:"height"`
}

// ImageInfo is the COCO image metadata record.
type ImageInfo struct {
	ID           int    `json:"id"`
	FileName     string `json:"file_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	DateCaptured string `json:"date_captured"`
	License      int    `json:"license"`
	CocoURL      string `json:"coco_url"`
	FlickrURL    string `json:"flickr_url"`
}

// NewImageInfo assembles the image metadata record.
//
// The capture time is an explicit argument; passing the zero time records
// the current UTC time. The timestamp is taken per call, never captured
// once at startup, so long-running processes do not emit stale times.
func NewImageInfo(id int, fileName string, width, height int, captured time.Time, license int, cocoURL, flickrURL string) *ImageInfo {
	if captured.IsZero() {
		captured = time.Now().UTC()
	}
	return &ImageInfo{
		ID:           id,
		FileName:     fileName,
		Width:        width,
		Height:       height,
		DateCaptured: captured.Format("2006-01-02 15:04:05"),
		License:      license,
		CocoURL:      cocoURL,
		FlickrURL:    flickrURL,
	}
}

// TargetSize is an optional resize target for the builder.
type TargetSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Options tune how annotations are built.
type Options struct {
	// Size, when non-nil, resamples the mask to this resolution before
	// encoding.
	Size *TargetSize

	// Tolerance is the polygon simplification tolerance. The zero value
	// selects DefaultTolerance; use a small negative value for "no
	// simplification".
	Tolerance float64

	// BBox, when non-nil, is used instead of the box derived from the
	// encoded mask.
	BBox *[4]float64

	// Connectivity selects the adjacency rule for multi-instance
	// decomposition. Zero selects mask.DefaultConnectivity.
	Connectivity mask.Connectivity
}

// DefaultTolerance is the polygon simplification tolerance used when
// Options.Tolerance is zero.
const DefaultTolerance = 2.0

func (o Options) tolerance() float64 {
	if o.Tolerance == 0 {
		return DefaultTolerance
	}
	if o.Tolerance < 0 {
		return 0
	}
	return o.Tolerance
}

func (o Options) connectivity() mask.Connectivity {
	if o.Connectivity == 0 {
		return mask.DefaultConnectivity
	}
	return o.Connectivity
}
