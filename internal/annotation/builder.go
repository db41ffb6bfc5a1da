package annotation

import (
	"fmt"

	"github.com/maskforge/coco-mask-mcp/internal/mask"
)

// Create builds one annotation record for a single-instance mask.
//
// The mask is resampled first when opts.Size is set. The resampled (or
// original) mask is then RLE-encoded unconditionally: the encoding is the
// canonical source of area and bounding box regardless of which
// segmentation format ends up in the record.
//
// A nil record with a nil error means no valid annotation: the mask
// covered no pixels after resampling, or an ordinary instance traced to
// zero valid polygons. Callers decide whether to skip or log.
func Create(id, imageID int, cat Category, m *mask.Mask, opts Options) (*Annotation, error) {
	if opts.Size != nil {
		resized, err := mask.Resample(m, opts.Size.Width, opts.Size.Height)
		if err != nil {
			return nil, err
		}
		m = resized
	}

	rle := mask.Encode(m)

	area := rle.Area()
	if area < 1 {
		return nil, nil
	}

	bbox := rle.BBox()
	if opts.BBox != nil {
		bbox = *opts.BBox
	}

	var isCrowd int
	var segmentation interface{}
	if cat.IsCrowd {
		isCrowd = 1
		segmentation = rle
	} else {
		polygons := mask.Polygons(m, opts.tolerance())
		if len(polygons) == 0 {
			return nil, nil
		}
		segmentation = polygons
	}

	return &Annotation{
		ID:           id,
		ImageID:      imageID,
		CategoryID:   cat.ID,
		IsCrowd:      isCrowd,
		Area:         area,
		BBox:         bbox,
		Segmentation: segmentation,
		Width:        m.Width(),
		Height:       m.Height(),
	}, nil
}

// CreateMulti builds one annotation per connected foreground component of
// a mask. All annotations share the category; ids start at startID and
// increment once per component attempt, so a component that yields no
// record leaves a gap rather than renumbering the rest.
//
// Crowd categories are rejected: splitting a single mask into multiple
// crowd RLE annotations is not supported.
func CreateMulti(startID, imageID int, cat Category, m *mask.Mask, opts Options) ([]*Annotation, error) {
	if cat.IsCrowd {
		return nil, fmt.Errorf("creating multiple crowd annotations from a single mask is not supported")
	}

	if opts.Size != nil {
		resized, err := mask.Resample(m, opts.Size.Width, opts.Size.Height)
		if err != nil {
			return nil, err
		}
		m = resized
		opts.Size = nil // components are already at the target resolution
	}

	components, err := mask.Components(m, opts.connectivity())
	if err != nil {
		return nil, err
	}

	var annotations []*Annotation
	for i, comp := range components {
		ann, err := Create(startID+i, imageID, cat, comp, opts)
		if err != nil {
			return nil, err
		}
		if ann != nil {
			annotations = append(annotations, ann)
		}
	}
	return annotations, nil
}
