// Package annotation assembles COCO annotation records from binary masks.
//
// Create handles a single instance: optional resample, RLE encoding for
// area and bounding box, then either the RLE itself (crowd categories) or
// traced polygons (ordinary instances) as the segmentation. CreateMulti
// fans a multi-instance mask out into one record per connected component.
//
// Masks that shrink to nothing, and instances whose boundary traces to no
// valid polygon, produce no record rather than an error.
package annotation
