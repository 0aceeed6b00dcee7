// pkg/api/records_v1.go
package api

// RecordV1 is the stable JSON/JSONL schema for one library record.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RecordV1 struct {
	Name          string `json:"name"`
	FiveConstant  string `json:"five_prime_constant"`
	FivePadding   string `json:"five_prime_padding"`
	Design        string `json:"design"`
	ThreePadding  string `json:"three_prime_padding"`
	Barcode       string `json:"barcode"`
	ThreeConstant string `json:"three_prime_constant"`
	Sequence      string `json:"sequence"`
	Length        int    `json:"length"`
}

// BarcodeV1 is one generated barcode.
type BarcodeV1 struct {
	Index     int    `json:"index"`
	Barcode   string `json:"barcode"`
	BasePairs []int  `json:"base_pairs"`
	Length    int    `json:"length"`
}

// PaddingV1 is one assembled padding region and its segments.
type PaddingV1 struct {
	Length   int         `json:"length"`
	Sequence string      `json:"sequence"`
	Segments []SegmentV1 `json:"segments"`
}

type SegmentV1 struct {
	Kind  string `json:"kind"` // "filler" | "stem"
	Seq   string `json:"seq"`
	Pairs int    `json:"pairs,omitempty"`
}
