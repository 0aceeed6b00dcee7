// pkg/api/summary_v1.go
package api

// SummaryV1 is the stable JSON schema for a run summary.
type SummaryV1 struct {
	Records            int   `json:"records"`
	InvalidInput       int   `json:"invalid_input,omitempty"`
	DuplicateDesigns   int   `json:"duplicate_designs,omitempty"`
	DesignLengths      []int `json:"design_lengths,omitempty"`
	ExistingBarcodes   int   `json:"existing_barcodes"`
	DuplicateBarcodes  int   `json:"duplicate_barcodes"`
	NullBarcodes       int   `json:"null_barcodes"`
	WrongLengthBarcode int   `json:"wrong_length_barcodes"`
	MissingDesign      int   `json:"missing_design"`
	InvalidRecords     int   `json:"invalid_records"`
	Padded             int   `json:"padded"`
	PadTo              int   `json:"pad_to"`
	Barcoded           int   `json:"barcoded"`
	NullRemoved        int   `json:"null_removed"`
	FinalLength        int   `json:"final_length"`
	LengthDiscrepancy  int   `json:"length_discrepancy"`
	BarcodeDiscrepancy int   `json:"barcode_discrepancy"`
	ExclusionSetSize   int   `json:"exclusion_set_size"`
}
