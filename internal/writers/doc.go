// Package writers turns library records and generated barcodes into
// serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (CSV, FASTA, TSV, JSONL).
//   - The core library stays domain-only; the pipeline stays orchestration-only.
//   - JSONL goes through pkg/api (v1) for a stable wire format.
package writers
