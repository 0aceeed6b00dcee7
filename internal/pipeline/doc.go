// Package pipeline orchestrates a library build over the core packages.
//
// Padding touches no shared state unless a shared exclusion set is supplied,
// so it fans out across records. Each record draws from its own random
// stream derived from the run seed, which keeps output independent of the
// worker count. Barcoding mutates the run's exclusion set and runs serially.
package pipeline
