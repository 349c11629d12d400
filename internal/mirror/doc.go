// Package mirror is the core fetch-and-verify pipeline.
//
// Run dispatches manifest entries to a fixed-size pool of workers.
// Each worker handles one entry at a time:
//
//  1. If the asset already exists, verify its size and SHA-1 against
//     the manifest; a match skips the download, a mismatch forces it.
//  2. Download the asset if absent or stale. A 404 is recorded to the
//     error sink and reported, but never stops the entry.
//  3. Unconditionally download the entry's description document from
//     the wiki export endpoint.
//
// Every failure is returned as an error string in the final Report;
// no entry's failure can abort the run or affect other entries. The
// only shared mutable state is the error sink, which serializes its
// appends.
package mirror
