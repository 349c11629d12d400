// Package verify decides whether a stored object still matches its
// manifest record.
//
// An object matches when both its byte length (compared as the
// manifest's literal decimal string) and its SHA-1 digest (lowercase
// hex) equal the expected values. A mismatch is not an error, it is
// the signal to re-download.
//
// Content is hashed by streaming through the bucket reader in fixed
// 8 KiB chunks, so verification never loads a whole file into memory.
package verify
