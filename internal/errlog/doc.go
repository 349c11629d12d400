// Package errlog persists 404 events across a mirror run.
//
// The log is a plain text file with one line per event:
//
//	{context}\t{url}
//
// where context is the asset filename, or filename + ".desc" for a
// description document. The log is deleted at run start and recreated
// on the first 404, so its absence after a run means no file was
// missing remotely.
//
// Record is safe for concurrent use by all workers; every line is
// written atomically with respect to other lines.
package errlog
