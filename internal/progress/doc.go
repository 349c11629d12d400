// Package progress provides progress reporting for mirror runs.
//
// This package outputs human-readable progress information, including
// bytes transferred, transfer speed, and download/skip counters.
//
// # Usage
//
//	reporter := progress.NewReporter(Options{
//	    TotalFiles: len(entries),
//	    Workers:    10,
//	})
//
//	reporter.Start()
//	defer reporter.Stop()
//
//	// Updated by the transport as bodies stream
//	reporter.TransferStarted(contentLength)
//	reporter.BytesWritten(n)
//	reporter.TransferCompleted()
//
// # Output Format
//
//	[wikimirror] Mirroring: image_list.txt
//	[wikimirror] Files: 2048 | Workers: 10
//	[wikimirror] Transferred: 1.25 GB | Speed: 12.40 MB/s | Downloads: 312 done, 10 active, 2 failed | Skipped: 74
package progress
