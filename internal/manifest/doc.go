// Package manifest parses the tab-separated file listing to mirror.
//
// Each non-empty line holds five tab-separated fields:
//
//	filename<TAB>url<TAB>uploader<TAB>size<TAB>sha1
//
// There is no header row. Malformed lines abort parsing with the line
// number; a manifest is either fully valid or rejected before any
// download starts.
//
// The package also builds description-document URLs from a wiki base
// URL:
//
//	manifest.ExportURL("https://example.fandom.com", "cat 1.png")
//	// https://example.fandom.com/wiki/Special:Export/File:cat%201.png
package manifest
