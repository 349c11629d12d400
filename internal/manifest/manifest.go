package manifest

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// fieldCount is the number of tab-separated fields per manifest line.
const fieldCount = 5

// Entry describes one file to mirror.
type Entry struct {
	// Filename is the destination object name, exactly as it appears
	// in the output bucket.
	Filename string

	// URL is the source URL for the asset itself.
	URL string

	// Uploader is recorded in the manifest but not used when mirroring.
	Uploader string

	// Size is the expected byte length, kept as the manifest's literal
	// decimal string. Comparison is string equality, not numeric.
	Size string

	// SHA1 is the expected content digest as lowercase hex.
	SHA1 string
}

// DescName returns the object name of the entry's description document.
func (e Entry) DescName() string {
	return e.Filename + ".desc"
}

// Parse reads a tab-separated manifest: one entry per non-empty line,
// fields filename, url, uploader, size, sha1. A line with the wrong
// field count is an error carrying the 1-based line number.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != fieldCount {
			return nil, fmt.Errorf("manifest: line %d: expected %d tab-separated fields, got %d",
				lineNo, fieldCount, len(fields))
		}

		entries = append(entries, Entry{
			Filename: fields[0],
			URL:      fields[1],
			Uploader: fields[2],
			Size:     fields[3],
			SHA1:     fields[4],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("manifest: read: %w", err)
	}

	return entries, nil
}

// Load parses the manifest file at path.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// ExportURL builds the wiki export URL for a file's description
// document: {base}/wiki/Special:Export/File:{percent-encoded filename}.
// Trailing slashes on base are ignored.
func ExportURL(base, filename string) string {
	return strings.TrimRight(base, "/") + "/wiki/Special:Export/File:" + url.PathEscape(filename)
}
