// Package count implements tolerant per-file line counting.
package count

import (
	"bytes"
	"io"
	"os"
)

const readBufSize = 64 * 1024

// Lines returns the number of lines in the file at path. Counting is done
// byte-wise, so arbitrary (including invalid UTF-8) content is fine; a final
// line without a trailing newline is counted. Unreadable files, permission
// errors, broken symlinks, and non-regular files all count as zero; errors
// never propagate, so one bad file cannot abort a scan.
func Lines(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return 0
	}

	buf := make([]byte, readBufSize)
	var lines int
	var last byte
	var sawData bool
	for {
		n, err := f.Read(buf)
		if n > 0 {
			sawData = true
			lines += bytes.Count(buf[:n], []byte{'\n'})
			last = buf[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0
		}
	}
	if sawData && last != '\n' {
		lines++
	}
	return lines
}
