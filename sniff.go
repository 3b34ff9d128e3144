package handlekit

import (
	"bytes"
	"io"
	"os"
)

// sniffLen is how many leading bytes a signature probe may inspect.
const sniffLen = 16

// Magic signatures for the built-in archive formats. Classification reads
// content, never filenames: a gzip stream named data.txt still resolves as
// gzip.
var (
	zipMagics = [][]byte{
		{0x50, 0x4B, 0x03, 0x04}, // local file header
		{0x50, 0x4B, 0x05, 0x06}, // empty archive
		{0x50, 0x4B, 0x07, 0x08}, // spanned archive
	}
	gzipMagic  = []byte{0x1F, 0x8B}
	bzip2Magic = []byte("BZh")
)

// sniffHeader reads up to sniffLen leading bytes of the file at path.
// Probes are best-effort: any open or read failure yields nil, which
// matches no signature, so resolution falls through to the plain-file kind
// and surfaces the real error there.
func sniffHeader(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, _ := io.ReadFull(f, buf)
	return buf[:n]
}

// hasMagic reports whether header begins with magic.
func hasMagic(header, magic []byte) bool {
	return len(header) >= len(magic) && bytes.Equal(header[:len(magic)], magic)
}

func matchZip(header []byte) bool {
	for _, m := range zipMagics {
		if hasMagic(header, m) {
			return true
		}
	}
	return false
}

func matchGZip(header []byte) bool {
	return hasMagic(header, gzipMagic)
}

func matchBZip2(header []byte) bool {
	return hasMagic(header, bzip2Magic)
}

// IsZip reports whether the file at path begins with a zip signature.
func IsZip(path string) bool {
	return matchZip(sniffHeader(path))
}

// IsGZip reports whether the file at path begins with the gzip signature.
func IsGZip(path string) bool {
	return matchGZip(sniffHeader(path))
}

// IsBZip2 reports whether the file at path begins with the bzip2 signature.
func IsBZip2(path string) bool {
	return matchBZip2(sniffHeader(path))
}
