package handlekit

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Extensions common around scientific datasets, mapped ahead of the
// platform mime database so results stay stable across systems.
var extensionMIME = map[string]string{
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".dcm":  "application/dicom",
	".xml":  "application/xml",
	".json": "application/json",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".html": "text/html",
	".htm":  "text/html",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".bz2":  "application/x-bzip2",
}

// detectLen matches the number of bytes http.DetectContentType considers.
const detectLen = 512

// GuessContentType determines a local file's MIME type: recognized
// extension first, then content sniffing over the leading bytes. An
// unreadable file with an unknown extension yields "".
func GuessContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := extensionMIME[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			return mt
		}
		return ct
	}

	header := sniffContent(path)
	if len(header) == 0 {
		return ""
	}
	switch {
	case matchZip(header):
		return "application/zip"
	case matchGZip(header):
		return "application/gzip"
	case matchBZip2(header):
		return "application/x-bzip2"
	}
	ct := http.DetectContentType(header)
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	return ct
}

// sniffContent reads up to detectLen leading bytes, nil when unreadable.
func sniffContent(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	buf := make([]byte, detectLen)
	n, _ := io.ReadFull(f, buf)
	return buf[:n]
}
