package handlekit

import (
	"archive/zip"
	"io"
)

// ZipHandle reads the first file entry of a ZIP archive as a seekable
// stream. Archives produced by acquisition software usually wrap a single
// dataset, so the first entry is the payload.
type ZipHandle struct {
	*streamHandle
	archive *zip.ReadCloser
	entry   *zip.File
	path    string
}

// NewZipHandle opens the ZIP archive at path and positions the handle at
// the start of its first file entry. Directory entries are skipped. An
// archive with no file entries yields ErrNoEntries.
func NewZipHandle(path string) (*ZipHandle, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}

	var entry *zip.File
	for _, f := range archive.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entry = f
		break
	}
	if entry == nil {
		archive.Close()
		return nil, &PathError{Op: "open", Path: path, Err: ErrNoEntries}
	}

	stream, err := newStreamHandle(func() (io.ReadCloser, error) {
		return entry.Open()
	}, int64(entry.UncompressedSize64))
	if err != nil {
		archive.Close()
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}

	return &ZipHandle{
		streamHandle: stream,
		archive:      archive,
		entry:        entry,
		path:         path,
	}, nil
}

// Name returns the path of the archive on disk.
func (h *ZipHandle) Name() string {
	return h.path
}

// EntryName returns the name of the archive entry being read.
func (h *ZipHandle) EntryName() string {
	return h.entry.Name
}

// Close releases the entry stream and the archive.
func (h *ZipHandle) Close() error {
	err := h.streamHandle.Close()
	if aerr := h.archive.Close(); aerr != nil && err == nil {
		err = aerr
	}
	return err
}

// Ensure ZipHandle implements Handle
var _ Handle = (*ZipHandle)(nil)
