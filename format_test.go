package handlekit

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// snapshotFormats restores the format registry after a test that
// registers formats of its own.
func snapshotFormats(t *testing.T) {
	t.Helper()
	formatMutex.Lock()
	saved := make([]Format, len(formats))
	copy(saved, formats)
	formatMutex.Unlock()
	t.Cleanup(func() {
		formatMutex.Lock()
		formats = saved
		formatMutex.Unlock()
	})
}

func TestMatchFormatBuiltins(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   HandleKind
	}{
		{name: "zip", header: []byte{0x50, 0x4B, 0x03, 0x04}, want: KindZip},
		{name: "gzip", header: []byte{0x1F, 0x8B, 0x08}, want: KindGZip},
		{name: "bzip2", header: []byte("BZh9"), want: KindBZip2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := matchFormat(tt.header)
			if !ok {
				t.Fatalf("matchFormat() ok = false, want true")
			}
			if f.Name != tt.want {
				t.Errorf("matchFormat().Name = %v, want %v", f.Name, tt.want)
			}
		})
	}

	if _, ok := matchFormat([]byte("plain text header")); ok {
		t.Error("matchFormat() ok = true for plain text, want false")
	}
}

func TestRegisterFormat(t *testing.T) {
	snapshotFormats(t)

	magic := []byte("FAKEFMT1")
	RegisterFormat(Format{
		Name:  HandleKind("fake"),
		Match: func(header []byte) bool { return hasMagic(header, magic) },
		Open: func(path string) (Handle, error) {
			return NewBytesHandle([]byte("opened by fake format")), nil
		},
	})

	f, ok := matchFormat(append(magic, "trailing"...))
	if !ok {
		t.Fatal("matchFormat() ok = false, want registered format")
	}
	if f.Name != HandleKind("fake") {
		t.Errorf("matchFormat().Name = %v, want fake", f.Name)
	}

	// Resolution consults the registry for both classification and opening
	path := filepath.Join(t.TempDir(), "sample.fake")
	if err := os.WriteFile(path, append(magic, " payload"...), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	r := newTestResolver(t)
	if got := r.Classify(path); got != HandleKind("fake") {
		t.Errorf("Classify() = %v, want fake", got)
	}

	h, err := r.GetHandle(path)
	if err != nil {
		t.Fatalf("GetHandle() error = %v", err)
	}
	defer h.Close()
	data, err := io.ReadAll(h)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != "opened by fake format" {
		t.Errorf("ReadAll() = %q, want the fake format's contents", data)
	}
}

func TestRegisterFormatCannotPreemptBuiltins(t *testing.T) {
	snapshotFormats(t)

	RegisterFormat(Format{
		Name:  HandleKind("greedy"),
		Match: func(header []byte) bool { return bytes.HasPrefix(header, gzipMagic) },
		Open: func(path string) (Handle, error) {
			return NewBytesHandle(nil), nil
		},
	})

	f, ok := matchFormat([]byte{0x1F, 0x8B, 0x08})
	if !ok {
		t.Fatal("matchFormat() ok = false, want true")
	}
	if f.Name != KindGZip {
		t.Errorf("matchFormat().Name = %v, want %v", f.Name, KindGZip)
	}
}
