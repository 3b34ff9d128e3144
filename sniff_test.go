package handlekit

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestMagicSignatures(t *testing.T) {
	tests := []struct {
		name      string
		header    []byte
		wantZip   bool
		wantGZip  bool
		wantBZip2 bool
	}{
		{
			name:    "zip local file header",
			header:  []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00},
			wantZip: true,
		},
		{
			name:    "zip empty archive",
			header:  []byte{0x50, 0x4B, 0x05, 0x06},
			wantZip: true,
		},
		{
			name:    "zip spanned archive",
			header:  []byte{0x50, 0x4B, 0x07, 0x08},
			wantZip: true,
		},
		{
			name:   "zip central directory record alone",
			header: []byte{0x50, 0x4B, 0x01, 0x02},
		},
		{
			name:     "gzip",
			header:   []byte{0x1F, 0x8B, 0x08, 0x00},
			wantGZip: true,
		},
		{
			name:   "gzip truncated to one byte",
			header: []byte{0x1F},
		},
		{
			name:      "bzip2",
			header:    []byte("BZh91AY&SY"),
			wantBZip2: true,
		},
		{
			name:   "bzip2 missing stream level",
			header: []byte("BZ"),
		},
		{
			name:   "plain text",
			header: []byte("plate,well,field"),
		},
		{
			name:   "empty header",
			header: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchZip(tt.header); got != tt.wantZip {
				t.Errorf("matchZip() = %v, want %v", got, tt.wantZip)
			}
			if got := matchGZip(tt.header); got != tt.wantGZip {
				t.Errorf("matchGZip() = %v, want %v", got, tt.wantGZip)
			}
			if got := matchBZip2(tt.header); got != tt.wantBZip2 {
				t.Errorf("matchBZip2() = %v, want %v", got, tt.wantBZip2)
			}
		})
	}
}

func TestSniffHeader(t *testing.T) {
	tmp := t.TempDir()

	long := filepath.Join(tmp, "long.bin")
	content := []byte("0123456789abcdefghij")
	if err := os.WriteFile(long, content, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if got := sniffHeader(long); !bytes.Equal(got, content[:sniffLen]) {
		t.Errorf("sniffHeader() = %q, want %q", got, content[:sniffLen])
	}

	short := filepath.Join(tmp, "short.bin")
	if err := os.WriteFile(short, []byte("BZ"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if got := sniffHeader(short); !bytes.Equal(got, []byte("BZ")) {
		t.Errorf("sniffHeader() = %q, want %q", got, "BZ")
	}

	if got := sniffHeader(filepath.Join(tmp, "missing.bin")); got != nil {
		t.Errorf("sniffHeader() = %q, want nil", got)
	}
}

func TestSignatureProbes(t *testing.T) {
	tmp := t.TempDir()

	zipPath := filepath.Join(tmp, "container.zip")
	writeZip(t, zipPath, map[string]string{"a.txt": "x"}, []string{"a.txt"})

	gzPath := filepath.Join(tmp, "stream.gz")
	writeGZip(t, gzPath, "x")

	plainPath := filepath.Join(tmp, "plain.txt")
	if err := os.WriteFile(plainPath, []byte("nothing special"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name      string
		path      string
		wantZip   bool
		wantGZip  bool
		wantBZip2 bool
	}{
		{name: "zip archive", path: zipPath, wantZip: true},
		{name: "gzip stream", path: gzPath, wantGZip: true},
		{name: "bzip2 stream", path: bzip2FixturePath, wantBZip2: true},
		{name: "plain file", path: plainPath},
		{name: "missing file", path: filepath.Join(tmp, "missing.bin")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsZip(tt.path); got != tt.wantZip {
				t.Errorf("IsZip() = %v, want %v", got, tt.wantZip)
			}
			if got := IsGZip(tt.path); got != tt.wantGZip {
				t.Errorf("IsGZip() = %v, want %v", got, tt.wantGZip)
			}
			if got := IsBZip2(tt.path); got != tt.wantBZip2 {
				t.Errorf("IsBZip2() = %v, want %v", got, tt.wantBZip2)
			}
		})
	}
}
