package handlekit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func BenchmarkResolver(b *testing.B) {
	tmpDir := b.TempDir()
	content := strings.Repeat("Hello, World! ", 100) // ~1.4KB of content

	plainPath := filepath.Join(tmpDir, "bench.dat")
	if err := os.WriteFile(plainPath, []byte(content), 0644); err != nil {
		b.Fatalf("Failed to create fixture: %v", err)
	}

	r, err := New(&Config{})
	if err != nil {
		b.Fatalf("Failed to create resolver: %v", err)
	}
	r.IDs().MapID("bench.fake", plainPath)
	r.IDs().MapHandle("mem.fake", NewBytesHandle([]byte(content)))

	b.Run("mappedid", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = r.IDs().MappedID("bench.fake")
		}
	})

	b.Run("classify", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = r.Classify(plainPath)
		}
	})

	b.Run("gethandle_file", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			h, err := r.GetHandle(plainPath)
			if err != nil {
				b.Fatalf("GetHandle failed: %v", err)
			}
			h.Close()
		}
	})

	b.Run("gethandle_mapped", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := r.GetHandle("mem.fake"); err != nil {
				b.Fatalf("GetHandle failed: %v", err)
			}
		}
	})
}

func BenchmarkBytesHandleReadAt(b *testing.B) {
	data := []byte(strings.Repeat("0123456789abcdef", 4096)) // 64KB
	h := NewBytesHandle(data)
	defer h.Close()

	buf := make([]byte, 4096)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		off := int64((i * 4096) % (len(data) - 4096))
		if _, err := h.ReadAt(buf, off); err != nil {
			b.Fatalf("ReadAt failed: %v", err)
		}
	}
}

func BenchmarkSniffHeader(b *testing.B) {
	path := filepath.Join(b.TempDir(), "bench.gz")
	writeGZip(b, path, strings.Repeat("x", 1024))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if sniffHeader(path) == nil {
			b.Fatal("sniffHeader returned nil")
		}
	}
}

func BenchmarkGuessContentType(b *testing.B) {
	path := filepath.Join(b.TempDir(), "bench.tif")
	if err := os.WriteFile(path, []byte("II*\x00"), 0644); err != nil {
		b.Fatalf("Failed to create fixture: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if GuessContentType(path) == "" {
			b.Fatal("GuessContentType returned empty")
		}
	}
}
