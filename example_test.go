package handlekit_test

import (
	"fmt"
	"io"
	"strings"

	"github.com/gobeaver/handlekit"
)

func ExampleResolver_GetHandle() {
	r, _ := handlekit.New(&handlekit.Config{})

	// Back a logical identifier with an in-memory handle
	r.IDs().MapHandle("plate1.fake", handlekit.NewBytesHandle([]byte("pixel data")))

	h, _ := r.GetHandle("plate1.fake")
	data, _ := io.ReadAll(h)

	fmt.Println(string(data))
	// Output:
	// pixel data
}

func ExampleResolver_Classify() {
	r, _ := handlekit.New(&handlekit.Config{})

	fmt.Println(r.Classify("https://example.org/data/plate1.tif"))
	fmt.Println(r.Classify("/data/plate1.tif"))
	// Output:
	// url
	// file
}

func ExampleIDMap() {
	r, _ := handlekit.New(&handlekit.Config{})
	ids := r.IDs()

	// Redirect a logical identifier to the real path
	ids.MapID("plate1.fake", "/data/screens/plate1.tif")

	fmt.Println(ids.MappedID("plate1.fake"))
	fmt.Println(ids.MappedID("unmapped.tif"))
	// Output:
	// /data/screens/plate1.tif
	// unmapped.tif
}

func ExampleNewLocation() {
	loc := handlekit.NewLocation("http://example.org/data/screens/plate1.tif")

	fmt.Println(loc.Name())
	fmt.Println(loc.Parent())
	fmt.Println(loc.IsAbsolute())
	// Output:
	// plate1.tif
	// http://example.org/data/screens
	// true
}

func ExampleNewChildLocation() {
	loc := handlekit.NewChildLocation("http://example.org/data/screens", "plate1.tif")

	fmt.Println(loc.AbsolutePath())
	// Output:
	// http://example.org/data/screens/plate1.tif
}

func ExampleIsNotExist() {
	_, err := handlekit.GetHandle("/data/does-not-exist/plate1.tif")

	fmt.Println(handlekit.IsNotExist(err))
	// Output:
	// true
}

func ExampleCalculateChecksum() {
	sum, _ := handlekit.CalculateChecksum(strings.NewReader("Hello, World!"), handlekit.ChecksumMD5)

	fmt.Println(sum)
	// Output:
	// 65a8e27d8879283831b664bd8b7f0ad4
}

func ExampleCompositeChangeToken() {
	plate := handlekit.NewCallbackChangeToken()
	index := handlekit.NewCallbackChangeToken()
	combined := handlekit.NewCompositeChangeToken(plate, index)

	fmt.Println(combined.HasChanged())
	index.SignalChange()
	fmt.Println(combined.HasChanged())
	// Output:
	// false
	// true
}
