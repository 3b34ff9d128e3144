// Package handlekit resolves resource identifiers to random-access handles,
// treating local files and HTTP(S) URLs uniformly.
//
// An identifier is either a filesystem path or a URL. HandleKit inspects the
// identifier (and, for files, the leading bytes of the content) to decide how
// to open it, so callers never hard-code whether a dataset lives on disk,
// behind a web server, or inside a compressed container.
//
// # Locations
//
// A [Location] answers metadata queries about a resource without opening it
// for reading:
//
//	loc := handlekit.NewLocation("https://data.example.org/screens/plate1/")
//
//	if loc.Exists() {
//	    fmt.Println(loc.Name(), loc.LastModified())
//	}
//
//	// Directory-style queries work for both files and URLs.
//	for _, name := range loc.List() {
//	    fmt.Println(name)
//	}
//
// Locations are cheap values. Building one performs no I/O; each query method
// contacts the filesystem or the server on demand.
//
// # Handle Resolution
//
// [GetHandle] turns an identifier into a [Handle], an io.ReadSeeker with
// ReadAt and Length. Resolution picks the most specific match:
//
//   - an in-memory handle registered for the identifier
//   - an HTTP(S) URL, streamed with range requests where the server allows
//   - a registered container format, detected by content signature
//     (ZIP, gzip and bzip2 are built in)
//   - a plain local file
//
// Detection reads magic bytes rather than trusting file extensions, so a
// gzip-compressed file named plain.txt still decompresses transparently:
//
//	h, err := handlekit.GetHandle("acquisition_0412.ids")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Close()
//
//	buf := make([]byte, 1024)
//	_, err = h.ReadAt(buf, 4096)
//
// Additional container formats can be plugged in with [RegisterFormat].
//
// # Identifier Mapping
//
// The identifier map aliases the names a caller uses to the resources that
// actually get opened. Mapping an identifier to another filename redirects
// resolution; mapping it to a [Handle] short-circuits resolution entirely,
// which is how in-memory datasets are fed to code that only speaks
// identifiers:
//
//	handlekit.MapID("virtual.dat", "/tmp/materialized.dat")
//	handlekit.MapHandle("in-memory.dat", handlekit.NewBytesHandle(data))
//
//	h, _ := handlekit.GetHandle("in-memory.dat") // the BytesHandle, as-is
//
// # Watching for Changes
//
// Locations can be watched for modification. File-backed locations use
// filesystem notifications; URL-backed locations poll:
//
//	token, err := loc.Watch(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if token.HasChanged() {
//	    // reload
//	}
//
// # Error Handling
//
// Failures are reported as a [PathError] wrapping a sentinel, so callers can
// branch on the cause without string matching:
//
//	_, err := handlekit.GetHandle("missing.tif")
//	if handlekit.IsNotExist(err) {
//	    // resource does not exist
//	}
//
//	var pathErr *handlekit.PathError
//	if errors.As(err, &pathErr) {
//	    fmt.Printf("op: %s, path: %s\n", pathErr.Op, pathErr.Path)
//	}
//
// # Configuration
//
// HandleKit reads its settings from HANDLEKIT_* environment variables, or
// from a [Config] passed to [Init]:
//
//	cfg := &handlekit.Config{
//	    HTTPTimeoutSeconds: 30,
//	    HTTPUserAgent:      "acme-importer/2.1",
//	}
//	if err := handlekit.Init(cfg); err != nil {
//	    log.Fatal(err)
//	}
package handlekit
