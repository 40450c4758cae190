// Package file reads configuration definition files for the file provider.
//
// A Fetcher reads its file once, at construction time, and hands out copies of
// the cached bytes. Construction fails when the path does not exist, points to
// a directory or exceeds MaxSize.
//
// Usage:
//
//	fetcher, err := file.New("/etc/app/default.yaml")
//	if errors.Is(err, fs.ErrNotExist) {
//	    // no definition file for this dataset
//	}
//	data, err := fetcher.Fetch()
//
// NewFetcher returns the same constructor in the deferred, Fx-friendly form.
package file
