// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fetch downloads remote dictionary sources and unpacks them onto
// local storage.
//
// Single-file sources (gzip, dictzip) decompress to one destination file.
// Zip sources extract every archive entry under a destination directory.
// Both variants report progress through an observer and poll the context
// for cancellation at chunk granularity. A failed or cancelled fetch
// removes its partial output; a fetch either completes or leaves nothing.
package fetch

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-edict"
	"github.com/ianlewis/go-edict/internal/ioprogress"
)

const dirPerm = 0o750

// ErrSetup indicates that the target directory could not be created.
// Nothing was downloaded or written when it is returned.
var ErrSetup = errors.New("cannot create target directory")

// ErrStatus indicates a non-success HTTP response.
var ErrStatus = errors.New("unexpected HTTP status")

// errFormat indicates a source format the variant cannot handle.
var errFormat = errors.New("unsupported source format")

// Options configure a fetch.
type Options struct {
	// Client is the HTTP client used for the download. Defaults to
	// http.DefaultClient.
	Client *http.Client

	// Observer receives progress snapshots. May be nil.
	Observer edict.Observer
}

func (o *Options) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return http.DefaultClient
}

// File downloads the single-file source src and decompresses it to path.
// Download progress counts decompressed KiB against the source's expected
// uncompressed size.
func File(ctx context.Context, src edict.Source, path string, opts Options) error {
	opts.Observer.Report(edict.Progress{Message: "Connecting"})

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("%w %q: %w", ErrSetup, filepath.Dir(path), err)
	}

	body, size, err := get(ctx, src.URL, opts.client())
	if err != nil {
		return err
	}
	defer body.Close()

	opts.Observer.Report(edict.Progress{
		Message: fmt.Sprintf("Downloading %s", src.Name),
		Max:     int(src.ExpectedSize / 1024),
	})

	switch src.Format {
	case edict.FormatGzip:
		zr, err := gzip.NewReader(body)
		if err != nil {
			return fmt.Errorf("reading gzip stream: %w", err)
		}
		defer zr.Close()
		return copyToFile(ctx, path, zr, src.ExpectedSize, opts.Observer)
	case edict.FormatDictzip:
		// The dictzip reader needs random access; spool the download
		// before decompressing.
		spool, err := spoolBody(ctx, body, size, opts)
		if err != nil {
			return err
		}
		defer removeQuietly(spool.Name())
		defer spool.Close()

		zr, err := dictzip.NewReader(spool)
		if err != nil {
			return fmt.Errorf("reading dictzip %q: %w", src.URL, err)
		}
		return copyToFile(ctx, path, zr, src.ExpectedSize, opts.Observer)
	default:
		return fmt.Errorf("%w: %v", errFormat, src.Format)
	}
}

// get issues the download request and validates the response status. The
// caller owns the returned body.
func get(ctx context.Context, url string, client *http.Client) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building request for %q: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching %q: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("%w fetching %q: %s", ErrStatus, url, resp.Status)
	}
	return resp.Body, resp.ContentLength, nil
}

// copyToFile copies r to a newly created file at path. The file is removed
// on any error, including cancellation.
func copyToFile(ctx context.Context, path string, r io.Reader, expectedSize int64, observer edict.Observer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}

	if _, err := ioprogress.Copy(ctx, f, r, expectedSize, observer); err != nil {
		f.Close()
		removeQuietly(path)
		return err
	}
	if err := f.Close(); err != nil {
		removeQuietly(path)
		return fmt.Errorf("closing %q: %w", path, err)
	}
	return nil
}

// removeQuietly removes path, logging failures instead of escalating them
// past the error that triggered cleanup.
func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove partial download", "path", path, "err", err)
	}
}
