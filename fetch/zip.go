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

package fetch

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ianlewis/go-edict"
	"github.com/ianlewis/go-edict/internal/ioprogress"
)

// Dir downloads the zip archive source src and extracts every entry under
// dir. It is Download followed by Unzip.
func Dir(ctx context.Context, src edict.Source, dir string, opts Options) error {
	spool, err := Download(ctx, src, opts)
	if err != nil {
		return err
	}
	defer removeQuietly(spool.Name())
	defer spool.Close()

	return Unzip(ctx, spool, src, dir, opts)
}

// Download fetches src to a temporary spool file and returns the file
// positioned at the start. The caller removes the file. Progress counts
// downloaded KiB against the response's declared length.
func Download(ctx context.Context, src edict.Source, opts Options) (*os.File, error) {
	opts.Observer.Report(edict.Progress{Message: "Connecting"})

	body, size, err := get(ctx, src.URL, opts.client())
	if err != nil {
		return nil, err
	}
	defer body.Close()

	opts.Observer.Report(edict.Progress{
		Message: fmt.Sprintf("Downloading %s", src.Name),
		Max:     int(size / 1024),
	})
	return spoolBody(ctx, body, size, opts)
}

// Unzip extracts every entry of the zip archive in spool under dir,
// creating dir if needed. An entry's declared uncompressed size scales its
// unpack progress; entries without one fall back to the source's expected
// size.
//
// Any failure after the directory is created removes the whole directory:
// a partially extracted index directory would otherwise pass the
// completeness check and never be repaired.
func Unzip(ctx context.Context, spool *os.File, src edict.Source, dir string, opts Options) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w %q: %w", ErrSetup, dir, err)
	}

	opts.Observer.Report(edict.Progress{
		Message: fmt.Sprintf("Unpacking %s", src.Name),
	})

	if err := unzip(ctx, spool, src, dir, opts); err != nil {
		removeDirQuietly(dir)
		return err
	}
	return nil
}

func unzip(ctx context.Context, spool *os.File, src edict.Source, dir string, opts Options) error {
	fi, err := spool.Stat()
	if err != nil {
		return fmt.Errorf("checking spool file: %w", err)
	}
	zr, err := zip.NewReader(spool, fi.Size())
	if err != nil {
		return fmt.Errorf("reading zip %q: %w", src.URL, err)
	}

	for _, entry := range zr.File {
		if err := extractEntry(ctx, entry, dir, src.ExpectedSize, opts.Observer); err != nil {
			return err
		}
	}
	return nil
}

// extractEntry extracts one archive entry into dir.
func extractEntry(ctx context.Context, entry *zip.File, dir string, fallbackSize int64, observer edict.Observer) error {
	name := entry.Name
	if !filepath.IsLocal(name) {
		return fmt.Errorf("%w: unsafe entry name %q", errFormat, name)
	}
	if entry.FileInfo().IsDir() {
		if err := os.MkdirAll(filepath.Join(dir, name), dirPerm); err != nil {
			return fmt.Errorf("creating %q: %w", name, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), dirPerm); err != nil {
		return fmt.Errorf("creating %q: %w", name, err)
	}

	size := int64(entry.UncompressedSize64)
	if size == 0 {
		size = fallbackSize
	}
	observer.Report(edict.Progress{Max: int(size / 1024)})

	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("opening entry %q: %w", name, err)
	}
	defer rc.Close()

	return copyToFile(ctx, filepath.Join(dir, name), rc, size, observer)
}

// spoolBody copies the response body to a temporary file and returns it
// positioned at the start. The caller removes the file.
func spoolBody(ctx context.Context, body io.Reader, size int64, opts Options) (*os.File, error) {
	spool, err := os.CreateTemp("", "edict-fetch-*")
	if err != nil {
		return nil, fmt.Errorf("creating spool file: %w", err)
	}

	if _, err := ioprogress.Copy(ctx, spool, body, size, opts.Observer); err != nil {
		spool.Close()
		removeQuietly(spool.Name())
		return nil, err
	}
	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		spool.Close()
		removeQuietly(spool.Name())
		return nil, fmt.Errorf("rewinding spool file: %w", err)
	}
	return spool, nil
}

// removeDirQuietly removes a directory tree, logging failures instead of
// escalating them past the error that triggered cleanup.
func removeDirQuietly(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("failed to remove directory", "dir", dir, "err", err)
	}
}
