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

package fetch_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-edict"
	"github.com/ianlewis/go-edict/fetch"
	"github.com/ianlewis/go-edict/internal/testutil"
)

// serveBytes starts a test server that responds with b.
func serveBytes(t *testing.T, b []byte) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(b)
	}))
	t.Cleanup(server.Close)
	return server
}

// TestFile_Gzip tests downloading and decompressing a gzip source.
func TestFile_Gzip(t *testing.T) {
	t.Parallel()

	corpus := testutil.MakeCorpus(testutil.MakeLines(500))
	server := serveBytes(t, testutil.MakeGzip(corpus))

	src := edict.Source{
		Name:         "EDICT",
		URL:          server.URL,
		Format:       edict.FormatGzip,
		ExpectedSize: int64(len(corpus)),
	}
	path := filepath.Join(t.TempDir(), "edict")

	var messages []string
	err := fetch.File(context.Background(), src, path, fetch.Options{
		Observer: func(p edict.Progress) {
			if p.Message != "" {
				messages = append(messages, p.Message)
			}
		},
	})
	if err != nil {
		t.Fatalf("File: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, corpus) {
		t.Fatal("downloaded file does not match source")
	}

	expected := []string{"Connecting", "Downloading EDICT"}
	if len(messages) != len(expected) {
		t.Fatalf("got messages %q, want %q", messages, expected)
	}
	for i := range expected {
		if messages[i] != expected[i] {
			t.Fatalf("got messages %q, want %q", messages, expected)
		}
	}
}

// TestFile_Dictzip tests downloading and decompressing a dictzip source.
func TestFile_Dictzip(t *testing.T) {
	t.Parallel()

	corpus := testutil.MakeCorpus(testutil.MakeLines(500))

	spool, err := os.CreateTemp(t.TempDir(), "edict.*.dz")
	if err != nil {
		t.Fatal(err)
	}
	defer spool.Close()
	z, err := dictzip.NewWriter(spool)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := z.Write(corpus); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := z.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	compressed, err := os.ReadFile(spool.Name())
	if err != nil {
		t.Fatal(err)
	}
	server := serveBytes(t, compressed)

	src := edict.Source{
		Name:         "EDICT",
		URL:          server.URL,
		Format:       edict.FormatDictzip,
		ExpectedSize: int64(len(corpus)),
	}
	path := filepath.Join(t.TempDir(), "edict")

	if err := fetch.File(context.Background(), src, path, fetch.Options{}); err != nil {
		t.Fatalf("File: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, corpus) {
		t.Fatal("downloaded file does not match source")
	}
}

// TestFile_Status tests non-success HTTP responses.
func TestFile_Status(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	src := edict.Source{Name: "EDICT", URL: server.URL, Format: edict.FormatGzip}
	path := filepath.Join(t.TempDir(), "edict")

	err := fetch.File(context.Background(), src, path, fetch.Options{})
	if !errors.Is(err, fetch.ErrStatus) {
		t.Fatalf("File: got %v, want %v", err, fetch.ErrStatus)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("partial file still exists: %v", err)
	}
}

// TestFile_BadGzip tests that a corrupt stream removes the partial file.
func TestFile_BadGzip(t *testing.T) {
	t.Parallel()

	server := serveBytes(t, []byte("this is not gzip"))

	src := edict.Source{Name: "EDICT", URL: server.URL, Format: edict.FormatGzip}
	path := filepath.Join(t.TempDir(), "edict")

	if err := fetch.File(context.Background(), src, path, fetch.Options{}); err == nil {
		t.Fatal("File: expected error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("partial file still exists: %v", err)
	}
}

// TestFile_Cancel tests that cancellation removes the partial file.
func TestFile_Cancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	// Large enough that decompression spans several progress reports.
	corpus := testutil.MakeCorpus(testutil.MakeLines(50000))
	server := serveBytes(t, testutil.MakeGzip(corpus))

	src := edict.Source{
		Name:         "EDICT",
		URL:          server.URL,
		Format:       edict.FormatGzip,
		ExpectedSize: int64(len(corpus)),
	}
	path := filepath.Join(t.TempDir(), "edict")

	err := fetch.File(ctx, src, path, fetch.Options{
		Observer: func(p edict.Progress) {
			if p.Message == "" {
				// First byte-count report; cancel mid-copy.
				cancel()
			}
		},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("File: got %v, want %v", err, context.Canceled)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("partial file still exists: %v", err)
	}
}

// TestDir tests downloading and extracting a zip archive source.
func TestDir(t *testing.T) {
	t.Parallel()

	files := map[string][]byte{
		"segments":     []byte("segment data"),
		"deletable":    []byte("x"),
		"sub/prx.data": []byte("postings"),
	}
	server := serveBytes(t, testutil.MakeZip(files))

	src := edict.Source{Name: "EDICT index", URL: server.URL, Format: edict.FormatZip}
	dir := filepath.Join(t.TempDir(), "index")

	if err := fetch.Dir(context.Background(), src, dir, fetch.Options{}); err != nil {
		t.Fatalf("Dir: %v", err)
	}

	for name, expected := range files {
		got, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("ReadFile(%q): %v", name, err)
		}
		if !bytes.Equal(got, expected) {
			t.Fatalf("entry %q = %q, want %q", name, got, expected)
		}
	}
}

// TestDir_BadArchive tests that a corrupt archive removes the target
// directory.
func TestDir_BadArchive(t *testing.T) {
	t.Parallel()

	server := serveBytes(t, []byte("this is not a zip archive"))

	src := edict.Source{Name: "EDICT index", URL: server.URL, Format: edict.FormatZip}
	dir := filepath.Join(t.TempDir(), "index")

	if err := fetch.Dir(context.Background(), src, dir, fetch.Options{}); err == nil {
		t.Fatal("Dir: expected error")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("partial directory still exists: %v", err)
	}
}

// TestDir_UnsafeEntry tests that archive entries escaping the target
// directory are rejected.
func TestDir_UnsafeEntry(t *testing.T) {
	t.Parallel()

	server := serveBytes(t, testutil.MakeZip(map[string][]byte{
		"../escape": []byte("x"),
	}))

	src := edict.Source{Name: "EDICT index", URL: server.URL, Format: edict.FormatZip}
	dir := filepath.Join(t.TempDir(), "index")

	if err := fetch.Dir(context.Background(), src, dir, fetch.Options{}); err == nil {
		t.Fatal("Dir: expected error")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("partial directory still exists: %v", err)
	}
}
