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

// Package ioprogress implements a streaming copy primitive with periodic
// progress reporting and cooperative cancellation.
package ioprogress

import (
	"context"
	"fmt"
	"io"

	"github.com/ianlewis/go-edict"
)

// ChunkSize is the read buffer size. Cancellation latency is bounded by one
// chunk read.
const ChunkSize = 32 * 1024

// reportEvery is the number of bytes between progress reports.
const reportEvery = ChunkSize * 8

// Copy copies src to dst in ChunkSize chunks. Every reportEvery bytes it
// reports the number of KiB copied so far; max is scaled from expectedSize
// when it is positive. The context is checked after each chunk is read and
// written; no partial chunk is written after cancellation is observed. On
// success the returned count equals the number of bytes read from src. The
// final report is not guaranteed to reach max: a trailing partial interval
// is not separately reported.
func Copy(ctx context.Context, dst io.Writer, src io.Reader, expectedSize int64, observer edict.Observer) (int64, error) {
	maxKiB := 0
	if expectedSize > 0 {
		maxKiB = int(expectedSize / 1024)
	}

	var written int64
	countdown := reportEvery
	buf := make([]byte, ChunkSize)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if err := ctx.Err(); err != nil {
				//nolint:wrapcheck // cancellation is not wrapped into an error chain.
				return written, err
			}
			wn, writeErr := dst.Write(buf[:n])
			written += int64(wn)
			if writeErr != nil {
				return written, fmt.Errorf("writing: %w", writeErr)
			}
			if wn < n {
				return written, fmt.Errorf("writing: %w", io.ErrShortWrite)
			}

			countdown -= n
			if countdown <= 0 {
				observer.Report(edict.Progress{
					Current: int(written / 1024),
					Max:     maxKiB,
				})
				countdown = reportEvery
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("reading: %w", readErr)
		}
		if err := ctx.Err(); err != nil {
			//nolint:wrapcheck // cancellation is not wrapped into an error chain.
			return written, err
		}
	}
}
