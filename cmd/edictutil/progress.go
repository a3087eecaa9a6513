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

package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/ianlewis/go-edict"
)

// consoleObserver renders pipeline progress on the terminal.
type consoleObserver struct {
	w io.Writer

	// counting is true when the previous write was an in-place count
	// line that the next message must move off of.
	counting bool
}

func newConsoleObserver(w io.Writer) *consoleObserver {
	return &consoleObserver{w: w}
}

// observe implements edict.Observer.
func (o *consoleObserver) observe(p edict.Progress) {
	if p.Message != "" {
		if o.counting {
			fmt.Fprintln(o.w)
			o.counting = false
		}
		fmt.Fprintln(o.w, p.Message)
		return
	}

	if p.Max > 0 {
		fmt.Fprintf(o.w, "\r  %s / %s (%d%%)    ",
			humanize.Comma(int64(p.Current)),
			humanize.Comma(int64(p.Max)),
			p.Current*100/p.Max,
		)
	} else {
		fmt.Fprintf(o.w, "\r  %s    ", humanize.Comma(int64(p.Current)))
	}
	o.counting = true
}
