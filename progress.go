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

package edict

// Progress is a snapshot of a running operation. Progress values are
// produced repeatedly by the pipeline worker and consumed by an Observer.
// They are never persisted.
type Progress struct {
	// Message is an optional human-readable status. An empty message means
	// "same status as before, new counts".
	Message string

	// Current is the number of units completed so far. The unit depends on
	// the stage: KiB while downloading, lines while indexing.
	Current int

	// Max is the expected total number of units, or zero when unknown.
	Max int

	// Err is the terminal error for a failed run. It is only set on the
	// final Progress of a run and is nil for cancellation.
	Err error

	// Terminal reports that this is the final Progress of the run. Exactly
	// one terminal Progress is delivered per run.
	Terminal bool
}

// Observer receives Progress snapshots. The pipeline worker calls the
// observer synchronously and never blocks on anything else while doing so;
// observers that need delivery on a particular goroutine (e.g. a UI loop)
// must hand the value off themselves. An observer must not call back into
// the pipeline.
type Observer func(p Progress)

// Report calls the observer if it is non-nil.
func (o Observer) Report(p Progress) {
	if o != nil {
		o(p)
	}
}
