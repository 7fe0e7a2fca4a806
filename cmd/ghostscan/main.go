// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command ghostscan runs the full host-compromise check catalog and
// prints a colorized report to stdout. It takes no arguments, reads
// nothing from stdin, and always exits 0 — a finding is reported in the
// text of the output, never in the process exit code, so ghostscan can
// be dropped into any automation without special-casing its result.
package main

import (
	"os"

	"github.com/ree4pwn/ghostscan/internal/detectors"
	"github.com/ree4pwn/ghostscan/internal/ghostlog"
	"github.com/ree4pwn/ghostscan/internal/output"
)

func main() {
	ghostlog.Infof("starting scan: %d checks registered", len(detectors.Registry))
	output.RenderAll(os.Stdout, detectors.Registry)
	ghostlog.Infof("scan complete")
}
