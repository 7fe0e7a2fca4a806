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

// Package scanner provides the interface shared by every ghostscan detector
// plugin, plus the driver that runs them in registry order.
package scanner

import (
	"sort"
	"strings"
)

// Kind identifies which of the three ScanOutcome variants an Outcome holds.
type Kind int

// Kind values.
const (
	// KindClean means the detector made a determination and found nothing.
	KindClean Kind = iota
	// KindFindings means the detector produced one or more evidence lines.
	KindFindings
	// KindError means the detector could not make any determination.
	KindError
)

// Outcome is the result contract every detector returns. It is never both
// Findings and Error at once: a detector with partial findings and partial
// collection errors reports Findings whose last line is
// "collection_errors=<joined>"; a detector with only errors and no findings
// reports Error.
type Outcome struct {
	Kind Kind
	Text string
}

// Clean reports that a detector ran to completion and found nothing.
func Clean() Outcome {
	return Outcome{Kind: KindClean}
}

// Err reports a collection or parsing failure that prevented the detector
// from producing a definitive verdict.
func Err(text string) Outcome {
	return Outcome{Kind: KindError, Text: text}
}

// Findings reports one or more evidence lines, sorted before emission as
// required by the "diff tools over runs are meaningful" compositional rule.
// All lines are sorted together, so any empty line would sort first;
// callers pass only non-empty finding lines here. Collection errors (if
// any) should be appended via FindingsWithErrors.
func Findings(lines []string) Outcome {
	sorted := append([]string(nil), lines...)
	sort.Strings(sorted)
	return Outcome{Kind: KindFindings, Text: strings.Join(sorted, "\n")}
}

// FindingsWithErrors reports findings plus a trailing collection_errors= line
// aggregating non-fatal per-record failures. The finding lines are sorted;
// the collection_errors line always comes last, regardless of sort order.
func FindingsWithErrors(lines []string, errs []string) Outcome {
	if len(lines) == 0 {
		return Err(strings.Join(errs, ", "))
	}
	sorted := append([]string(nil), lines...)
	sort.Strings(sorted)
	if len(errs) > 0 {
		sorted = append(sorted, "collection_errors="+strings.Join(errs, ", "))
	}
	return Outcome{Kind: KindFindings, Text: strings.Join(sorted, "\n")}
}

// Resolve is the common tail of a detector Run(): given accumulated finding
// lines and accumulated non-fatal collection errors, produce the correct
// Outcome variant per the universal tie-break rules (absent finding + no
// errors = Clean; absent finding + errors = Error; any finding = Findings,
// with errors folded into a trailing collection_errors= line).
func Resolve(lines []string, errs []string) Outcome {
	if len(lines) == 0 {
		if len(errs) == 0 {
			return Clean()
		}
		return Err(strings.Join(errs, ", "))
	}
	return FindingsWithErrors(lines, errs)
}

// Scanner is a compile-time descriptor pairing a stable display name with
// the nullary function that performs the scan. Order in a Registry
// determines report order and is part of the user contract.
type Scanner struct {
	Name string
	Run  func() Outcome
}
