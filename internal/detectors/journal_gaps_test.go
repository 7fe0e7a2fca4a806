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

package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJournalTimestampGapsFlagsLongSilence(t *testing.T) {
	findings := journalTimestampGaps([]uint64{0, 5_000_000_000})
	assert.Len(t, findings, 1)
	assert.Contains(t, findings[0], "gap_secs=5000")
}

func TestJournalTimestampGapsCleanWhenContinuous(t *testing.T) {
	assert.Empty(t, journalTimestampGaps([]uint64{0, 1_000_000, 2_000_000}))
}

func TestJournalTimestampGapsFewerThanTwoEntries(t *testing.T) {
	assert.Empty(t, journalTimestampGaps([]uint64{42}))
	assert.Empty(t, journalTimestampGaps(nil))
}

func TestJournalTimestampGapsSortsUnorderedInput(t *testing.T) {
	findings := journalTimestampGaps([]uint64{5_000_000_000, 0})
	assert.Len(t, findings, 1)
	assert.Contains(t, findings[0], "gap_start=0")
}
