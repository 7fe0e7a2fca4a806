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

func TestDecodeTaintFlagsKnownBit(t *testing.T) {
	assert.Equal(t, []string{"unsigned_module"}, decodeTaintFlags(1<<13))
}

func TestDecodeTaintFlagsUnknownBitFallsBackToBitLabel(t *testing.T) {
	assert.Equal(t, []string{"bit_3"}, decodeTaintFlags(1<<3))
}

func TestDecodeTaintFlagsMultipleBitsSorted(t *testing.T) {
	flags := decodeTaintFlags((1 << 12) | (1 << 13) | (1 << 14))
	assert.Equal(t, []string{"out_of_tree_module", "soft_lockup_occurred", "unsigned_module"}, flags)
}

func TestDecodeTaintFlagsZeroValue(t *testing.T) {
	assert.Empty(t, decodeTaintFlags(0))
}
