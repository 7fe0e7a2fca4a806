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

func TestParseMapsLineFlagsLargeAnonymousRx(t *testing.T) {
	// 0x7f0000000000-0x7f0000400000 is a 4 MiB region, well past the 2 MiB
	// threshold, with no path field at all (anonymous).
	region, size, ok := parseMapsLine("7f0000000000-7f0000400000 r-xp 00000000 00:00 0")
	assert.True(t, ok)
	assert.Equal(t, "7f0000000000-7f0000400000", region)
	assert.Equal(t, uint64(4*1024*1024), size)
}

func TestParseMapsLineIgnoresNamedMapping(t *testing.T) {
	_, _, ok := parseMapsLine("7f0000000000-7f0000400000 r-xp 00000000 08:01 123 /usr/lib/libc.so")
	assert.False(t, ok)
}

func TestParseMapsLineIgnoresNonExecutable(t *testing.T) {
	_, _, ok := parseMapsLine("7f0000000000-7f0000400000 rw-p 00000000 00:00 0")
	assert.False(t, ok)
}

func TestParseMapsLineIgnoresSmallRegion(t *testing.T) {
	_, _, ok := parseMapsLine("7f0000000000-7f0000001000 r-xp 00000000 00:00 0")
	assert.False(t, ok)
}
