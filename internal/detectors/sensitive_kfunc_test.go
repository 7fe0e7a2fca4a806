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

func TestTraceableSensitiveKfuncsStripsOffsetSuffix(t *testing.T) {
	findings := traceableSensitiveKfuncs("commit_creds+0x0/0x40\n")
	assert.Len(t, findings, 1)
	assert.Contains(t, findings[0], "kfunc=commit_creds")
}

func TestTraceableSensitiveKfuncsIgnoresUnrelatedSymbols(t *testing.T) {
	assert.Empty(t, traceableSensitiveKfuncs("vfs_read+0x0/0x100\n"))
}

func TestTraceableSensitiveKfuncsMultipleMatches(t *testing.T) {
	findings := traceableSensitiveKfuncs("commit_creds+0x0/0x40\noverride_creds+0x0/0x20\n")
	assert.Len(t, findings, 2)
}
