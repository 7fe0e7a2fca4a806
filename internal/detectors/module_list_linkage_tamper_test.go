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

func TestModuleCountMismatchWithinSlackIsClean(t *testing.T) {
	assert.False(t, moduleCountMismatch(50, 49))
	assert.False(t, moduleCountMismatch(50, 48))
}

func TestModuleCountMismatchBeyondSlackFlags(t *testing.T) {
	assert.True(t, moduleCountMismatch(50, 47))
	assert.True(t, moduleCountMismatch(40, 50))
}
