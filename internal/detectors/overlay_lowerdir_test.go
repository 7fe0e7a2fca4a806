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

func TestOutsideStorageLowerdirsFlagsForeignPath(t *testing.T) {
	opts := "lowerdir=/var/lib/docker/overlay2/abc/diff:/tmp/evil-layer"
	dirs := outsideStorageLowerdirs(opts)
	assert.Equal(t, []string{"/tmp/evil-layer"}, dirs)
}

func TestOutsideStorageLowerdirsAllUnderStorageRootIsClean(t *testing.T) {
	opts := "lowerdir=/var/lib/docker/containers/abc/diff:/var/lib/docker/overlay2/def/diff"
	assert.Empty(t, outsideStorageLowerdirs(opts))
}

func TestOutsideStorageLowerdirsNoLowerdirOption(t *testing.T) {
	assert.Empty(t, outsideStorageLowerdirs("upperdir=/var/lib/docker/overlay2/abc/upper"))
}
