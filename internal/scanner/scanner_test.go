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

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClean(t *testing.T) {
	out := Resolve(nil, nil)
	assert.Equal(t, KindClean, out.Kind)
	assert.Empty(t, out.Text)
}

func TestResolveErrorOnly(t *testing.T) {
	out := Resolve(nil, []string{"boom", "bang"})
	assert.Equal(t, KindError, out.Kind)
	assert.Equal(t, "boom, bang", out.Text)
}

func TestResolveFindingsSorted(t *testing.T) {
	out := Resolve([]string{"zzz=1", "aaa=2"}, nil)
	assert.Equal(t, KindFindings, out.Kind)
	assert.Equal(t, "aaa=2\nzzz=1", out.Text)
}

func TestResolveFindingsWithTrailingCollectionErrors(t *testing.T) {
	out := Resolve([]string{"zzz=1", "aaa=2"}, []string{"read failed"})
	assert.Equal(t, KindFindings, out.Kind)
	assert.Equal(t, "aaa=2\nzzz=1\ncollection_errors=read failed", out.Text)
}

func TestFindingsWithErrorsNoFindingsBecomesError(t *testing.T) {
	out := FindingsWithErrors(nil, []string{"cannot enumerate /proc"})
	assert.Equal(t, KindError, out.Kind)
	assert.Equal(t, "cannot enumerate /proc", out.Text)
}
