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

func TestParseKallsymsExtractsAddresses(t *testing.T) {
	content := "ffffffff81000000 T _text\n" +
		"ffffffff81e00000 T _etext\n" +
		"ffffffff81400000 R sys_call_table\n"
	syms := parseKallsyms(content)
	assert.Equal(t, uint64(0xffffffff81000000), syms["_text"])
	assert.Equal(t, uint64(0xffffffff81e00000), syms["_etext"])
	assert.Equal(t, uint64(0xffffffff81400000), syms["sys_call_table"])
}

func TestParseKallsymsIgnoresMalformedLines(t *testing.T) {
	syms := parseKallsyms("not enough fields\n\nffffffff81000000 T _text\n")
	assert.Len(t, syms, 1)
	assert.Equal(t, uint64(0xffffffff81000000), syms["_text"])
}

func TestParseKallsymsFirstOccurrenceWins(t *testing.T) {
	content := "ffffffff81000000 T _text\nffffffff82000000 T _text\n"
	syms := parseKallsyms(content)
	assert.Equal(t, uint64(0xffffffff81000000), syms["_text"])
}
