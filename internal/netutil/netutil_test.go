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

package netutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableSkipsHeaderAndParsesListen(t *testing.T) {
	content := "  sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode\n" +
		"   0: 0100007F:1F90 00000000:0000 0A 00000000:00000000 00:00000000 00000000     0        0 12345 1 0000000000000000 100 0 0 10 0\n"

	path := filepath.Join(t.TempDir(), "tcp")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sockets, err := ParseTable(path)
	require.NoError(t, err)
	require.Len(t, sockets, 1)
	assert.Equal(t, "127.0.0.1", sockets[0].LocalAddr.String())
	assert.EqualValues(t, 8080, sockets[0].LocalPort)
	assert.Equal(t, StateListen, sockets[0].State)
	assert.EqualValues(t, 12345, sockets[0].Inode)
}

func TestParseTableMissingFileIsNotAnError(t *testing.T) {
	sockets, err := ParseTable(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.NoError(t, err)
	assert.Nil(t, sockets)
}
