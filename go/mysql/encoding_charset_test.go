// Copyright 2026 SingleStore, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeText_Binary(t *testing.T) {
	s, err := decodeText([]byte{0xff, 0xfe}, "binary", "")
	require.NoError(t, err)
	assert.Equal(t, string([]byte{0xff, 0xfe}), s)
}

func TestDecodeText_UTF8(t *testing.T) {
	s, err := decodeText([]byte("héllo"), "utf8mb4", "strict")
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)
}

func TestDecodeText_Latin1(t *testing.T) {
	// 0xe9 in latin1/windows-1252 is 'é'.
	s, err := decodeText([]byte{0xe9}, "latin1", "strict")
	require.NoError(t, err)
	assert.Equal(t, "é", s)
}

func TestDecodeText_UnknownCharsetFallsBackToWindows1252(t *testing.T) {
	s, err := decodeText([]byte{0x41}, "totally-made-up-charset", "strict")
	require.NoError(t, err)
	assert.Equal(t, "A", s)
}
