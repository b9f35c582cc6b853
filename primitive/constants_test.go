// Copyright 2020 DataStax
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

package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion_String(t *testing.T) {
	tests := []struct {
		name string
		v    Version
		want string
	}{
		{"request", VersionRequest, "Version REQUEST [0x04]"},
		{"response", VersionResponse, "Version RESPONSE [0x84]"},
		{"unknown", Version(0x05), "Version ? [0X05]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestVersion_IsValid(t *testing.T) {
	assert.True(t, VersionRequest.IsValid())
	assert.True(t, VersionResponse.IsValid())
	assert.False(t, Version(0x05).IsValid())
}

func TestVersion_IsResponse(t *testing.T) {
	assert.False(t, VersionRequest.IsResponse())
	assert.True(t, VersionResponse.IsResponse())
}

func TestOpCode_String(t *testing.T) {
	assert.Equal(t, "OpCode QUERY [0x07]", OpCodeQuery.String())
	assert.Equal(t, "OpCode ? [0X20]", OpCode(0x20).String())
}

func TestOpCode_IsRequestResponse(t *testing.T) {
	assert.True(t, OpCodeQuery.IsRequest())
	assert.False(t, OpCodeQuery.IsResponse())
	assert.True(t, OpCodeResult.IsResponse())
	assert.False(t, OpCodeResult.IsRequest())
}

func TestDataTypeCode_IsValid(t *testing.T) {
	assert.True(t, DataTypeCodeInt.IsValid())
	assert.True(t, DataTypeCodeDuration.IsValid())
	assert.True(t, DataTypeCodeList.IsValid())
	assert.False(t, DataTypeCode(0x00FF).IsValid())
}
