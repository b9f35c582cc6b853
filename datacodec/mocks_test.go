// Copyright 2021 DataStax
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

package datacodec

import (
	"github.com/nativecql/cql/datatype"
	"github.com/stretchr/testify/mock"
)

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) getElem(index int, key interface{}) (interface{}, error) {
	args := m.Called(index, key)
	return args.Get(0), args.Error(1)
}

type mockKeyValueExtractor struct {
	mock.Mock
}

func (m *mockKeyValueExtractor) getElem(index int, key interface{}) (interface{}, error) {
	args := m.Called(index, key)
	return args.Get(0), args.Error(1)
}

func (m *mockKeyValueExtractor) getKey(index int) interface{} {
	args := m.Called(index)
	return args.Get(0)
}

type mockInjector struct {
	mock.Mock
}

func (m *mockInjector) zeroElem(index int, key interface{}) (interface{}, error) {
	args := m.Called(index, key)
	return args.Get(0), args.Error(1)
}

func (m *mockInjector) setElem(index int, key, value interface{}, keyWasNull, valueWasNull bool) error {
	args := m.Called(index, key, value, keyWasNull, valueWasNull)
	return args.Error(0)
}

type mockKeyValueInjector struct {
	mock.Mock
}

func (m *mockKeyValueInjector) zeroElem(index int, key interface{}) (interface{}, error) {
	args := m.Called(index, key)
	return args.Get(0), args.Error(1)
}

func (m *mockKeyValueInjector) setElem(index int, key, value interface{}, keyWasNull, valueWasNull bool) error {
	args := m.Called(index, key, value, keyWasNull, valueWasNull)
	return args.Error(0)
}

func (m *mockKeyValueInjector) zeroKey(index int) (interface{}, error) {
	args := m.Called(index)
	return args.Get(0), args.Error(1)
}

type mockCodec struct {
	mock.Mock
}

func (m *mockCodec) Encode(source interface{}) ([]byte, error) {
	args := m.Called(source)
	var dest []byte
	if v := args.Get(0); v != nil {
		dest = v.([]byte)
	}
	return dest, args.Error(1)
}

func (m *mockCodec) Decode(source []byte, dest interface{}) (bool, error) {
	args := m.Called(source, dest)
	return args.Bool(0), args.Error(1)
}

func (m *mockCodec) DataType() datatype.DataType {
	args := m.Called()
	return args.Get(0).(datatype.DataType)
}
