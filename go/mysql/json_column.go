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
	"github.com/buger/jsonparser"
)

// parseJSONText parses a MYSQL_TYPE_JSON cell's decoded text into a
// Go value tree (spec.md §4.2.2, JSON row: "parse the decoded text
// into a JSON value"), using jsonparser rather than encoding/json to
// avoid reflection on this per-cell hot path — the same dependency
// vitess itself lists in its go.mod (SPEC_FULL.md §10).
func parseJSONText(raw []byte) (any, error) {
	value, dataType, _, err := jsonparser.Get(raw)
	if err != nil {
		return nil, WrapValueError(err, "could not parse JSON column value")
	}
	return decodeJSONValue(value, dataType)
}

func decodeJSONValue(value []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Number:
		return jsonparser.ParseFloat(value)
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Object:
		out := make(map[string]any)
		var outerErr error
		err := jsonparser.ObjectEach(value, func(key []byte, val []byte, vt jsonparser.ValueType, _ int) error {
			decoded, err := decodeJSONValue(val, vt)
			if err != nil {
				outerErr = err
				return err
			}
			out[string(key)] = decoded
			return nil
		})
		if err != nil {
			return nil, outerErr
		}
		return out, nil
	case jsonparser.Array:
		var out []any
		var outerErr error
		idx := 0
		jsonparser.ArrayEach(value, func(val []byte, vt jsonparser.ValueType, _ int, err error) {
			if err != nil {
				outerErr = err
				return
			}
			decoded, err := decodeJSONValue(val, vt)
			if err != nil {
				outerErr = err
				return
			}
			out = append(out, decoded)
			idx++
		})
		if outerErr != nil {
			return nil, outerErr
		}
		return out, nil
	default:
		return nil, NewValueError("unsupported JSON value type %v", dataType)
	}
}
