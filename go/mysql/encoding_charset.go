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
	"sync"

	log "github.com/golang/glog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// mysqlToGoCharset maps MySQL character-set names that htmlindex
// doesn't already recognize onto a golang.org/x/text encoding name.
// Character decoding itself is delegated entirely to golang.org/x/text
// (spec.md §1: "character decoding is delegated"; this module does
// not re-implement any conversion tables).
var mysqlToGoCharset = map[string]string{
	"utf8":    "utf-8",
	"utf8mb4": "utf-8",
	"ascii":   "windows-1252",
	"latin1":  "windows-1252",
	"gbk":     "gbk",
}

var charsetCache sync.Map // string -> encoding.Encoding

// lookupCharset resolves a MySQL character-set name to a
// golang.org/x/text encoding.Encoding. "binary" is handled by the
// caller before reaching here (it means "no decoding"). Unknown
// charsets fall back to charmap.Windows1252 (a superset-safe,
// single-byte decoding) and log a warning once, matching SPEC_FULL.md
// §9's sparing use of glog.
func lookupCharset(name string) encoding.Encoding {
	if v, ok := charsetCache.Load(name); ok {
		return v.(encoding.Encoding)
	}

	goName := name
	if mapped, ok := mysqlToGoCharset[name]; ok {
		goName = mapped
	}

	enc, err := htmlindex.Get(goName)
	if err != nil {
		log.Warningf("mysql: unrecognized column character set %q, decoding as windows-1252", name)
		enc = charmap.Windows1252
	}
	charsetCache.Store(name, enc)
	return enc
}

// decodeText decodes raw bytes from a column's declared encoding into
// a Go string, applying encodingErrors as a policy name ("strict" or
// "replace"); spec.md §4.2.1's "encoding_errors" option.
func decodeText(raw []byte, charsetName string, encodingErrors string) (string, error) {
	if charsetName == "" || charsetName == "binary" {
		return string(raw), nil
	}
	enc := lookupCharset(charsetName)
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		if encodingErrors == "replace" || encodingErrors == "ignore" {
			return string(raw), nil
		}
		return "", WrapValueError(err, "failed to decode column value using encoding %q", charsetName)
	}
	return string(decoded), nil
}
