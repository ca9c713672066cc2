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

import "fmt"

// OperationalError is raised for transport-level failures that leave
// the connection unusable: short reads, lost connections, I/O
// timeouts (spec.md §4.1, §7).
type OperationalError struct {
	Message string
	Cause   error
}

func (e *OperationalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *OperationalError) Unwrap() error { return e.Cause }

// NewOperationalError builds an OperationalError without a wrapped cause.
func NewOperationalError(format string, args ...any) *OperationalError {
	return &OperationalError{Message: fmt.Sprintf(format, args...)}
}

// InternalError is raised when the client detects a protocol
// invariant violation that is not explained by the server simply
// hanging up (spec.md §4.1: bad packet sequence number).
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return e.Message }

// NewInternalError builds an InternalError.
func NewInternalError(format string, args ...any) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}

// TypeError is raised for an unrecognized or unsupported column/type
// code, naming the offending code (spec.md §4.2.2 item "Unknown type
// code", §4.3.1, §7).
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string { return e.Message }

// NewTypeError builds a TypeError.
func NewTypeError(format string, args ...any) *TypeError {
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}

// ValueError is raised for a per-cell data error that is not a type
// mismatch: an unparseable number, an out-of-range integer, or a
// ROWDAT_1 buffer whose length doesn't align with its colspec
// (spec.md §4.3.1, §4.3.4, §7).
type ValueError struct {
	Message string
	Cause   error
}

func (e *ValueError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ValueError) Unwrap() error { return e.Cause }

// NewValueError builds a ValueError without a wrapped cause.
func NewValueError(format string, args ...any) *ValueError {
	return &ValueError{Message: fmt.Sprintf(format, args...)}
}

// WrapValueError builds a ValueError that wraps a lower-level parse
// error (e.g. from fastparse), so callers can still errors.As/Is down
// to the original cause.
func WrapValueError(cause error, format string, args ...any) *ValueError {
	return &ValueError{Message: fmt.Sprintf(format, args...), Cause: cause}
}
