// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import "errors"

// ErrOutOfMemory is wrapped by the error Run returns when the loop stopped
// because the device ran out of memory.
var ErrOutOfMemory = errors.New("app: out of memory")
