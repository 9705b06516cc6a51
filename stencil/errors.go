// SPDX-License-Identifier: MIT

package stencil

import "errors"

// ErrUnsupportedOrder is returned when a neighbor order outside the tabulated
// range is requested.
var ErrUnsupportedOrder = errors.New("stencil: unsupported neighbor order")
