// seehuhn.de/go/lightning - procedural lightning strokes
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package lightning

import "errors"

// Errors returned by this package. All of them indicate a violated
// contract on the caller's side (or, for ErrSegmentNotFound, inside the
// Animation) and are never expected during normal operation.
var (
	// ErrInvalidGeometry is returned when a segment is constructed from a
	// coordinate which is NaN or infinite.
	ErrInvalidGeometry = errors.New("lightning: invalid geometry")

	// ErrInvalidParameter is returned for out-of-range numeric arguments,
	// for example when a zero-length vector is normalized.
	ErrInvalidParameter = errors.New("lightning: invalid parameter")

	// ErrSegmentNotFound is returned by RemoveSegment if the segment is not
	// part of the active set.
	ErrSegmentNotFound = errors.New("lightning: segment not found")

	// ErrInvalidSurface is returned when the surface reports a width or
	// height which is not a positive, finite number.
	ErrInvalidSurface = errors.New("lightning: invalid surface size")
)
