// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package worldmodel

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Time is a ROS timestamp: seconds and nanoseconds since the epoch.
type Time struct {
	Sec  uint32 `cbor:"secs"`
	Nsec uint32 `cbor:"nsecs"`
}

// IsZero reports whether the timestamp is unset.
func (t Time) IsZero() bool {
	return t.Sec == 0 && t.Nsec == 0
}

// Duration is a signed ROS duration. Nsec carries the sub-second part
// and keeps the sign of Sec for negative durations written by ROS
// tooling, so it is signed as well.
type Duration struct {
	Sec  int32 `cbor:"secs"`
	Nsec int32 `cbor:"nsecs"`
}

// ErrDurationRange is returned by [DurationFromSeconds] for values
// that are not finite or whose whole seconds do not fit in an int32.
var ErrDurationRange = errors.New("duration out of range")

// maxDurationNanos bounds the magnitude of a representable duration:
// whole seconds must stay within int32 after truncation toward zero.
const maxDurationNanos = (math.MaxInt32 + 1) * 1e9

// DurationFromSeconds splits a floating-point second count into a
// Duration, rounding to the nearest nanosecond.
func DurationFromSeconds(seconds float64) (Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return Duration{}, fmt.Errorf("%w: %v seconds", ErrDurationRange, seconds)
	}
	nanos := math.Round(seconds * 1e9)
	if nanos >= maxDurationNanos || nanos <= -maxDurationNanos {
		return Duration{}, fmt.Errorf("%w: %v seconds", ErrDurationRange, seconds)
	}
	total := int64(nanos)
	return Duration{
		Sec:  int32(total / 1e9),
		Nsec: int32(total % 1e9),
	}, nil
}

// Std converts the duration to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.Sec)*time.Second + time.Duration(d.Nsec)
}

// Seconds returns the duration as floating-point seconds.
func (d Duration) Seconds() float64 {
	return float64(d.Sec) + float64(d.Nsec)/1e9
}

// Header is the std_msgs header carried by stamped records: a sequence
// number, a timestamp, and the coordinate frame the data is expressed
// in. A zero header means "unstamped".
type Header struct {
	Seq     uint32 `cbor:"seq,omitempty"`
	Stamp   Time   `cbor:"stamp"`
	FrameID string `cbor:"frame_id,omitempty"`
}

// IsZero reports whether every header field is unset.
func (h Header) IsZero() bool {
	return h.Seq == 0 && h.Stamp.IsZero() && h.FrameID == ""
}

// ColorRGBA is a color with components in [0, 1]. The range is not
// enforced here.
type ColorRGBA struct {
	R float64 `cbor:"r"`
	G float64 `cbor:"g"`
	B float64 `cbor:"b"`
	A float64 `cbor:"a"`
}
