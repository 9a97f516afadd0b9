package accel

import "math"

// Pitch returns the forward tilt in degrees, from the filtered axes.
func (d *Device) Pitch() float64 {
	return math.Atan2(d.fx, math.Sqrt(d.fy*d.fy+d.fz*d.fz)) * 180 / math.Pi
}

// Roll returns the sideways tilt in degrees, from the filtered axes.
func (d *Device) Roll() float64 {
	return math.Atan2(-d.fy, d.fz) * 180 / math.Pi
}

// Angle returns the direction of the tilt in the X/Y plane, in degrees in the
// range 0..360.
func (d *Device) Angle() int {
	return int(math.Atan2(d.fy, d.fx)*180/math.Pi) + 180
}

// Azimuth returns the direction of the tilt relative to the top of the ring:
// 0 is up, 90 is right.
func (d *Device) Azimuth() int {
	return Azimuth(d.Angle())
}

// Azimuth converts a tilt angle into a bearing relative to the top of the
// ring.
func Azimuth(angle int) int {
	return (90 - angle + 360) % 360
}

// PixelAt returns the index of the pixel closest to the given azimuth on a ring
// of n pixels, where pixel 0 is at the top and indices increase clockwise.
func PixelAt(azimuth, n int) int {
	azimuth = ((azimuth % 360) + 360) % 360
	return (azimuth*n + 180) / 360 % n
}
