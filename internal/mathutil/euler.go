package mathutil

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Order names the sequence in which three elementary rotations are applied.
// The L-prefixed orders flip the sign convention of one or all axes; they bridge
// authoring tools that rotate left-handed around those axes.
type Order uint8

const (
	OrderXYZ Order = iota
	OrderXZY
	OrderYXZ
	OrderYZX
	OrderZXY
	OrderZYX
	OrderLXYZ // X, Y and Z all left-handed
	OrderXYLZ // XYZ with left-handed Z
	OrderLZYX // ZYX with left-handed Z
)

var ErrUnknownOrder = errors.New("unknown axis order")

var orderNames = [...]string{
	OrderXYZ:  "XYZ",
	OrderXZY:  "XZY",
	OrderYXZ:  "YXZ",
	OrderYZX:  "YZX",
	OrderZXY:  "ZXY",
	OrderZYX:  "ZYX",
	OrderLXYZ: "LXYZ",
	OrderXYLZ: "XYLZ",
	OrderLZYX: "LZYX",
}

func (o Order) String() string {
	if int(o) < len(orderNames) {
		return orderNames[o]
	}
	return fmt.Sprintf("Order(%d)", uint8(o))
}

// Orders lists every supported order.
func Orders() []Order {
	return []Order{
		OrderXYZ, OrderXZY, OrderYXZ, OrderYZX, OrderZXY, OrderZYX,
		OrderLXYZ, OrderXYLZ, OrderLZYX,
	}
}

// ParseOrder accepts "yxz", "LZYX" as well as the long spellings
// "L-X,Y,Z", "XY,L-Z" and "L-Z,Y,X".
func ParseOrder(s string) (Order, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", ",", "", " ", "", "_", "").Replace(key)
	if key == "LXLYLZ" {
		return OrderLXYZ, nil
	}
	for i, name := range orderNames {
		if key == name {
			return Order(i), nil
		}
	}
	return 0, fmt.Errorf("mathutil: parse order %q: %w", s, ErrUnknownOrder)
}

// Compose builds the rotation matrix for an Euler triple (radians) in order o.
// Left-handed orders negate the flipped angles and compose through their base order.
func Compose(o Order, v Vec3) Mat3 {
	switch o {
	case OrderXYZ:
		return FromEulerXYZVec(v)
	case OrderXZY:
		return FromEulerXZYVec(v)
	case OrderYXZ:
		return FromEulerYXZVec(v)
	case OrderYZX:
		return FromEulerYZXVec(v)
	case OrderZXY:
		return FromEulerZXYVec(v)
	case OrderZYX:
		return FromEulerZYXVec(v)
	case OrderLXYZ:
		return FromEulerXYZVec(v.Neg())
	case OrderXYLZ:
		return FromEulerXYZ(v[0], v[1], -v[2])
	case OrderLZYX:
		return FromEulerZYX(v[0], v[1], -v[2])
	}
	panic(fmt.Sprintf("mathutil: compose with %v", o))
}

// Euler extracts the angle triple (radians, indexed by axis) for order o such
// that Compose(o, m.Euler(o)) reproduces m.
func (m Mat3) Euler(o Order) Vec3 {
	switch o {
	case OrderXYZ:
		return m.EulerXYZ()
	case OrderXZY:
		return m.EulerXZY()
	case OrderYXZ:
		return m.EulerYXZ()
	case OrderYZX:
		return m.EulerYZX()
	case OrderZXY:
		return m.EulerZXY()
	case OrderZYX:
		return m.EulerZYX()
	case OrderLXYZ:
		return m.EulerLXYZ()
	case OrderXYLZ:
		return m.EulerXYLZ()
	case OrderLZYX:
		return m.EulerLZYX()
	}
	panic(fmt.Sprintf("mathutil: extract with %v", o))
}

// Each extractor below recovers the first angle from the two entries that hold
// only its sine and cosine, the middle angle against a non-negative cosine
// (hypot of the remaining row or column), and the last angle by substituting
// the first angle back into two entries. Nothing special-cases gimbal lock:
// atan2(0, 0) is 0, so the result stays finite and one valid decomposition wins.

func (m Mat3) EulerXYZ() Vec3 {
	x := math.Atan2(-m[5], m[8])
	y := math.Atan2(m[2], math.Hypot(m[0], m[1]))
	sx, cx := math.Sin(x), math.Cos(x)
	sz := sx*m[6] + cx*m[3]
	cz := sx*m[7] + cx*m[4]
	return Vec3{x, y, math.Atan2(sz, cz)}
}

// EulerLXYZ returns the XYZ decomposition with every angle measured left-handed.
func (m Mat3) EulerLXYZ() Vec3 {
	x := math.Atan2(m[5], m[8])
	y := math.Atan2(-m[2], math.Hypot(m[0], m[1]))
	sx, cx := math.Sin(x), math.Cos(x)
	sz := sx*m[6] - cx*m[3]
	cz := cx*m[4] - sx*m[7]
	return Vec3{x, y, math.Atan2(sz, cz)}
}

// EulerXYLZ returns the XYZ decomposition with Z measured left-handed.
func (m Mat3) EulerXYLZ() Vec3 {
	x := math.Atan2(-m[5], m[8])
	y := math.Atan2(m[2], math.Hypot(m[0], m[1]))
	sx, cx := math.Sin(x), math.Cos(x)
	sz := -cx*m[3] - sx*m[6]
	cz := cx*m[4] + sx*m[7]
	return Vec3{x, y, math.Atan2(sz, cz)}
}

func (m Mat3) EulerXZY() Vec3 {
	x := math.Atan2(m[7], m[4])
	z := math.Atan2(-m[1], math.Hypot(m[0], m[2]))
	sx, cx := math.Sin(x), math.Cos(x)
	sy := sx*m[3] - cx*m[6]
	cy := cx*m[8] - sx*m[5]
	return Vec3{x, math.Atan2(sy, cy), z}
}

func (m Mat3) EulerYXZ() Vec3 {
	y := math.Atan2(m[2], m[8])
	x := math.Atan2(-m[5], math.Hypot(m[3], m[4]))
	sy, cy := math.Sin(y), math.Cos(y)
	sz := sy*m[7] - cy*m[1]
	cz := cy*m[0] - sy*m[6]
	return Vec3{x, y, math.Atan2(sz, cz)}
}

func (m Mat3) EulerYZX() Vec3 {
	y := math.Atan2(-m[6], m[0])
	z := math.Atan2(m[3], math.Hypot(m[4], m[5]))
	sy, cy := math.Sin(y), math.Cos(y)
	sx := sy*m[1] + cy*m[7]
	cx := sy*m[2] + cy*m[8]
	return Vec3{math.Atan2(sx, cx), y, z}
}

func (m Mat3) EulerZXY() Vec3 {
	z := math.Atan2(-m[1], m[4])
	x := math.Atan2(m[7], math.Hypot(m[6], m[8]))
	sz, cz := math.Sin(z), math.Cos(z)
	sy := sz*m[5] + cz*m[2]
	cy := sz*m[3] + cz*m[0]
	return Vec3{x, math.Atan2(sy, cy), z}
}

func (m Mat3) EulerZYX() Vec3 {
	z := math.Atan2(m[3], m[0])
	y := math.Atan2(-m[6], math.Hypot(m[7], m[8]))
	sz, cz := math.Sin(z), math.Cos(z)
	sx := sz*m[2] - cz*m[5]
	cx := cz*m[4] - sz*m[1]
	return Vec3{math.Atan2(sx, cx), y, z}
}

// EulerLZYX returns the ZYX decomposition with Z measured left-handed.
func (m Mat3) EulerLZYX() Vec3 {
	z := math.Atan2(-m[3], m[0])
	y := math.Atan2(-m[6], math.Hypot(m[7], m[8]))
	sz, cz := math.Sin(z), math.Cos(z)
	sx := -sz*m[2] - cz*m[5]
	cx := sz*m[1] + cz*m[4]
	return Vec3{math.Atan2(sx, cx), y, z}
}
