package sfftkrw

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Colour is an RGBA colour with channels in [0, 1]. Alpha defaults to 1.
type Colour struct {
	Red   Opt[float64]
	Green Opt[float64]
	Blue  Opt[float64]
	Alpha Opt[float64]
}

var colourFields = []fieldDef[*Colour]{
	optDef("red", KindFloat, func(c *Colour) *Opt[float64] { return &c.Red }, required(), help("red channel")),
	optDef("green", KindFloat, func(c *Colour) *Opt[float64] { return &c.Green }, required(), help("green channel")),
	optDef("blue", KindFloat, func(c *Colour) *Opt[float64] { return &c.Blue }, required(), help("blue channel")),
	optDef("alpha", KindFloat, func(c *Colour) *Opt[float64] { return &c.Alpha }, required(), withDefault(1.0), help("alpha channel")),
}

func (c *Colour) EntityName() string { return "Colour" }
func (c *Colour) fields() []boundField { return bind(c, colourFields) }

// NewColour returns a colour from 3 or 4 channels.
func NewColour(channels ...float64) (*Colour, error) {
	c := &Colour{}
	if err := c.SetValue(channels...); err != nil {
		return nil, err
	}
	return c, nil
}

// RandomColour samples each of red, green and blue uniformly from [0, 1)
// and sets alpha to 1.
func RandomColour(rng *rand.Rand) *Colour {
	f := rand.Float64
	if rng != nil {
		f = rng.Float64
	}
	return &Colour{Red: Some(f()), Green: Some(f()), Blue: Some(f()), Alpha: Some(1.0)}
}

// Value returns (r, g, b, a); absent channels read as 0 except alpha,
// which reads as 1.
func (c *Colour) Value() [4]float64 {
	return [4]float64{c.Red.Value(), c.Green.Value(), c.Blue.Value(), c.Alpha.Or(1)}
}

// SetValue assigns 3 or 4 channels. With 3, alpha is left unchanged.
func (c *Colour) SetValue(channels ...float64) error {
	switch len(channels) {
	case 3, 4:
	default:
		return newError(ErrValue, "colour takes 3 or 4 channels, got %d", len(channels))
	}
	c.Red, c.Green, c.Blue = Some(channels[0]), Some(channels[1]), Some(channels[2])
	if len(channels) == 4 {
		c.Alpha = Some(channels[3])
	}
	return nil
}

// Hex renders the colour as "#rrggbb" or, with channels == 4, "#rrggbbaa".
func (c *Colour) Hex(channels int) (string, error) {
	if channels != 3 && channels != 4 {
		return "", newError(ErrValue, "hex colour takes 3 or 4 channels, got %d", channels)
	}
	v := c.Value()
	var b strings.Builder
	b.WriteByte('#')
	for _, x := range v[:channels] {
		if x < 0 || x > 1 {
			return "", newError(ErrValue, "channel value %v outside [0, 1]", x)
		}
		fmt.Fprintf(&b, "%02x", int(math.Floor(x*255)))
	}
	return b.String(), nil
}

func (c *Colour) String() string {
	v := c.Value()
	return fmt.Sprintf("(%v, %v, %v, %v)", v[0], v[1], v[2], v[3])
}
