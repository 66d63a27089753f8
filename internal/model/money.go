package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// Money is currency amount kept in integer cents, so sums never drift
type Money int64

// Dollars builds Money from a whole number of currency units
func Dollars(units int64) Money {
	return Money(units * 100)
}

// MoneyFromFloat rounds a decimal currency amount to the nearest cent
func MoneyFromFloat(f float64) Money {
	return Money(math.Round(f * 100))
}

// Cents returns amount in cents
func (m Money) Cents() int64 {
	return int64(m)
}

// Float returns amount in currency units
func (m Money) Float() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	sign := ""
	c := int64(m)
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// DivRound divides amount by n rounding half away from zero, zero divisor gives zero
func (m Money) DivRound(n int) Money {
	if n == 0 {
		return 0
	}

	q := int64(m) / int64(n)
	r := int64(m) % int64(n)
	if r < 0 {
		r = -r
	}

	if 2*r >= int64(math.Abs(float64(n))) {
		if (int64(m) < 0) != (n < 0) {
			q--
		} else {
			q++
		}
	}
	return Money(q)
}

// MarshalJSON encodes amount as a decimal number with two fraction digits
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts any JSON number and rounds it to cents
func (m *Money) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("money must be a number - %w", err)
	}

	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return fmt.Errorf("money must be a number - %w", err)
	}

	*m = MoneyFromFloat(f)
	return nil
}

// EncodeMsgpack encodes amount in currency units, same as JSON
func (m Money) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeFloat64(m.Float())
}

// DecodeMsgpack decodes amount in currency units
func (m *Money) DecodeMsgpack(dec *msgpack.Decoder) error {
	f, err := dec.DecodeFloat64()
	if err != nil {
		return err
	}
	*m = MoneyFromFloat(f)
	return nil
}
