package service

import (
	"database/sql/driver"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Render turns a driver value into reply text; NULL renders as "0" and
// numbers keep the form postgres returned
func Render(v any) string {
	switch x := v.(type) {
	case nil:
		return "0"
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return renderTime(x)
	case pgtype.Numeric:
		return renderNumeric(x)
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return fmt.Sprint(v)
		}
		return Render(dv)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func renderTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

// renderNumeric prints Int * 10^Exp exactly
func renderNumeric(n pgtype.Numeric) string {
	if !n.Valid {
		return "0"
	}
	if n.NaN {
		return "NaN"
	}
	if n.Int == nil {
		return "0"
	}
	if n.Exp >= 0 {
		v := new(big.Int).Mul(n.Int, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil))
		return v.String()
	}
	neg := n.Int.Sign() < 0
	digits := new(big.Int).Abs(n.Int).String()
	scale := int(-n.Exp)
	for len(digits) <= scale {
		digits = "0" + digits
	}
	out := digits[:len(digits)-scale] + "." + digits[len(digits)-scale:]
	if neg {
		out = "-" + out
	}
	return out
}

// DisplayArgs renders bound args for the compile endpoint and CLI
func DisplayArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		switch x := a.(type) {
		case time.Time:
			out[i] = renderTime(x)
		case driver.Valuer:
			v, err := x.Value()
			if err != nil {
				out[i] = fmt.Sprint(a)
				continue
			}
			out[i] = v
		default:
			out[i] = a
		}
	}
	return out
}
