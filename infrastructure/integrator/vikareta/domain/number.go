package vikaretadomain

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// FlexFloat aceita números JSON, strings numéricas e null
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	raw, ok := unquote(data)
	if !ok {
		*f = 0
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("valor numérico inválido %q: %w", raw, err)
	}

	*f = FlexFloat(value)
	return nil
}

// FlexInt aceita inteiros JSON, strings numéricas e null
type FlexInt int64

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	raw, ok := unquote(data)
	if !ok {
		*i = 0
		return nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Alguns endpoints agregados devolvem inteiros como 12.0
		floatValue, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return fmt.Errorf("valor inteiro inválido %q: %w", raw, err)
		}
		if math.IsInf(floatValue, 0) || floatValue != math.Trunc(floatValue) ||
			floatValue >= math.MaxInt64 || floatValue < math.MinInt64 {
			return fmt.Errorf("valor inteiro inválido %q: não é um inteiro", raw)
		}
		value = int64(floatValue)
	}

	*i = FlexInt(value)
	return nil
}

func unquote(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", false
	}

	raw := string(bytes.Trim(data, `"`))
	if raw == "" {
		return "", false
	}
	return raw, true
}
