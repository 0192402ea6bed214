package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Salary — зарплата, приводимая к числу при декодировании.
// Число берётся как есть, строка разбирается по самому длинному числовому префиксу,
// всё остальное (null, bool, объекты, пустая строка) даёт 0.
type Salary float64

func (s *Salary) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*s = 0
			return nil
		}
		*s = Salary(ParseSalary(str))
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*s = 0
		return nil
	}
	*s = Salary(v)
	return nil
}

// ParseSalary разбирает числовой префикс строки ("5000.5", " 12abc", "1e3").
// Для строк без числового префикса возвращает 0.
func ParseSalary(raw string) float64 {
	m := leadingFloat.FindString(strings.TrimSpace(raw))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
