package model

import (
	"database/sql/driver"
	"fmt"
	"slices"
	"strings"
)

// StringSlice is stored as a single comma joined column. Used for video
// tags and for the concatenated like set the catalog query returns.
type StringSlice []string

// GormDataType keeps the column a plain text column on every driver
func (StringSlice) GormDataType() string {
	return "text"
}

// Value implements the driver.Valuer interface.
// Due to commas being the separator no element may include a comma
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "", nil
	}

	for _, v := range s {
		if strings.Contains(v, ",") {
			return "", fmt.Errorf("unsafe string, %s", v)
		}
	}

	return strings.Join(s, ","), nil
}

// Scan implements the sql.Scanner interface.
func (s *StringSlice) Scan(value any) error {
	if value == nil {
		*s = []string{}
		return nil
	}

	str, ok := value.(string)
	if !ok {
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("failed to scan StringSlice, %v", value)
		}

		str = string(b)
	}

	if str == "" {
		*s = []string{}
	} else {
		*s = strings.Split(str, ",")
	}

	return nil
}

// Contains reports whether v is one of the elements
func (s StringSlice) Contains(v string) bool {
	return slices.Contains(s, v)
}
