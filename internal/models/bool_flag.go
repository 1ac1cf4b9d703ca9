package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// BoolFlag is a bool that tolerates the loose encodings older clients send
// for unit and variation flags: true, "true", "1", 1 and their falsy
// counterparts. The value is normalized here, once, at the JSON boundary;
// everything past the handlers works with plain bools.
type BoolFlag bool

func (b BoolFlag) Bool() bool { return bool(b) }

func (b *BoolFlag) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case bool:
		*b = BoolFlag(v)
		return nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid boolean flag %q", v)
		}
		*b = BoolFlag(parsed)
		return nil
	case float64:
		switch v {
		case 0:
			*b = false
		case 1:
			*b = true
		default:
			return fmt.Errorf("invalid boolean flag %v", v)
		}
		return nil
	case nil:
		*b = false
		return nil
	default:
		return fmt.Errorf("invalid boolean flag of type %T", raw)
	}
}

func (b BoolFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}
