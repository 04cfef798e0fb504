package plan

import "fmt"

// Strings decodes from either a single string or a list of strings.
type Strings []string

func (s *Strings) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*s = nil
	case string:
		*s = Strings{x}
	case []any:
		res := make(Strings, 0, len(x))
		for i, e := range x {
			str, ok := e.(string)
			if !ok {
				return fmt.Errorf("element %d: expected string, got %T", i, e)
			}
			res = append(res, str)
		}
		*s = res
	default:
		return fmt.Errorf("expected string or list of strings, got %T", v)
	}
	return nil
}
