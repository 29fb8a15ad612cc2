package lazy

import "reflect"

// Normalizer rewrites an argument map before it is bound. Normalizers
// run in the order given to Enter, each receiving the previous result.
// Returning an error aborts the Enter and leaves nothing bound.
//
// The map handed to the first normalizer is already a private copy, so
// normalizers may mutate it in place and return it.
type Normalizer func(args map[string]any) (map[string]any, error)

// CollapseEmpty rewrites empty slice and array arguments to nil. Empty
// collections cannot be bound; collapsing them lets builders treat "no
// values" and "not filtered" as the same branch.
func CollapseEmpty() Normalizer {
	return func(args map[string]any) (map[string]any, error) {
		for name, v := range args {
			if v == nil {
				continue
			}
			if _, ok := v.([]byte); ok {
				continue
			}
			rv := reflect.ValueOf(v)
			if k := rv.Kind(); (k == reflect.Slice || k == reflect.Array) && rv.Len() == 0 {
				args[name] = nil
			}
		}
		return args, nil
	}
}

// Defaults fills in values for names that are absent or bound to nil.
// Filling happens before classification, so a defaulted argument shapes
// the call the same way an explicit value would.
func Defaults(defaults map[string]any) Normalizer {
	return func(args map[string]any) (map[string]any, error) {
		for name, v := range defaults {
			if cur, ok := args[name]; !ok || cur == nil {
				args[name] = v
			}
		}
		return args, nil
	}
}
