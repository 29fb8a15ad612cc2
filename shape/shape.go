package shape

import "reflect"

// Class is the equivalence class of a single argument value.
//
// Booleans classify apart from numeric zero and one: a branch on a flag
// and a branch on a count are different branches even when the bound
// values would compare equal in some host languages.
type Class uint8

const (
	// Absent marks an argument name not bound at all. Absent arguments
	// never appear in keys; omission of the name is the encoding.
	Absent Class = iota

	// None is a bound nil.
	None

	// BoolTrue is the boolean true.
	BoolTrue

	// BoolFalse is the boolean false.
	BoolFalse

	// Zero is a numeric zero of any integer or float type.
	Zero

	// One is a numeric one of any integer or float type.
	One

	// Other is every remaining value: strings, times, collections, and
	// numbers beyond zero and one.
	Other
)

// String returns the stable name used in key text.
func (c Class) String() string {
	switch c {
	case Absent:
		return "ABSENT"
	case None:
		return "NONE"
	case BoolTrue:
		return "BOOL_TRUE"
	case BoolFalse:
		return "BOOL_FALSE"
	case Zero:
		return "ZERO"
	case One:
		return "ONE"
	case Other:
		return "OTHER"
	}
	return "UNKNOWN"
}

// Classify returns the class of a bound value. Classification looks at
// the value alone and never at how a query builder might use it.
func Classify(v any) Class {
	switch x := v.(type) {
	case nil:
		return None
	case bool:
		if x {
			return BoolTrue
		}
		return BoolFalse
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return BoolTrue
		}
		return BoolFalse
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch rv.Int() {
		case 0:
			return Zero
		case 1:
			return One
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch rv.Uint() {
		case 0:
			return Zero
		case 1:
			return One
		}
	case reflect.Float32, reflect.Float64:
		switch rv.Float() {
		case 0:
			return Zero
		case 1:
			return One
		}
	}
	return Other
}
