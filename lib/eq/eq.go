/*package eq is a simple package for telling whether two arrays are equal to
one another.*/
package eq

// Generic returns true if two arrays are the same type and have the same
// values and false otherwise. Only []int, []int32, []float32, and []float64
// are supported.
func Generic(x, y interface{}) bool {
	switch xx := x.(type) {
	case []int:
		yy, ok := y.([]int)
		if !ok { return false }
		return Ints(xx, yy)
	case []int32:
		yy, ok := y.([]int32)
		if !ok { return false }
		return Int32s(xx, yy)
	case []float32:
		yy, ok := y.([]float32)
		if !ok { return false }
		return Float32s(xx, yy)
	case []float64:
		yy, ok := y.([]float64)
		if !ok { return false }
		return Float64s(xx, yy)
	default:
		return false
	}
}

// Ints returns true if two []int arrays are the same and false otherwise.
func Ints(x, y []int) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Int32s returns true if two []int32 arrays are the same and false otherwise.
func Int32s(x, y []int32) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float32s returns true if two []float32 arrays are the same and false
// otherwise.
func Float32s(x, y []float32) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float64s returns true if two []float64 arrays are the same and false
// otherwise.
func Float64s(x, y []float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float64sEps returns true if the two []float64 arrays are within eps of one
// another and false otherwise.
func Float64sEps(x, y []float64, eps float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] + eps < y[i] || x[i] - eps > y[i] {
			return false
		}
	}
	return true
}
