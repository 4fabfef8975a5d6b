package jsonvalue

import (
	"reflect"
)

var (
	valueType  = reflect.TypeOf(Value{})
	numberType = reflect.TypeOf(Number{})
	boolType   = reflect.TypeOf(false)
	stringType = reflect.TypeOf("")
	int64Type  = reflect.TypeOf(int64(0))
	floatType  = reflect.TypeOf(float32(0))
	doubleType = reflect.TypeOf(float64(0))
)

// Shape projection: how a Value is read as a primitive Go type. Projections
// are strict about shape and lenient about numbers; any numeric
// representation converts to any numeric type.

func projectBool(v Value, path Path) (bool, error) {
	if v.kind != BoolKind {
		return false, mismatch(v, path, BoolKind, boolType)
	}
	return v.b, nil
}

func projectString(v Value, path Path) (string, error) {
	if v.kind != StringKind {
		return "", mismatch(v, path, StringKind, stringType)
	}
	return v.s, nil
}

func projectNumber(v Value, path Path, target reflect.Type) (Number, error) {
	if v.kind != NumberKind {
		return Number{}, mismatch(v, path, NumberKind, target)
	}
	return v.n, nil
}

func projectInt(v Value, path Path) (int64, error) {
	n, err := projectNumber(v, path, int64Type)
	return n.Int64(), err
}

func projectFloat(v Value, path Path) (float32, error) {
	n, err := projectNumber(v, path, floatType)
	return n.Float32(), err
}

func projectDouble(v Value, path Path) (float64, error) {
	n, err := projectNumber(v, path, doubleType)
	return n.Float64(), err
}

func mismatch(v Value, path Path, want Kind, target reflect.Type) error {
	return &ShapeError{Path: path, Op: "decode", Expected: want, Actual: v.kind, Type: target}
}
