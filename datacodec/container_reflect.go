package datacodec

import (
	"errors"
	"reflect"
	"strings"
)

// Collection, tuple and UDT codecs walk Go slices, arrays, structs and maps by position or by key without caring
// which kind of container they're holding. extractor and injector give both directions of that walk (reading a
// source value apart for Encode, writing a decoded value back together for Decode) a single shape so the codecs
// above don't need a type switch of their own.

// extractor pulls the element at a position or key out of a source container.
type extractor interface {
	getElem(index int, key interface{}) (interface{}, error)
}

// keyValueExtractor additionally exposes the key at a position, for containers with keys (maps, struct fields).
type keyValueExtractor interface {
	extractor
	getKey(index int) interface{}
}

// injector is the write-side counterpart of extractor: it builds up a destination container element by element.
type injector interface {
	// zeroElem returns an addressable zero value for the element at a position or key, suitable as a Decode
	// destination. The value is always returned as a pointer, even when the element type itself is not one.
	zeroElem(index int, key interface{}) (value interface{}, err error)

	// setElem commits a decoded element (and, for maps, whether the key or value decoded to CQL NULL) into the
	// destination container.
	setElem(index int, key, value interface{}, keyWasNull, valueWasNull bool) error
}

// keyValueInjector additionally allocates a zero key to decode into, for containers with keys.
type keyValueInjector interface {
	injector
	zeroKey(index int) (value interface{}, err error)
}

// structFieldTag is the struct tag codecs consult to map a CQL column or UDT field name onto a Go struct field,
// falling back to the lowercased field name when absent.
const structFieldTag = "cassandra"

type sliceExtractor struct {
	source reflect.Value
}

func newSliceExtractor(source reflect.Value) (extractor, error) {
	if source.Kind() != reflect.Slice && source.Kind() != reflect.Array {
		return nil, errors.New("expected slice or array, got: " + source.Type().String())
	}
	if source.Kind() == reflect.Slice && source.IsNil() {
		return nil, errors.New("slice is nil")
	}
	return &sliceExtractor{source}, nil
}

func (e *sliceExtractor) getElem(index int, _ interface{}) (interface{}, error) {
	if index < 0 || index >= e.source.Len() {
		return nil, errSliceIndexOutOfRange(containerKindName(e.source), index)
	}
	return e.source.Index(index).Interface(), nil
}

type sliceInjector struct {
	dest reflect.Value
}

func newSliceInjector(dest reflect.Value) (injector, error) {
	if !dest.IsValid() {
		return nil, ErrDestinationTypeNotSupported
	}
	if dest.Kind() != reflect.Slice && dest.Kind() != reflect.Array {
		return nil, errWrongContainerType("slice or array", dest.Type())
	}
	return &sliceInjector{dest}, nil
}

func (i *sliceInjector) zeroElem(_ int, _ interface{}) (interface{}, error) {
	return ensurePointer(nilSafeZero(i.dest.Type().Elem())).Interface(), nil
}

func (i *sliceInjector) setElem(index int, _, value interface{}, _, valueWasNull bool) error {
	if index < 0 || index >= i.dest.Len() {
		return errSliceIndexOutOfRange(containerKindName(i.dest), index)
	}
	elemType := i.dest.Type().Elem()
	if valueWasNull {
		i.dest.Index(index).Set(reflect.Zero(elemType))
		return nil
	}
	newValue := maybeIndirect(elemType, reflect.ValueOf(value))
	if !newValue.Type().AssignableTo(elemType) {
		return errWrongElementType(containerKindName(i.dest)+" element", elemType, newValue.Type())
	}
	i.dest.Index(index).Set(newValue)
	return nil
}

type structExtractor struct {
	source reflect.Value
}

func newStructExtractor(source reflect.Value) (keyValueExtractor, error) {
	if source.Kind() != reflect.Struct {
		return nil, errors.New("expected struct, got: " + source.Type().String())
	}
	return &structExtractor{source}, nil
}

func (e *structExtractor) getKey(index int) interface{} {
	field := e.source.Type().Field(index)
	if tag := field.Tag.Get(structFieldTag); tag != "" {
		return tag
	}
	return strings.ToLower(field.Name)
}

func (e *structExtractor) getElem(_ int, key interface{}) (interface{}, error) {
	var field reflect.Value
	switch k := key.(type) {
	case string:
		field = locateFieldByName(e.source, k)
	case int:
		field = locateFieldByIndex(e.source, k)
	}
	if !field.IsValid() || !field.CanInterface() {
		return nil, errStructFieldInvalid(e.source, key)
	}
	return field.Interface(), nil
}

// structInjector remembers, per key, which reflect.Value it resolved to on the matching zeroElem call, so the
// setElem call for the same key doesn't need to repeat the field lookup.
type structInjector struct {
	dest          reflect.Value
	fieldsByIndex map[int]reflect.Value
	fieldsByName  map[string]reflect.Value
}

func newStructInjector(dest reflect.Value) (keyValueInjector, error) {
	if !dest.IsValid() {
		return nil, ErrDestinationTypeNotSupported
	}
	if dest.Kind() != reflect.Struct {
		return nil, errWrongContainerType("struct", dest.Type())
	}
	if !dest.CanSet() {
		return nil, errDestinationUnaddressable(dest)
	}
	return &structInjector{dest: dest}, nil
}

func (i *structInjector) zeroKey(_ int) (interface{}, error) {
	return new(string), nil
}

func (i *structInjector) zeroElem(_ int, key interface{}) (interface{}, error) {
	field, err := i.resolveField(key)
	if err != nil {
		return nil, err
	}
	if !field.IsValid() || !field.CanSet() {
		return nil, errStructFieldInvalid(i.dest, key)
	}
	return ensurePointer(nilSafeZero(field.Type())).Interface(), nil
}

func (i *structInjector) setElem(_ int, key, value interface{}, _, valueWasNull bool) error {
	field, ok := i.cachedField(key)
	if !ok || !field.IsValid() || !field.CanSet() {
		return errStructFieldInvalid(i.dest, key)
	}
	fieldType := field.Type()
	if valueWasNull {
		field.Set(reflect.Zero(fieldType))
		return nil
	}
	newValue := maybeIndirect(fieldType, reflect.ValueOf(value))
	if !newValue.Type().AssignableTo(fieldType) {
		return errWrongElementType("struct field value", fieldType, newValue.Type())
	}
	field.Set(newValue)
	return nil
}

func (i *structInjector) resolveField(key interface{}) (field reflect.Value, err error) {
	switch k := key.(type) {
	case string:
		field = locateFieldByName(i.dest, k)
		if i.fieldsByName == nil {
			i.fieldsByName = map[string]reflect.Value{}
		}
		i.fieldsByName[k] = field
	case *string:
		return i.resolveField(*k)
	case int:
		field = locateFieldByIndex(i.dest, k)
		if i.fieldsByIndex == nil {
			i.fieldsByIndex = map[int]reflect.Value{}
		}
		i.fieldsByIndex[k] = field
	default:
		err = errWrongElementTypes("struct field key", typeOfInt, typeOfString, reflect.TypeOf(key))
	}
	return
}

func (i *structInjector) cachedField(key interface{}) (reflect.Value, bool) {
	switch k := key.(type) {
	case string:
		field, ok := i.fieldsByName[k]
		return field, ok
	case *string:
		field, ok := i.fieldsByName[*k]
		return field, ok
	case int:
		field, ok := i.fieldsByIndex[k]
		return field, ok
	}
	return reflect.Value{}, false
}

// mapExtractor snapshots the map's keys once at construction time, so iteration order stays stable across the
// getKey/getElem calls an encoder makes for the same index.
type mapExtractor struct {
	source reflect.Value
	keys   []reflect.Value
}

func newMapExtractor(source reflect.Value) (keyValueExtractor, error) {
	if source.Kind() != reflect.Map {
		return nil, errors.New("expected map, got: " + source.Type().String())
	}
	if source.IsNil() {
		return nil, errors.New("map is nil")
	}
	return &mapExtractor{source, source.MapKeys()}, nil
}

func (e *mapExtractor) getKey(index int) interface{} {
	return e.keys[index].Interface()
}

func (e *mapExtractor) getElem(_ int, key interface{}) (interface{}, error) {
	keyValue := reflect.ValueOf(key)
	if !keyValue.Type().AssignableTo(e.source.Type().Key()) {
		return nil, errWrongElementType("map key", e.source.Type().Key(), keyValue.Type())
	}
	value := e.source.MapIndex(keyValue)
	if !value.IsValid() || !value.CanInterface() {
		return nil, nil
	}
	return value.Interface(), nil
}

type mapInjector struct {
	dest reflect.Value
}

func newMapInjector(dest reflect.Value) (keyValueInjector, error) {
	if !dest.IsValid() {
		return nil, ErrDestinationTypeNotSupported
	}
	if dest.Kind() != reflect.Map {
		return nil, errWrongContainerType("map", dest.Type())
	}
	return &mapInjector{dest}, nil
}

func (i *mapInjector) zeroKey(_ int) (interface{}, error) {
	return ensurePointer(nilSafeZero(i.dest.Type().Key())).Interface(), nil
}

func (i *mapInjector) zeroElem(_ int, _ interface{}) (interface{}, error) {
	return ensurePointer(nilSafeZero(i.dest.Type().Elem())).Interface(), nil
}

func (i *mapInjector) setElem(_ int, key, value interface{}, keyWasNull, valueWasNull bool) error {
	keyType := i.dest.Type().Key()
	newKey, err := i.coerce(keyType, key, keyWasNull, "map key")
	if err != nil {
		return err
	}
	valueType := i.dest.Type().Elem()
	newValue, err := i.coerce(valueType, value, valueWasNull, "map value")
	if err != nil {
		return err
	}
	i.dest.SetMapIndex(newKey, newValue)
	return nil
}

func (i *mapInjector) coerce(target reflect.Type, value interface{}, wasNull bool, what string) (reflect.Value, error) {
	if wasNull {
		return reflect.Zero(target), nil
	}
	coerced := maybeIndirect(target, reflect.ValueOf(value))
	if !coerced.Type().AssignableTo(target) {
		return reflect.Value{}, errWrongElementType(what, target, coerced.Type())
	}
	return coerced, nil
}

func containerKindName(v reflect.Value) string {
	if v.Kind() == reflect.Slice {
		return "slice"
	}
	return "array"
}
