package keyhash

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"math"
	"sync"

	"github.com/goccy/go-reflect"
)

var (
	hashersMu sync.RWMutex
	hashers   = map[string]func(any) int{}
)

// For returns a hash function for the key type K.
// Equal keys always produce equal hashes. The function is built once per type and shared.
func For[K comparable]() func(K) int {
	var zero K
	f := forAny(zero)
	return func(key K) int {
		return f(key)
	}
}

func forAny(zero any) func(any) int {
	name := typeName(zero)

	hashersMu.RLock()
	f, ok := hashers[name]
	hashersMu.RUnlock()
	if ok {
		return f
	}

	hashersMu.Lock()
	defer hashersMu.Unlock()
	if f, ok := hashers[name]; ok {
		return f
	}

	f = func(v any) int {
		h := hasherPool.Get().(hash.Hash64)
		defer func() {
			h.Reset()
			hasherPool.Put(h)
		}()

		writeValue(h, reflect.ValueOf(v))
		return int(h.Sum64())
	}
	hashers[name] = f
	return f
}

// typeName names the dynamic type of v; interface key types with a nil zero value are named by "<nil>".
func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}

var hasherPool = sync.Pool{
	New: func() any {
		return fnv.New64a()
	},
}

// writeValue feeds the comparable parts of rv into h.
func writeValue(h hash.Hash64, rv reflect.Value) {
	var b [8]byte
	switch rv.Kind() {
	case reflect.Invalid:
		_, _ = h.Write([]byte{0})
	case reflect.Bool:
		if rv.Bool() {
			_, _ = h.Write([]byte{1})
		} else {
			_, _ = h.Write([]byte{0})
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		binary.BigEndian.PutUint64(b[:], uint64(rv.Int()))
		_, _ = h.Write(b[:])
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		binary.BigEndian.PutUint64(b[:], rv.Uint())
		_, _ = h.Write(b[:])
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f == 0 {
			// -0 == +0
			f = 0
		}
		binary.BigEndian.PutUint64(b[:], math.Float64bits(f))
		_, _ = h.Write(b[:])
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		binary.BigEndian.PutUint64(b[:], math.Float64bits(real(c)))
		_, _ = h.Write(b[:])
		binary.BigEndian.PutUint64(b[:], math.Float64bits(imag(c)))
		_, _ = h.Write(b[:])
	case reflect.String:
		_, _ = h.Write([]byte(rv.String()))
	case reflect.Ptr, reflect.Chan, reflect.UnsafePointer:
		binary.BigEndian.PutUint64(b[:], uint64(rv.Pointer()))
		_, _ = h.Write(b[:])
	case reflect.Interface:
		if rv.IsNil() {
			_, _ = h.Write([]byte{0})
			return
		}
		writeValue(h, rv.Elem())
	case reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			writeValue(h, rv.Index(i))
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			writeValue(h, rv.Field(i))
		}
	default:
		panic(fmt.Sprintf("%s cannot be a hash key", rv.Type().String()))
	}
}
