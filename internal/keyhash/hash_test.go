package keyhash_test

import (
	"testing"

	"github.com/karupanerura/async-multimap/internal/keyhash"
)

type address struct {
	Host string
	Port uint16
}

type topic string

func TestFor(t *testing.T) {
	t.Parallel()

	t.Run("int", func(t *testing.T) {
		t.Parallel()
		assertStable(t, keyhash.For[int](), -42, 42)
	})
	t.Run("uint8", func(t *testing.T) {
		t.Parallel()
		assertStable(t, keyhash.For[uint8](), 1, 2)
	})
	t.Run("float64", func(t *testing.T) {
		t.Parallel()
		assertStable(t, keyhash.For[float64](), 42.0, 42.5)
	})
	t.Run("string", func(t *testing.T) {
		t.Parallel()
		assertStable(t, keyhash.For[string](), "news.sport", "news.weather")
	})
	t.Run("named string", func(t *testing.T) {
		t.Parallel()
		assertStable(t, keyhash.For[topic](), "a", "b")
	})
	t.Run("struct", func(t *testing.T) {
		t.Parallel()
		assertStable(t, keyhash.For[address](), address{"10.0.0.1", 5701}, address{"10.0.0.1", 5702})
	})
	t.Run("array", func(t *testing.T) {
		t.Parallel()
		assertStable(t, keyhash.For[[2]int](), [2]int{1, 2}, [2]int{2, 1})
	})
	t.Run("interface", func(t *testing.T) {
		t.Parallel()
		assertStable(t, keyhash.For[any](), any("x"), any(1))
	})
}

func TestFor_ZeroFloat(t *testing.T) {
	t.Parallel()

	hash := keyhash.For[float64]()
	negZero := 0.0
	negZero = -negZero
	if hash(0) != hash(negZero) {
		t.Error("+0 and -0 are equal keys and must hash equally")
	}
}

func TestFor_UnsupportedType(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for func key inside interface")
		}
	}()
	hash := keyhash.For[any]()
	hash(func() {})
}

func assertStable[K comparable](t *testing.T, hash func(K) int, a, b K) {
	t.Helper()

	if hash(a) != hash(a) {
		t.Errorf("hash of %v is not stable", a)
	}
	if hash(b) != hash(b) {
		t.Errorf("hash of %v is not stable", b)
	}
	if hash(a) == hash(b) {
		t.Logf("hash collision between %v and %v", a, b)
	}
}
