package members

import (
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color int

type probe struct {
	Name     string
	Age      int
	hidden   bool
	Position [3]float64
}

func (p *probe) Greeting() string { return "hello " + p.Name }

func (p *probe) Panicky() string { panic("accessor exploded") }

func (p *probe) Lookup(i int) string { return p.Name }

func (p *probe) TwoResults() (string, error) { return "", nil }

func TestScalarClassification(t *testing.T) {
	assertScalar := func(v interface{}, expected bool) {
		if actual := IsScalar(reflect.TypeOf(v)); actual != expected {
			t.Errorf("expected IsScalar(%T) to be %v", v, expected)
		}
	}

	assertScalar(42, true)
	assertScalar("text", true)
	assertScalar(true, true)
	assertScalar(3.14, true)
	assertScalar(color(2), true) //named integer kind doubles as enumeration
	assertScalar(time.Now(), true)
	assertScalar(time.Second, true)
	assertScalar(big.NewInt(7), true)
	assertScalar([3]float64{1, 2, 3}, true)     //vector
	assertScalar([16]float32{}, true)           //4x4 matrix flattened
	assertScalar([17]float64{}, false)          //too large for a plain aggregate
	assertScalar([2]string{}, false)            //not numeric
	assertScalar(probe{}, false)
	assertScalar([]int{1}, false)
	assertScalar(map[string]int{}, false)
}

func TestEnumerableClassification(t *testing.T) {
	assert.True(t, IsEnumerable(reflect.TypeOf([]int{})))
	assert.True(t, IsEnumerable(reflect.TypeOf(map[string]int{})))
	assert.True(t, IsEnumerable(reflect.TypeOf([20]string{})))
	assert.False(t, IsEnumerable(reflect.TypeOf("strings are scalars")))
	assert.False(t, IsEnumerable(reflect.TypeOf([3]float64{})), "small numeric arrays are plain values")
	assert.False(t, IsEnumerable(reflect.TypeOf(make(chan int))), "channels are opaque")
}

func TestDescribeEnumeratesFieldsAndGetters(t *testing.T) {
	described := ReflectProvider{}.Describe(reflect.TypeOf(&probe{}))

	byName := make(map[string]Descriptor)
	for _, member := range described {
		byName[member.Name] = member
	}

	require.Contains(t, byName, "Name")
	require.Contains(t, byName, "Age")
	require.Contains(t, byName, "Position")
	require.Contains(t, byName, "Greeting")
	require.NotContains(t, byName, "hidden", "unexported fields are invisible")
	require.NotContains(t, byName, "TwoResults", "only single-result accessors qualify")

	assert.Equal(t, reflect.TypeOf(""), byName["Name"].ValueType)
	assert.Equal(t, 0, byName["Greeting"].IndexerArity)
	assert.Equal(t, 1, byName["Lookup"].IndexerArity)
	assert.True(t, byName["Age"].Readable)
}

func TestReadFieldAndGetter(t *testing.T) {
	subject := &probe{Name: "Ada", Age: 36}
	instance := reflect.ValueOf(subject)
	provider := ReflectProvider{}

	find := func(name string) Descriptor {
		for _, member := range provider.Describe(instance.Type()) {
			if member.Name == name {
				return member
			}
		}
		t.Fatalf("member %s not described", name)
		return Descriptor{}
	}

	age, err := provider.Read(instance, find("Age"))
	require.NoError(t, err)
	assert.Equal(t, int64(36), age.Int())

	greeting, err := provider.Read(instance, find("Greeting"))
	require.NoError(t, err)
	assert.Equal(t, "hello Ada", greeting.String())
}

func TestReadFailuresDoNotPanic(t *testing.T) {
	provider := ReflectProvider{}
	instance := reflect.ValueOf(&probe{})

	find := func(name string) Descriptor {
		for _, member := range provider.Describe(instance.Type()) {
			if member.Name == name {
				return member
			}
		}
		t.Fatalf("member %s not described", name)
		return Descriptor{}
	}

	_, err := provider.Read(instance, find("Panicky"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accessor exploded")

	_, err = provider.Read(instance, find("Lookup"))
	require.Error(t, err, "indexed accessors cannot be read without parameters")

	var nilProbe *probe
	_, err = provider.Read(reflect.ValueOf(nilProbe), find("Age"))
	require.Error(t, err, "nil receivers fail softly")
}

func TestCacheMemoizes(t *testing.T) {
	counting := &countingProvider{}
	cache := NewCache(counting)

	first := cache.Of(reflect.TypeOf(&probe{}))
	second := cache.Of(reflect.TypeOf(&probe{}))

	assert.Equal(t, 1, counting.describes, "second lookup must hit the cache")
	assert.Equal(t, len(first), len(second))
	assert.Nil(t, cache.Of(nil))
}

type countingProvider struct {
	describes int
}

func (c *countingProvider) Describe(t reflect.Type) []Descriptor {
	c.describes++
	return ReflectProvider{}.Describe(t)
}

func (c *countingProvider) Read(instance reflect.Value, member Descriptor) (reflect.Value, error) {
	return ReflectProvider{}.Read(instance, member)
}
