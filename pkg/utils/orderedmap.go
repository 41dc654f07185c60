package utils

// A string keyed map that remembers insertion order. Iteration functions
// visit entries in that order, and [OrderedMap.MoveToFront] allows applying an
// explicit order afterwards.
type OrderedMap[Value any] struct {
	keys   []string
	values map[string]Value
}

// Creates an empty ordered map
func NewOrderedMap[Value any]() *OrderedMap[Value] {
	return &OrderedMap[Value]{
		values: make(map[string]Value),
	}
}

// Returns the number of entries in the map
func (m *OrderedMap[Value]) Len() int {
	return len(m.keys)
}

// Returns the value stored for a key and whether the key exists
func (m *OrderedMap[Value]) Get(key string) (Value, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Returns true if the map contains the key
func (m *OrderedMap[Value]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Stores a value. New keys are appended at the end; existing keys keep their position
func (m *OrderedMap[Value]) Set(key string, value Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

// Returns the keys in iteration order
func (m *OrderedMap[Value]) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Returns the values in iteration order
func (m *OrderedMap[Value]) Values() []Value {
	return Map(m.keys, func(key string) Value { return m.values[key] })
}

// Moves the given keys to the front of the map, in the given order. Keys not
// present in the map are ignored, keys not listed keep their relative order.
func (m *OrderedMap[Value]) MoveToFront(order []string) {
	front := Filter(order, m.Has)
	rest := Filter(m.keys, func(key string) bool { return !Contains(front, key) })
	m.keys = append(front, rest...)
}
