package ds

import (
	"bytes"
	"container/list"
	"encoding/json"
)

type (
	// LinkedHashMap is a map that remembers insertion order for key iteration and
	// JSON serialization. Overwriting a key keeps its original position.
	LinkedHashMap[K comparable, V any] struct {
		hashMap  map[K]V
		elements map[K]*list.Element
		ordering *list.List
	}
	Entry[K comparable, V any] struct {
		Key   K
		Value V
	}
)

func NewLinkedHashMap[K comparable, V any]() *LinkedHashMap[K, V] {
	return &LinkedHashMap[K, V]{
		hashMap:  map[K]V{},
		elements: map[K]*list.Element{},
		ordering: list.New(),
	}
}

func (r *LinkedHashMap[K, V]) Keys() []K {
	keys := make([]K, 0, r.ordering.Len())
	for runner := r.ordering.Front(); runner != nil; runner = runner.Next() {
		keys = append(keys, runner.Value.(K))
	}
	return keys
}

func (r *LinkedHashMap[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, r.ordering.Len())
	for runner := r.ordering.Front(); runner != nil; runner = runner.Next() {
		key := runner.Value.(K)
		entries = append(entries, Entry[K, V]{Key: key, Value: r.hashMap[key]})
	}
	return entries
}

func (r *LinkedHashMap[K, V]) Put(key K, value V) {
	if _, existed := r.elements[key]; !existed {
		r.elements[key] = r.ordering.PushBack(key)
	}
	r.hashMap[key] = value
}

func (r *LinkedHashMap[K, V]) Get(key K) (V, bool) {
	value, ok := r.hashMap[key]
	return value, ok
}

func (r *LinkedHashMap[K, V]) Delete(key K) {
	element, ok := r.elements[key]
	if !ok {
		return
	}
	r.ordering.Remove(element)
	delete(r.elements, key)
	delete(r.hashMap, key)
}

func (r *LinkedHashMap[K, V]) Len() int {
	return r.ordering.Len()
}

func (r *LinkedHashMap[K, V]) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0))

	buf.WriteRune('{')
	for runner := r.ordering.Front(); runner != nil; runner = runner.Next() {
		key := runner.Value.(K)

		keyBs, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBs)

		buf.WriteRune(':')

		valueBs, err := json.Marshal(r.hashMap[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valueBs)

		if runner.Next() != nil {
			buf.WriteRune(',')
		}
	}
	buf.WriteRune('}')

	return buf.Bytes(), nil
}
