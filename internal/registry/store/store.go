// Package store is the process-wide widget type store.
package store

import (
	"sync"
)

var m sync.Map

// Load returns the value stored under key.
func Load(key interface{}) (value interface{}, ok bool) {
	return m.Load(key)
}

// LoadAndDelete deletes key and returns its previous value.
func LoadAndDelete(key interface{}) (value interface{}, loaded bool) {
	return m.LoadAndDelete(key)
}

// LoadOrStore stores value unless key is already present.
func LoadOrStore(key, value interface{}) (actual interface{}, loaded bool) {
	return m.LoadOrStore(key, value)
}

// Range calls f for each stored pair.
func Range(f func(key, value interface{}) bool) {
	m.Range(f)
}
