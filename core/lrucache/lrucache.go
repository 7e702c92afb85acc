// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lrucache provides a fixed-capacity least-recently-used cache of byte
values with per-entry expiry.

Values are stored zstd-compressed whenever that makes them smaller and are
transparently decompressed on read. The cache is safe for concurrent use.
*/
package lrucache

import (
	"container/list"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// ErrInvalidSize is returned by New for a non-positive capacity.
var ErrInvalidSize = errors.New("must provide a positive size")

// minCompressSize is the smallest value worth handing to the encoder.
const minCompressSize = 256

// Cache is a least-recently-used byte cache. Construct with New.
type Cache struct {
	size int
	ttl  time.Duration
	now  func() time.Time

	mu        sync.Mutex
	evictList *list.List
	items     map[string]*list.Element

	enc *zstd.Encoder
	dec *zstd.Decoder
}

type entry struct {
	key        string
	value      []byte
	compressed bool
	expires    time.Time // zero means never
}

// New returns a cache holding at most size entries, each valid for ttl.
// A zero ttl disables expiry.
func New(size int, ttl time.Duration) (*Cache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	return &Cache{
		size:      size,
		ttl:       ttl,
		now:       time.Now,
		evictList: list.New(),
		items:     make(map[string]*list.Element, size),
		enc:       enc,
		dec:       dec,
	}, nil
}

// Add stores value under key, making it the most recently used entry.
// It reports whether an older entry was evicted to make room.
func (c *Cache) Add(key string, value []byte) bool {
	stored, compressed := c.encode(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	var expires time.Time
	if c.ttl > 0 {
		expires = c.now().Add(c.ttl)
	}

	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)

		ent := el.Value.(*entry)
		ent.value, ent.compressed, ent.expires = stored, compressed, expires

		return false
	}

	c.items[key] = c.evictList.PushFront(&entry{
		key:        key,
		value:      stored,
		compressed: compressed,
		expires:    expires,
	})

	if c.evictList.Len() <= c.size {
		return false
	}

	c.removeElement(c.evictList.Back())

	return true
}

// Get returns a copy of the value for key and marks it most recently used.
// Expired entries are removed and reported as missing.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()

	el, ok := c.items[key]
	if !ok {
		c.mu.Unlock()

		return nil, false
	}

	ent := el.Value.(*entry)
	if !ent.expires.IsZero() && !c.now().Before(ent.expires) {
		c.removeElement(el)
		c.mu.Unlock()

		return nil, false
	}

	c.evictList.MoveToFront(el)
	stored, compressed := ent.value, ent.compressed

	c.mu.Unlock()

	return c.decode(stored, compressed)
}

// Remove deletes key and reports whether it was present.
func (c *Cache) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if ok {
		c.removeElement(el)
	}

	return ok
}

// Purge removes every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictList.Init()
	clear(c.items)
}

// Keys returns the keys from oldest to newest, including expired entries
// not yet reclaimed.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.items))
	for el := c.evictList.Back(); el != nil; el = el.Prev() {
		keys = append(keys, el.Value.(*entry).key)
	}

	return keys
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictList.Len()
}

func (c *Cache) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}

// encode returns the representation to store. It runs without the lock;
// zstd.Encoder.EncodeAll is safe for concurrent use.
func (c *Cache) encode(value []byte) ([]byte, bool) {
	if len(value) >= minCompressSize {
		if compressed := c.enc.EncodeAll(value, nil); len(compressed) < len(value) {
			return compressed, true
		}
	}

	return append([]byte(nil), value...), false
}

func (c *Cache) decode(stored []byte, compressed bool) ([]byte, bool) {
	if !compressed {
		return append([]byte(nil), stored...), true
	}

	decoded, err := c.dec.DecodeAll(stored, nil)
	if err != nil {
		return nil, false
	}

	return decoded, true
}
