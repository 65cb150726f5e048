// Package session menyimpan state view (lab order, resep) per sesi agar
// tiap request HTTP dapat melanjutkan form yang sama.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/c14220110/poliklinik-lab/pkg/apperrors"
	"github.com/google/uuid"
)

var ErrNotFound = apperrors.NewNotFoundError("Sesi tidak ditemukan atau sudah kedaluwarsa")

// ErrNotPersisted dikembalikan Update saat fn berhasil tetapi Put gagal. Nilai
// hasil fn tetap dikembalikan bersama error ini.
var ErrNotPersisted = errors.New("session state not persisted")

type Store[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	Put(ctx context.Context, id string, v T) error
	Delete(ctx context.Context, id string) error
}

// Manager menserialkan perubahan pada sesi yang sama di dalam satu proses.
type Manager[T any] struct {
	store Store[T]
	locks keyedMutex
}

func NewManager[T any](store Store[T]) *Manager[T] {
	return &Manager[T]{store: store, locks: keyedMutex{locks: make(map[string]*refLock)}}
}

// Create menyimpan state awal dengan id sesi baru.
func (m *Manager[T]) Create(ctx context.Context, v T) (string, error) {
	id := uuid.NewString()
	if err := m.store.Put(ctx, id, v); err != nil {
		return "", err
	}
	return id, nil
}

func (m *Manager[T]) Get(ctx context.Context, id string) (T, error) {
	return m.store.Get(ctx, id)
}

// Update memuat state, menjalankan fn, lalu menyimpan hasilnya. Jika fn gagal,
// state tersimpan tidak berubah. Jika Put gagal, error membungkus ErrNotPersisted.
func (m *Manager[T]) Update(ctx context.Context, id string, fn func(*T) error) (T, error) {
	unlock := m.locks.lock(id)
	defer unlock()

	v, err := m.store.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := fn(&v); err != nil {
		var zero T
		return zero, err
	}
	if err := m.store.Put(ctx, id, v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return v, nil
}

func (m *Manager[T]) Delete(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

type refLock struct {
	sync.Mutex
	refs int
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

func (k *keyedMutex) lock(id string) func() {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &refLock{}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
