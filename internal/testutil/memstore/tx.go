package memstore

import (
	"context"
	"sync"
)

// Transactional хранилище, умеющее откатываться к снимку
type Transactional interface {
	snapshot() func()
}

type txKey struct{}

// TxManager выполняет транзакции строго по одной и откатывает хранилища при ошибке
type TxManager struct {
	mu     sync.Mutex
	stores []Transactional
}

func NewTxManager(stores ...Transactional) *TxManager {
	return &TxManager{stores: stores}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	restores := make([]func(), 0, len(m.stores))
	for _, s := range m.stores {
		restores = append(restores, s.snapshot())
	}

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}
