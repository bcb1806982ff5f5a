package memory

import (
	"context"
	"sync"
)

type undoKey struct{}

type undoLog struct {
	funcs []func()
}

func (u *undoLog) rollback() {
	for i := len(u.funcs) - 1; i >= 0; i-- {
		u.funcs[i]()
	}
}

// onRollback регистрирует отмену изменения, если вызов идёт внутри транзакции.
func onRollback(ctx context.Context, f func()) {
	if u, ok := ctx.Value(undoKey{}).(*undoLog); ok {
		u.funcs = append(u.funcs, f)
	}
}

// Transactor сериализует транзакции над in-memory хранилищами и откатывает их изменения при ошибке.
type Transactor struct {
	mu sync.Mutex
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, undoKey{}, log)); err != nil {
		log.rollback()
		return err
	}

	return nil
}
