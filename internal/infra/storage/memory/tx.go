package memory

import (
	"context"
	"sync"
)

type txKey struct{}

// journal изменения одной транзакции: функции отката и удерживаемые блокировки строк
type journal struct {
	mu      sync.Mutex
	undo    []func()
	release []func()
	held    map[any]struct{}
}

func (j *journal) record(undo func()) {
	j.mu.Lock()
	j.undo = append(j.undo, undo)
	j.mu.Unlock()
}

// hold запоминает блокировку строки; false, если транзакция уже держит ее
func (j *journal) hold(id any, lock func() func()) bool {
	j.mu.Lock()
	if _, ok := j.held[id]; ok {
		j.mu.Unlock()
		return false
	}
	j.mu.Unlock()

	unlock := lock()

	j.mu.Lock()
	j.held[id] = struct{}{}
	j.release = append(j.release, unlock)
	j.mu.Unlock()
	return true
}

func (j *journal) rollback() {
	j.mu.Lock()
	undo := j.undo
	j.undo = nil
	j.mu.Unlock()

	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
	j.finish()
}

func (j *journal) finish() {
	j.mu.Lock()
	release := j.release
	j.release = nil
	j.undo = nil
	j.mu.Unlock()

	for i := len(release) - 1; i >= 0; i-- {
		release[i]()
	}
}

func journalFrom(ctx context.Context) (*journal, bool) {
	j, ok := ctx.Value(txKey{}).(*journal)
	return j, ok && j != nil
}

// recordUndo регистрирует откат, если операция выполняется в транзакции
func recordUndo(ctx context.Context, undo func()) {
	if j, ok := journalFrom(ctx); ok {
		j.record(undo)
	}
}

// TxManager транзакции хранилища в памяти: при ошибке fn изменения откатываются
// в обратном порядке, блокировки строк (GetByIDForUpdate, измененные слоты)
// держатся до конца fn.
type TxManager struct{}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := journalFrom(ctx); ok {
		return fn(ctx)
	}

	j := &journal{held: make(map[any]struct{})}

	defer func() {
		if p := recover(); p != nil {
			j.rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, j)); err != nil {
		j.rollback()
		return err
	}

	j.finish()
	return nil
}
