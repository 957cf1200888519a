// Package assign — воркфлоу назначения сообщений детям.
// Дубликаты по-настоящему запрещает сервер; здесь только UX-защита:
// кнопку «назначить» нельзя нажать, пока не загружен актуальный список
// назначений ребёнка, и нельзя — для уже назначенной пары.
package assign

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/vozlink/vozlink-client/internal/models"
	"github.com/vozlink/vozlink-client/internal/services"
	"github.com/vozlink/vozlink-client/internal/store"
)

var (
	// ErrNotLoaded — список назначений ребёнка ещё не загружали.
	ErrNotLoaded = errors.New("assignments not loaded for child")
	// ErrAlreadyAssigned — пара (child, message) уже есть; вызова к серверу не будет.
	ErrAlreadyAssigned = errors.New("message already assigned to child")
)

// IsAssigned — membership-тест пары в загруженном списке.
func IsAssigned(list []models.ChildMessage, childID, messageID int64) bool {
	for _, cm := range list {
		if cm.ChildID == childID && cm.MessageID == messageID {
			return true
		}
	}
	return false
}

type Workflow struct {
	store   *store.RelationStore
	cm      *services.ChildMessageService
	limiter *KeyLimiter
	log     *zap.Logger

	// ограничение параллелизма батч-загрузки
	fanout int
}

func NewWorkflow(st *store.RelationStore, cm *services.ChildMessageService, log *zap.Logger) *Workflow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workflow{
		store:   st,
		cm:      cm,
		limiter: NewKeyLimiter(),
		log:     log,
		fanout:  4,
	}
}

// CanAssign отвечает, можно ли предлагать назначение пары.
// Требует загруженного списка — без него ответ ErrNotLoaded, а не догадка.
func (w *Workflow) CanAssign(childID, messageID int64) (bool, error) {
	list, loaded := w.store.ChildMessages(childID)
	if !loaded {
		return false, ErrNotLoaded
	}
	return !IsAssigned(list, childID, messageID), nil
}

// Assign назначает сообщение ребёнку. Для уже назначенной пары —
// no-op без сетевого вызова (ErrAlreadyAssigned). После подтверждения
// сервером список ребёнка перезагружается целиком.
func (w *Workflow) Assign(ctx context.Context, childID, messageID int64) error {
	unlock := w.limiter.lock(childID)
	defer unlock()

	ok, err := w.CanAssign(childID, messageID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyAssigned
	}
	return w.store.AssignMessage(ctx, childID, messageID)
}

// Remove снимает назначение и перезагружает список ребёнка.
func (w *Workflow) Remove(ctx context.Context, childID, assignmentID int64) error {
	unlock := w.limiter.lock(childID)
	defer unlock()
	return w.store.RemoveMessage(ctx, childID, assignmentID)
}

// BatchFailure — отказ загрузки по одному ребёнку.
type BatchFailure struct {
	ChildID int64
	Reason  string
}

// BatchResult — явный частичный результат: что загрузили и по кому не вышло.
type BatchResult struct {
	Succeeded []models.ChildMessage
	Failed    []BatchFailure
}

// LoadForChildren загружает назначения списка детей параллельно
// (не больше fanout запросов разом). Отказ по одному ребёнку не
// прерывает остальных; успешные списки складываются в стор.
func (w *Workflow) LoadForChildren(ctx context.Context, childIDs []int64) BatchResult {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		res BatchResult
		sem = make(chan struct{}, w.fanout)
	)
	for _, id := range childIDs {
		wg.Add(1)
		go func(childID int64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			list, err := w.cm.ListForChild(ctx, childID)
			if err != nil {
				w.log.Warn("batch load failed", zap.Int64("child_id", childID), zap.Error(err))
				mu.Lock()
				res.Failed = append(res.Failed, BatchFailure{ChildID: childID, Reason: err.Error()})
				mu.Unlock()
				return
			}
			w.store.SetChildMessages(childID, list)
			mu.Lock()
			res.Succeeded = append(res.Succeeded, list...)
			mu.Unlock()
		}(id)
	}
	wg.Wait()
	return res
}
