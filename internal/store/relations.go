// Package store — клиентское состояние, зеркалящее серверные списки.
// Все сущности принадлежат серверу; здесь лежат временные копии.
// Политика обновления одна на все мутации: после подтверждения сервером
// затронутый список перезагружается целиком, локальных патчей нет.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/vozlink/vozlink-client/internal/api"
	"github.com/vozlink/vozlink-client/internal/models"
	"github.com/vozlink/vozlink-client/internal/services"
)

// Loading — независимые флаги загрузки по спискам.
type Loading struct {
	Children  bool
	Tutors    bool
	Relations bool
	Stats     bool
	Messages  bool
	Favorites bool
}

type RelationStore struct {
	mu sync.Mutex

	rel *services.RelationService
	cm  *services.ChildMessageService

	notify api.Notifier
	log    *zap.Logger

	children  []models.PersonRef
	tutors    []models.PersonRef
	relations []models.Relation
	stats     map[int64]models.ChildStats
	messages  map[int64][]models.ChildMessage // назначения по child_id
	favorites map[int64][]models.ChildMessage

	loading Loading
	lastErr string // общий слот последней ошибки
}

func NewRelationStore(rel *services.RelationService, cm *services.ChildMessageService, notify api.Notifier, log *zap.Logger) *RelationStore {
	if notify == nil {
		notify = api.NopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RelationStore{
		rel:       rel,
		cm:        cm,
		notify:    notify,
		log:       log,
		stats:     make(map[int64]models.ChildStats),
		messages:  make(map[int64][]models.ChildMessage),
		favorites: make(map[int64][]models.ChildMessage),
	}
}

// --- загрузки ---

func (s *RelationStore) LoadChildren(ctx context.Context) error {
	s.setLoading(func(l *Loading) { l.Children = true })
	list, err := s.rel.MyChildren(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.Children = false
	if err != nil {
		return s.fail("load children", err)
	}
	s.children = list
	s.lastErr = ""
	return nil
}

func (s *RelationStore) LoadTutors(ctx context.Context) error {
	s.setLoading(func(l *Loading) { l.Tutors = true })
	list, err := s.rel.MyTutors(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.Tutors = false
	if err != nil {
		return s.fail("load tutors", err)
	}
	s.tutors = list
	s.lastErr = ""
	return nil
}

func (s *RelationStore) LoadRelations(ctx context.Context) error {
	s.setLoading(func(l *Loading) { l.Relations = true })
	list, err := s.rel.List(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.Relations = false
	if err != nil {
		return s.fail("load relations", err)
	}
	s.relations = list
	s.lastErr = ""
	return nil
}

func (s *RelationStore) LoadChildStats(ctx context.Context, childID int64) error {
	s.setLoading(func(l *Loading) { l.Stats = true })
	st, err := s.rel.ChildStats(ctx, childID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.Stats = false
	if err != nil {
		return s.fail("load child stats", err)
	}
	s.stats[childID] = *st
	s.lastErr = ""
	return nil
}

func (s *RelationStore) LoadChildMessages(ctx context.Context, childID int64) error {
	s.setLoading(func(l *Loading) { l.Messages = true })
	list, err := s.cm.ListForChild(ctx, childID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.Messages = false
	if err != nil {
		return s.fail("load child messages", err)
	}
	s.messages[childID] = list
	s.lastErr = ""
	return nil
}

func (s *RelationStore) LoadFavorites(ctx context.Context, childID int64) error {
	s.setLoading(func(l *Loading) { l.Favorites = true })
	list, err := s.cm.Favorites(ctx, childID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.Favorites = false
	if err != nil {
		return s.fail("load favorites", err)
	}
	s.favorites[childID] = list
	s.lastErr = ""
	return nil
}

// --- мутации: сервис → при успехе полная перезагрузка затронутого списка ---

func (s *RelationStore) LinkChild(ctx context.Context, childEmail string) error {
	if _, err := s.rel.Link(ctx, childEmail); err != nil {
		return s.failLocked("link child", err)
	}
	return s.LoadChildren(ctx)
}

// UnlinkChild: сервер каскадно снимает назначения ребёнка, поэтому
// кроме списка детей чистим и его локальные назначения.
func (s *RelationStore) UnlinkChild(ctx context.Context, childID int64) error {
	if err := s.rel.Unlink(ctx, childID); err != nil {
		return s.failLocked("unlink child", err)
	}
	s.mu.Lock()
	delete(s.messages, childID)
	delete(s.favorites, childID)
	delete(s.stats, childID)
	s.mu.Unlock()
	return s.LoadChildren(ctx)
}

func (s *RelationStore) AssignMessage(ctx context.Context, childID, messageID int64) error {
	if _, err := s.cm.Assign(ctx, childID, messageID); err != nil {
		return s.failLocked("assign message", err)
	}
	return s.LoadChildMessages(ctx, childID)
}

func (s *RelationStore) RemoveMessage(ctx context.Context, childID, assignmentID int64) error {
	if err := s.cm.Remove(ctx, assignmentID); err != nil {
		return s.failLocked("remove message", err)
	}
	return s.LoadChildMessages(ctx, childID)
}

func (s *RelationStore) ToggleFavorite(ctx context.Context, childID, assignmentID int64, favorite bool) error {
	if _, err := s.cm.SetFavorite(ctx, assignmentID, favorite); err != nil {
		return s.failLocked("toggle favorite", err)
	}
	if err := s.LoadChildMessages(ctx, childID); err != nil {
		return err
	}
	return s.LoadFavorites(ctx, childID)
}

func (s *RelationStore) DeleteRelation(ctx context.Context, relationID int64) error {
	if err := s.rel.Delete(ctx, relationID); err != nil {
		return s.failLocked("delete relation", err)
	}
	return s.LoadRelations(ctx)
}

// --- чтение (копии, чтобы снаружи не трогали внутренние срезы) ---

func (s *RelationStore) Children() []models.PersonRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PersonRef(nil), s.children...)
}

func (s *RelationStore) Tutors() []models.PersonRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PersonRef(nil), s.tutors...)
}

func (s *RelationStore) Relations() []models.Relation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Relation(nil), s.relations...)
}

func (s *RelationStore) ChildStats(childID int64) (models.ChildStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stats[childID]
	return st, ok
}

// ChildMessages возвращает назначения и признак «список загружался».
// Без загруженного списка воркфлоу назначения не имеет права решать.
func (s *RelationStore) ChildMessages(childID int64) ([]models.ChildMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.messages[childID]
	return append([]models.ChildMessage(nil), list...), ok
}

func (s *RelationStore) Favorites(childID int64) []models.ChildMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChildMessage(nil), s.favorites[childID]...)
}

func (s *RelationStore) LoadingState() Loading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *RelationStore) LastErr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// SetChildMessages кладёт готовый список назначений (результат батч-загрузки).
func (s *RelationStore) SetChildMessages(childID int64, list []models.ChildMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[childID] = list
}

// --- внутреннее ---

func (s *RelationStore) setLoading(f func(*Loading)) {
	s.mu.Lock()
	f(&s.loading)
	s.mu.Unlock()
}

// fail записывает ошибку в общий слот и показывает уведомление;
// вызывать под s.mu.
func (s *RelationStore) fail(op string, err error) error {
	s.lastErr = err.Error()
	s.log.Warn(op, zap.Error(err))
	s.notify.Notify(api.NoticeLoadFailed, err.Error())
	return err
}

// failLocked — то же, но сам берёт мьютекс (для мутаций).
func (s *RelationStore) failLocked(op string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fail(op, err)
}
