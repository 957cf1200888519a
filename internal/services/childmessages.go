package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/vozlink/vozlink-client/internal/api"
	"github.com/vozlink/vozlink-client/internal/models"
)

type ChildMessageService struct {
	c *api.Client
}

func NewChildMessages(c *api.Client) *ChildMessageService { return &ChildMessageService{c: c} }

// ListForChild — назначения одного ребёнка.
// Особый случай (единственный во всём слое сервисов): бекенд отвечает 400
// на ребёнка без назначений, для клиента это пустой список, а не ошибка.
func (s *ChildMessageService) ListForChild(ctx context.Context, childID int64) ([]models.ChildMessage, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, fmt.Sprintf("/child-messages/child/%d", childID), nil, nil)
	if err != nil {
		if api.StatusOf(err) == http.StatusBadRequest {
			return []models.ChildMessage{}, nil
		}
		return nil, err
	}
	return decodeList[models.ChildMessage](raw)
}

func (s *ChildMessageService) Favorites(ctx context.Context, childID int64) ([]models.ChildMessage, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, fmt.Sprintf("/child-messages/child/%d/favorites", childID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.ChildMessage](raw)
}

func (s *ChildMessageService) Assign(ctx context.Context, childID, messageID int64) (*models.ChildMessage, error) {
	raw, err := s.c.Do(ctx, http.MethodPost, "/child-messages", nil, map[string]int64{
		"child_id": childID, "message_id": messageID,
	})
	if err != nil {
		return nil, err
	}
	return decodeOne[models.ChildMessage](raw)
}

func (s *ChildMessageService) SetFavorite(ctx context.Context, id int64, favorite bool) (*models.ChildMessage, error) {
	raw, err := s.c.Do(ctx, http.MethodPut, fmt.Sprintf("/child-messages/%d", id), nil, map[string]bool{
		"is_favorite": favorite,
	})
	if err != nil {
		return nil, err
	}
	return decodeOne[models.ChildMessage](raw)
}

func (s *ChildMessageService) Remove(ctx context.Context, id int64) error {
	_, err := s.c.Do(ctx, http.MethodDelete, fmt.Sprintf("/child-messages/%d", id), nil, nil)
	return err
}

// AssignFailure — неудача по одному сообщению составной операции.
type AssignFailure struct {
	MessageID int64
	Reason    string
}

// AssignMany назначает несколько сообщений одному ребёнку: по одному вызову
// на сообщение, параллельно. Частичный результат — явный, ничего не глотаем.
func (s *ChildMessageService) AssignMany(ctx context.Context, childID int64, messageIDs []int64) ([]models.ChildMessage, []AssignFailure) {
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		succeeded []models.ChildMessage
		failed    []AssignFailure
	)
	for _, mid := range messageIDs {
		wg.Add(1)
		go func(mid int64) {
			defer wg.Done()
			cm, err := s.Assign(ctx, childID, mid)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, AssignFailure{MessageID: mid, Reason: err.Error()})
				return
			}
			succeeded = append(succeeded, *cm)
		}(mid)
	}
	wg.Wait()
	return succeeded, failed
}
