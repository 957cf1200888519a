package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vozlink/vozlink-client/internal/api"
	"github.com/vozlink/vozlink-client/internal/models"
)

type MessageService struct {
	c *api.Client
}

func NewMessages(c *api.Client) *MessageService { return &MessageService{c: c} }

func (s *MessageService) List(ctx context.Context) ([]models.Message, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, "/messages", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Message](raw)
}

// MyMessages — сообщения, созданные текущим пользователем.
func (s *MessageService) MyMessages(ctx context.Context) ([]models.Message, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, "/messages/my", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Message](raw)
}

func (s *MessageService) ByCategory(ctx context.Context, categoryID int64) ([]models.Message, error) {
	q := url.Values{"category_id": {strconv.FormatInt(categoryID, 10)}}
	raw, err := s.c.Do(ctx, http.MethodGet, "/messages", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Message](raw)
}

func (s *MessageService) Get(ctx context.Context, id int64) (*models.Message, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, fmt.Sprintf("/messages/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Message](raw)
}

func (s *MessageService) Create(ctx context.Context, req models.CreateMessage) (*models.Message, error) {
	raw, err := s.c.Do(ctx, http.MethodPost, "/messages", nil, req)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Message](raw)
}

func (s *MessageService) Update(ctx context.Context, id int64, req models.UpdateMessage) (*models.Message, error) {
	raw, err := s.c.Do(ctx, http.MethodPut, fmt.Sprintf("/messages/%d", id), nil, req)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Message](raw)
}

// Delete: сервер сам снимает сообщение со всех назначений.
func (s *MessageService) Delete(ctx context.Context, id int64) error {
	_, err := s.c.Do(ctx, http.MethodDelete, fmt.Sprintf("/messages/%d", id), nil, nil)
	return err
}

// AudioPath — путь бинарной выборки озвучки для api.Client.DoRaw.
func AudioPath(messageID int64) string {
	return fmt.Sprintf("/messages/%d/audio", messageID)
}
