package jobs

import (
	"context"
	"fmt"

	"github.com/vozlink/vozlink-client/internal/assign"
	"github.com/vozlink/vozlink-client/internal/services"
	"github.com/vozlink/vozlink-client/internal/store"
)

// ProfileKeepalive периодически дёргает профиль. Протухшая сессия
// словит 401 и штатно снесётся в клиенте.
func ProfileKeepalive(auth *services.AuthService) Job {
	return func(ctx context.Context) error {
		_, err := auth.Profile(ctx)
		return err
	}
}

// RosterRefresh перечитывает детей наставника и батчем их назначения.
// Частичные отказы не валят джобу, но возвращаются ошибкой для метрик и лога.
func RosterRefresh(st *store.RelationStore, wf *assign.Workflow) Job {
	return func(ctx context.Context) error {
		if err := st.LoadChildren(ctx); err != nil {
			return err
		}
		children := st.Children()
		ids := make([]int64, 0, len(children))
		for _, c := range children {
			ids = append(ids, c.ID)
		}
		res := wf.LoadForChildren(ctx, ids)

		rosterChildren.Set(float64(len(children)))
		rosterAssignments.Set(float64(len(res.Succeeded)))

		if len(res.Failed) > 0 {
			first := res.Failed[0]
			return fmt.Errorf("roster refresh: %d of %d children failed, first child %d: %s",
				len(res.Failed), len(ids), first.ChildID, first.Reason)
		}
		return nil
	}
}

// StatsRefresh перечитывает статистику по каждому известному ребёнку.
func StatsRefresh(st *store.RelationStore) Job {
	return func(ctx context.Context) error {
		var firstErr error
		for _, c := range st.Children() {
			if err := st.LoadChildStats(ctx, c.ID); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}
}
