package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kusinapp/kusina-api/internal/application/state"
	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
	"github.com/kusinapp/kusina-api/pkg/apperror"
)

// reconciler triggers a full reconciliation refresh after a failed mutation,
// discarding whatever optimistic state is still unconfirmed.
type reconciler interface {
	Reconcile(ctx context.Context)
}

// mutator implements the optimistic mutation choreography shared by every
// entity collection: apply to memory synchronously, confirm against the
// remote store, reconcile on failure. Confirmation handlers write identity
// only; server field values reach the dataset exclusively through
// reconciliation, so a stale confirmation can never overwrite a later local
// edit.
type mutator[T any] struct {
	resource string
	store    *state.Store
	remote   repository.Collection[T]
	rec      reconciler
	logger   *zap.Logger

	items func(ds *entity.Dataset) *[]T
	id    func(item T) entity.EntityID
	setID func(item *T, id entity.EntityID)
}

// create inserts the entity under a temporary pending id, visible before the
// network confirms, then swaps in the authoritative id on success.
func (m *mutator[T]) create(ctx context.Context, item T) (T, error) {
	tempID := entity.NewPendingID()
	m.setID(&item, tempID)

	m.store.Update(func(ds *entity.Dataset) {
		items := m.items(ds)
		*items = append(*items, item)
	})

	created, err := m.remote.Create(ctx, item)
	if err != nil {
		return item, m.fail(ctx, "create", err)
	}

	authoritative := m.id(created)
	if !authoritative.Equal(tempID) {
		m.store.Update(func(ds *entity.Dataset) {
			items := m.items(ds)
			for i := range *items {
				if m.id((*items)[i]).Equal(tempID) {
					m.setID(&(*items)[i], authoritative)
					break
				}
			}
		})
	}
	m.setID(&item, authoritative)
	return item, nil
}

// update merges the partial edit into the in-memory entity synchronously
// (apply runs under the store lock against the live entry), then issues the
// partial update remotely.
func (m *mutator[T]) update(ctx context.Context, id entity.EntityID, apply func(item *T), fields map[string]interface{}) (T, error) {
	var updated T
	found := false
	m.store.Update(func(ds *entity.Dataset) {
		items := m.items(ds)
		for i := range *items {
			if m.id((*items)[i]).Equal(id) {
				apply(&(*items)[i])
				updated = (*items)[i]
				found = true
				return
			}
		}
	})
	if !found {
		return updated, apperror.NewNotFoundError(m.resource)
	}

	if err := m.remote.Update(ctx, id, fields); err != nil {
		return updated, m.fail(ctx, "update", err)
	}
	return updated, nil
}

// delete removes the entity synchronously; a failed remote delete is undone
// by reconciliation, which restores the entity if it still exists remotely.
func (m *mutator[T]) delete(ctx context.Context, id entity.EntityID) error {
	found := false
	m.store.Update(func(ds *entity.Dataset) {
		items := m.items(ds)
		for i := range *items {
			if m.id((*items)[i]).Equal(id) {
				*items = append((*items)[:i], (*items)[i+1:]...)
				found = true
				return
			}
		}
	})
	if !found {
		return apperror.NewNotFoundError(m.resource)
	}

	if err := m.remote.Delete(ctx, id); err != nil {
		return m.fail(ctx, "delete", err)
	}
	return nil
}

// duplicate copies the source entity through clone (rename, reset of derived
// state) and follows the create path under a fresh pending id.
func (m *mutator[T]) duplicate(ctx context.Context, id entity.EntityID, clone func(item T) T) (T, error) {
	var source T
	found := false
	m.store.Update(func(ds *entity.Dataset) {
		items := m.items(ds)
		for i := range *items {
			if m.id((*items)[i]).Equal(id) {
				source = (*items)[i]
				found = true
				return
			}
		}
	})
	if !found {
		return source, apperror.NewNotFoundError(m.resource)
	}
	return m.create(ctx, clone(source))
}

func (m *mutator[T]) fail(ctx context.Context, op string, err error) error {
	m.logger.Warn("remote mutation failed, reconciling",
		zap.String("resource", m.resource),
		zap.String("op", op),
		zap.Error(err),
	)
	m.rec.Reconcile(ctx)
	return apperror.NewMutationError(m.resource, op, err)
}
