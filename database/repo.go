package database

import (
	"context"
	"errors"

	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entity is the single capability an entity type must expose to be served by
// the generic repository.
type Entity interface {
	EntityName() string
}

// Repo provides the identifier-based lookup and deletion behavior common to
// all entity types. It is a stateless accessor over the shared connection
// pool; callers own the transaction boundary.
type Repo[T Entity] struct {
	db *gorm.DB
}

func NewRepo[T Entity](db *gorm.DB) *Repo[T] {
	return &Repo[T]{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *Repo[T]) GetDB() *gorm.DB {
	return r.db
}

func (r *Repo[T]) name() string {
	var zero T
	return zero.EntityName()
}

// withRelations attaches one batched Preload query per requested relation.
// Preload fetches each collection in a secondary query keyed by the parent id
// set, so result rows never need de-duplication.
func (r *Repo[T]) withRelations(ctx context.Context, relations []models.Relation) *gorm.DB {
	query := r.db.WithContext(ctx)
	for _, relation := range relations {
		query = query.Preload(relation.String())
	}
	return query
}

// FindByID returns the entity matching id with the given relation collections
// fully populated. There is no deferred loading: anything a caller needs
// later must be requested here.
func (r *Repo[T]) FindByID(ctx context.Context, id string, relations ...models.Relation) (*T, error) {
	var item T
	err := r.withRelations(ctx, relations).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound(r.name(), id)
	}
	if err != nil {
		return nil, errs.FromDatabase("find", r.name(), err)
	}
	return &item, nil
}

// FindPage returns a page of entities in storage order. Offset and limit are
// applied verbatim; the caller-facing layer is responsible for clamping.
func (r *Repo[T]) FindPage(ctx context.Context, offset, limit int, relations ...models.Relation) ([]T, error) {
	var items []T
	err := r.withRelations(ctx, relations).Offset(offset).Limit(limit).Find(&items).Error
	if err != nil {
		return nil, errs.FromDatabase("list", r.name(), err)
	}
	return items, nil
}

// FindByNames returns every entity whose name is in names. Callers compare
// the result size against the requested set to detect unresolved names.
func (r *Repo[T]) FindByNames(ctx context.Context, names []string) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&items).Error
	if err != nil {
		return nil, errs.FromDatabase("find by names", r.name(), err)
	}
	return items, nil
}

func (r *Repo[T]) Create(ctx context.Context, item *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return errs.FromDatabase("create", r.name(), err)
	}
	return nil
}

// Save persists field changes on an already-loaded entity. Associations are
// omitted: relationship sets change only through the explicit Replace methods
// on the concrete repos.
func (r *Repo[T]) Save(ctx context.Context, item *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error; err != nil {
		return errs.FromDatabase("save", r.name(), err)
	}
	return nil
}

// Delete resolves the entity by id and removes it, failing the same way
// FindByID does when the entity is absent.
func (r *Repo[T]) Delete(ctx context.Context, id string) error {
	item, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(item).Error; err != nil {
		return errs.FromDatabase("delete", r.name(), err)
	}
	return nil
}

// Count returns the total row count, or the count of rows where column is
// non-null when column is given.
func (r *Repo[T]) Count(ctx context.Context, column string) (int64, error) {
	query := r.db.WithContext(ctx).Model(new(T))
	if column != "" {
		query = query.Where(column + " IS NOT NULL")
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, errs.FromDatabase("count", r.name(), err)
	}
	return count, nil
}
