package employee

import "context"

type StoreAPI interface {
	Get(ctx context.Context, id string) (Employee, error)
	FindByCode(ctx context.Context, code string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, emp Employee) (Employee, error)
	CreateIfAbsent(ctx context.Context, emp Employee) (Employee, bool, error)
	UpsertRegistry(ctx context.Context, emp Employee) (Employee, bool, error)
	Update(ctx context.Context, id string, upd Update) (Employee, error)
	Deactivate(ctx context.Context, id string) error
}
