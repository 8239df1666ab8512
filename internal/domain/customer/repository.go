package customer

import "context"

// Repository defines persistence behaviours for customers.
type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	List(ctx context.Context, filter Filter) ([]*Customer, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	Replace(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id string) error
}
