package auth

import "context"

type StoreAPI interface {
	CreateUser(ctx context.Context, name, email, passwordHash, role string) (User, error)
	FindUserByEmail(ctx context.Context, email string) (User, error)
	CountUsers(ctx context.Context) (int, error)
}
