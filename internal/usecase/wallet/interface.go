package wallet

import "context"

// Usecase defines the interface for wallet read operations.
type Usecase interface {
	ListUsers(ctx context.Context) (*ListUsersResponse, error)
	WalletInfo(ctx context.Context) (*WalletInfoResponse, error)
	Status(ctx context.Context) *StatusResponse
}
