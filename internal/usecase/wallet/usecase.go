package wallet

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domain "coin-wallet-service/internal/domain/wallet"
	apperrors "coin-wallet-service/pkg/errors"
	"coin-wallet-service/pkg/logger"
)

// pingTimeout bounds the store ping made by Status
const pingTimeout = 2 * time.Second

// Repository defines the read access the wallet usecase needs from the record store.
type Repository interface {
	ListAll(ctx context.Context) ([]domain.User, error) // Retrieve every stored user
	Ping(ctx context.Context) error                     // Check store connectivity
}

// PriceOracle supplies the current coin price. It never fails; an
// unavailable quote is a normal outcome.
type PriceOracle interface {
	FetchPrice(ctx context.Context) domain.Quote
}

// Service implements the wallet read operations.
type Service struct {
	repo   Repository
	oracle PriceOracle
	log    *zap.Logger
}

// New creates a new wallet service with the provided repository, price oracle, and logger.
func New(r Repository, o PriceOracle, log *zap.Logger) *Service {
	return &Service{repo: r, oracle: o, log: log}
}

// snapshot reads all users and one price quote concurrently.
// Only the store read can fail the pair.
func (s *Service) snapshot(ctx context.Context) ([]domain.User, domain.Quote, error) {
	var (
		users []domain.User
		quote domain.Quote
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.repo.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		quote = s.oracle.FetchPrice(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, domain.Unavailable(), err
	}
	return users, quote, nil
}

// ListUsers returns every stored user with its value in the quote currency.
// A single price is applied to all users of the response.
func (s *Service) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, s.log)

	users, quote, err := s.snapshot(ctx)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to list users", err)
	}

	log.Debug("listing users", zap.Int("count", len(users)), zap.Bool("price_available", quote.Available))

	return &ListUsersResponse{
		Users: lo.Map(users, func(u domain.User, _ int) User {
			return User{
				Username:   u.Username,
				CoinAmount: u.CoinAmount,
				USDValue:   quote.Fiat(u.CoinAmount),
				IsAdmin:    u.IsAdmin,
			}
		}),
	}, nil
}

// WalletInfo returns the total holdings across all users and their combined value.
func (s *Service) WalletInfo(ctx context.Context) (*WalletInfoResponse, error) {
	log := logger.WithContext(ctx, s.log)

	users, quote, err := s.snapshot(ctx)
	if err != nil {
		log.Error("failed to compute wallet info", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to compute wallet info", err)
	}

	total := domain.SumAmounts(users)

	return &WalletInfoResponse{
		TotalAmount:   total,
		Price:         quote.Price(),
		TotalUSDValue: quote.Fiat(total),
	}, nil
}

// Status pings the store. A failed ping is reported in the response, never returned.
func (s *Service) Status(ctx context.Context) *StatusResponse {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.repo.Ping(ctx); err != nil {
		logger.WithContext(ctx, s.log).Warn("database ping failed", zap.Error(err))
		return &StatusResponse{DatabaseStatus: "error: " + err.Error()}
	}
	return &StatusResponse{DatabaseStatus: DatabaseConnected}
}
