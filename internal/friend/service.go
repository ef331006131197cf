package friend

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrFriendNotFound    = errors.New("friend not found")
	ErrEmailAlreadyInUse = errors.New("email already in use")
)

// Service handles friend business logic. It also implements the name
// resolution the receipt service relies on when rendering splits.
type Service struct {
	repo *Repository
}

// NewService creates a new friend service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a new friend to the directory
func (s *Service) Create(ctx context.Context, req *CreateFriendRequest) (*Friend, error) {
	if req.Email != nil {
		existing, err := s.repo.GetByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailAlreadyInUse
		}
	}

	return s.repo.Create(ctx, req)
}

// GetByID retrieves a friend by their ID
func (s *Service) GetByID(ctx context.Context, id string) (*Friend, error) {
	friend, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if friend == nil {
		return nil, ErrFriendNotFound
	}
	return friend, nil
}

// List retrieves all friends with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Friend, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// ResolveNames returns display names for the given person ids. IDs that are
// not registered friends are left out; the caller falls back to its own
// snapshot for those.
func (s *Service) ResolveNames(ctx context.Context, ids []string) (map[string]string, error) {
	return s.repo.GetNamesByIDs(ctx, ids)
}

// Update modifies an existing friend
func (s *Service) Update(ctx context.Context, id string, req *UpdateFriendRequest) (*Friend, error) {
	friend, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if friend == nil {
		return nil, ErrFriendNotFound
	}
	return friend, nil
}

// Delete removes a friend from the directory. Splits referencing them keep
// working; their name just resolves through the snapshot from then on.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
