package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"schoolhub/internal/logger"
	"schoolhub/internal/mockdata"
	"schoolhub/internal/models"
	"schoolhub/internal/navigation"
	"schoolhub/internal/repository"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUnknownPermission = errors.New("unknown permission")
)

// AdminStats is the summary row of the admin dashboard
type AdminStats struct {
	TotalUsers  int                 `json:"total_users"`
	ByRole      map[models.Role]int `json:"by_role"`
	Grants      int                 `json:"grants"`
	FullyLocked int                 `json:"fully_locked"`
}

// AdminService manages the system user list of one device. The list is the
// only admin state that survives a reload.
type AdminService struct {
	store navigation.Store
	log   logger.Logger

	mu    sync.Mutex
	users []models.SystemUser
}

// NewAdminService loads the persisted list, falling back to the directory
// defaults when it is missing or malformed
func NewAdminService(ctx context.Context, store navigation.Store, log logger.Logger) *AdminService {
	return &AdminService{
		store: store,
		log:   log,
		users: loadUsers(ctx, store, log),
	}
}

func loadUsers(ctx context.Context, store navigation.Store, log logger.Logger) []models.SystemUser {
	raw, found, err := store.Get(ctx, repository.KeySystemUsers)
	if err != nil {
		log.Warn("failed to read persisted users", err)
		return mockdata.Users()
	}
	if !found {
		return mockdata.Users()
	}
	users, err := decodeUsers(raw)
	if err != nil {
		log.Warn("discarding malformed persisted users", err)
		return mockdata.Users()
	}
	return users
}

func decodeUsers(raw string) ([]models.SystemUser, error) {
	var users []models.SystemUser
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, err
	}
	if users == nil {
		return nil, fmt.Errorf("user list is null")
	}
	for _, u := range users {
		if u.ID == "" || !u.Role.Valid() {
			return nil, fmt.Errorf("invalid user %q", u.ID)
		}
	}
	return users, nil
}

// Users returns a copy of the list
func (s *AdminService) Users() []models.SystemUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneUsers(s.users)
}

// TogglePermission grants perm to the user if missing and revokes it
// otherwise, then persists the list. A failed write is logged and the
// in-memory change is kept.
func (s *AdminService) TogglePermission(ctx context.Context, userID string, perm models.Permission) (models.SystemUser, error) {
	if !perm.Valid() {
		return models.SystemUser{}, ErrUnknownPermission
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.users {
		if s.users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.SystemUser{}, ErrUserNotFound
	}

	s.users[idx].TogglePermission(perm)
	updated := s.users[idx].Clone()

	data, err := json.Marshal(s.users)
	if err != nil {
		s.log.Error("failed to encode users", err)
		return updated, nil
	}
	if err := s.store.Set(ctx, repository.KeySystemUsers, string(data)); err != nil {
		s.log.Warn("failed to persist users", "user", userID, err)
	}
	return updated, nil
}

// Stats summarises the list
func (s *AdminService) Stats() AdminStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := AdminStats{ByRole: make(map[models.Role]int)}
	for _, u := range s.users {
		st.TotalUsers++
		st.ByRole[u.Role]++
		st.Grants += len(u.Permissions)
		if len(u.Permissions) == 0 {
			st.FullyLocked++
		}
	}
	return st
}

func cloneUsers(users []models.SystemUser) []models.SystemUser {
	out := make([]models.SystemUser, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}
