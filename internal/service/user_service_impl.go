package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/repository"
	"github.com/google/uuid"
)

type userService struct {
	users    repository.UserRepo
	cascade  *CascadeManager
	views    *BoardAggregator
	observer UseCaseObserver
}

func NewUserService(
	users repository.UserRepo,
	uow db.UnitOfWork,
	cache BoardCache,
	observers ...UseCaseObserver,
) UserService {
	return &userService{
		users:    users,
		cascade:  NewCascadeManager(uow),
		views:    NewBoardAggregator(uow, cache),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *userService) CreateUser(ctx context.Context, name string, email *string) (user *domain.User, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "create-user", nil)
	defer func() { err = uc.finish(err) }()

	now := time.Now().UTC()
	u := &domain.User{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if email != nil {
		u.Email = domain.OptionalText(strings.TrimSpace(*email))
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, domain.Conflictf("email %s is already in use", domain.Deref(u.Email))
		}
		return nil, err
	}
	uc.set("user_id", u.ID)
	return u, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (user *domain.User, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "get-user", map[string]any{"user_id": id})
	defer func() { err = uc.finish(err) }()

	if err := requireID("user id", id); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context) (users []*domain.User, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "list-users", nil)
	defer func() { err = uc.finish(err) }()

	users, err = s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*domain.User{}
	}
	uc.set("user_count", len(users))
	return users, nil
}

// DeleteUser removes the user, clearing the creator of their tasks. Owned
// boards are a conflict unless reassignTo names another user.
func (s *userService) DeleteUser(ctx context.Context, id string, reassignTo *string) (err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "delete-user", map[string]any{"user_id": id})
	defer func() { err = uc.finish(err) }()

	if err := requireID("user id", id); err != nil {
		return err
	}
	if reassignTo != nil {
		if err := domain.ValidateRef("reassignTo", *reassignTo); err != nil {
			return err
		}
		uc.set("reassign_to", *reassignTo)
	}

	res, err := s.cascade.DeleteUser(ctx, id, reassignTo)
	if err != nil {
		return err
	}
	uc.set("reassigned_boards", res.Reassigned)
	uc.set("detached_tasks", res.Detached)
	if err := s.views.InvalidateAll(ctx); err != nil {
		uc.set("cache_invalidate_error", err.Error())
	}
	return nil
}
