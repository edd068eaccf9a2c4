package app

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"userhub/internal/apperr"
	"userhub/internal/model"
	"userhub/internal/query"
	"userhub/internal/validation"
)

// UserStore is the record-store contract the service depends on,
// implemented by repository.UserRepository.
type UserStore interface {
	Find(ctx context.Context, p query.Params) ([]model.User, error)
	Count(ctx context.Context, search string) (int64, error)
	CountByActive(ctx context.Context, active bool) (int64, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id string, fields map[string]any) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// AuditPublisher emits user lifecycle events. Publishing is
// best-effort; a broker failure never fails the request.
type AuditPublisher interface {
	Publish(ctx context.Context, event model.AuditEvent) error
}

type UserService struct {
	store UserStore
	audit AuditPublisher
}

func NewUserService(store UserStore, audit AuditPublisher) *UserService {
	return &UserService{store: store, audit: audit}
}

type ListInput struct {
	Page      string
	Limit     string
	Search    string
	SortBy    string
	SortOrder string
}

type ListResult struct {
	Users       []model.User `json:"users"`
	TotalPages  int64        `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
	TotalUsers  int64        `json:"totalUsers"`
}

type StatsResult struct {
	TotalUsers    int64 `json:"totalUsers"`
	ActiveUsers   int64 `json:"activeUsers"`
	InactiveUsers int64 `json:"inactiveUsers"`
}

// List fetches a page of users. The page query and the total count are
// independent reads and run concurrently.
func (s *UserService) List(ctx context.Context, input ListInput) (*ListResult, error) {
	p := query.Build(input.Page, input.Limit, input.Search, input.SortBy, input.SortOrder)

	var (
		users []model.User
		count int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.store.Find(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.store.Count(gctx, p.Search)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ListResult{
		Users:       users,
		TotalPages:  (count + int64(p.Limit) - 1) / int64(p.Limit),
		CurrentPage: p.Page,
		TotalUsers:  count,
	}, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, input validation.Input) (*model.User, error) {
	payload, violations := validation.Validate(input, validation.ModeCreate)
	if len(violations) > 0 {
		return nil, apperr.Validation(strings.Join(violations, ", "))
	}

	existing, err := s.store.GetByEmail(ctx, *payload.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("User with this email already exists")
	}

	user := &model.User{
		Name:     *payload.Name,
		Email:    *payload.Email,
		Age:      payload.Age,
		IsActive: payload.IsActive,
	}
	if payload.Phone != nil {
		user.Phone = *payload.Phone
	}
	if user.IsActive == nil {
		active := true
		user.IsActive = &active
	}

	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	s.publish(ctx, model.AuditUserCreated, user.ID, user.Email)
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, input validation.Input) (*model.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	payload, violations := validation.Validate(input, validation.ModeUpdate)
	if len(violations) > 0 {
		return nil, apperr.Validation(strings.Join(violations, ", "))
	}

	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("User not found")
	}

	// Uniqueness is re-checked only when the email actually changes,
	// comparing normalized forms so a re-submission of the current
	// address in different case is not a conflict.
	if payload.Email != nil && *payload.Email != validation.NormalizeEmail(existing.Email) {
		taken, err := s.store.GetByEmail(ctx, *payload.Email)
		if err != nil {
			return nil, err
		}
		if taken != nil && taken.ID != id {
			return nil, apperr.Conflict("Email already in use")
		}
	}

	fields := payload.Fields()
	if len(fields) == 0 {
		return existing, nil
	}

	updated, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("User not found")
	}
	s.publish(ctx, model.AuditUserUpdated, updated.ID, updated.Email)
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("User not found")
	}
	s.publish(ctx, model.AuditUserDeleted, id, "")
	return nil
}

// Stats runs the three independent counts concurrently.
func (s *UserService) Stats(ctx context.Context) (*StatsResult, error) {
	var result StatsResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.TotalUsers, err = s.store.Count(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		result.ActiveUsers, err = s.store.CountByActive(gctx, true)
		return err
	})
	g.Go(func() error {
		var err error
		result.InactiveUsers, err = s.store.CountByActive(gctx, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

// checkID rejects malformed identifiers before any store access.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.MalformedID("Invalid user ID")
	}
	return nil
}

func (s *UserService) publish(ctx context.Context, action, userID, email string) {
	if s.audit == nil {
		return
	}
	event := model.AuditEvent{Action: action, UserID: userID, Email: email}
	if err := s.audit.Publish(ctx, event); err != nil {
		log.Printf("publish audit event failed: %v", err)
	}
}
