package service

import (
	"context"
	"strings"

	"go-gin-comedy-tickets/internal/database"
	"go-gin-comedy-tickets/internal/model"
	"go-gin-comedy-tickets/internal/repository"
	apperrors "go-gin-comedy-tickets/pkg/app_errors"

	"github.com/jackc/pgx/v5"
)

type UserService interface {
	RegisterUser(ctx context.Context, params model.RegisterUserParams) (*model.User, error)
	GetUser(ctx context.Context, id int) (*model.User, error)
	// 審核通過：升級為已驗證的組織者 / 喜劇演員
	ApproveCreator(ctx context.Context, userID int, admin *model.Actor, note *string) (*model.User, error)
	RejectCreator(ctx context.Context, userID int, admin *model.Actor, note *string) (*model.User, error)
	ListPendingCreators(ctx context.Context, admin *model.Actor) ([]*model.User, error)
}

type UserServiceImpl struct {
	tx                 database.Transactor
	repository         repository.UserRepository
	comedianRepository repository.ComedianRepository
}

func NewUserService(
	tx database.Transactor,
	userRepository repository.UserRepository,
	comedianRepository repository.ComedianRepository,
) UserService {
	return &UserServiceImpl{
		tx:                 tx,
		repository:         userRepository,
		comedianRepository: comedianRepository,
	}
}

func (s *UserServiceImpl) RegisterUser(ctx context.Context, params model.RegisterUserParams) (*model.User, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	params.StageName = strings.TrimSpace(params.StageName)
	if params.Role == "" {
		params.Role = model.RoleAudience
	}

	switch {
	case params.Name == "":
		return nil, apperrors.ErrNameRequired
	case params.Email == "":
		return nil, apperrors.ErrEmailRequired
	case !params.Role.SelfAssignable():
		return nil, apperrors.ErrInvalidRole
	case params.Role.IsComedian() && params.StageName == "":
		return nil, apperrors.ErrStageNameRequired
	}

	var created *model.User
	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		user, err := s.repository.Create(ctx, tx, &model.User{
			Name:  params.Name,
			Email: params.Email,
			Role:  params.Role,
		})
		if err != nil {
			return err
		}

		if user.Role.IsComedian() {
			_, err := s.comedianRepository.CreateProfile(ctx, tx, &model.ComedianProfile{
				UserID:    user.ID,
				StageName: params.StageName,
				Bio:       params.Bio,
			})
			if err != nil {
				return err
			}
		}

		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id int) (*model.User, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *UserServiceImpl) ApproveCreator(ctx context.Context, userID int, admin *model.Actor, note *string) (*model.User, error) {
	return s.decide(ctx, userID, admin, note, model.ApprovalStatusApproved)
}

func (s *UserServiceImpl) RejectCreator(ctx context.Context, userID int, admin *model.Actor, note *string) (*model.User, error) {
	return s.decide(ctx, userID, admin, note, model.ApprovalStatusRejected)
}

// decide 寫入審核紀錄；只有通過時才升級角色
func (s *UserServiceImpl) decide(ctx context.Context, userID int, admin *model.Actor, note *string, status model.ApprovalStatus) (*model.User, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}

	var result *model.User
	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		user, err := s.repository.FindByIDWithLock(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !user.Role.IsPendingCreator() {
			return apperrors.ErrNotPendingCreator
		}

		if status == model.ApprovalStatusApproved {
			user, err = s.repository.UpdateRole(ctx, tx, user.ID, user.Role.Verified())
			if err != nil {
				return err
			}
		}

		_, err = s.repository.CreateApproval(ctx, tx, &model.RoleApproval{
			UserID:    user.ID,
			Status:    status,
			DecidedBy: admin.UserID,
			Note:      note,
		})
		if err != nil {
			return err
		}

		result = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *UserServiceImpl) ListPendingCreators(ctx context.Context, admin *model.Actor) ([]*model.User, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	return s.repository.ListByRoles(ctx, []model.Role{
		model.RoleOrganizerUnverified,
		model.RoleComedianUnverified,
	})
}

func requireAdmin(actor *model.Actor) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return apperrors.ErrAdminOnly
	}
	return nil
}
