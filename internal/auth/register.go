package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/campusworks/hosteldesk-backend/internal/students"
	"github.com/campusworks/hosteldesk-backend/internal/users"
	"github.com/campusworks/hosteldesk-backend/pkg/config"
	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/campusworks/hosteldesk-backend/pkg/security"
	"gorm.io/gorm"
)

// RegisterService handles account onboarding transactions.
type RegisterService interface {
	RegisterStudent(ctx context.Context, req RegisterStudentRequest) error
	RegisterStaff(ctx context.Context, req RegisterStaffRequest) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type registerStudentRepository interface {
	FindByRegNo(ctx context.Context, regNo string) (*models.Student, error)
	Create(ctx context.Context, dto students.CreateStudentDTO) (*models.Student, error)
}

// RegisterServiceParams packages the dependencies for the registration flows.
// The repo factories are rebound per transaction so both inserts share it.
type RegisterServiceParams struct {
	TxRunner           txRunner
	UserRepoFactory    func(tx *gorm.DB) registerUserRepository
	StudentRepoFactory func(tx *gorm.DB) registerStudentRepository
	PasswordConfig     config.PasswordConfig
	RegistrationConfig config.RegistrationConfig
}

type registerService struct {
	tx              txRunner
	userRepo        func(tx *gorm.DB) registerUserRepository
	studentRepo     func(tx *gorm.DB) registerStudentRepository
	passwordCfg     config.PasswordConfig
	registrationCfg config.RegistrationConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
// Nil factories fall back to the real GORM-backed repositories.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	userFactory := params.UserRepoFactory
	if userFactory == nil {
		userFactory = func(tx *gorm.DB) registerUserRepository {
			return users.NewRepository(tx)
		}
	}
	studentFactory := params.StudentRepoFactory
	if studentFactory == nil {
		studentFactory = func(tx *gorm.DB) registerStudentRepository {
			return students.NewRepository(tx)
		}
	}
	return &registerService{
		tx:              params.TxRunner,
		userRepo:        userFactory,
		studentRepo:     studentFactory,
		passwordCfg:     params.PasswordConfig,
		registrationCfg: params.RegistrationConfig,
	}, nil
}

// RegisterStudent creates the login account and the academic profile in one
// transaction. A failure in either insert rolls back both.
func (s *registerService) RegisterStudent(ctx context.Context, req RegisterStudentRequest) error {
	username, email, err := normalizeIdentity(req.Username, req.Email)
	if err != nil {
		return err
	}
	if req.YearOfStudy < 1 || req.YearOfStudy > 6 {
		return pkgerrors.New(pkgerrors.CodeValidation, "year of study must be between 1 and 6")
	}
	regNo := strings.TrimSpace(req.RegNo)
	if regNo == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "registration number required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.userRepo(tx)
		studentRepo := s.studentRepo(tx)

		if err := checkIdentityAvailable(ctx, userRepo, username, email); err != nil {
			return err
		}
		if _, err := studentRepo.FindByRegNo(ctx, regNo); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "registration number already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check registration number")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Username:     username,
			Email:        email,
			Phone:        req.Phone,
			Role:         enums.UserRoleStudent,
			PasswordHash: passwordHash,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		if _, err := studentRepo.Create(ctx, students.CreateStudentDTO{
			UserID:      user.ID,
			Name:        strings.TrimSpace(req.Name),
			RegNo:       regNo,
			Department:  strings.TrimSpace(req.Department),
			YearOfStudy: req.YearOfStudy,
			Category:    strings.TrimSpace(req.Category),
			KEAMRank:    req.KEAMRank,
			SGPA:        req.SGPA,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create student profile")
		}
		return nil
	})
}

// RegisterStaff creates a warden or super admin account. The request must
// carry the admin code configured for the requested role.
func (s *registerService) RegisterStaff(ctx context.Context, req RegisterStaffRequest) error {
	username, email, err := normalizeIdentity(req.Username, req.Email)
	if err != nil {
		return err
	}

	var expectedCode string
	switch req.Role {
	case enums.UserRoleWarden:
		expectedCode = s.registrationCfg.WardenCode
	case enums.UserRoleSuperAdmin:
		expectedCode = s.registrationCfg.SuperAdminCode
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "role must be Warden or SuperAdmin")
	}
	if expectedCode == "" {
		return pkgerrors.New(pkgerrors.CodeForbidden, "staff registration disabled")
	}
	if subtle.ConstantTimeCompare([]byte(req.AdminCode), []byte(expectedCode)) != 1 {
		return pkgerrors.New(pkgerrors.CodeForbidden, "invalid admin code")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.userRepo(tx)
		if err := checkIdentityAvailable(ctx, userRepo, username, email); err != nil {
			return err
		}

		if _, err := userRepo.Create(ctx, users.CreateUserDTO{
			Username:     username,
			Email:        email,
			Phone:        req.Phone,
			Role:         req.Role,
			PasswordHash: passwordHash,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		return nil
	})
}

func normalizeIdentity(username, email string) (string, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if email == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	return username, email, nil
}

func checkIdentityAvailable(ctx context.Context, repo registerUserRepository, username, email string) error {
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
	}
	if _, err := repo.FindByUsername(ctx, username); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
	}
	return nil
}
