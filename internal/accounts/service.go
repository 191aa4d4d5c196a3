package accounts

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maximumcrm/salon-scheduler/internal/httperr"
	"github.com/maximumcrm/salon-scheduler/internal/models"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// Identity is the stable lookup shape handed to authorization layers.
type Identity struct {
	UserID uint     `json:"user_id"`
	Roles  []string `json:"roles"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// --------------------------------------------------
// Password policy
// --------------------------------------------------

// ValidatePassword enforces the account password policy: at least 6
// characters with a digit, a lowercase and an uppercase letter.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return httperr.ErrBusiness("password_too_short")
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	if !hasDigit || !hasLower || !hasUpper {
		return httperr.ErrBusiness("password_too_weak")
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// --------------------------------------------------
// Lookup / authentication
// --------------------------------------------------

func (s *Service) Lookup(ctx context.Context, userID uint) (*Identity, error) {
	var acc models.Account
	if err := s.db.WithContext(ctx).
		Preload("Roles").
		First(&acc, userID).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("account_not_found")
		}
		return nil, err
	}

	return &Identity{UserID: acc.ID, Roles: roleNames(acc.Roles)}, nil
}

func (s *Service) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (*models.Account, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	var acc models.Account
	if err := s.db.WithContext(ctx).
		Preload("Roles").
		Where("email = ?", email).
		First(&acc).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invalid_credentials")
		}
		return nil, err
	}

	if !acc.IsActive {
		return nil, httperr.ErrBusiness("account_disabled")
	}

	if !CheckPassword(acc.PasswordHash, password) {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	return &acc, nil
}

// --------------------------------------------------
// Administration
// --------------------------------------------------

type CreateAccountInput struct {
	Email    string
	FullName string
	Password string
	Roles    []string
}

func (s *Service) CreateAccount(
	ctx context.Context,
	in CreateAccountInput,
) (*models.Account, error) {

	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	var count int64
	s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("email = ?", email).
		Count(&count)
	if count > 0 {
		return nil, httperr.ErrBusiness("email_already_exists")
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	roles, err := s.findRoles(ctx, in.Roles)
	if err != nil {
		return nil, err
	}

	acc := models.Account{
		Email:        email,
		FullName:     in.FullName,
		PasswordHash: hashed,
		IsActive:     true,
		Roles:        roles,
	}

	if err := s.db.WithContext(ctx).Create(&acc).Error; err != nil {
		return nil, err
	}

	return &acc, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var accs []models.Account
	if err := s.db.WithContext(ctx).
		Preload("Roles").
		Order("created_at ASC").
		Find(&accs).Error; err != nil {
		return nil, err
	}
	return accs, nil
}

func (s *Service) SetRoles(
	ctx context.Context,
	userID uint,
	roleNames []string,
) (*models.Account, error) {

	var acc models.Account
	if err := s.db.WithContext(ctx).First(&acc, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("account_not_found")
		}
		return nil, err
	}

	roles, err := s.findRoles(ctx, roleNames)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Model(&acc).
		Association("Roles").
		Replace(roles); err != nil {
		return nil, err
	}

	acc.Roles = roles
	return &acc, nil
}

func (s *Service) SetActive(
	ctx context.Context,
	userID uint,
	active bool,
) error {

	res := s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", userID).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("account_not_found")
	}
	return nil
}

func (s *Service) DeleteAccount(ctx context.Context, userID uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Account{}, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("account_not_found")
	}
	return nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (s *Service) findRoles(
	ctx context.Context,
	names []string,
) ([]models.Role, error) {

	if len(names) == 0 {
		return nil, nil
	}

	var roles []models.Role
	if err := s.db.WithContext(ctx).
		Where("name IN ?", names).
		Find(&roles).Error; err != nil {
		return nil, err
	}

	if len(roles) != len(names) {
		return nil, httperr.ErrBusiness("role_not_found")
	}
	return roles, nil
}

func roleNames(roles []models.Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names
}
