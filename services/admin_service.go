package services

import (
	"context"
	"strings"
	"time"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/security"
	"github.com/HSouheill/coffee_backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AdminService manages back-office accounts
type AdminService struct {
	admins AdminStore
	logger *zap.Logger
	now    func() time.Time
}

func NewAdminService(admins AdminStore, logger *zap.Logger) *AdminService {
	return &AdminService{
		admins: admins,
		logger: logger,
		now:    time.Now,
	}
}

// Profile returns the account with the given id
func (s *AdminService) Profile(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	return s.admins.FindByID(ctx, id)
}

// UpdateProfile changes the caller's names and email
func (s *AdminService) UpdateProfile(ctx context.Context, id primitive.ObjectID, in models.ProfileUpdate) (*models.Admin, error) {
	if err := Validate(&in); err != nil {
		return nil, err
	}

	set := bson.M{}
	if v := utils.SanitizeInput(in.FirstName); v != "" {
		set["firstName"] = v
	}
	if v := utils.SanitizeInput(in.LastName); v != "" {
		set["lastName"] = v
	}
	if in.Email != "" {
		email, err := s.uniqueEmail(ctx, in.Email, id)
		if err != nil {
			return nil, err
		}
		set["email"] = email
	}
	if len(set) == 0 {
		return s.admins.FindByID(ctx, id)
	}
	return s.admins.Update(ctx, id, set)
}

// ChangePassword replaces the caller's password after checking the current one
func (s *AdminService) ChangePassword(ctx context.Context, id primitive.ObjectID, in models.ChangePasswordRequest) error {
	if err := Validate(&in); err != nil {
		return err
	}

	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := security.CheckPassword(admin.Password, in.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Validation("Current password is incorrect")
	}

	hashed, err := security.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	_, err = s.admins.Update(ctx, id, bson.M{"password": hashed})
	return err
}

// List returns all accounts, newest first
func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	return s.admins.List(ctx)
}

// Create registers a new account. The role defaults to editor.
func (s *AdminService) Create(ctx context.Context, in models.CreateAdminRequest) (*models.Admin, error) {
	in.FirstName = utils.SanitizeInput(in.FirstName)
	in.LastName = utils.SanitizeInput(in.LastName)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := Validate(&in); err != nil {
		return nil, err
	}

	username, err := utils.SanitizeUsername(in.Username)
	if err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}
	email, err := utils.SanitizeEmail(in.Email)
	if err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}

	exists, err := s.admins.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Validation("Username or email already exists")
	}

	hashed, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleEditor
	}

	now := s.now()
	admin := &models.Admin{
		Username:  username,
		Email:     email,
		Password:  hashed,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("Admin created", zap.String("username", admin.Username), zap.String("role", admin.Role))
	return admin, nil
}

// Update changes another account's details
func (s *AdminService) Update(ctx context.Context, id string, in models.UpdateAdminRequest) (*models.Admin, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := Validate(&in); err != nil {
		return nil, err
	}

	set := bson.M{}
	if v := utils.SanitizeInput(in.FirstName); v != "" {
		set["firstName"] = v
	}
	if v := utils.SanitizeInput(in.LastName); v != "" {
		set["lastName"] = v
	}
	if in.Email != "" {
		email, err := s.uniqueEmail(ctx, in.Email, oid)
		if err != nil {
			return nil, err
		}
		set["email"] = email
	}
	if in.Role != "" {
		set["role"] = in.Role
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}
	if len(set) == 0 {
		return s.admins.FindByID(ctx, oid)
	}
	return s.admins.Update(ctx, oid, set)
}

// Delete removes an account. Admins cannot delete themselves.
func (s *AdminService) Delete(ctx context.Context, actor primitive.ObjectID, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if oid == actor {
		return apperrors.Validation("Cannot delete your own account")
	}
	if err := s.admins.Delete(ctx, oid); err != nil {
		return err
	}

	s.logger.Info("Admin deleted", zap.String("id", oid.Hex()), zap.String("by", actor.Hex()))
	return nil
}

func (s *AdminService) uniqueEmail(ctx context.Context, raw string, owner primitive.ObjectID) (string, error) {
	email, err := utils.SanitizeEmail(raw)
	if err != nil {
		return "", apperrors.Validation("%s", err.Error())
	}
	taken, err := s.admins.EmailTaken(ctx, email, owner)
	if err != nil {
		return "", err
	}
	if taken {
		return "", apperrors.Validation("Email already in use")
	}
	return email, nil
}
