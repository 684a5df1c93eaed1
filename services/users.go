package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/vnkhanh/quizmaster-backend/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MinPasswordLength = 6

type RegisterInput struct {
	Username      string `form:"username" json:"username" binding:"required"`
	Email         string `form:"email" json:"email" binding:"required,email"`
	Password      string `form:"password" json:"password" binding:"required,min=6"`
	FullName      string `form:"full_name" json:"full_name"`
	Qualification string `form:"qualification" json:"qualification"`
	DOB           string `form:"dob" json:"dob"`
}

// Users handles accounts: registration, credential checks and the admin
// user screens.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (s *Users) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username, err := requireName("username", in.Username)
	if err != nil {
		return nil, err
	}
	email, err := requireName("email", in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < MinPasswordLength {
		return nil, invalid("password", "must be at least 6 characters")
	}
	if len(in.Password) > 72 {
		return nil, invalid("password", "must be at most 72 bytes")
	}
	user := models.User{
		Username:      username,
		Email:         email,
		FullName:      strings.TrimSpace(in.FullName),
		Qualification: strings.TrimSpace(in.Qualification),
	}
	if strings.TrimSpace(in.DOB) != "" {
		dob, err := ParseDate("dob", in.DOB)
		if err != nil {
			return nil, err
		}
		user.DOB = &dob
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &PersistenceError{Op: "hash password", Err: err}
	}
	user.Password = string(hashed)

	if err := s.create(ctx, &user); err != nil {
		return nil, err
	}
	log.Printf("user %d %q registered", user.ID, user.Username)
	return &user, nil
}

func (s *Users) create(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dup, err := taken(tx, &models.User{}, 0, "email = ?", user.Email)
		if err != nil {
			return err
		}
		if dup {
			return invalid("email", "email already registered")
		}
		dup, err = taken(tx, &models.User{}, 0, "username = ?", user.Username)
		if err != nil {
			return err
		}
		if dup {
			return invalid("username", "username already taken")
		}
		return tx.Create(user).Error
	})
	return storeErr("create user", err)
}

// Authenticate checks an email/password pair. Unknown email and wrong password
// fail the same way.
func (s *Users) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &AuthorizationError{Reason: "invalid credentials"}
	}
	if err != nil {
		return nil, storeErr("load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, &AuthorizationError{Reason: "invalid credentials"}
	}
	return &user, nil
}

func (s *Users) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, findErr("user", id, err)
	}
	return &user, nil
}

// EnsureAdmin creates the default administrator unless a user with that
// username already exists.
func (s *Users) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	exists, err := taken(s.db.WithContext(ctx), &models.User{}, 0, "username = ?", username)
	if err != nil {
		return false, storeErr("look up admin", err)
	}
	if exists {
		return false, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, &PersistenceError{Op: "hash password", Err: err}
	}
	admin := models.User{
		Username:      username,
		Email:         email,
		Password:      string(hashed),
		FullName:      "Administrator",
		Qualification: "Admin",
		IsAdmin:       true,
	}
	if err := s.create(ctx, &admin); err != nil {
		return false, err
	}
	log.Printf("admin account %q created", username)
	return true, nil
}

func (s *Users) List(ctx context.Context, p *Principal) ([]models.User, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

// Delete purges the user's scores and sessions, then the user.
func (s *Users) Delete(ctx context.Context, p *Principal, id uint) (int64, error) {
	if err := RequireAdmin(p); err != nil {
		return 0, err
	}
	if id == p.UserID {
		return 0, invalid("user", "you cannot delete your own account")
	}
	var purged int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return findErr("user", id, err)
		}
		res := tx.Where("user_id = ?", id).Delete(&models.Score{})
		if res.Error != nil {
			return res.Error
		}
		purged = res.RowsAffected
		if err := tx.Where("user_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return 0, storeErr("delete user", err)
	}
	log.Printf("user %d deleted with %d scores", id, purged)
	return purged, nil
}
