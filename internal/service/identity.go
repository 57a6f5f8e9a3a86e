package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"wtms/internal/cache"
	"wtms/internal/models"
	"wtms/internal/repository"
	"wtms/pkg/crypto"
	"wtms/pkg/logger"
	"wtms/pkg/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer dipenuhi oleh *auth.Issuer.
type TokenIssuer interface {
	Issue(workerID int64) (string, error)
}

type RegisterInput struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
}

// ProfileInput adalah isi form profil. Field opsional yang kosong diisi
// default (gender, nationality, country) atau disimpan sebagai NULL.
type ProfileInput struct {
	FullName                     string       `json:"full_name" validate:"required"`
	Email                        string       `json:"email" validate:"required,email"`
	Phone                        string       `json:"phone" validate:"required"`
	Address                      string       `json:"address"`
	DateOfBirth                  *models.Date `json:"date_of_birth"`
	Gender                       string       `json:"gender"`
	Nationality                  string       `json:"nationality"`
	EmergencyContactName         *string      `json:"emergency_contact_name"`
	EmergencyContactPhone        *string      `json:"emergency_contact_phone"`
	EmergencyContactRelationship *string      `json:"emergency_contact_relationship"`
	City                         *string      `json:"city"`
	State                        *string      `json:"state"`
	PostalCode                   *string      `json:"postal_code"`
	Country                      string       `json:"country"`
}

type Identity struct {
	store    repository.Store
	cache    cache.Cache
	issuer   TokenIssuer
	encKey   string
	cacheTTL time.Duration
}

func NewIdentity(store repository.Store, c cache.Cache, issuer TokenIssuer, encKey string, cacheTTL time.Duration) *Identity {
	if c == nil {
		c = cache.Nop{}
	}
	return &Identity{store: store, cache: c, issuer: issuer, encKey: encKey, cacheTTL: cacheTTL}
}

func profileKey(workerID int64) string {
	return fmt.Sprintf("worker:%d", workerID)
}

func validationError(err error) error {
	return fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
}

// normalizeEmail membuat email tidak peka huruf besar/kecil.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Identity) Register(ctx context.Context, in RegisterInput) (models.Worker, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Validate.Struct(in); err != nil {
		return models.Worker{}, validationError(err)
	}

	if _, err := s.store.GetWorkerByEmail(ctx, in.Email); err == nil {
		return models.Worker{}, fmt.Errorf("email already registered: %w", models.ErrConflict)
	} else if !errors.Is(err, models.ErrNotFound) {
		return models.Worker{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Worker{}, fmt.Errorf("hash password: %w", err)
	}

	w := models.Worker{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Phone:        in.Phone,
		Address:      in.Address,
		Gender:       models.DefaultGender,
		Nationality:  models.DefaultNationality,
		Country:      models.DefaultCountry,
	}
	// Unique constraint tetap menjadi penentu jika dua register balapan.
	if err := s.store.CreateWorker(ctx, &w); err != nil {
		return models.Worker{}, err
	}
	logger.AuditLogger.Info("Worker registered", zap.Int64("worker_id", w.ID))
	return w, nil
}

func (s *Identity) Login(ctx context.Context, email, password string) (models.Worker, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return models.Worker{}, "", fmt.Errorf("%w: email and password are required", models.ErrValidation)
	}

	w, err := s.store.GetWorkerByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, models.ErrNotFound) {
		logger.SecurityLogger.Warn("Login failed: unknown email", zap.String("email", email))
		return models.Worker{}, "", fmt.Errorf("invalid email or password: %w", models.ErrUnauthorized)
	}
	if err != nil {
		return models.Worker{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(w.PasswordHash), []byte(password)); err != nil {
		logger.SecurityLogger.Warn("Login failed: wrong password", zap.Int64("worker_id", w.ID))
		return models.Worker{}, "", fmt.Errorf("invalid email or password: %w", models.ErrUnauthorized)
	}

	w, err = s.decrypt(w)
	if err != nil {
		return models.Worker{}, "", err
	}
	token, err := s.issuer.Issue(w.ID)
	if err != nil {
		return models.Worker{}, "", err
	}
	logger.AuditLogger.Info("Worker logged in", zap.Int64("worker_id", w.ID))
	return w, token, nil
}

// GetProfile membaca profil lewat cache. Cache menyimpan bentuk terenkripsi;
// dekripsi selalu dilakukan saat keluar.
func (s *Identity) GetProfile(ctx context.Context, workerID int64) (models.Worker, error) {
	if workerID <= 0 {
		return models.Worker{}, fmt.Errorf("%w: worker id is required", models.ErrValidation)
	}

	key := profileKey(workerID)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var w models.Worker
		if err := json.Unmarshal([]byte(cached), &w); err == nil {
			return s.decrypt(w)
		}
		logger.ErrorLogger.Error("Corrupt profile cache entry", zap.String("key", key))
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.ErrorLogger.Error("Error reading profile cache", zap.String("key", key), zap.Error(err))
	}

	w, err := s.store.GetWorker(ctx, workerID)
	if err != nil {
		return models.Worker{}, err
	}
	if data, err := json.Marshal(w); err == nil {
		if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
			logger.ErrorLogger.Error("Error writing profile cache", zap.String("key", key), zap.Error(err))
		}
	}
	return s.decrypt(w)
}

func (s *Identity) decrypt(w models.Worker) (models.Worker, error) {
	if w.EmergencyContactPhone == nil || *w.EmergencyContactPhone == "" {
		return w, nil
	}
	plain, err := crypto.Decrypt(*w.EmergencyContactPhone, s.encKey)
	if err != nil {
		logger.SecurityLogger.Warn("Cannot decrypt emergency contact phone", zap.Int64("worker_id", w.ID), zap.Error(err))
		return models.Worker{}, fmt.Errorf("decrypt emergency contact phone: %w", err)
	}
	w.EmergencyContactPhone = &plain
	return w, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func nilIfBlank(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}

func (s *Identity) UpdateProfile(ctx context.Context, workerID int64, in ProfileInput) (models.Worker, error) {
	if workerID <= 0 {
		return models.Worker{}, fmt.Errorf("%w: worker id is required", models.ErrValidation)
	}
	in.Email = normalizeEmail(in.Email)
	if err := validation.Validate.Struct(in); err != nil {
		return models.Worker{}, validationError(err)
	}

	taken, err := s.store.EmailTakenByOther(ctx, in.Email, workerID)
	if err != nil {
		return models.Worker{}, err
	}
	if taken {
		return models.Worker{}, fmt.Errorf("email is already taken by another user: %w", models.ErrConflict)
	}

	if in.DateOfBirth != nil && in.DateOfBirth.IsZero() {
		in.DateOfBirth = nil
	}

	w := models.Worker{
		ID:                           workerID,
		FullName:                     in.FullName,
		Email:                        in.Email,
		Phone:                        in.Phone,
		Address:                      in.Address,
		DateOfBirth:                  in.DateOfBirth,
		Gender:                       orDefault(in.Gender, models.DefaultGender),
		Nationality:                  orDefault(in.Nationality, models.DefaultNationality),
		EmergencyContactName:         nilIfBlank(in.EmergencyContactName),
		EmergencyContactRelationship: nilIfBlank(in.EmergencyContactRelationship),
		City:                         nilIfBlank(in.City),
		State:                        nilIfBlank(in.State),
		PostalCode:                   nilIfBlank(in.PostalCode),
		Country:                      orDefault(in.Country, models.DefaultCountry),
	}
	if phone := nilIfBlank(in.EmergencyContactPhone); phone != nil {
		enc, err := crypto.Encrypt(*phone, s.encKey)
		if err != nil {
			return models.Worker{}, fmt.Errorf("encrypt emergency contact phone: %w", err)
		}
		w.EmergencyContactPhone = &enc
	}

	if err := s.store.UpdateWorker(ctx, &w); err != nil {
		return models.Worker{}, err
	}
	s.invalidate(ctx, workerID)
	logger.AuditLogger.Info("Profile updated", zap.Int64("worker_id", workerID))
	return s.GetProfile(ctx, workerID)
}

func (s *Identity) SetProfileImage(ctx context.Context, workerID int64, path string) (models.Worker, error) {
	if workerID <= 0 || strings.TrimSpace(path) == "" {
		return models.Worker{}, fmt.Errorf("%w: worker id and image path are required", models.ErrValidation)
	}
	if err := s.store.UpdateProfileImage(ctx, workerID, path); err != nil {
		return models.Worker{}, err
	}
	s.invalidate(ctx, workerID)
	logger.AuditLogger.Info("Profile image updated", zap.Int64("worker_id", workerID), zap.String("path", path))
	return s.GetProfile(ctx, workerID)
}

func (s *Identity) invalidate(ctx context.Context, workerID int64) {
	if err := s.cache.Del(ctx, profileKey(workerID)); err != nil {
		logger.ErrorLogger.Error("Error invalidating profile cache", zap.Int64("worker_id", workerID), zap.Error(err))
	}
}
