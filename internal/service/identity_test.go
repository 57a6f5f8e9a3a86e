package service

import (
	"context"
	"testing"
	"time"

	"wtms/internal/auth"
	"wtms/internal/models"
	"wtms/internal/repository/repositorytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEncKey = "test-encryption-key"

func newIdentity(store *repositorytest.Store) (*Identity, *memoryCache, *auth.Issuer) {
	c := newMemoryCache()
	iss := auth.NewIssuer("secret", time.Hour)
	return NewIdentity(store, c, iss, testEncKey, time.Minute), c, iss
}

func validRegister() RegisterInput {
	return RegisterInput{
		FullName: "Siti Aminah",
		Email:    "siti@mail.com",
		Password: "rahsia123",
		Phone:    "0123456789",
		Address:  "Jalan 1, KL",
	}
}

func TestRegister(t *testing.T) {
	store := repositorytest.New()
	id, _, _ := newIdentity(store)
	ctx := context.Background()

	w, err := id.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.NotZero(t, w.ID)
	assert.Equal(t, models.DefaultGender, w.Gender)
	assert.Equal(t, models.DefaultNationality, w.Nationality)
	assert.Equal(t, models.DefaultCountry, w.Country)
	assert.NotEqual(t, "rahsia123", w.PasswordHash)

	_, err = id.Register(ctx, validRegister())
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	id, _, _ := newIdentity(repositorytest.New())
	ctx := context.Background()

	cases := map[string]func(*RegisterInput){
		"missing name":   func(in *RegisterInput) { in.FullName = "" },
		"bad email":      func(in *RegisterInput) { in.Email = "not-an-email" },
		"short password": func(in *RegisterInput) { in.Password = "12345" },
		"missing phone":  func(in *RegisterInput) { in.Phone = "" },
		"missing addr":   func(in *RegisterInput) { in.Address = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validRegister()
			mutate(&in)
			_, err := id.Register(ctx, in)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestLogin(t *testing.T) {
	store := repositorytest.New()
	id, _, iss := newIdentity(store)
	ctx := context.Background()

	registered, err := id.Register(ctx, validRegister())
	require.NoError(t, err)

	w, token, err := id.Login(ctx, "siti@mail.com", "rahsia123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, w.ID)

	workerID, err := iss.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, workerID)

	_, _, err = id.Login(ctx, "siti@mail.com", "wrong-pass")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, _, err = id.Login(ctx, "nobody@mail.com", "rahsia123")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, _, err = id.Login(ctx, "", "")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestLogin_DecryptsProfileAndIgnoresEmailCase(t *testing.T) {
	store := repositorytest.New()
	id, _, _ := newIdentity(store)
	ctx := context.Background()

	in := validRegister()
	in.Email = "  Siti@Mail.com "
	registered, err := id.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "siti@mail.com", registered.Email)

	dup := validRegister()
	dup.Email = "SITI@mail.com"
	_, err = id.Register(ctx, dup)
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = id.UpdateProfile(ctx, registered.ID, ProfileInput{
		FullName:              "Siti Aminah",
		Email:                 "siti@mail.com",
		Phone:                 "0123456789",
		EmergencyContactPhone: ptr("0171234567"),
	})
	require.NoError(t, err)

	w, _, err := id.Login(ctx, "SITI@MAIL.COM", "rahsia123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, w.ID)
	require.NotNil(t, w.EmergencyContactPhone)
	assert.Equal(t, "0171234567", *w.EmergencyContactPhone)
}

func TestGetProfile_CacheAside(t *testing.T) {
	store := repositorytest.New()
	id, c, _ := newIdentity(store)
	ctx := context.Background()

	w, err := id.Register(ctx, validRegister())
	require.NoError(t, err)

	_, err = id.GetProfile(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, c.has(profileKey(w.ID)))
	assert.Equal(t, 1, store.Calls("GetWorker"))

	got, err := id.GetProfile(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Siti Aminah", got.FullName)
	assert.Equal(t, 1, store.Calls("GetWorker"))

	_, err = id.GetProfile(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	store := repositorytest.New()
	id, c, _ := newIdentity(store)
	ctx := context.Background()

	w, err := id.Register(ctx, validRegister())
	require.NoError(t, err)
	_, err = id.GetProfile(ctx, w.ID)
	require.NoError(t, err)

	dob := models.NewDate(1990, 3, 14)
	updated, err := id.UpdateProfile(ctx, w.ID, ProfileInput{
		FullName:              "Siti A.",
		Email:                 "siti@mail.com",
		Phone:                 "0199999999",
		DateOfBirth:           &dob,
		EmergencyContactName:  ptr("Ali"),
		EmergencyContactPhone: ptr("0171234567"),
		City:                  ptr("  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Siti A.", updated.FullName)
	assert.Equal(t, models.DefaultGender, updated.Gender)
	assert.Equal(t, models.DefaultCountry, updated.Country)
	assert.Nil(t, updated.City)
	require.NotNil(t, updated.DateOfBirth)
	assert.Equal(t, "1990-03-14", updated.DateOfBirth.String())
	require.NotNil(t, updated.EmergencyContactPhone)
	assert.Equal(t, "0171234567", *updated.EmergencyContactPhone)

	// Stored at rest in encrypted form.
	raw, err := store.GetWorker(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, raw.EmergencyContactPhone)
	assert.NotEqual(t, "0171234567", *raw.EmergencyContactPhone)

	// Cache repopulated from the fresh row.
	assert.True(t, c.has(profileKey(w.ID)))
	cached, err := id.GetProfile(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Siti A.", cached.FullName)
	assert.Equal(t, "0171234567", *cached.EmergencyContactPhone)
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	store := repositorytest.New()
	id, _, _ := newIdentity(store)
	ctx := context.Background()

	a, err := id.Register(ctx, validRegister())
	require.NoError(t, err)
	other := validRegister()
	other.Email = "other@mail.com"
	_, err = id.Register(ctx, other)
	require.NoError(t, err)

	_, err = id.UpdateProfile(ctx, a.ID, ProfileInput{FullName: "x", Email: "other@mail.com", Phone: "1"})
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = id.UpdateProfile(ctx, a.ID, ProfileInput{FullName: "x", Email: "bad", Phone: "1"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSetProfileImage(t *testing.T) {
	store := repositorytest.New()
	id, _, _ := newIdentity(store)
	ctx := context.Background()

	w, err := id.Register(ctx, validRegister())
	require.NoError(t, err)
	_, err = id.GetProfile(ctx, w.ID)
	require.NoError(t, err)

	got, err := id.SetProfileImage(ctx, w.ID, "uploads/profile_images/a.png")
	require.NoError(t, err)
	require.NotNil(t, got.ProfileImage)
	assert.Equal(t, "uploads/profile_images/a.png", *got.ProfileImage)

	_, err = id.SetProfileImage(ctx, 999, "x.png")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = id.SetProfileImage(ctx, w.ID, "")
	assert.ErrorIs(t, err, models.ErrValidation)
}
