package auth

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotoboard/server/internal/errs"
	"github.com/lotoboard/server/internal/model"
)

// memUserRepo is an in-memory repo.UserRepo for service tests.
type memUserRepo struct {
	nextID int
	users  map[int]model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[int]model.User{}}
}

func (m *memUserRepo) GetByID(_ context.Context, id int) (model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return model.User{}, errs.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, errs.ErrNotFound
}

func (m *memUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memUserRepo) Create(_ context.Context, username, passwordHash string, isAdmin bool) (model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return model.User{}, errs.ErrAlreadyExists
		}
	}
	u := model.User{
		ID:           m.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().Add(time.Duration(m.nextID) * time.Millisecond),
	}
	m.users[u.ID] = u
	m.nextID++
	return u, nil
}

func (m *memUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.users[id]; !ok {
		return errs.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUserRepo) Count(_ context.Context) (int, error) {
	return len(m.users), nil
}

func newTestService(t *testing.T) (*Service, *memUserRepo) {
	t.Helper()
	repo := newMemUserRepo()
	jwtService := NewJWTService("test-jwt-secret-at-least-32-characters-long", SessionTTL)
	return NewService(jwtService, repo, nil), repo
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_, err := svc.CreateUser(ctx, "organizer", "longenough1", true)
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "organizer", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, "organizer", user.Username)
	assert.NotEmpty(t, token)
}

func TestLoginUniformFailure(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_, err := svc.CreateUser(ctx, "organizer", "longenough1", true)
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(ctx, "nobody", "longenough1")
	_, _, errWrongPw := svc.Login(ctx, "organizer", "wrongpassword")

	assert.ErrorIs(t, errUnknown, errs.ErrUnauthenticated)
	assert.ErrorIs(t, errWrongPw, errs.ErrUnauthenticated)
	assert.Equal(t, errUnknown, errWrongPw, "no distinction between unknown user and wrong password")
}

func TestCreateUserValidation(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	_, err := svc.CreateUser(ctx, "ab", "longenough1", false)
	assert.ErrorIs(t, err, errs.ErrInvalidInput, "username below 3 chars must be rejected")

	_, err = svc.CreateUser(ctx, "validname", "short", false)
	assert.ErrorIs(t, err, errs.ErrInvalidInput, "password below 8 chars must be rejected")

	count, _ := repo.Count(ctx)
	assert.Zero(t, count, "validation failures must not touch storage")
}

func TestCreateUserStoresHash(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	user, err := svc.CreateUser(ctx, "caller", "password123", false)
	require.NoError(t, err)

	stored := repo.users[user.ID]
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.True(t, CheckPassword(stored.PasswordHash, "password123"))
}

func TestCreateUserConflict(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_, err := svc.CreateUser(ctx, "caller", "password123", false)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "caller", "otherpassword", false)
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestDeleteUserSelfGuard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	admin, err := svc.CreateUser(ctx, "organizer", "longenough1", true)
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidInput, "self-deletion must always be rejected")

	err = svc.DeleteUser(ctx, admin.ID, 999)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	created, err := svc.EnsureAdmin(ctx, "admin", "bootstrap-password")
	require.NoError(t, err)
	assert.True(t, created)

	u, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	// Second call is a no-op once users exist
	created, err = svc.EnsureAdmin(ctx, "admin", "bootstrap-password")
	require.NoError(t, err)
	assert.False(t, created)
}
