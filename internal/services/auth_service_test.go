package services

import (
	"context"
	"testing"
	"time"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/codes"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/repositories"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/store"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingCodeStore records issued codes so tests can replay them.
type capturingCodeStore struct {
	*codes.Memory
	lastSubject string
	lastCode    string
}

func (c *capturingCodeStore) Put(ctx context.Context, subject, code string, ttl time.Duration) error {
	c.lastSubject = subject
	c.lastCode = code
	return c.Memory.Put(ctx, subject, code, ttl)
}

func newAuthFixture(t *testing.T) (AuthService, *capturingCodeStore) {
	t.Helper()
	gymRepo := repositories.NewGymRepository(store.NewMemory())
	codeStore := &capturingCodeStore{Memory: codes.NewMemory()}
	return NewAuthService(gymRepo, codeStore), codeStore
}

func validRegisterRequest(email string) RegisterRequest {
	return RegisterRequest{
		GymName:  "Iron Temple",
		Address:  "Astana, Mangilik El 55",
		Contact:  "+77010000000",
		Email:    email,
		Password: "sup3r-secret",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	gym, err := svc.Register(ctx, validRegisterRequest("owner@iron.kz"))
	require.NoError(t, err)
	assert.NotEmpty(t, gym.ID)
	assert.Equal(t, "Iron Temple", gym.GymName)

	resp, err := svc.Login(ctx, LoginRequest{Email: "owner@iron.kz", Password: "sup3r-secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, gym.ID, resp.Gym.ID)

	claims, err := utils.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, gym.ID, claims.GymID)
	assert.Equal(t, "owner@iron.kz", claims.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest("owner@iron.kz"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, validRegisterRequest("owner@iron.kz"))
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	req := validRegisterRequest("owner@iron.kz")
	req.Password = "short"
	_, err := svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrAuthValidation)

	req = validRegisterRequest("not-an-email")
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrAuthValidation)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest("owner@iron.kz"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "owner@iron.kz", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@iron.kz", Password: "sup3r-secret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	gym, err := svc.Register(ctx, validRegisterRequest("owner@iron.kz"))
	require.NoError(t, err)

	got, err := svc.Me(ctx, gym.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner@iron.kz", got.Email)

	_, err = svc.Me(ctx, "ghost")
	assert.ErrorIs(t, err, ErrGymNotFound)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, codeStore := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest("owner@iron.kz"))
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, ForgotPasswordRequest{Email: "owner@iron.kz"}))
	require.NotEmpty(t, codeStore.lastCode)
	assert.Equal(t, "owner@iron.kz", codeStore.lastSubject)

	err = svc.ResetPassword(ctx, ResetPasswordRequest{
		Email:       "owner@iron.kz",
		Code:        codeStore.lastCode,
		NewPassword: "new-password-1",
	})
	require.NoError(t, err)

	// old password dead, new one works
	_, err = svc.Login(ctx, LoginRequest{Email: "owner@iron.kz", Password: "sup3r-secret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, LoginRequest{Email: "owner@iron.kz", Password: "new-password-1"})
	assert.NoError(t, err)
}

func TestResetPasswordRejectsWrongCode(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest("owner@iron.kz"))
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, ForgotPasswordRequest{Email: "owner@iron.kz"}))

	err = svc.ResetPassword(ctx, ResetPasswordRequest{Email: "owner@iron.kz", Code: "000000", NewPassword: "new-password-1"})
	assert.ErrorIs(t, err, codes.ErrCodeInvalid)
}

func TestResetCodeIsSingleUse(t *testing.T) {
	svc, codeStore := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest("owner@iron.kz"))
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, ForgotPasswordRequest{Email: "owner@iron.kz"}))
	code := codeStore.lastCode

	require.NoError(t, svc.ResetPassword(ctx, ResetPasswordRequest{Email: "owner@iron.kz", Code: code, NewPassword: "new-password-1"}))
	err = svc.ResetPassword(ctx, ResetPasswordRequest{Email: "owner@iron.kz", Code: code, NewPassword: "another-password"})
	assert.ErrorIs(t, err, codes.ErrCodeInvalid)
}

func TestForgotPasswordForUnknownEmailIsSilent(t *testing.T) {
	svc, codeStore := newAuthFixture(t)

	require.NoError(t, svc.ForgotPassword(context.Background(), ForgotPasswordRequest{Email: "nobody@iron.kz"}))
	assert.Empty(t, codeStore.lastCode, "no code issued for unknown accounts")
}
