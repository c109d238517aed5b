package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warden/internal/application/user/dto"
	"warden/internal/shared/biztime"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

func updateCommand(email string) dto.UpdateUserCommand {
	return dto.UpdateUserCommand{
		ID:        7,
		FirstName: "Kim",
		LastName:  "Park",
		Email:     email,
		IsActive:  true,
	}
}

func TestUpdateUserUseCase_EmailCheck(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		checked   bool
		taken     bool
		wantError func(error) bool
	}{
		{name: "same address in other case", email: "KIM@example.com"},
		{name: "new free address", email: "kim.park@example.com", checked: true},
		{name: "new taken address", email: "lee@example.com", checked: true, taken: true, wantError: errors.IsConflictError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepository)
			hasher := new(mockPasswordHasher)

			repo.On("GetByID", mock.Anything, uint(7)).Return(storedUser(t, true, "digest"), nil)
			if tt.checked {
				repo.On("EmailExists", mock.Anything, tt.email, uint(7)).Return(tt.taken, nil)
			}
			if tt.wantError == nil {
				repo.On("Update", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)
			}

			uc := NewUpdateUserUseCase(repo, hasher, inlineTx{}, biztime.NewFixedClock(now), logger.NewNopLogger())
			got, err := uc.Execute(context.Background(), updateCommand(tt.email))

			if tt.wantError != nil {
				require.Error(t, err)
				assert.True(t, tt.wantError(err), "unexpected error: %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.email, got.Email().String())
			}
			if !tt.checked {
				repo.AssertNotCalled(t, "EmailExists", mock.Anything, mock.Anything, mock.Anything)
			}
			repo.AssertExpectations(t)
		})
	}
}
