package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	appModels "github.com/devconnect/backend/internal/app/models"
	appRepos "github.com/devconnect/backend/internal/app/repositories"
	"github.com/devconnect/backend/internal/pkg/apperrors"
	"github.com/devconnect/backend/internal/pkg/auth"
)

// CreateDefaultData creates the default admin and a couple of developer
// accounts if they don't exist yet.
func CreateDefaultData(ctx context.Context, database *mongo.Database, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(database)

	lgr.Info().Msg("Checking/Creating default accounts...")

	defaults := []struct {
		email    string
		name     string
		password string
		role     appModels.Role
		profile  appModels.Profile
	}{
		{
			email:    "admin@devconnect.app",
			name:     "Platform Admin",
			password: "ChangeMe123!",
			role:     appModels.RoleAdmin,
		},
		{
			email:    "ada@devconnect.app",
			name:     "Ada Martin",
			password: "DevPass123!",
			role:     appModels.RoleDeveloper,
			profile: appModels.Profile{
				Bio:        "Backend developer into distributed systems",
				Skills:     []string{"Go", "MongoDB", "Docker"},
				Experience: "Senior",
			},
		},
		{
			email:    "leo@devconnect.app",
			name:     "Leo Tanaka",
			password: "DevPass123!",
			role:     appModels.RoleDeveloper,
			profile: appModels.Profile{
				Bio:        "Frontend developer, React and design systems",
				Skills:     []string{"TypeScript", "React", "CSS"},
				Experience: "Mid",
			},
		},
	}

	var finalErr error
	for _, account := range defaults {
		if _, err := userRepo.FindByEmail(ctx, account.email); err == nil {
			continue
		} else if !errors.Is(err, apperrors.ErrUserNotFound) {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error checking default account")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		hashed, err := auth.HashPassword(account.password)
		if err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error hashing default account password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		user := &appModels.User{
			Email:    account.email,
			Password: hashed,
			Name:     account.name,
			Role:     account.role,
			Profile:  account.profile,
		}
		if err := userRepo.Insert(ctx, user); err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error creating default account")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		lgr.Info().Str("email", account.email).Str("role", string(account.role)).Msg("Default account created")
	}

	return finalErr
}
