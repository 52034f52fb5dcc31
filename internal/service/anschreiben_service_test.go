package service

import (
	"context"
	"errors"
	"testing"

	"trackwerk/internal/ai"
	"trackwerk/internal/models"
	"trackwerk/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anschreibenRepoStub is a stub for repository.AnschreibenRepository.
type anschreibenRepoStub struct {
	createFn           func(context.Context, *models.Anschreiben) error
	getByIDFn          func(context.Context, uint, uint) (*models.Anschreiben, error)
	getByApplicationFn func(context.Context, uint, uint) ([]models.Anschreiben, error)
	listFn             func(context.Context, uint, repository.AnschreibenFilter) ([]models.Anschreiben, error)
	updateFn           func(context.Context, *models.Anschreiben) error
	deleteFn           func(context.Context, uint, uint) error
	statisticsFn       func(context.Context, uint) (*models.AnschreibenStatistics, error)
}

func (s *anschreibenRepoStub) Create(ctx context.Context, a *models.Anschreiben) error {
	return s.createFn(ctx, a)
}
func (s *anschreibenRepoStub) GetByID(ctx context.Context, userID, id uint) (*models.Anschreiben, error) {
	return s.getByIDFn(ctx, userID, id)
}
func (s *anschreibenRepoStub) GetByApplication(ctx context.Context, userID, applicationID uint) ([]models.Anschreiben, error) {
	return s.getByApplicationFn(ctx, userID, applicationID)
}
func (s *anschreibenRepoStub) List(ctx context.Context, userID uint, filter repository.AnschreibenFilter) ([]models.Anschreiben, error) {
	return s.listFn(ctx, userID, filter)
}
func (s *anschreibenRepoStub) Update(ctx context.Context, a *models.Anschreiben) error {
	return s.updateFn(ctx, a)
}
func (s *anschreibenRepoStub) Delete(ctx context.Context, userID, id uint) error {
	return s.deleteFn(ctx, userID, id)
}
func (s *anschreibenRepoStub) Statistics(ctx context.Context, userID uint) (*models.AnschreibenStatistics, error) {
	return s.statisticsFn(ctx, userID)
}

func noopAnschreibenRepo() *anschreibenRepoStub {
	return &anschreibenRepoStub{
		createFn: func(_ context.Context, a *models.Anschreiben) error {
			a.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, _, _ uint) (*models.Anschreiben, error) {
			return nil, models.NewNotFoundError("Anschreiben")
		},
		getByApplicationFn: func(_ context.Context, _, _ uint) ([]models.Anschreiben, error) { return nil, nil },
		listFn: func(_ context.Context, _ uint, _ repository.AnschreibenFilter) ([]models.Anschreiben, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Anschreiben) error { return nil },
		deleteFn: func(_ context.Context, _, _ uint) error { return nil },
		statisticsFn: func(_ context.Context, _ uint) (*models.AnschreibenStatistics, error) {
			return &models.AnschreibenStatistics{}, nil
		},
	}
}

// generatorStub is a stub for ai.Generator.
type generatorStub struct {
	generateFn func(context.Context, ai.CoverLetterInput) (string, error)
	refineFn   func(context.Context, string, string) (string, error)
}

func (s *generatorStub) GenerateCoverLetter(ctx context.Context, in ai.CoverLetterInput) (string, error) {
	return s.generateFn(ctx, in)
}
func (s *generatorStub) RefineCoverLetter(ctx context.Context, original, instructions string) (string, error) {
	return s.refineFn(ctx, original, instructions)
}

func configured(ok bool) func() bool {
	return func() bool { return ok }
}

func appRefExists(exists bool) *applicationRepoStub {
	repo := noopApplicationRepo()
	repo.existsFn = func(_ context.Context, _, _ uint) (bool, error) { return exists, nil }
	return repo
}

func validGenerateInput() GenerateAnschreibenInput {
	return GenerateAnschreibenInput{
		UserID:         1,
		JobDescription: "Backend development with Go",
		CompanyName:    "Siemens",
		PositionTitle:  "Backend Engineer",
		ApplicantName:  "Alice Anders",
		ApplicantEmail: "alice@example.com",
		ApplicantPhone: "+49 170 1234567",
	}
}

func TestAnschreibenService_Create(t *testing.T) {
	ctx := context.Background()

	svc := NewAnschreibenService(noopAnschreibenRepo(), appRefExists(true), nil, configured(false))

	t.Run("title and content required", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateAnschreibenInput{UserID: 1, Content: "text"})
		assertValidation(t, err)

		_, err = svc.Create(ctx, CreateAnschreibenInput{UserID: 1, Title: "Anschreiben"})
		assertValidation(t, err)
	})

	t.Run("foreign application link rejected", func(t *testing.T) {
		svc := NewAnschreibenService(noopAnschreibenRepo(), appRefExists(false), nil, configured(false))
		appID := uint(7)

		_, err := svc.Create(ctx, CreateAnschreibenInput{
			UserID: 1, ApplicationID: &appID, Title: "Anschreiben", Content: "text",
		})
		assert.True(t, models.IsNotFound(err, "Application"))
	})

	t.Run("manual creation works without AI", func(t *testing.T) {
		letter, err := svc.Create(ctx, CreateAnschreibenInput{
			UserID: 1, Title: "Anschreiben", Content: "Sehr geehrte Damen und Herren,",
		})
		require.NoError(t, err)
		assert.Equal(t, "Anschreiben", letter.Title)
	})
}

func TestAnschreibenService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured AI fails fast", func(t *testing.T) {
		svc := NewAnschreibenService(noopAnschreibenRepo(), appRefExists(true), nil, configured(false))

		_, err := svc.Generate(ctx, validGenerateInput())
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeAINotConfigured, appErr.Code)
	})

	t.Run("missing job details rejected", func(t *testing.T) {
		svc := NewAnschreibenService(noopAnschreibenRepo(), appRefExists(true),
			&generatorStub{}, configured(true))

		in := validGenerateInput()
		in.JobDescription = ""
		_, err := svc.Generate(ctx, in)
		assertValidation(t, err)
	})

	t.Run("missing applicant details rejected", func(t *testing.T) {
		svc := NewAnschreibenService(noopAnschreibenRepo(), appRefExists(true),
			&generatorStub{}, configured(true))

		in := validGenerateInput()
		in.ApplicantPhone = ""
		_, err := svc.Generate(ctx, in)
		assertValidation(t, err)
	})

	t.Run("successful generation persists and titles the letter", func(t *testing.T) {
		gen := &generatorStub{
			generateFn: func(_ context.Context, in ai.CoverLetterInput) (string, error) {
				assert.Equal(t, "Siemens", in.CompanyName)
				return "Sehr geehrte Damen und Herren,\n...", nil
			},
		}
		svc := NewAnschreibenService(noopAnschreibenRepo(), appRefExists(true), gen, configured(true))

		in := validGenerateInput()
		in.SaveAsTemplate = true
		letter, err := svc.Generate(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "Anschreiben - Backend Engineer bei Siemens", letter.Title)
		assert.Equal(t, "Sehr geehrte Damen und Herren,\n...", letter.Content)
		assert.True(t, letter.IsTemplate)
	})

	t.Run("generator failure maps to generation error", func(t *testing.T) {
		gen := &generatorStub{
			generateFn: func(_ context.Context, _ ai.CoverLetterInput) (string, error) {
				return "", errors.New("api timeout")
			},
		}
		svc := NewAnschreibenService(noopAnschreibenRepo(), appRefExists(true), gen, configured(true))

		_, err := svc.Generate(ctx, validGenerateInput())
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeAIGeneration, appErr.Code)
	})
}

func TestAnschreibenService_Refine(t *testing.T) {
	ctx := context.Background()

	existing := func() *anschreibenRepoStub {
		repo := noopAnschreibenRepo()
		repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Anschreiben, error) {
			return &models.Anschreiben{ID: 1, UserID: 1, Title: "Anschreiben", Content: "old draft"}, nil
		}
		return repo
	}

	t.Run("unconfigured AI fails fast", func(t *testing.T) {
		svc := NewAnschreibenService(existing(), appRefExists(true), nil, configured(false))

		_, err := svc.Refine(ctx, 1, 1, "make it formal")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeAINotConfigured, appErr.Code)
	})

	t.Run("instructions required", func(t *testing.T) {
		svc := NewAnschreibenService(existing(), appRefExists(true), &generatorStub{}, configured(true))
		_, err := svc.Refine(ctx, 1, 1, "  ")
		assertValidation(t, err)
	})

	t.Run("refined content replaces the draft", func(t *testing.T) {
		gen := &generatorStub{
			refineFn: func(_ context.Context, original, instructions string) (string, error) {
				assert.Equal(t, "old draft", original)
				assert.Equal(t, "make it formal", instructions)
				return "polished draft", nil
			},
		}
		svc := NewAnschreibenService(existing(), appRefExists(true), gen, configured(true))

		letter, err := svc.Refine(ctx, 1, 1, "make it formal")
		require.NoError(t, err)
		assert.Equal(t, "polished draft", letter.Content)
	})
}

func TestAnschreibenService_Update(t *testing.T) {
	ctx := context.Background()

	appID := uint(5)
	existing := func() *anschreibenRepoStub {
		repo := noopAnschreibenRepo()
		repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Anschreiben, error) {
			return &models.Anschreiben{ID: 1, UserID: 1, ApplicationID: &appID, Title: "Anschreiben", Content: "text"}, nil
		}
		return repo
	}

	t.Run("no fields rejected", func(t *testing.T) {
		svc := NewAnschreibenService(existing(), appRefExists(true), nil, configured(false))
		_, err := svc.Update(ctx, 1, 1, UpdateAnschreibenInput{})
		assertValidation(t, err)
	})

	t.Run("application id zero clears the link", func(t *testing.T) {
		svc := NewAnschreibenService(existing(), appRefExists(true), nil, configured(false))
		zero := uint(0)

		letter, err := svc.Update(ctx, 1, 1, UpdateAnschreibenInput{ApplicationID: &zero})
		require.NoError(t, err)
		assert.Nil(t, letter.ApplicationID)
	})
}

func TestAnschreibenService_Duplicate(t *testing.T) {
	ctx := context.Background()

	appID := uint(5)
	repo := noopAnschreibenRepo()
	repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Anschreiben, error) {
		return &models.Anschreiben{
			ID: 1, UserID: 1, ApplicationID: &appID,
			Title: "Anschreiben", Content: "text", IsTemplate: true,
		}, nil
	}
	svc := NewAnschreibenService(repo, appRefExists(true), nil, configured(false))

	clone, err := svc.Duplicate(ctx, 1, 1, "")
	require.NoError(t, err)
	// The copy keeps the template flag but never the application link.
	assert.Nil(t, clone.ApplicationID)
	assert.True(t, clone.IsTemplate)
	assert.Equal(t, "Anschreiben (Copy)", clone.Title)
}
