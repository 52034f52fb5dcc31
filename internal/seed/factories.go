// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"trackwerk/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// backdate returns a timestamp spread over the last maxDays days so seeded
// data does not all land on "just now".
func (f *Factory) backdate(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample models.User. All seeded users
// share the password "password123". Optional override functions may modify
// the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		CreatedAt: f.backdate(f.opts.MaxDays),
	}

	if f.opts.SkipBcrypt {
		user.PasswordHash = "password123"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.PasswordHash = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// BuildJob constructs a job posting for a user but does not persist it.
// Useful for batching.
func (f *Factory) BuildJob(user *models.User, overrides ...func(*models.Job)) *models.Job {
	company := gofakeit.Company()
	job := &models.Job{
		UserID:         user.ID,
		CompanyName:    company,
		PositionTitle:  positionTitles[f.rng.Intn(len(positionTitles))],
		JobDescription: gofakeit.Paragraph(2, 4, 8, "\n"),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		SalaryRange:    salaryRanges[f.rng.Intn(len(salaryRanges))],
		TechStack:      f.pickTechStack(),
		SourceURL:      gofakeit.URL(),
		SourcePlatform: sourcePlatforms[f.rng.Intn(len(sourcePlatforms))],
		IsSaved:        f.rng.Intn(10) < 8,
		CreatedAt:      f.backdate(f.opts.MaxDays),
	}

	for _, override := range overrides {
		override(job)
	}
	return job
}

// CreateJobsBatch persists multiple jobs in a single DB call.
func (f *Factory) CreateJobsBatch(jobs []*models.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	if err := f.db.Create(&jobs).Error; err != nil {
		return fmt.Errorf("create jobs batch: %w", err)
	}
	return nil
}

// CreateApplication persists an application for a job, optionally attaching
// a CV. Status-dependent dates (applied, interview) are filled in to keep
// the board realistic.
func (f *Factory) CreateApplication(user *models.User, job *models.Job, cv *models.CV, status models.ApplicationStatus) (*models.Application, error) {
	app := &models.Application{
		UserID:        user.ID,
		JobID:         job.ID,
		Status:        status,
		Notes:         gofakeit.Sentence(12),
		ContactPerson: gofakeit.Name(),
		CreatedAt:     f.backdate(f.opts.MaxDays),
	}
	if cv != nil {
		app.CVID = &cv.ID
	}

	if status != models.StatusToApply {
		applied := app.CreatedAt.Add(time.Duration(f.rng.Intn(72)) * time.Hour)
		app.AppliedDate = &applied
		if f.rng.Intn(2) == 0 {
			followUp := applied.Add(7 * 24 * time.Hour)
			app.FollowUpDate = &followUp
		}
	}
	if status == models.StatusInterview || status == models.StatusOffer {
		interview := time.Now().Add(time.Duration(1+f.rng.Intn(14)) * 24 * time.Hour)
		app.InterviewDate = &interview
	}

	if err := f.db.Create(app).Error; err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

// CreateCV persists a fully populated CV for a user. The caller controls
// isDefault; the seeder marks exactly one CV per user as default.
func (f *Factory) CreateCV(user *models.User, title string, isDefault bool) (*models.CV, error) {
	fullName := fmt.Sprintf("%s %s", user.FirstName, user.LastName)
	cv := &models.CV{
		UserID: user.ID,
		Title:  title,
		PersonalInfo: models.PersonalInfo{
			FullName: fullName,
			Email:    user.Email,
			Phone:    gofakeit.Phone(),
			City:     gofakeit.City(),
			Country:  gofakeit.Country(),
			LinkedIn: fmt.Sprintf("https://linkedin.com/in/%s", gofakeit.Username()),
			GitHub:   fmt.Sprintf("https://github.com/%s", gofakeit.Username()),
			Summary:  gofakeit.Paragraph(1, 2, 10, " "),
		},
		Experience: f.buildExperience(),
		Education: []models.Education{{
			ID:           gofakeit.UUID(),
			Institution:  fmt.Sprintf("%s University", gofakeit.City()),
			Degree:       degrees[f.rng.Intn(len(degrees))],
			FieldOfStudy: "Computer Science",
			StartDate:    "2015-10",
			EndDate:      "2019-09",
			Grade:        fmt.Sprintf("%.1f", 1.0+f.rng.Float64()*1.5),
		}},
		Skills:    f.buildSkills(),
		Languages: f.buildLanguages(),
		IsDefault: isDefault,
		CreatedAt: f.backdate(f.opts.MaxDays),
	}

	if err := f.db.Create(cv).Error; err != nil {
		return nil, fmt.Errorf("create cv: %w", err)
	}
	return cv, nil
}

// CreateAnschreiben persists a cover letter, optionally linked to an
// application.
func (f *Factory) CreateAnschreiben(user *models.User, app *models.Application, isTemplate bool) (*models.Anschreiben, error) {
	title := "Anschreiben Vorlage"
	if app != nil && app.Job != nil {
		title = fmt.Sprintf("Anschreiben - %s bei %s", app.Job.PositionTitle, app.Job.CompanyName)
	}
	letter := &models.Anschreiben{
		UserID:     user.ID,
		Title:      title,
		Content:    f.buildLetterBody(user),
		IsTemplate: isTemplate,
		CreatedAt:  f.backdate(f.opts.MaxDays),
	}
	if app != nil {
		letter.ApplicationID = &app.ID
	}

	if err := f.db.Create(letter).Error; err != nil {
		return nil, fmt.Errorf("create anschreiben: %w", err)
	}
	return letter, nil
}

func (f *Factory) pickTechStack() []string {
	n := 3 + f.rng.Intn(4)
	picked := make([]string, 0, n)
	seen := make(map[string]bool)
	for len(picked) < n {
		t := techStack[f.rng.Intn(len(techStack))]
		if !seen[t] {
			seen[t] = true
			picked = append(picked, t)
		}
	}
	return picked
}

func (f *Factory) buildExperience() []models.Experience {
	n := 1 + f.rng.Intn(3)
	entries := make([]models.Experience, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, models.Experience{
			ID:          gofakeit.UUID(),
			Company:     gofakeit.Company(),
			Position:    positionTitles[f.rng.Intn(len(positionTitles))],
			Location:    gofakeit.City(),
			StartDate:   fmt.Sprintf("20%02d-%02d", 15+f.rng.Intn(8), 1+f.rng.Intn(12)),
			Current:     i == 0,
			Description: gofakeit.Paragraph(1, 2, 8, " "),
			Achievements: []string{
				gofakeit.Sentence(8),
				gofakeit.Sentence(8),
			},
		})
	}
	return entries
}

func (f *Factory) buildSkills() []models.Skill {
	n := 4 + f.rng.Intn(4)
	skills := make([]models.Skill, 0, n)
	for i := 0; i < n; i++ {
		skills = append(skills, models.Skill{
			ID:       gofakeit.UUID(),
			Category: skillCategories[f.rng.Intn(len(skillCategories))],
			Name:     techStack[f.rng.Intn(len(techStack))],
			Level:    skillLevels[f.rng.Intn(len(skillLevels))],
		})
	}
	return skills
}

func (f *Factory) buildLanguages() []models.Language {
	return []models.Language{
		{ID: gofakeit.UUID(), Name: "German", Level: "Native"},
		{ID: gofakeit.UUID(), Name: "English", Level: languageLevels[f.rng.Intn(len(languageLevels))]},
	}
}

func (f *Factory) buildLetterBody(user *models.User) string {
	return fmt.Sprintf(
		"Sehr geehrte Damen und Herren,\n\n%s\n\n%s\n\nMit freundlichen Grüßen\n%s %s",
		gofakeit.Paragraph(1, 3, 12, " "),
		gofakeit.Paragraph(1, 3, 12, " "),
		user.FirstName, user.LastName,
	)
}

// ClearAll removes all seeded rows in dependency order. Used by the seeder
// before a fresh run.
func (f *Factory) ClearAll() error {
	tables := []string{"anschreibens", "applications", "cvs", "jobs", "users"}
	for _, table := range tables {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Printf("⚠️  could not clear %s: %v", table, err)
			return err
		}
	}
	return nil
}
