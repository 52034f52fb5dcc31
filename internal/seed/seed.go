package seed

import (
	"log"

	"trackwerk/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumJobs     int
	ShouldClean bool
	// MaxDays spreads created_at timestamps over the last N days.
	MaxDays int
	// SkipBcrypt stores plaintext passwords for fast local iteration.
	// Never enable outside development.
	SkipBcrypt bool
}

var (
	positionTitles = []string{
		"Backend Engineer", "Frontend Developer", "Full Stack Developer",
		"DevOps Engineer", "Site Reliability Engineer", "Data Engineer",
		"Software Engineer", "Senior Software Engineer", "Platform Engineer",
		"Cloud Engineer", "Machine Learning Engineer", "QA Engineer",
		"Engineering Manager", "Solutions Architect", "Mobile Developer",
	}

	techStack = []string{
		"Go", "TypeScript", "Python", "Rust", "Java", "Kotlin",
		"React", "Vue", "Angular", "Svelte", "Node.js",
		"PostgreSQL", "MySQL", "MongoDB", "Redis", "Kafka",
		"Docker", "Kubernetes", "Terraform", "AWS", "GCP", "Azure",
		"GraphQL", "gRPC", "Prometheus", "Grafana",
	}

	sourcePlatforms = []string{
		"LinkedIn", "StepStone", "Indeed", "Xing", "Company Website",
		"Stack Overflow Jobs", "Referral",
	}

	salaryRanges = []string{
		"45.000 - 55.000 EUR", "55.000 - 65.000 EUR", "65.000 - 75.000 EUR",
		"75.000 - 90.000 EUR", "90.000 - 110.000 EUR", "",
	}

	degrees = []string{
		"B.Sc.", "M.Sc.", "Diplom", "B.Eng.", "M.Eng.",
	}

	skillCategories = []string{
		"Languages", "Frameworks", "Databases", "Infrastructure", "Tools",
	}

	skillLevels = []string{
		"Beginner", "Intermediate", "Advanced", "Expert",
	}

	languageLevels = []string{
		"B2", "C1", "C2",
	}

	// statusWeights shapes the pipeline: most seeded applications sit early
	// in the funnel, a few reach offers.
	statusWeights = []struct {
		status models.ApplicationStatus
		weight int
	}{
		{models.StatusToApply, 25},
		{models.StatusApplied, 35},
		{models.StatusInterview, 20},
		{models.StatusOffer, 5},
		{models.StatusRejected, 15},
	}
)

// Seed populates the database with demo users, jobs, applications, CVs and
// cover letters. Every seeded user logs in with the password "password123".
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 5
	}
	if opts.NumJobs <= 0 {
		opts.NumJobs = 12
	}

	log.Printf("🌱 Seeding %d users with ~%d jobs each...", opts.NumUsers, opts.NumJobs)

	f := NewFactory(db, opts)

	if opts.ShouldClean {
		if err := f.ClearAll(); err != nil {
			log.Println("⚠️  Warning: could not clear all existing data, continuing anyway...")
		}
	}

	for i := 0; i < opts.NumUsers; i++ {
		if err := seedUser(f, opts, i); err != nil {
			return err
		}
	}

	log.Println("✨ Seeding complete.")
	log.Println("📧 All seeded users have the password: password123")
	return nil
}

func seedUser(f *Factory, opts Options, index int) error {
	var user *models.User
	var err error

	// First user gets a fixed login for manual testing.
	if index == 0 {
		user, err = f.CreateUser(func(u *models.User) {
			u.Email = "demo@trackwerk.dev"
			u.FirstName = "Demo"
			u.LastName = "User"
		})
	} else {
		user, err = f.CreateUser()
	}
	if err != nil {
		return err
	}

	// CVs: one default plus one or two alternatives.
	defaultCV, err := f.CreateCV(user, "Standard CV", true)
	if err != nil {
		return err
	}
	altCV, err := f.CreateCV(user, "English CV", false)
	if err != nil {
		return err
	}
	cvs := []*models.CV{defaultCV, altCV}

	jobs := make([]*models.Job, 0, opts.NumJobs)
	for i := 0; i < opts.NumJobs; i++ {
		jobs = append(jobs, f.BuildJob(user))
	}
	if err := f.CreateJobsBatch(jobs); err != nil {
		return err
	}

	// Roughly two thirds of jobs get an application.
	apps := make([]*models.Application, 0, len(jobs))
	for _, job := range jobs {
		if f.rng.Intn(3) == 0 {
			continue
		}
		cv := cvs[f.rng.Intn(len(cvs))]
		app, err := f.CreateApplication(user, job, cv, weightedStatus(f))
		if err != nil {
			return err
		}
		app.Job = job
		apps = append(apps, app)
	}

	// One reusable template plus letters for a few applications.
	if _, err := f.CreateAnschreiben(user, nil, true); err != nil {
		return err
	}
	for _, app := range apps {
		if app.Status == models.StatusToApply || f.rng.Intn(2) == 0 {
			continue
		}
		if _, err := f.CreateAnschreiben(user, app, false); err != nil {
			return err
		}
	}

	log.Printf("✓ %s (%d jobs, %d applications)", user.Email, len(jobs), len(apps))
	return nil
}

func weightedStatus(f *Factory) models.ApplicationStatus {
	total := 0
	for _, sw := range statusWeights {
		total += sw.weight
	}
	n := f.rng.Intn(total)
	for _, sw := range statusWeights {
		if n < sw.weight {
			return sw.status
		}
		n -= sw.weight
	}
	return models.StatusToApply
}
