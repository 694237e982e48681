// Package panel generates the synthetic longitudinal panel dataset that the
// rest of the workflow consumes. Each simulated subject is observed once per
// wave; covariates are parametrically linked (age drives task duration, task
// duration drives engagement) so downstream models have real structure to
// recover.
package panel

import "fmt"

// Mobility categories, ordered by developmental stage.
const (
	CategoryCrawling = "Crawling"
	CategoryCruising = "Cruising"
	CategoryWalking  = "Walking"
)

// Categories lists the mobility stages a subject can be assigned.
// The assignment is made once per subject and held constant across waves.
var Categories = []string{CategoryCrawling, CategoryCruising, CategoryWalking}

// FeedingMethods lists the optional feeding covariate values, also fixed
// per subject.
var FeedingMethods = []string{"Breastfed", "Formula", "Mixed"}

// Generator constants. These are fixed properties of the simulated
// population, not configuration: changing them changes the dataset contract
// toward the cleaning and modeling stages.
const (
	// Ages are in months. Each subject gets a start age and advances
	// WaveOffsetMonths per wave, clamped at AgeMax.
	AgeMin           = 12
	AgeMax           = 24
	StartAgeMin      = 12
	StartAgeMax      = 18
	WaveOffsetMonths = 3

	// Sleep is a subject-level baseline in whole hours with a small
	// per-wave jitter, clamped to [SleepMin, SleepMax].
	SleepBaselineMin = 9
	SleepBaselineMax = 13
	SleepMin         = 8
	SleepMax         = 14
	SleepReference   = 11

	// Task duration in seconds: younger, less mobile, and under-slept
	// subjects are slower, plus Gaussian noise.
	TaskBaseSeconds  = 45.0
	TaskAgeSlope     = 0.8
	TaskSleepSlope   = 1.5
	TaskNoiseStd     = 4.0
	TaskFloorSeconds = 5.0

	// Engagement count is an inverse function of task duration with a
	// category bonus and an age interaction, clamped to
	// [EngagementMin, EngagementMax] after rounding.
	EngagementMin       = 3
	EngagementMax       = 10
	EngagementBase      = 14.0
	EngagementTaskSlope = 0.12
	EngagementAgeSlope  = 0.05
)

// Config controls the size and reproducibility of a generation run.
// Everything else about the population is fixed by the generator constants.
type Config struct {
	Subjects int   `json:"subjects" yaml:"subjects"`
	Waves    int   `json:"waves" yaml:"waves"`
	Seed     int64 `json:"seed" yaml:"seed"`
}

// DefaultConfig returns the canonical 100-subject, 3-wave configuration.
func DefaultConfig() Config {
	return Config{Subjects: 100, Waves: 3, Seed: 123}
}

// Validate checks the configuration. Violations are reported as *ConfigError.
func (c Config) Validate() error {
	if c.Subjects <= 0 {
		return &ConfigError{Field: "subjects", Message: fmt.Sprintf("must be > 0, got %d", c.Subjects)}
	}
	if c.Waves <= 0 {
		return &ConfigError{Field: "waves", Message: fmt.Sprintf("must be > 0, got %d", c.Waves)}
	}
	return nil
}

// ConfigError reports an invalid generation parameter.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Message)
}

// Observation is one row of the panel: one subject at one wave.
type Observation struct {
	SubjectID   int     `json:"subject_id"`
	Wave        int     `json:"wave"`
	Category    string  `json:"mobility_category"`
	Feeding     string  `json:"feeding_method"`
	AgeMonths   int     `json:"age_months"`
	SleepHours  int     `json:"sleep_hours"`
	TaskSeconds float64 `json:"task_duration_sec"`
	Engagement  int     `json:"engagement_count"`
}

// categoryPenalty is the additive task-duration offset per mobility stage:
// less mobile subjects take longer.
func categoryPenalty(category string) float64 {
	switch category {
	case CategoryCrawling:
		return 6.0
	case CategoryCruising:
		return 3.0
	default:
		return 0.0
	}
}

// categoryBonus is the additive engagement offset per mobility stage.
func categoryBonus(category string) float64 {
	switch category {
	case CategoryCrawling:
		return 0.0
	case CategoryCruising:
		return 0.5
	default:
		return 1.0
	}
}
