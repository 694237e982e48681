package panel

import (
	"math"
	"math/rand"
)

// Generate produces the full panel for cfg in subject-major, wave-minor
// order. A single rand source is seeded once from cfg.Seed and drawn from in
// fixed phases (categories, feeding, start ages, sleep baselines, sleep
// jitter, task noise), so an identical seed yields an identical panel.
// Reordering the phases changes the output even with the same seed.
func Generate(cfg Config) ([]Observation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	n := cfg.Subjects
	w := cfg.Waves

	// Phase 1-4: subject-level draws, one full pass per attribute.
	categories := make([]string, n)
	for i := range categories {
		categories[i] = Categories[rng.Intn(len(Categories))]
	}
	feeding := make([]string, n)
	for i := range feeding {
		feeding[i] = FeedingMethods[rng.Intn(len(FeedingMethods))]
	}
	startAges := make([]int, n)
	for i := range startAges {
		startAges[i] = StartAgeMin + rng.Intn(StartAgeMax-StartAgeMin+1)
	}
	sleepBaselines := make([]int, n)
	for i := range sleepBaselines {
		sleepBaselines[i] = SleepBaselineMin + rng.Intn(SleepBaselineMax-SleepBaselineMin+1)
	}

	// Phase 5-6: wave-level draws, subject-major within each phase.
	sleepJitter := make([]int, n*w)
	for i := range sleepJitter {
		sleepJitter[i] = rng.Intn(3) - 1
	}
	taskNoise := make([]float64, n*w)
	for i := range taskNoise {
		taskNoise[i] = rng.NormFloat64() * TaskNoiseStd
	}

	obs := make([]Observation, 0, n*w)
	for s := 0; s < n; s++ {
		for v := 0; v < w; v++ {
			age := clampInt(startAges[s]+v*WaveOffsetMonths, AgeMin, AgeMax)
			sleep := clampInt(sleepBaselines[s]+sleepJitter[s*w+v], SleepMin, SleepMax)

			task := TaskBaseSeconds -
				TaskAgeSlope*float64(age-AgeMin) +
				categoryPenalty(categories[s]) +
				TaskSleepSlope*float64(SleepReference-sleep) +
				taskNoise[s*w+v]
			task = math.Round(task*10) / 10
			if task < TaskFloorSeconds {
				task = TaskFloorSeconds
			}

			engagement := EngagementBase -
				EngagementTaskSlope*task +
				categoryBonus(categories[s]) +
				EngagementAgeSlope*float64(age-AgeMin)
			count := clampInt(int(math.Round(engagement)), EngagementMin, EngagementMax)

			obs = append(obs, Observation{
				SubjectID:   s + 1,
				Wave:        v + 1,
				Category:    categories[s],
				Feeding:     feeding[s],
				AgeMonths:   age,
				SleepHours:  sleep,
				TaskSeconds: task,
				Engagement:  count,
			})
		}
	}

	return obs, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
