// Package stats computes descriptive statistics and linear models over the
// panel dataset. It deliberately stops at coefficients and fit quality;
// inferential output (standard errors, p-values) is left to dedicated
// statistical tooling.
package stats

import (
	"math"
	"sort"
	"strconv"

	"github.com/juusorepo/ReproRepo/internal/panel"
)

// GroupSummary holds per category-by-wave descriptives.
type GroupSummary struct {
	Category       string  `json:"category"`
	Wave           int     `json:"wave"`
	N              int     `json:"n"`
	TaskMean       float64 `json:"task_mean"`
	TaskSD         float64 `json:"task_sd"`
	SleepMean      float64 `json:"sleep_mean"`
	EngagementMean float64 `json:"engagement_mean"`
}

// Describe summarizes observations by mobility category and wave, ordered by
// developmental stage then wave.
func Describe(obs []panel.Observation) []GroupSummary {
	type key struct {
		category string
		wave     int
	}
	type acc struct {
		n         int
		task      []float64
		sleepSum  float64
		engageSum float64
	}

	groups := map[key]*acc{}
	for _, o := range obs {
		k := key{o.Category, o.Wave}
		a := groups[k]
		if a == nil {
			a = &acc{}
			groups[k] = a
		}
		a.n++
		a.task = append(a.task, o.TaskSeconds)
		a.sleepSum += float64(o.SleepHours)
		a.engageSum += float64(o.Engagement)
	}

	stageOrder := map[string]int{}
	for i, c := range panel.Categories {
		stageOrder[c] = i
	}

	summaries := make([]GroupSummary, 0, len(groups))
	for k, a := range groups {
		mean, sd := meanSD(a.task)
		summaries = append(summaries, GroupSummary{
			Category:       k.category,
			Wave:           k.wave,
			N:              a.n,
			TaskMean:       round2(mean),
			TaskSD:         round2(sd),
			SleepMean:      round2(a.sleepSum / float64(a.n)),
			EngagementMean: round2(a.engageSum / float64(a.n)),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		si, sj := summaries[i], summaries[j]
		oi, oj := stageOrder[si.Category], stageOrder[sj.Category]
		if oi != oj {
			return oi < oj
		}
		return si.Wave < sj.Wave
	})

	return summaries
}

// SummaryTable flattens group summaries into a header and rows for table
// export.
func SummaryTable(summaries []GroupSummary) ([]string, [][]string) {
	header := []string{"category", "wave", "n", "task_mean", "task_sd", "sleep_mean", "engagement_mean"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Category,
			strconv.Itoa(s.Wave),
			strconv.Itoa(s.N),
			strconv.FormatFloat(s.TaskMean, 'f', 2, 64),
			strconv.FormatFloat(s.TaskSD, 'f', 2, 64),
			strconv.FormatFloat(s.SleepMean, 'f', 2, 64),
			strconv.FormatFloat(s.EngagementMean, 'f', 2, 64),
		})
	}
	return header, rows
}

// meanSD returns the mean and sample standard deviation.
func meanSD(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	if len(values) < 2 {
		return mean, 0
	}
	varianceSum := 0.0
	for _, v := range values {
		diff := v - mean
		varianceSum += diff * diff
	}
	return mean, math.Sqrt(varianceSum / float64(len(values)-1))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
