package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/deroule/internal/apperr"
	"github.com/starford/deroule/internal/models"
)

// Duration labels accepted in the plan document.
var durationLabels = []string{"Durée :", "Durée:"}

// ParsePlan reads the course name and total duration (in days) from a plan
// document. The name comes from the first non-empty line; the duration from
// the last line starting with a duration label, e.g. "Durée : 3j".
func ParsePlan(data []byte) (models.Plan, error) {
	var (
		plan     models.Plan
		rawDays  string
		foundDur bool
	)

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if plan.Name == "" && strings.TrimSpace(line) != "" {
			plan.Name = CourseName(line)
		}
		for _, label := range durationLabels {
			if strings.HasPrefix(line, label) {
				rawDays = line[len(label):]
				foundDur = true
				break
			}
		}
	}
	if err := sc.Err(); err != nil {
		return models.Plan{}, fmt.Errorf("parser: plan: %w", err)
	}

	if !foundDur {
		return models.Plan{}, fmt.Errorf("parser: plan: %w: duration not found (looking for %q)",
			apperr.ErrConfiguration, durationLabels[0])
	}
	days, err := parseDays(rawDays)
	if err != nil {
		return models.Plan{}, fmt.Errorf("parser: plan: %w: duration %q: %w",
			apperr.ErrConfiguration, strings.TrimSpace(rawDays), err)
	}
	plan.Days = days

	if err := validatePlan(&plan); err != nil {
		return models.Plan{}, fmt.Errorf("parser: plan: %w: %w", apperr.ErrConfiguration, err)
	}
	return plan, nil
}

// CourseName normalises a plan title line: hashes and tags removed, spaces
// turned into hyphens, lower-cased.
func CourseName(line string) string {
	name := StripTags(strings.ReplaceAll(line, "#", ""))
	name = strings.TrimSpace(name)
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

func parseDays(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "j")
	return strconv.Atoi(strings.TrimSpace(s))
}

func validatePlan(p *models.Plan) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Days, validation.Required, validation.Min(1)),
	)
}
