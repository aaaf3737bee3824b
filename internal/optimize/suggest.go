package optimize

import "fmt"

// Suggest lists time leaks first, then risk alerts, in score order
func Suggest(scores []Score) Suggestion {
	s := Suggestion{Warnings: []string{}, Theory: Theory}
	for _, sc := range scores {
		if sc.TimeLeak {
			s.Warnings = append(s.Warnings, fmt.Sprintf("Time Leak Detected: %q takes %shrs/wk but only yields ₹%s/hr.",
				sc.Name, sc.WeeklyHours.String(), sc.ROIPerHour.StringFixed(0)))
		}
	}
	for _, sc := range scores {
		if sc.RiskBomb {
			s.Warnings = append(s.Warnings, fmt.Sprintf("Risk Alert: %q has high risk (%d) with low adjusted return.", sc.Name, sc.RiskFactor))
		}
	}
	return s
}
