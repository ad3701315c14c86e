package prd

// Thresholds holds the heuristic cutoffs and deductions used by Evaluate.
// The 40/30/30 category weights and the 90/80/70/60 grade cutoffs are part
// of the external contract and are not configurable; everything here is.
//
// The defaults are deliberate choices, not tuned values: deductions are
// sized so a single sloppy story dents the score without sinking the
// document, while structural problems (cycles, missing references) dominate.
type Thresholds struct {
	// Clarity.
	MinDescriptionLen       int      `yaml:"min_description_len"`
	MinTitleLen             int      `yaml:"min_title_len"`
	VagueTitleWords         []string `yaml:"vague_title_words"`
	ShortDescriptionPenalty int      `yaml:"short_description_penalty"`
	MissingCriteriaPenalty  int      `yaml:"missing_criteria_penalty"`
	VagueTitlePenalty       int      `yaml:"vague_title_penalty"`

	// Dependencies.
	MissingReferencePenalty  int `yaml:"missing_reference_penalty"`
	CyclePenalty             int `yaml:"cycle_penalty"`
	FanLimitFloor            int `yaml:"fan_limit_floor"`
	ExcessiveFanPenalty      int `yaml:"excessive_fan_penalty"`
	UngatedDependencyPenalty int `yaml:"ungated_dependency_penalty"`

	// Feasibility.
	MissingRepoPenalty       int     `yaml:"missing_repo_penalty"`
	PriorityInversionPenalty int     `yaml:"priority_inversion_penalty"`
	OversizeFactor           float64 `yaml:"oversize_factor"`
	OversizeFloor            int     `yaml:"oversize_floor"`
	OversizePenalty          int     `yaml:"oversize_penalty"`
}

// DefaultThresholds returns the built-in evaluator tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinDescriptionLen:       30,
		MinTitleLen:             10,
		VagueTitleWords:         []string{"stuff", "things", "misc", "various", "improve", "better", "etc"},
		ShortDescriptionPenalty: 10,
		MissingCriteriaPenalty:  10,
		VagueTitlePenalty:       5,

		MissingReferencePenalty:  15,
		CyclePenalty:             40,
		FanLimitFloor:            3,
		ExcessiveFanPenalty:      8,
		UngatedDependencyPenalty: 5,

		MissingRepoPenalty:       10,
		PriorityInversionPenalty: 5,
		OversizeFactor:           2.0,
		OversizeFloor:            6,
		OversizePenalty:          8,
	}
}

// fanLimit is the dependency fan-in/fan-out count above which a story is
// considered excessively coupled, scaled to document size.
func (t Thresholds) fanLimit(storyCount int) int {
	limit := storyCount / 2
	if limit < t.FanLimitFloor {
		limit = t.FanLimitFloor
	}
	return limit
}
