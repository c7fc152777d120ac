package catalog

// Template is a named, reusable grouping of metric ids with explanatory narrative
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	MetricIDs   []string `json:"metricIds"`
	Narrative   string   `json:"narrative"`
	Color       string   `json:"color"`
	IsCustom    bool     `json:"isCustom,omitempty"`
}

// SystemTemplates enumerates the built-in analysis groups
var SystemTemplates = []Template{
	{
		ID:          "heart_health",
		Name:        "Heart Check",
		Icon:        "❤️",
		Description: "Vitality",
		MetricIDs:   []string{"resting_hr", "hrv", "blood_pressure", "vo2_max"},
		Narrative:   "This group tracks your heart rhythm and how well your body handles stress. Keep an eye on your Resting HR—it should stay consistent. If your HRV (Heart Variability) drops significantly, it might be a sign that you need more rest or are dealing with high stress.",
		Color:       "from-rose-500 to-pink-600",
	},
	{
		ID:          "weight_mgmt",
		Name:        "Body Balance",
		Icon:        "⚖️",
		Description: "Physical",
		MetricIDs:   []string{"weight", "calories", "water", "bmi"},
		Narrative:   "Use this to see the relationship between what you eat and your body weight. Look for steady trends rather than daily jumps. Drinking enough water and keeping calories consistent helps keep your energy levels even throughout the week.",
		Color:       "from-emerald-500 to-teal-600",
	},
	{
		ID:          "sleep_recov",
		Name:        "Sleep & Rest",
		Icon:        "🌙",
		Description: "Recovery",
		MetricIDs:   []string{"sleep_duration", "sleep_quality", "rem_sleep", "hrv"},
		Narrative:   "This tracks how your body recharges. Look at your Sleep Quality score—if it's low even when you sleep 8 hours, you might be having restless nights. Consistent REM sleep is key for feeling mentally sharp the next day.",
		Color:       "from-indigo-500 to-blue-600",
	},
	{
		ID:          "metabolic",
		Name:        "Fuel & Energy",
		Icon:        "⚡",
		Description: "Metabolism",
		MetricIDs:   []string{"blood_glucose", "calories", "medications", "active_energy"},
		Narrative:   "This monitors how your body uses fuel. Look for stability in your sugar levels. Large spikes often happen after sugary meals or when you haven't been active. Stable readings usually lead to better mood and more consistent energy.",
		Color:       "from-orange-500 to-amber-600",
	},
}
