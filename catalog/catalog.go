package catalog

// Category classifies a metric into a display group
type Category string

const (
	CategoryActivity    Category = "Activity"
	CategoryHeart       Category = "Heart"
	CategorySleep       Category = "Sleep"
	CategoryBody        Category = "Body"
	CategoryNutrition   Category = "Nutrition"
	CategoryMindfulness Category = "Mindfulness"
	CategoryClinical    Category = "Clinical"
)

// Frequency describes how often a metric is typically recorded
type Frequency string

const (
	FrequencyDaily      Frequency = "Daily"
	FrequencyOften      Frequency = "Often"
	FrequencyOccasional Frequency = "Occasional"
)

// Metric is one catalog entry: a named, unit-tagged health measurement
type Metric struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Unit        string    `json:"unit"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Frequency   Frequency `json:"frequency"`
}

// Metrics enumerates every known health metric, in display order
var Metrics = []Metric{
	// Activity
	{ID: "steps", Name: "Steps", Category: CategoryActivity, Description: "Total steps taken.", Unit: "steps", Icon: "👣", Color: "bg-orange-500", Frequency: FrequencyDaily},
	{ID: "distance", Name: "Distance", Category: CategoryActivity, Description: "Walking and running distance.", Unit: "km", Icon: "🏃‍♂️", Color: "bg-orange-400", Frequency: FrequencyDaily},
	{ID: "flights", Name: "Flights Climbed", Category: CategoryActivity, Description: "Elevation gain in flights.", Unit: "flights", Icon: "🪜", Color: "bg-orange-300", Frequency: FrequencyDaily},
	{ID: "active_energy", Name: "Active Energy", Category: CategoryActivity, Description: "Calories burned during exercise.", Unit: "kcal", Icon: "🔥", Color: "bg-red-500", Frequency: FrequencyDaily},
	{ID: "exercise_mins", Name: "Exercise Minutes", Category: CategoryActivity, Description: "Time spent in moderate-to-vigorous activity.", Unit: "min", Icon: "⌚", Color: "bg-lime-500", Frequency: FrequencyDaily},

	// Heart
	{ID: "resting_hr", Name: "Resting HR", Category: CategoryHeart, Description: "Pulse when still.", Unit: "bpm", Icon: "❤️", Color: "bg-red-600", Frequency: FrequencyDaily},
	{ID: "hrv", Name: "HR Variability", Category: CategoryHeart, Description: "Variability between heartbeats.", Unit: "ms", Icon: "📈", Color: "bg-pink-500", Frequency: FrequencyDaily},
	{ID: "blood_pressure", Name: "Blood Pressure", Category: CategoryHeart, Description: "Systolic/Diastolic pressure.", Unit: "mmHg", Icon: "🩺", Color: "bg-red-700", Frequency: FrequencyDaily},
	{ID: "vo2_max", Name: "VO2 Max", Category: CategoryHeart, Description: "Aerobic fitness level.", Unit: "ml/kg/min", Icon: "🫁", Color: "bg-blue-400", Frequency: FrequencyOccasional},

	// Sleep
	{ID: "sleep_duration", Name: "Sleep Duration", Category: CategorySleep, Description: "Total time asleep.", Unit: "hr", Icon: "🌙", Color: "bg-indigo-600", Frequency: FrequencyDaily},
	{ID: "sleep_quality", Name: "Sleep Quality", Category: CategorySleep, Description: "Subjective or calculated restfulness.", Unit: "%", Icon: "✨", Color: "bg-indigo-400", Frequency: FrequencyDaily},
	{ID: "rem_sleep", Name: "REM Sleep", Category: CategorySleep, Description: "Rapid Eye Movement duration.", Unit: "min", Icon: "🧠", Color: "bg-purple-500", Frequency: FrequencyDaily},

	// Body
	{ID: "weight", Name: "Weight", Category: CategoryBody, Description: "Current body mass.", Unit: "kg", Icon: "⚖️", Color: "bg-teal-500", Frequency: FrequencyDaily},
	{ID: "bmi", Name: "BMI", Category: CategoryBody, Description: "Body Mass Index.", Unit: "idx", Icon: "📊", Color: "bg-teal-600", Frequency: FrequencyOccasional},

	// Nutrition
	{ID: "calories", Name: "Calories", Category: CategoryNutrition, Description: "Total energy intake.", Unit: "kcal", Icon: "🍎", Color: "bg-green-500", Frequency: FrequencyDaily},
	{ID: "water", Name: "Water", Category: CategoryNutrition, Description: "Hydration level.", Unit: "ml", Icon: "💧", Color: "bg-blue-500", Frequency: FrequencyDaily},

	// Clinical
	{ID: "blood_glucose", Name: "Blood Glucose", Category: CategoryClinical, Description: "Blood sugar levels.", Unit: "mg/dL", Icon: "💉", Color: "bg-rose-500", Frequency: FrequencyDaily},
	{ID: "oxygen_sat", Name: "Oxygen Saturation", Category: CategoryClinical, Description: "Blood oxygen level (SpO2).", Unit: "%", Icon: "🫧", Color: "bg-cyan-500", Frequency: FrequencyOccasional},
	{ID: "medications", Name: "Medications", Category: CategoryClinical, Description: "Adherence to prescriptions.", Unit: "%", Icon: "💊", Color: "bg-emerald-500", Frequency: FrequencyDaily},
}

// MetricByID returns the catalog entry for the given id
func MetricByID(id string) (Metric, bool) {
	for _, m := range Metrics {
		if m.ID == id {
			return m, true
		}
	}
	return Metric{}, false
}

// Persona is a pre-canned user profile used to seed onboarding state
type Persona struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	InitialPreset string `json:"initialPreset"`
}

// Personas enumerates the built-in user personas
var Personas = []Persona{
	{ID: "p1", Name: "Casual Tracker", Description: "Checks steps and sleep occasionally.", InitialPreset: "wellness"},
	{ID: "p2", Name: "Chronic Manager", Description: "Manages diabetes and blood pressure daily.", InitialPreset: "diabetes"},
	{ID: "p3", Name: "Fitness Enthusiast", Description: "Tracks gym metrics and performance.", InitialPreset: "train"},
}

// PersonaDemographics maps persona ids to the demographic line used in
// assistant context prompts
var PersonaDemographics = map[string]string{
	"p1": "28-year-old female, active lifestyle.",
	"p2": "56-year-old male, managing multiple chronic markers.",
	"p3": "34-year-old male, high-performance fitness goals.",
}

// OnboardingPresets maps preset names to the metric ids focused at onboarding
var OnboardingPresets = map[string][]string{
	"sleep":    {"sleep_duration", "sleep_quality", "hrv", "active_energy"},
	"diabetes": {"blood_glucose", "calories", "weight", "blood_pressure", "medications"},
	"train":    {"steps", "resting_hr", "exercise_mins", "sleep_duration", "weight"},
	"wellness": {"steps", "sleep_duration", "weight", "resting_hr"},
}

// DoctorViewPriorities lists the metric ids shown on the doctor-visit screen
var DoctorViewPriorities = []string{"blood_pressure", "blood_glucose", "weight", "medications", "resting_hr"}
