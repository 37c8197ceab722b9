// Package schedule is the weekly training split plus per-date overrides.
package schedule

// Day is the plan of one weekday.
type Day struct {
	Day    string   `json:"day"`
	Type   string   `json:"type"`
	Tasks  []string `json:"tasks"`
	Custom bool     `json:"custom"`
}

var beastWeek = []Day{
	{Day: "Sunday", Type: "Prep & Rest", Tasks: []string{"Batch Prep 5x Beast Oats", "Cook 2lbs Turkey Chili", "Weekly Plan Audit", "Family Time"}},
	{Day: "Monday", Type: "Lower A (Quads)", Tasks: []string{"Hack Squat: 3x8-10", "Walking Lunges: 3x12 per leg", "Leg Extension: 3x15", "Hanging Leg Raise: 3x15"}},
	{Day: "Tuesday", Type: "Upper A (Push)", Tasks: []string{"Floor Press: 3x6-8", "Chest Supported Row: 3x10", "Seated DB OH Press: 3x10", "Face Pulls: 3x15"}},
	{Day: "Wednesday", Type: "Zone 2 / Recovery", Tasks: []string{"45-60m Rucking (25lb vest)", "Mobility Flow 15min", "High Protein Focus", "Family Activity"}},
	{Day: "Thursday", Type: "Lower B (Hinge)", Tasks: []string{"Trap Bar Deadlift: 3x6-8", "Romanian Deadlift: 3x10", "Lying Leg Curl: 3x15", "Cable Crunch: 3x15"}},
	{Day: "Friday", Type: "Upper B (Pull)", Tasks: []string{"Incline DB Press: 3x10", "Neutral Lat Pulldown: 3x10", "Lateral Raise: 4x20", "Tricep Pushdowns + Bicep Curls: 3x12"}},
	{Day: "Saturday", Type: "Active Recovery", Tasks: []string{"Family Outing (Park, Hike)", "Light Activity", "Meal Prep Start", "Mobility Work"}},
}

// Week returns a copy of the default split, Sunday first.
func Week() []Day {
	out := make([]Day, len(beastWeek))
	for i, d := range beastWeek {
		d.Tasks = append([]string(nil), d.Tasks...)
		out[i] = d
	}
	return out
}

// ForWeekday returns the default plan of the named day, or a rest day.
func ForWeekday(name string) Day {
	for _, d := range Week() {
		if d.Day == name {
			return d
		}
	}
	return Day{Day: name, Type: "Rest", Tasks: []string{}}
}
