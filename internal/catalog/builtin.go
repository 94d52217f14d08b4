package catalog

// builtinEntries is the default exercise list shipped with fitcue.
var builtinEntries = []Entry{
	// Cardio
	{Name: "Running", Type: TypeCardio, CaloriesPerMinute: 10, Category: "Outdoor"},
	{Name: "Jogging", Type: TypeCardio, CaloriesPerMinute: 7, Category: "Outdoor"},
	{Name: "Walking", Type: TypeCardio, CaloriesPerMinute: 4, Category: "Outdoor"},
	{Name: "Cycling", Type: TypeCardio, CaloriesPerMinute: 8, Category: "Outdoor"},
	{Name: "Swimming", Type: TypeCardio, CaloriesPerMinute: 11, Category: "Water"},
	{Name: "Elliptical", Type: TypeCardio, CaloriesPerMinute: 9, Category: "Gym"},
	{Name: "Treadmill", Type: TypeCardio, CaloriesPerMinute: 9, Category: "Gym"},
	{Name: "Stair Climber", Type: TypeCardio, CaloriesPerMinute: 12, Category: "Gym"},
	{Name: "Rowing Machine", Type: TypeCardio, CaloriesPerMinute: 10, Category: "Gym"},
	{Name: "Jump Rope", Type: TypeCardio, CaloriesPerMinute: 12, Category: "Home"},
	{Name: "Dancing", Type: TypeCardio, CaloriesPerMinute: 6, Category: "Home"},
	{Name: "Hiking", Type: TypeCardio, CaloriesPerMinute: 7, Category: "Outdoor"},
	{Name: "Boxing", Type: TypeCardio, CaloriesPerMinute: 13, Category: "Gym"},
	{Name: "Kickboxing", Type: TypeCardio, CaloriesPerMinute: 10, Category: "Gym"},

	// Strength
	{Name: "Weight Training", Type: TypeStrength, CaloriesPerMinute: 6, Category: "Gym"},
	{Name: "Bench Press", Type: TypeStrength, CaloriesPerMinute: 6, Category: "Gym"},
	{Name: "Squats", Type: TypeStrength, CaloriesPerMinute: 7, Category: "Gym"},
	{Name: "Deadlifts", Type: TypeStrength, CaloriesPerMinute: 7, Category: "Gym"},
	{Name: "Pull-ups", Type: TypeStrength, CaloriesPerMinute: 8, Category: "Gym"},
	{Name: "Push-ups", Type: TypeStrength, CaloriesPerMinute: 6, Category: "Home"},
	{Name: "Dumbbell Exercises", Type: TypeStrength, CaloriesPerMinute: 5, Category: "Gym"},
	{Name: "Barbell Exercises", Type: TypeStrength, CaloriesPerMinute: 6, Category: "Gym"},
	{Name: "Resistance Band Training", Type: TypeStrength, CaloriesPerMinute: 4, Category: "Home"},
	{Name: "Bodyweight Training", Type: TypeStrength, CaloriesPerMinute: 5, Category: "Home"},
	{Name: "Core Workout", Type: TypeStrength, CaloriesPerMinute: 5, Category: "Home"},
	{Name: "Plank", Type: TypeStrength, CaloriesPerMinute: 4, Category: "Home"},

	// Flexibility
	{Name: "Yoga", Type: TypeFlexibility, CaloriesPerMinute: 3, Category: "Home"},
	{Name: "Pilates", Type: TypeFlexibility, CaloriesPerMinute: 4, Category: "Home"},
	{Name: "Stretching", Type: TypeFlexibility, CaloriesPerMinute: 2, Category: "Home"},
	{Name: "Tai Chi", Type: TypeFlexibility, CaloriesPerMinute: 3, Category: "Home"},
	{Name: "Foam Rolling", Type: TypeFlexibility, CaloriesPerMinute: 2, Category: "Home"},

	// Sports
	{Name: "Basketball", Type: TypeSports, CaloriesPerMinute: 8, Category: "Sports"},
	{Name: "Soccer", Type: TypeSports, CaloriesPerMinute: 9, Category: "Sports"},
	{Name: "Tennis", Type: TypeSports, CaloriesPerMinute: 7, Category: "Sports"},
	{Name: "Volleyball", Type: TypeSports, CaloriesPerMinute: 6, Category: "Sports"},
	{Name: "Golf", Type: TypeSports, CaloriesPerMinute: 4, Category: "Sports"},
	{Name: "Baseball", Type: TypeSports, CaloriesPerMinute: 5, Category: "Sports"},
	{Name: "Football", Type: TypeSports, CaloriesPerMinute: 8, Category: "Sports"},
	{Name: "Hockey", Type: TypeSports, CaloriesPerMinute: 8, Category: "Sports"},
	{Name: "Badminton", Type: TypeSports, CaloriesPerMinute: 6, Category: "Sports"},
	{Name: "Table Tennis", Type: TypeSports, CaloriesPerMinute: 4, Category: "Sports"},

	// Other
	{Name: "Rock Climbing", Type: TypeOther, CaloriesPerMinute: 11, Category: "Outdoor"},
	{Name: "Martial Arts", Type: TypeOther, CaloriesPerMinute: 10, Category: "Gym"},
	{Name: "CrossFit", Type: TypeOther, CaloriesPerMinute: 12, Category: "Gym"},
	{Name: "Circuit Training", Type: TypeOther, CaloriesPerMinute: 9, Category: "Gym"},
	{Name: "HIIT", Type: TypeOther, CaloriesPerMinute: 12, Category: "Gym"},
	{Name: "Zumba", Type: TypeOther, CaloriesPerMinute: 7, Category: "Gym"},
	{Name: "Spin Class", Type: TypeOther, CaloriesPerMinute: 9, Category: "Gym"},
	{Name: "Aerobics", Type: TypeOther, CaloriesPerMinute: 7, Category: "Gym"},
	{Name: "Barre", Type: TypeOther, CaloriesPerMinute: 5, Category: "Gym"},
}

// Builtin returns the default catalog.
func Builtin() *Catalog {
	return New(builtinEntries)
}
