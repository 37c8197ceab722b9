package catalog

var defaultMeals = []MealDefinition{
	{
		ID:                  "b1",
		Name:                "Beast Oats (High-Protein Overnight)",
		Category:            Breakfast,
		Calories:            450,
		Protein:             35,
		Carbs:               65,
		Fat:                 8,
		Blueprint:           "1/2 cup Rolled Oats, 1 scoop Whey Protein (Vanilla), 1 tbsp Chia Seeds, 3/4 cup Almond Milk, 1/2 cup Frozen Berries",
		PrepTimeMinutes:     5,
		RequiresAdvancePrep: true,
		AdvancePrepDays:     1,
		BatchPrepFriendly:   true,
		BatchSize:           5,
		ShelfLifeDays:       5,
		PrepDayRecommended:  "Sunday",
		IndividualServings:  1,
		FamilyServings:      4,
		Ingredients: []Ingredient{
			{Item: "Rolled Oats", Amount: "1/2 cup", Category: "Pantry"},
			{Item: "Whey Protein (Vanilla)", Amount: "1 scoop", Category: "Pantry"},
			{Item: "Chia Seeds", Amount: "1 tbsp", Category: "Pantry"},
			{Item: "Unsweetened Almond Milk", Amount: "3/4 cup", Category: "Dairy"},
			{Item: "Frozen Mixed Berries", Amount: "1/2 cup", Category: "Frozen"},
		},
	},
	{
		ID:                 "b2",
		Name:               "Steak & Egg Scramble",
		Category:           Breakfast,
		Calories:           550,
		Protein:            45,
		Carbs:              15,
		Fat:                35,
		Blueprint:          "4oz Lean Sirloin, 2 Eggs, 1/2 cup Egg Whites, Spinach, Bell Peppers",
		PrepTimeMinutes:    15,
		BatchSize:          1,
		ShelfLifeDays:      1,
		IndividualServings: 1,
		FamilyServings:     3,
		Ingredients: []Ingredient{
			{Item: "Lean Sirloin Steak", Amount: "4oz", Category: "Protein"},
			{Item: "Eggs", Amount: "2", Category: "Dairy"},
			{Item: "Egg Whites", Amount: "1/2 cup", Category: "Dairy"},
			{Item: "Fresh Spinach", Amount: "1 cup", Category: "Produce"},
			{Item: "Bell Peppers", Amount: "1/2 cup", Category: "Produce"},
		},
	},
	{
		ID:                 "b3",
		Name:               "Greek Yogurt Power Bowl",
		Category:           Breakfast,
		Calories:           480,
		Protein:            42,
		Carbs:              58,
		Fat:                12,
		Blueprint:          "2 cups Non-fat Greek Yogurt, 1/4 cup Granola, 1 tbsp Honey, 1/2 cup Mixed Berries, 1 tbsp Almond Butter",
		PrepTimeMinutes:    3,
		BatchSize:          1,
		ShelfLifeDays:      1,
		IndividualServings: 1,
		FamilyServings:     2,
		Ingredients: []Ingredient{
			{Item: "Non-fat Greek Yogurt", Amount: "2 cups", Category: "Dairy"},
			{Item: "Granola", Amount: "1/4 cup", Category: "Pantry"},
			{Item: "Honey", Amount: "1 tbsp", Category: "Pantry"},
			{Item: "Mixed Berries", Amount: "1/2 cup", Category: "Produce"},
			{Item: "Almond Butter", Amount: "1 tbsp", Category: "Pantry"},
		},
	},
	{
		ID:                  "l1",
		Name:                "Adult Lunchable (Chicken Edition)",
		Category:            Lunch,
		Calories:            550,
		Protein:             50,
		Carbs:               35,
		Fat:                 22,
		Blueprint:           "8oz Grilled Chicken Breast, 1 bag Steamfresh Veggies, 1/2 Avocado, Light Vinaigrette",
		PrepTimeMinutes:     10,
		RequiresAdvancePrep: true,
		AdvancePrepDays:     1,
		BatchPrepFriendly:   true,
		BatchSize:           5,
		ShelfLifeDays:       4,
		PrepDayRecommended:  "Sunday",
		IndividualServings:  1,
		FamilyServings:      3,
		Ingredients: []Ingredient{
			{Item: "Chicken Breast", Amount: "8oz", Category: "Protein"},
			{Item: "Steamfresh Veggies", Amount: "1 bag", Category: "Frozen"},
			{Item: "Avocado", Amount: "1/2", Category: "Produce"},
			{Item: "Light Vinaigrette", Amount: "2 tbsp", Category: "Pantry"},
		},
	},
	{
		ID:                 "l2",
		Name:               "Tuna Greek Salad",
		Category:           Lunch,
		Calories:           520,
		Protein:            55,
		Carbs:              28,
		Fat:                18,
		Blueprint:          "2 cans Tuna (in water), 1/2 cup Greek Yogurt, Celery, Greens, Olives, Cucumber, Feta",
		PrepTimeMinutes:    8,
		BatchPrepFriendly:  true,
		BatchSize:          3,
		ShelfLifeDays:      2,
		IndividualServings: 1,
		FamilyServings:     2,
		Ingredients: []Ingredient{
			{Item: "Tuna (in water)", Amount: "2 cans", Category: "Pantry"},
			{Item: "Greek Yogurt", Amount: "1/2 cup", Category: "Dairy"},
			{Item: "Celery", Amount: "2 stalks", Category: "Produce"},
			{Item: "Mixed Greens", Amount: "2 cups", Category: "Produce"},
			{Item: "Olives", Amount: "1/4 cup", Category: "Pantry"},
			{Item: "Cucumber", Amount: "1/2", Category: "Produce"},
			{Item: "Feta Cheese", Amount: "2 tbsp", Category: "Dairy"},
		},
	},
	{
		ID:                 "l3",
		Name:               "Turkey & Hummus Wrap",
		Category:           Lunch,
		Calories:           540,
		Protein:            48,
		Carbs:              52,
		Fat:                16,
		Blueprint:          "8oz Sliced Turkey Breast, 3 tbsp Hummus, Whole Wheat Wrap, Lettuce, Tomato, Cucumber",
		PrepTimeMinutes:    5,
		BatchPrepFriendly:  true,
		BatchSize:          3,
		ShelfLifeDays:      2,
		IndividualServings: 1,
		FamilyServings:     4,
		Ingredients: []Ingredient{
			{Item: "Sliced Turkey Breast", Amount: "8oz", Category: "Protein"},
			{Item: "Hummus", Amount: "3 tbsp", Category: "Pantry"},
			{Item: "Whole Wheat Wrap", Amount: "1", Category: "Pantry"},
			{Item: "Lettuce", Amount: "1 cup", Category: "Produce"},
			{Item: "Tomato", Amount: "1", Category: "Produce"},
			{Item: "Cucumber", Amount: "1/4", Category: "Produce"},
		},
	},
	{
		ID:                  "d1",
		Name:                "Modular Turkey Chili (Hidden Veggie)",
		Category:            Dinner,
		Calories:            700,
		Protein:             60,
		Carbs:               68,
		Fat:                 18,
		Blueprint:           "2lbs 99% Lean Ground Turkey, 2 cans Kidney Beans, 1 can Fire Roasted Tomatoes, 1 Onion, 2 Bell Peppers, 1 Zucchini (grated), Chili Seasoning",
		PrepTimeMinutes:     45,
		RequiresAdvancePrep: true,
		AdvancePrepDays:     1,
		BatchPrepFriendly:   true,
		BatchSize:           6,
		ShelfLifeDays:       5,
		PrepDayRecommended:  "Sunday",
		IndividualServings:  1,
		FamilyServings:      6,
		Ingredients: []Ingredient{
			{Item: "99% Lean Ground Turkey", Amount: "2lbs", Category: "Protein"},
			{Item: "Kidney Beans", Amount: "2 cans", Category: "Pantry"},
			{Item: "Fire Roasted Tomatoes", Amount: "1 can", Category: "Pantry"},
			{Item: "Onion", Amount: "1", Category: "Produce"},
			{Item: "Bell Peppers", Amount: "2", Category: "Produce"},
			{Item: "Zucchini", Amount: "1", Category: "Produce"},
			{Item: "Chili Seasoning", Amount: "1 packet", Category: "Pantry"},
		},
	},
	{
		// Only calories and protein are published for the two dinners below.
		ID:                  "d2",
		Name:                "Slow Cooker Salsa Chicken",
		Category:            Dinner,
		Calories:            650,
		Protein:             58,
		Blueprint:           "3lbs Chicken Thighs, 1 jar Salsa, Taco Seasoning, Black Beans. Cook on low 6-8 hours, shred with forks",
		PrepTimeMinutes:     480,
		RequiresAdvancePrep: true,
		AdvancePrepDays:     1,
		BatchPrepFriendly:   true,
		BatchSize:           6,
		ShelfLifeDays:       4,
		PrepDayRecommended:  "Sunday",
		IndividualServings:  1,
		FamilyServings:      6,
		Ingredients: []Ingredient{
			{Item: "Chicken Thighs (Boneless Skinless)", Amount: "3lbs", Category: "Protein"},
			{Item: "Salsa (Mild or Medium)", Amount: "1 jar", Category: "Pantry"},
			{Item: "Taco Seasoning", Amount: "1 packet", Category: "Pantry"},
			{Item: "Black Beans", Amount: "1 can", Category: "Pantry"},
		},
	},
	{
		ID:                 "d3",
		Name:               "Sheet Pan Roasted Meat & Veg",
		Category:           Dinner,
		Calories:           680,
		Protein:            56,
		Blueprint:          "Chicken Sausage sliced + Broccoli + Sweet Potatoes cubed + Bell Peppers. Toss in olive oil, salt, pepper, garlic powder. Roast 400°F for 25-30 mins",
		PrepTimeMinutes:    35,
		BatchPrepFriendly:  true,
		BatchSize:          4,
		ShelfLifeDays:      3,
		IndividualServings: 1,
		FamilyServings:     4,
		Ingredients: []Ingredient{
			{Item: "Chicken Sausage", Amount: "1 package", Category: "Protein"},
			{Item: "Broccoli Florets", Amount: "2 cups", Category: "Produce"},
			{Item: "Sweet Potatoes", Amount: "2 medium", Category: "Produce"},
			{Item: "Bell Peppers", Amount: "2", Category: "Produce"},
			{Item: "Olive Oil", Amount: "2 tbsp", Category: "Pantry"},
			{Item: "Garlic Powder", Amount: "1 tsp", Category: "Pantry"},
		},
	},
}
