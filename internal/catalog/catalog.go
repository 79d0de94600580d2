// Package catalog holds the fixed reference set of trackable activities.
package catalog

import "github.com/julianstephens/pulse/internal/models"

// Version identifies this revision of the activity set.
const Version = "2024.1"

var categories = []models.CategoryInfo{
	{ID: models.CategoryPhysical, Label: "Physical Activity", Color: "#10b981"},
	{ID: models.CategoryStudy, Label: "Academic Study", Color: "#6366f1"},
	{ID: models.CategorySkills, Label: "Skills & Tech", Color: "#f59e0b"},
	{ID: models.CategoryHealth, Label: "Health & Lifestyle", Color: "#f43f5e"},
	{ID: models.CategoryFun, Label: "Fun & Recreation", Color: "#a855f7"},
}

var activities = []models.Activity{
	{ID: "run", Name: "Running", Category: models.CategoryPhysical, Icon: "🏃‍♂️"},
	{ID: "walk", Name: "Walking", Category: models.CategoryPhysical, Icon: "🚶‍♂️"},
	{ID: "swim", Name: "Swimming", Category: models.CategoryPhysical, Icon: "🏊‍♂️"},
	{ID: "cycle", Name: "Cycling", Category: models.CategoryPhysical, Icon: "🚴‍♂️"},
	{ID: "gym", Name: "Gym Workout", Category: models.CategoryPhysical, Icon: "🏋️‍♂️"},
	{ID: "yoga", Name: "Yoga & Flexibility", Category: models.CategoryPhysical, Icon: "🧘‍♂️"},
	{ID: "sports", Name: "Team Sports", Category: models.CategoryPhysical, Icon: "⚽"},
	{ID: "hiking", Name: "Hiking / Nature Walk", Category: models.CategoryPhysical, Icon: "🥾"},
	{ID: "stretch", Name: "Daily Stretching", Category: models.CategoryPhysical, Icon: "🙆‍♂️"},

	{ID: "classes", Name: "Classes", Category: models.CategoryStudy, Icon: "🏫"},
	{ID: "classwork", Name: "Classwork", Category: models.CategoryStudy, Icon: "📝"},
	{ID: "assignments", Name: "Assignments", Category: models.CategoryStudy, Icon: "📚"},
	{ID: "exam_prep", Name: "Exam Preparation", Category: models.CategoryStudy, Icon: "🎯"},
	{ID: "reading", Name: "Academic Reading", Category: models.CategoryStudy, Icon: "📖"},
	{ID: "research", Name: "Deep Research", Category: models.CategoryStudy, Icon: "🔍"},
	{ID: "language", Name: "Language Practice", Category: models.CategoryStudy, Icon: "🗣️"},
	{ID: "online_course", Name: "Online Certifications", Category: models.CategoryStudy, Icon: "🖥️"},

	{ID: "dsa", Name: "Data Structures & Algorithms", Category: models.CategorySkills, Icon: "💻"},
	{ID: "ml", Name: "Machine Learning", Category: models.CategorySkills, Icon: "🤖"},
	{ID: "ds", Name: "Data Science", Category: models.CategorySkills, Icon: "📊"},
	{ID: "ai", Name: "Artificial Intelligence", Category: models.CategorySkills, Icon: "🧠"},
	{ID: "webdev", Name: "Web Development", Category: models.CategorySkills, Icon: "🌐"},
	{ID: "design", Name: "UI/UX Design", Category: models.CategorySkills, Icon: "🎨"},
	{ID: "public_speaking", Name: "Communication Skills", Category: models.CategorySkills, Icon: "🎤"},
	{ID: "finance", Name: "Financial Literacy", Category: models.CategorySkills, Icon: "💰"},
	{ID: "writing", Name: "Technical Writing", Category: models.CategorySkills, Icon: "✍️"},

	{ID: "water", Name: "Water Intake", Category: models.CategoryHealth, Icon: "💧"},
	{ID: "breakfast", Name: "Healthy Breakfast", Category: models.CategoryHealth, Icon: "🍳"},
	{ID: "lunch", Name: "Healthy Lunch", Category: models.CategoryHealth, Icon: "🥗"},
	{ID: "dinner", Name: "Healthy Dinner", Category: models.CategoryHealth, Icon: "🍲"},
	{ID: "sleep", Name: "7-8 Hours Sleep", Category: models.CategoryHealth, Icon: "😴"},
	{ID: "meditation", Name: "Mindfulness/Meditation", Category: models.CategoryHealth, Icon: "🕯️"},
	{ID: "nojunk", Name: "No Junk Food", Category: models.CategoryHealth, Icon: "🍎"},
	{ID: "vitamins", Name: "Vitamins / Supplements", Category: models.CategoryHealth, Icon: "💊"},
	{ID: "journal", Name: "Daily Journaling", Category: models.CategoryHealth, Icon: "📓"},
	{ID: "skincare", Name: "Skincare Routine", Category: models.CategoryHealth, Icon: "✨"},

	{ID: "gaming", Name: "Video Games", Category: models.CategoryFun, Icon: "🎮"},
	{ID: "movies", Name: "Movie / Series Night", Category: models.CategoryFun, Icon: "🍿"},
	{ID: "leisure_reading", Name: "Leisure Reading", Category: models.CategoryFun, Icon: "📚"},
	{ID: "music", Name: "Music / Instruments", Category: models.CategoryFun, Icon: "🎸"},
	{ID: "socializing", Name: "Hangout with Friends", Category: models.CategoryFun, Icon: "👥"},
	{ID: "hobby", Name: "Creative Hobbies", Category: models.CategoryFun, Icon: "🎨"},
	{ID: "boardgames", Name: "Board Games", Category: models.CategoryFun, Icon: "🎲"},
	{ID: "outdoor_fun", Name: "Outdoor Exploration", Category: models.CategoryFun, Icon: "🗺️"},
}

var index = func() map[string]int {
	m := make(map[string]int, len(activities))
	for i, a := range activities {
		m[a.ID] = i
	}
	return m
}()

// All returns the catalog in display order.
func All() []models.Activity {
	out := make([]models.Activity, len(activities))
	copy(out, activities)
	return out
}

// Categories returns the categories in display order.
func Categories() []models.CategoryInfo {
	out := make([]models.CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// Category looks up display info for a category.
func Category(id models.Category) (models.CategoryInfo, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.CategoryInfo{}, false
}

func ByID(id string) (models.Activity, bool) {
	i, ok := index[id]
	if !ok {
		return models.Activity{}, false
	}
	return activities[i], true
}

func Exists(id string) bool {
	_, ok := index[id]
	return ok
}

func ByCategory(cat models.Category) []models.Activity {
	var out []models.Activity
	for _, a := range activities {
		if a.Category == cat {
			out = append(out, a)
		}
	}
	return out
}

// Filter returns the catalog activities whose id is in ids, in catalog order.
// Unknown ids are dropped.
func Filter(ids []string) []models.Activity {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Activity
	for _, a := range activities {
		if want[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

// Tracked returns the set of ids in the selection that the catalog knows.
func Tracked(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if Exists(id) {
			set[id] = true
		}
	}
	return set
}
