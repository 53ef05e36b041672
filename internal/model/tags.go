package model

type SubjectTag string

const (
	SubjectMathematics     SubjectTag = "Mathematics"
	SubjectScience         SubjectTag = "Science"
	SubjectHistory         SubjectTag = "History"
	SubjectEnglish         SubjectTag = "English"
	SubjectComputerScience SubjectTag = "Computer Science"
	SubjectGeography       SubjectTag = "Geography"
	SubjectBiology         SubjectTag = "Biology"
	SubjectChemistry       SubjectTag = "Chemistry"
	SubjectPhysics         SubjectTag = "Physics"
)

var Subjects = []SubjectTag{
	SubjectMathematics,
	SubjectScience,
	SubjectHistory,
	SubjectEnglish,
	SubjectComputerScience,
	SubjectGeography,
	SubjectBiology,
	SubjectChemistry,
	SubjectPhysics,
}

type DifficultyTag string

const (
	Easy   DifficultyTag = "Easy"
	Medium DifficultyTag = "Medium"
	Hard   DifficultyTag = "Hard"
)

var Difficulties = []DifficultyTag{Easy, Medium, Hard}

// FilterAll disables a subject or difficulty filter in list queries.
const FilterAll = "All"

func IsSubject(s string) bool {
	for _, v := range Subjects {
		if string(v) == s {
			return true
		}
	}
	return false
}

func IsDifficulty(s string) bool {
	for _, v := range Difficulties {
		if string(v) == s {
			return true
		}
	}
	return false
}
