package model

import "time"

// PersonalInfo identifies the respondent and the assessed environment.
// The (Email, EnvironmentUniqueName) pair is the identity key used to
// deduplicate submissions.
type PersonalInfo struct {
	Name                  string `json:"name" bson:"name"`
	Date                  string `json:"date" bson:"date"`
	Role                  string `json:"role" bson:"role"`
	EnvironmentType       string `json:"environmentType" bson:"environmentType"`
	EnvironmentSize       string `json:"environmentSize" bson:"environmentSize"`
	EnvironmentImportance string `json:"environmentImportance" bson:"environmentImportance"`
	EnvironmentMaturity   string `json:"environmentMaturity" bson:"environmentMaturity"`
	EnvironmentUniqueName string `json:"environmentUniqueName" bson:"environmentUniqueName"`
	MarketSector          string `json:"marketSector" bson:"marketSector"`
	Country               string `json:"country" bson:"country"`
	Email                 string `json:"email" bson:"email"`
}

// AssessmentMetadata captures client-side context recorded at submission time.
type AssessmentMetadata struct {
	Language             string `json:"language" bson:"language"`
	AssessmentDate       string `json:"assessmentDate" bson:"assessmentDate"`
	AssessmentDurationMs int64  `json:"assessmentDurationMs" bson:"assessmentDurationMs"`
	ClientInfo           string `json:"clientInfo" bson:"clientInfo"`
}

// DetailedAnswer is one answered question with its resolved text and label,
// stored so reports do not depend on the live catalog.
type DetailedAnswer struct {
	QuestionID   string `json:"questionId" bson:"questionId"`
	QuestionText string `json:"questionText" bson:"questionText"`
	AnswerValue  string `json:"answerValue" bson:"answerValue"`
	AnswerLabel  string `json:"answerLabel" bson:"answerLabel"`
	Category     string `json:"category" bson:"category"`
	Area         string `json:"area" bson:"area"`
	Topic        string `json:"topic" bson:"topic"`
}

// Assessment is the persisted submission aggregate. Created once when the
// respondent completes (or abandons) the form; never mutated afterward except
// for UpdatedAt bookkeeping.
type Assessment struct {
	ID                 string             `json:"id" bson:"-"`
	SubmissionID       string             `json:"submissionId" bson:"submissionId"`
	PersonalInfo       PersonalInfo       `json:"personalInfo" bson:"personalInfo"`
	SelectedCategories []string           `json:"selectedCategories" bson:"selectedCategories"`
	SelectedAreas      []string           `json:"selectedAreas" bson:"selectedAreas"`
	Answers            map[string]string  `json:"answers" bson:"answers"`
	Score              int                `json:"score" bson:"score"`
	TotalQuestions     int                `json:"totalQuestions" bson:"totalQuestions"`
	CompletedQuestions int                `json:"completedQuestions" bson:"completedQuestions"`
	Metadata           AssessmentMetadata `json:"assessmentMetadata" bson:"assessmentMetadata"`
	DetailedAnswers    []DetailedAnswer   `json:"detailedAnswers" bson:"detailedAnswers"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}
