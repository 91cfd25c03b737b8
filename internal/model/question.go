package model

// Option is one selectable answer for a question. Value doubles as the
// numeric weight: Score always equals the parsed Value, a single source of
// truth the scoring engine relies on.
type Option struct {
	Value string `json:"value" bson:"value"`
	Label string `json:"label" bson:"label"`
	Score int    `json:"score" bson:"score"`
}

// Question is an immutable catalog entry.
type Question struct {
	ID       string   `json:"id" bson:"id"`
	Text     string   `json:"text" bson:"text"`
	Category string   `json:"category" bson:"category"`
	Area     string   `json:"area" bson:"area"`
	Topic    string   `json:"topic" bson:"topic"`
	Options  []Option `json:"options" bson:"options"`
}

// QuestionDetail is a question exactly as it was presented to the
// respondent, submitted alongside the answers so detailed answers can be
// resolved even when the live catalog has moved on.
type QuestionDetail struct {
	Question       `bson:",inline"`
	SelectedAnswer string `json:"selectedAnswer" bson:"selectedAnswer"`
}

// OptionByValue returns the option carrying the given value.
func (q Question) OptionByValue(value string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}
