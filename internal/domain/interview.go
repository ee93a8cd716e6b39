package domain

import (
	"encoding/json"
	"time"
)

// Level names a difficulty tier of generated questions.
type Level string

const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelExpert       Level = "expert"
)

// Levels lists the tiers in presentation order.
var Levels = []Level{LevelBasic, LevelIntermediate, LevelExpert}

// QAPair is a single interview question with its suggested answer.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QASet groups question/answer pairs by difficulty.
// Its JSON form always carries all three level keys; an empty level is [] and never null.
type QASet struct {
	Basic        []QAPair `json:"basic"`
	Intermediate []QAPair `json:"intermediate"`
	Expert       []QAPair `json:"expert"`
}

// NewEmptyQASet returns a set with every level present and empty.
func NewEmptyQASet() QASet {
	return QASet{
		Basic:        []QAPair{},
		Intermediate: []QAPair{},
		Expert:       []QAPair{},
	}
}

// Normalize replaces nil levels with empty slices.
func (s QASet) Normalize() QASet {
	if s.Basic == nil {
		s.Basic = []QAPair{}
	}
	if s.Intermediate == nil {
		s.Intermediate = []QAPair{}
	}
	if s.Expert == nil {
		s.Expert = []QAPair{}
	}
	return s
}

// ByLevel returns the pairs for the given level.
func (s QASet) ByLevel(level Level) []QAPair {
	switch level {
	case LevelBasic:
		return s.Basic
	case LevelIntermediate:
		return s.Intermediate
	case LevelExpert:
		return s.Expert
	}
	return nil
}

// Set replaces the pairs of the given level. Unknown levels are ignored.
func (s *QASet) Set(level Level, pairs []QAPair) {
	switch level {
	case LevelBasic:
		s.Basic = pairs
	case LevelIntermediate:
		s.Intermediate = pairs
	case LevelExpert:
		s.Expert = pairs
	}
}

// Total counts pairs across all levels.
func (s QASet) Total() int {
	return len(s.Basic) + len(s.Intermediate) + len(s.Expert)
}

// MarshalJSON keeps the three-key invariant even for zero values.
func (s QASet) MarshalJSON() ([]byte, error) {
	type plain QASet
	return json.Marshal(plain(s.Normalize()))
}

// UnmarshalJSON fills missing levels with empty slices.
func (s *QASet) UnmarshalJSON(data []byte) error {
	type plain QASet
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = QASet(p).Normalize()
	return nil
}

// InterviewRecord is one persisted generation result. It is never updated after creation.
type InterviewRecord struct {
	ID             int64     `json:"id"`
	JobTitle       string    `json:"job_title"`
	JobDescription string    `json:"job_description"`
	QA             QASet     `json:"qa"`
	CreatedAt      time.Time `json:"created_at"`
}

// HistoryFilter narrows a history listing. Zero values mean "no filter" and "default limit".
type HistoryFilter struct {
	JobTitle string
	Limit    int
}
