package question

// Question is one interview question record.
type Question struct {
	ID         string     `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	Answer     string     `json:"answer,omitempty" yaml:"answer,omitempty"`
	Tags       Tags       `json:"tags" yaml:"tags"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
}

// Clone returns a copy that shares no memory with q.
func (q Question) Clone() Question {
	q.Tags = q.Tags.Clone()
	return q
}

// CloneAll copies a record slice; the result is never nil.
func CloneAll(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

// Input carries the fields of a question to be created.
// The store assigns the ID.
type Input struct {
	Title      string     `json:"title" yaml:"title"`
	Answer     string     `json:"answer,omitempty" yaml:"answer,omitempty"`
	Tags       Tags       `json:"tags" yaml:"tags"`
	Difficulty Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// Validate checks the fields a store cannot accept as given.
func (in Input) Validate() error {
	return in.Difficulty.Check()
}

// New builds the stored record for in under id, applying defaults.
func (in Input) New(id string) Question {
	tags := NormalizeTags(in.Tags)
	return Question{
		ID:         id,
		Title:      in.Title,
		Answer:     in.Answer,
		Tags:       tags,
		Difficulty: in.Difficulty.OrDefault(),
	}
}

// Patch is a partial update. Nil fields keep their prior value.
type Patch struct {
	ID         string      `json:"id" yaml:"id"`
	Title      *string     `json:"title,omitempty" yaml:"title,omitempty"`
	Answer     *string     `json:"answer,omitempty" yaml:"answer,omitempty"`
	Tags       *Tags       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Difficulty *Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// Validate checks the fields a store cannot accept as given.
func (p Patch) Validate() error {
	if p.Difficulty != nil {
		return p.Difficulty.Check()
	}
	return nil
}

// Apply merges p into q. The ID is never changed.
func (p Patch) Apply(q Question) Question {
	out := q.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Answer != nil {
		out.Answer = *p.Answer
	}
	if p.Tags != nil {
		out.Tags = NormalizeTags(*p.Tags)
	}
	if p.Difficulty != nil {
		out.Difficulty = p.Difficulty.OrDefault()
	}
	return out
}

// Empty reports whether p changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Answer == nil && p.Tags == nil && p.Difficulty == nil
}
