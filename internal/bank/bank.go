package bank

// Bank is an ordered, immutable set of questions. The zero value is an
// empty bank.
type Bank struct {
	questions []Question
}

// New validates questions and builds a bank from them. The input slice is
// copied; later changes to it do not affect the bank.
func New(questions []Question) (*Bank, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	b := &Bank{
		questions: make([]Question, len(questions)),
	}
	for i, q := range questions {
		b.questions[i] = q.clone()
	}
	return b, nil
}

// Count returns the number of questions.
func (b *Bank) Count() int {
	if b == nil {
		return 0
	}
	return len(b.questions)
}

// Get returns the question at index i in bank order.
func (b *Bank) Get(i int) (Question, bool) {
	if i < 0 || i >= b.Count() {
		return Question{}, false
	}
	return b.questions[i].clone(), true
}

// All returns every question in bank order.
func (b *Bank) All() []Question {
	out := make([]Question, b.Count())
	for i := range out {
		out[i] = b.questions[i].clone()
	}
	return out
}
