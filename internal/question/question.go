package question

import "encoding/json"

// Question is one interview problem from the bank. Example inputs and
// expected outputs are kept as raw JSON so clients can render them without
// the bank caring about their shapes.
type Question struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"`
	FuncName    string    `json:"funcName"`
	ParamNames  []string  `json:"paramNames"`
	Template    string    `json:"template"`
	Examples    []Example `json:"examples"`
}

// Example is a visible sample case shown alongside the problem statement.
// Hidden grading cases live with the (external) execution sandbox, not here.
type Example struct {
	Inputs   json.RawMessage `json:"inputs"`
	Expected json.RawMessage `json:"expected"`
}

// Bank is a fixed, read-only set of questions.
type Bank struct {
	questions []Question
	byID      map[int]Question
}

// NewBank builds a bank from the given questions.
func NewBank(questions []Question) *Bank {
	byID := make(map[int]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return &Bank{questions: questions, byID: byID}
}

// Default returns the built-in bank of easy DSA questions.
func Default() *Bank {
	return NewBank(defaultQuestions)
}

// ByID looks up a question by its id.
func (b *Bank) ByID(id int) (Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Random selects a question using the provided randomness source. pick must
// return a value in [0, n).
func (b *Bank) Random(pick func(n int) int) Question {
	return b.questions[pick(len(b.questions))]
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}
