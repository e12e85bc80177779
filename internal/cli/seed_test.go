package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadQuestionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	data := `questions:
  - id: 7
    question: Pick the prime
    type: numerical
    options: ["4", "7", "9"]
    correct_answer: "7"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	questions, err := readQuestionFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.ID != 7 || q.CorrectAnswer != "7" || len(q.Options) != 3 || q.Type != "numerical" {
		t.Fatalf("unexpected question: %+v", q)
	}
}

func TestReadQuestionFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("questions: [\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := readQuestionFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"start", "migrate", "seed", "token"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("subcommand %q not registered: %v", name, err)
		}
	}
}

func TestSampleQuestionsAreValid(t *testing.T) {
	for _, q := range sampleQuestions() {
		if !q.HasOption(q.CorrectAnswer) {
			t.Errorf("question %d: correct answer %q not among options", q.ID, q.CorrectAnswer)
		}
	}
}
