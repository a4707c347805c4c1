// Package export serializes answers as a CSV document.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/quizz/internal/bank"
)

// Filename is the conventional name of the exported document.
const Filename = "quiz-results.csv"

// Header is the first row of every export.
var Header = []string{"Q#", "Question", "Your Answer", "Correct Answer", "Result"}

// LineEnding separates rows.
type LineEnding string

const (
	LF   LineEnding = "\n"
	CRLF LineEnding = "\r\n"
)

// ParseLineEnding maps a config value ("lf" or "crlf") to a LineEnding.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lf":
		return LF, nil
	case "crlf":
		return CRLF, nil
	default:
		return "", fmt.Errorf("invalid line ending %q: must be lf or crlf", s)
	}
}

// Rows returns the header followed by one row per question in bank order.
// Absent or invalid answers produce an empty "Your Answer" cell.
func Rows(questions []bank.Question, answers []*int) [][]string {
	rows := make([][]string, 0, len(questions)+1)
	rows = append(rows, slices.Clone(Header))

	for i, q := range questions {
		your := ""
		result := "Wrong"
		if i < len(answers) && answers[i] != nil && q.HasOption(*answers[i]) {
			your = q.OptionText(*answers[i])
			if *answers[i] == q.Correct {
				result = "Correct"
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			q.Prompt,
			your,
			q.CorrectText(),
			result,
		})
	}
	return rows
}

// CSV renders questions and answers with LF row separators.
func CSV(questions []bank.Question, answers []*int) string {
	return Encode(Rows(questions, answers), LF)
}

// Encode renders rows with every field quoted and embedded quotes doubled.
// Rows are joined by sep with no trailing separator.
func Encode(rows [][]string, sep LineEnding) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString(string(sep))
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String()
}

// Write encodes questions and answers to w.
func Write(w io.Writer, questions []bank.Question, answers []*int, sep LineEnding) error {
	if _, err := io.WriteString(w, Encode(Rows(questions, answers), sep)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteFile writes the export to path. When path is a directory the
// document is written to Filename inside it. Returns the final path.
func WriteFile(path string, questions []bank.Question, answers []*int, sep LineEnding) (string, error) {
	if path == "" {
		path = Filename
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, Filename)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := Write(f, questions, answers, sep); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}
