package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizz/internal/bank"
)

func ptr(i int) *int { return &i }

func testQuestions() []bank.Question {
	return []bank.Question{
		{ID: 1, Prompt: `Which "tag" embeds JS?`, Options: []string{"<script>", "<js>"}, Correct: 0},
		{ID: 2, Prompt: "2 + 2?", Options: []string{"3", "4"}, Correct: 1},
		{ID: 3, Prompt: "Pick one", Options: []string{"a, b", "c"}, Correct: 0},
	}
}

func TestCSV(t *testing.T) {
	got := CSV(testQuestions(), []*int{ptr(0), nil, ptr(1)})

	want := strings.Join([]string{
		`"Q#","Question","Your Answer","Correct Answer","Result"`,
		`"1","Which ""tag"" embeds JS?","<script>","<script>","Correct"`,
		`"2","2 + 2?","","4","Wrong"`,
		`"3","Pick one","c","a, b","Wrong"`,
	}, "\n")
	assert.Equal(t, want, got)
}

func TestCSV_EmptyBank(t *testing.T) {
	assert.Equal(t, `"Q#","Question","Your Answer","Correct Answer","Result"`, CSV(nil, nil))
}

func TestCSV_AbsentAndInvalidSlots(t *testing.T) {
	rows := Rows(testQuestions(), []*int{ptr(5)})
	require.Len(t, rows, 4)
	for _, row := range rows[1:] {
		assert.Equal(t, "", row[2])
		assert.Equal(t, "Wrong", row[4])
	}
}

func TestCSV_Idempotent(t *testing.T) {
	qs := testQuestions()
	answers := []*int{ptr(1), ptr(1), nil}
	assert.Equal(t, CSV(qs, answers), CSV(qs, answers))
}

func TestRows_HeaderIsACopy(t *testing.T) {
	rows := Rows(testQuestions(), nil)
	rows[0][0] = "mutated"

	assert.Equal(t, "Q#", Header[0])
	assert.True(t, strings.HasPrefix(CSV(nil, nil), `"Q#",`))
}

func TestEncode_CRLF(t *testing.T) {
	got := Encode([][]string{{"a"}, {"b", `c"d`}}, CRLF)
	assert.Equal(t, "\"a\"\r\n\"b\",\"c\"\"d\"", got)
}

func TestParseLineEnding(t *testing.T) {
	for in, want := range map[string]LineEnding{"": LF, "lf": LF, "LF": LF, " crlf ": CRLF} {
		got, err := ParseLineEnding(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLineEnding("cr")
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testQuestions()[:1], []*int{nil}, CRLF))
	assert.Equal(t, `"Q#","Question","Your Answer","Correct Answer","Result"`+"\r\n"+
		`"1","Which ""tag"" embeds JS?","","<script>","Wrong"`, buf.String())
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(dir, testQuestions(), nil, LF)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, Filename), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, CSV(testQuestions(), nil), string(data))

	custom := filepath.Join(dir, "out.csv")
	path, err = WriteFile(custom, testQuestions(), nil, LF)
	require.NoError(t, err)
	assert.Equal(t, custom, path)

	_, err = WriteFile(filepath.Join(dir, "missing", "out.csv"), testQuestions(), nil, LF)
	assert.ErrorContains(t, err, "create export file")
}
