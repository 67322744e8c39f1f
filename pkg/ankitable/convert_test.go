package ankitable

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const happyInput = `#title=Happy deck
HeadingA,Heading<B>,HeadingC
data1a,data1b,data1c-1¡data1c-2
data2a-1¡data2a-2¡data2a-3,data2b,data2c::foo
data3a,¿data3b,data3c
`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConvert(t *testing.T) {
	doc, err := Convert(happyInput, "fallback", DefaultOptions())
	require.NoError(t, err)

	html := string(doc.HTML)
	assert.Equal(t, "Happy deck", doc.Title)
	assert.Contains(t, html, "<div>Happy deck</div>")
	assert.Contains(t, html, "<th>Heading&lt;B&gt;</th>")
	assert.Contains(t, html, "<td>{{c3::data1c-1<br />data1c-2}}</td>")
	assert.Contains(t, html, "<td>{{c6::data2c:\u200B:foo}}</td>")
	assert.Contains(t, html, "<td>data3b</td>")
	assert.Contains(t, html, "<td>{{c8::data3c}}</td>")
	assert.Equal(t, 8, doc.Stats.Clozes)
	assert.Equal(t, 3, doc.Stats.DataRows)
}

func TestConvert_FallbackTitle(t *testing.T) {
	doc, err := Convert("a\nb\n", "deck", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "deck", doc.Title)
}

func TestConvert_Errors(t *testing.T) {
	_, err := Convert("a,b\n\"open\n", "t", DefaultOptions())
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = Convert("a,b,c\n1,2\n", "t", DefaultOptions())
	assert.ErrorIs(t, err, ErrColumnCountMismatch)

	_, err = Convert("#title=x\n", "t", DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "deck.csv", "Q,A\n2+2,4\n")
	output := filepath.Join(dir, "out", "Arithmetic.html")

	var logs bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = zerolog.New(&logs)

	res, err := ConvertFile(context.Background(), input, output, opts)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "Arithmetic", res.Title)
	assert.Equal(t, 2, res.Clozes)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<div>Arithmetic</div>")
	assert.Contains(t, string(data), "<td>{{c1::2+2}}</td>\n  <td>{{c2::4}}</td>")

	assert.Contains(t, logs.String(), `"message":"wrote file"`)
	assert.Contains(t, logs.String(), `"clozes":2`)

	entries, err := os.ReadDir(filepath.Dir(output))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestConvertFile_TitleOverride(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "deck.csv", "Q,A\n")
	opts := DefaultOptions()
	opts.Title = "Override"

	res, err := ConvertFile(context.Background(), input, filepath.Join(dir, "deck.html"), opts)
	require.NoError(t, err)
	assert.Equal(t, "Override", res.Title)

	input = writeInput(t, dir, "titled.csv", "#title=Directive\nQ,A\n")
	res, err = ConvertFile(context.Background(), input, filepath.Join(dir, "titled.html"), opts)
	require.NoError(t, err)
	assert.Equal(t, "Directive", res.Title)
}

func TestConvertFile_NoOutputOnFailure(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "deck.html")

	tests := []struct {
		name    string
		content string
		stage   Stage
		target  error
	}{
		{"mismatch", "a,b,c\n1,2\n", StageRender, ErrColumnCountMismatch},
		{"malformed", "a,\"b\n", StageParse, ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeInput(t, dir, "deck.csv", tt.content)

			_, err := ConvertFile(context.Background(), input, output, DefaultOptions())
			require.ErrorIs(t, err, tt.target)

			var cerr *ConversionError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.stage, cerr.Stage)
			assert.Equal(t, input, cerr.Input)

			_, statErr := os.Stat(output)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestConvertFile_KeepsPreviousOutputOnFailure(t *testing.T) {
	dir := t.TempDir()
	output := writeInput(t, dir, "deck.html", "previous")
	input := writeInput(t, dir, "deck.csv", "a,b\n1\n")

	_, err := ConvertFile(context.Background(), input, output, DefaultOptions())
	require.Error(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deck.html")

	require.NoError(t, writeFileAtomic(path, []byte("first")))
	require.NoError(t, writeFileAtomic(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "deck.html", entries[0].Name())
}

func TestConvertFile_Workbook(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Word")
	f.SetCellValue("Sheet1", "B1", "Translation")
	f.SetCellValue("Sheet1", "A2", "perro")
	f.SetCellValue("Sheet1", "B2", "dog")
	input := filepath.Join(dir, "animals.xlsx")
	require.NoError(t, f.SaveAs(input))

	res, err := ConvertFile(context.Background(), input, OutputPath(input), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "animals.html"), res.Output)
	assert.Equal(t, "animals", res.Title)

	data, err := os.ReadFile(res.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<td>{{c1::perro}}</td>")
	assert.Contains(t, string(data), "<th>Translation</th>")
}

func TestConvertFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ConvertFile(ctx, "deck.csv", "deck.html", DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvertTo(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "verbs.csv", "inf,past\ngo,went\n")

	var out strings.Builder
	res, err := ConvertTo(context.Background(), &out, input, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "verbs", res.Title)
	assert.Contains(t, out.String(), "<div>verbs</div>")
	assert.Contains(t, out.String(), "{{c2::went}}")
}

func TestLoad_Unsupported(t *testing.T) {
	_, _, err := Load("notes.md", DefaultOptions())
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestDeriveTitle(t *testing.T) {
	assert.Equal(t, "happy-output", DeriveTitle("/tmp/happy-output.html"))
	assert.Equal(t, "deck", DeriveTitle("deck"))
	assert.Equal(t, "v1.2", DeriveTitle("v1.2.html"))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("dir", "deck.html"), OutputPath(filepath.Join("dir", "deck.csv")))
	assert.Equal(t, filepath.Join("dir", "deck.html"), OutputPath(filepath.Join("dir", "deck.csv.xz")))
	assert.Equal(t, filepath.Join("dir", "deck.html"), OutputPath(filepath.Join("dir", "deck.xlsx")))
}

func TestOptions_ShouldDecode(t *testing.T) {
	opts := DefaultOptions()
	assert.False(t, opts.ShouldDecode())
	opts.Encoding = "UTF-8"
	assert.False(t, opts.ShouldDecode())
	opts.Encoding = "windows-1252"
	assert.True(t, opts.ShouldDecode())
}
