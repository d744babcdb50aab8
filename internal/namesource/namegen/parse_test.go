package namegen

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genpi/internal/kana"
	"genpi/internal/pi/models"
)

func TestParseNames(t *testing.T) {
	f, err := os.Open("testdata/female.html")
	require.NoError(t, err)
	defer f.Close()

	names, err := ParseNames(f)
	require.NoError(t, err)

	// duplicates and order are kept verbatim
	assert.Equal(t, []models.Name{
		{LastName: "佐藤", LastNameKana: "さとう", FirstName: "花子", FirstNameKana: "はなこ"},
		{LastName: "鈴木", LastNameKana: "すずき", FirstName: "美咲", FirstNameKana: "みさき"},
		{LastName: "佐藤", LastNameKana: "さとう", FirstName: "花子", FirstNameKana: "はなこ"},
	}, names)
}

func page(rows ...string) string {
	return `<html><body><table class="gen-table-1"><tr><th>名前</th><th>読み</th></tr>` +
		strings.Join(rows, "") + `</table></body></html>`
}

func TestParseNamesFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{
			name: "missing table",
			body: `<html><body><table class="other"><tr><td>x</td></tr></table></body></html>`,
			msg:  "table.gen-table-1 not found",
		},
		{
			name: "header only",
			body: page(),
			msg:  "no data rows",
		},
		{
			name: "three kanji segments",
			body: page(`<tr><td class="name">山田 太郎 次郎</td><td class="pron">やまだ たろう</td></tr>`),
			msg:  "td.name has 3 segments",
		},
		{
			name: "one reading segment",
			body: page(`<tr><td class="name">山田 太郎</td><td class="pron">やまだたろう</td></tr>`),
			msg:  "td.pron has 1 segments",
		},
		{
			name: "missing pron cell",
			body: page(`<tr><td class="name">山田 太郎</td></tr>`),
			msg:  "td.pron not found",
		},
		{
			name: "missing name cell",
			body: page(`<tr><td class="pron">やまだ たろう</td></tr>`),
			msg:  "td.name not found",
		},
		{
			name: "one bad row fails the page",
			body: page(
				`<tr><td class="name">山田 太郎</td><td class="pron">やまだ たろう</td></tr>`,
				`<tr><td class="name">田中</td><td class="pron">たなか</td></tr>`,
			),
			msg: "row 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, err := ParseNames(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Nil(t, names)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseNamesRejectsKatakanaReading(t *testing.T) {
	body := page(`<tr><td class="name">山田 太郎</td><td class="pron">ヤマダ タロウ</td></tr>`)
	_, err := ParseNames(strings.NewReader(body))
	require.ErrorIs(t, err, kana.ErrNotHiragana)
}
