package render

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"remoteselect/internal/domain"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		item     domain.Item
		want     string
	}{
		{
			name:     "fields and punctuation",
			template: "name (id)",
			item:     domain.Item{"id": json.Number("1"), "name": "apple"},
			want:     "apple (1)",
		},
		{
			name:     "unknown token passes through",
			template: "Hello unknownField",
			item:     domain.Item{"name": "x"},
			want:     "Hello unknownField",
		},
		{
			name:     "markup is not escaped",
			template: "<b>text</b>",
			item:     domain.Item{"text": "<i>fig</i>", "b": "bold"},
			want:     "<bold><i>fig</i></bold>",
		},
		{
			name:     "maximal runs only",
			template: "idx id_x id",
			item:     domain.Item{"id": "7"},
			want:     "idx id_x 7",
		},
		{
			name:     "digits are words",
			template: "1-2",
			item:     domain.Item{"1": "one"},
			want:     "one-2",
		},
		{
			name:     "non ascii stays literal",
			template: "café·name",
			item:     domain.Item{"caf": "X", "name": "n"},
			want:     "Xé·n",
		},
		{
			name:     "value types",
			template: "a b c d e",
			item: domain.Item{
				"a": true,
				"b": nil,
				"c": json.Number("2.50"),
				"d": []any{"x", json.Number("1")},
				"e": map[string]any{"k": "v"},
			},
			want: `true null 2.50 ["x",1] {"k":"v"}`,
		},
		{
			name:     "nil item",
			template: "name",
			item:     nil,
			want:     "name",
		},
		{
			name:     "empty template",
			template: "",
			item:     domain.Item{"x": "y"},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.template, tt.item)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render(%q) mismatch (-want +got):\n%s", tt.template, diff)
			}
		})
	}
}

func TestRenderIsPure(t *testing.T) {
	tmpl := Compile("text (id) [extra]")
	item := domain.Item{"id": json.Number("3"), "text": "cherry"}

	first := tmpl.Render(item)
	second := tmpl.Render(item)
	assert.Equal(t, first, second)
	assert.Equal(t, Render("text (id) [extra]", item), first)
	assert.Equal(t, domain.Item{"id": json.Number("3"), "text": "cherry"}, item, "item must not be modified")
}

func TestTokenize(t *testing.T) {
	got := Tokenize("a.b  c_1!")
	want := []Token{
		{Kind: TokenWord, Text: "a"},
		{Kind: TokenLiteral, Text: "."},
		{Kind: TokenWord, Text: "b"},
		{Kind: TokenLiteral, Text: "  "},
		{Kind: TokenWord, Text: "c_1"},
		{Kind: TokenLiteral, Text: "!"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}

func TestTokensReturnsCopy(t *testing.T) {
	tmpl := Compile("name")
	toks := tmpl.Tokens()
	toks[0].Text = "changed"

	assert.Equal(t, "name", tmpl.Tokens()[0].Text)
	assert.Equal(t, "name", tmpl.Source())
}
