package script

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remoteselect/internal/config"
	"remoteselect/internal/domain"
	"remoteselect/internal/fetch"
	"remoteselect/internal/selector"
)

var words = []domain.Item{
	{"id": 1, "text": "apple"},
	{"id": 2, "text": "banana"},
	{"id": 3, "text": "grape"},
}

func wordSource() fetch.Source {
	return fetch.SourceFunc(func(ctx context.Context, query string) ([]domain.Item, error) {
		var out []domain.Item
		for _, it := range words {
			if text, _ := it.FieldString("text"); strings.Contains(text, query) {
				out = append(out, it)
			}
		}
		return out, nil
	})
}

func mountControl(t *testing.T, opts ...selector.Option) *selector.Control {
	t.Helper()
	cfg := &config.Config{
		Endpoint:        "http://items.test/items",
		KeyProperty:     "id",
		DisplayTemplate: "text #id",
		Fetch:           config.FetchSettings{DebounceMS: 1},
	}
	c := selector.Mount(cfg, append([]selector.Option{selector.WithSource(wordSource())}, opts...)...)
	t.Cleanup(c.Unmount)
	return c
}

// lines decodes every JSON line of out
func lines(t *testing.T, out *bytes.Buffer) []map[string]any {
	t.Helper()
	var res []map[string]any
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), sc.Text())
		res = append(res, m)
	}
	return res
}

func TestRunSelectsWithKeyboard(t *testing.T) {
	c := mountControl(t)
	var out bytes.Buffer
	r := NewRunner(c, &out, nil)

	script := `
# open and pick the second row
open
wait
state
down 2
confirm
state
`
	require.NoError(t, r.Run(context.Background(), strings.NewReader(script)))

	got := lines(t, &out)
	require.Len(t, got, 3)

	opened := got[0]
	assert.Equal(t, true, opened["open"])
	assert.Equal(t, float64(-1), opened["highlighted"])
	assert.Len(t, opened["rows"], 3)

	assert.Equal(t, "selected", got[1]["event"])
	assert.Equal(t, "banana", got[1]["item"].(map[string]any)["text"])

	closed := got[2]
	assert.Equal(t, false, closed["open"])
	assert.Equal(t, "banana #2", closed["selected_label"])
	assert.Empty(t, closed["rows"])
}

func TestRunTypingFiltersRows(t *testing.T) {
	c := mountControl(t)
	var out bytes.Buffer
	r := NewRunner(c, &out, nil)

	require.NoError(t, r.Run(context.Background(), strings.NewReader("open\nwait\ntype ap\nwait\nstate\nbackspace\nwait\nstate\n")))

	got := lines(t, &out)
	require.Len(t, got, 2)
	assert.Equal(t, "ap", got[0]["query"])
	rows := got[0]["rows"].([]any)
	require.Len(t, rows, 2)
	assert.Equal(t, "apple #1", rows[0].(map[string]any)["label"])
	assert.Equal(t, "grape #3", rows[1].(map[string]any)["label"])

	assert.Equal(t, "a", got[1]["query"])
	assert.Len(t, got[1]["rows"], 3)
}

func TestRunHoverClickAndOutside(t *testing.T) {
	hub := selector.NewPointerHub()
	c := mountControl(t, selector.WithPointer(hub, selector.BoundaryFunc(func(selector.PointerEvent) bool { return false })))
	var out bytes.Buffer
	r := NewRunner(c, &out, func() {
		hub.Dispatch(selector.PointerEvent{Kind: selector.PointerPress})
	})

	require.NoError(t, r.Run(context.Background(), strings.NewReader("open\nwait\nhover 2\nstate\noutside\nstate\nopen\nwait\nclick 0\n")))

	got := lines(t, &out)
	require.Len(t, got, 3)
	assert.Equal(t, float64(2), got[0]["highlighted"])
	assert.Equal(t, false, got[1]["open"])
	assert.Nil(t, got[1]["selected"])
	assert.Equal(t, "selected", got[2]["event"])
}

func TestRunReportsBadCommands(t *testing.T) {
	c := mountControl(t)
	var out bytes.Buffer
	r := NewRunner(c, &out, nil)

	require.NoError(t, r.Run(context.Background(), strings.NewReader("jump\nhover x\noutside\nstate\n")))

	got := lines(t, &out)
	require.Len(t, got, 4)
	assert.Contains(t, got[0]["error"], "unknown command")
	assert.Equal(t, "hover x", got[1]["line"])
	assert.Contains(t, got[2]["error"], "no pointer source")
	assert.Equal(t, false, got[3]["open"])
}

func TestWaitTimesOut(t *testing.T) {
	src := fetch.SourceFunc(func(ctx context.Context, query string) ([]domain.Item, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	c := selector.Mount(&config.Config{
		Endpoint:        "http://items.test/items",
		KeyProperty:     "id",
		DisplayTemplate: "text",
		Fetch:           config.FetchSettings{TimeoutMS: 60000},
	}, selector.WithSource(src))
	defer c.Unmount()

	var out bytes.Buffer
	r := NewRunner(c, &out, nil)
	r.WaitTimeout = 20 * time.Millisecond

	require.NoError(t, r.Run(context.Background(), strings.NewReader("open\nwait\n")))

	got := lines(t, &out)
	require.Len(t, got, 1)
	assert.Contains(t, got[0]["error"], "still loading")
}
