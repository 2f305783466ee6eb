//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInspectPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.StartPicker()
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should draw the control")

	tf.Enter()
	require.True(t, tf.SeePlain("cherry (3)"), "Should list cherry")
	tf.Type("ch")
	require.True(t, tf.SeePlain("1 result"), "Should narrow to cherry")
	tf.Down()
	tf.Enter()
	require.True(t, tf.SeePlain("▸ cherry (3)"), "Should show the selection")

	tf.SendKeys(KeyInspect)
	require.True(t, tf.OutputContainsPlain(`"text": "cherry"`, 3*time.Second), "Should show the item JSON in the pager")

	// Quit pager and ensure TUI again
	tf.Quit()
	require.True(t, tf.SeePlain("▸ cherry (3)"), "Should return to the control after closing the pager")
}
