package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aputinski/butane/pkgs/compiler"
)

func TestWatch_RecompilesOnWrite(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(input, []byte("\".read\": \"true\"\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan compiler.RuleTree, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, compiler.New(), input, "", func(tree compiler.RuleTree, err error) {
			if err == nil {
				results <- tree
			}
		})
	}()

	// Give the watcher a moment to register before the write
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(input, []byte("\".read\": \"next.isString()\"\n"), 0o644))

	select {
	case tree := <-results:
		assert.Equal(t, "newData.isString()", tree[".read"])
	case <-time.After(5 * time.Second):
		t.Fatal("no recompilation within 5s of the write")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatch_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(input, []byte("\".read\": \"true\"\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan struct{}, 8)
	go func() {
		_ = Watch(ctx, compiler.New(), input, "", func(compiler.RuleTree, error) {
			results <- struct{}{}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))

	select {
	case <-results:
		t.Fatal("a sibling file write triggered a recompilation")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), compiler.New(), filepath.Join(t.TempDir(), "absent", "rules.yaml"), "", nil)
	assert.Error(t, err)
}
