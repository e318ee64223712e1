package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/fastctx/internal/config"
	"github.com/Cyclone1070/fastctx/internal/tool/helper/content"
)

func newTestExecutor() *OSCommandExecutor {
	cfg := config.DefaultConfig().Sandbox
	cfg.GracefulShutdownMs = 100
	return NewOSCommandExecutor(cfg)
}

func TestRunWithTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX commands required")
	}
	runner := newTestExecutor()

	t.Run("CompletesBeforeTimeout", func(t *testing.T) {
		res, err := runner.RunWithTimeout(context.Background(), []string{"echo", "hi"}, "", nil, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "hi", strings.TrimSpace(res.Stdout))
		assert.Equal(t, 0, res.ExitCode)
	})

	t.Run("EmptyCommand", func(t *testing.T) {
		_, err := runner.RunWithTimeout(context.Background(), nil, "", nil, time.Second)
		assert.Equal(t, os.ErrInvalid, err)
	})

	t.Run("NonZeroExitKeepsOutput", func(t *testing.T) {
		res, err := runner.RunWithTimeout(context.Background(), []string{"sh", "-c", "echo out; echo err >&2; exit 1"}, "", nil, time.Second)
		assert.Error(t, err)
		require.NotNil(t, res)
		assert.Equal(t, 1, res.ExitCode)
		assert.Equal(t, "out", strings.TrimSpace(res.Stdout))
		assert.Equal(t, "err", strings.TrimSpace(res.Stderr))
	})

	t.Run("MissingBinary", func(t *testing.T) {
		_, err := runner.RunWithTimeout(context.Background(), []string{"definitely-not-a-real-binary-xyz"}, "", nil, time.Second)
		var cmdErr *CommandError
		require.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, "start", cmdErr.Stage)
	})

	t.Run("TimeoutKillsProcess", func(t *testing.T) {
		_, err := runner.RunWithTimeout(context.Background(), []string{"sleep", "10"}, "", nil, 100*time.Millisecond)
		assert.Equal(t, ErrTimeout, err)
	})

	t.Run("OutputCollectedOnTimeout", func(t *testing.T) {
		cmd := []string{"sh", "-c", "echo starting; sleep 10"}
		res, err := runner.RunWithTimeout(context.Background(), cmd, "", nil, 500*time.Millisecond)
		assert.Equal(t, ErrTimeout, err)
		assert.Equal(t, "starting", strings.TrimSpace(res.Stdout))
	})

	t.Run("ContextCancel", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_, err := runner.RunWithTimeout(ctx, []string{"sleep", "10"}, "", nil, 10*time.Second)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("LargeOutputTruncated", func(t *testing.T) {
		cfg := config.DefaultConfig().Sandbox
		cfg.MaxCommandOutputSize = 10
		small := NewOSCommandExecutor(cfg)

		res, err := small.RunWithTimeout(context.Background(), []string{"echo", "123456789012345"}, "", nil, time.Second)
		require.NoError(t, err)
		assert.True(t, res.Truncated)
		assert.LessOrEqual(t, len(res.Stdout), 10)
	})
}

func TestFindBinary(t *testing.T) {
	runner := newTestExecutor()

	_, err := runner.FindBinary("definitely-not-a-real-binary-xyz")
	var notFound *BinaryNotFoundError
	assert.True(t, errors.As(err, &notFound))

	if _, lookErr := exec.LookPath("sh"); lookErr == nil {
		path, err := runner.FindBinary("definitely-not-a-real-binary-xyz", "sh")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(path, "sh"))
	}
}

func TestCollector(t *testing.T) {
	t.Run("UnderLimit", func(t *testing.T) {
		c := newCollector(10)
		n, err := c.Write([]byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, "abc", c.String())
		assert.False(t, c.Truncated())
	})

	t.Run("OverLimit", func(t *testing.T) {
		c := newCollector(5)
		n, _ := c.Write([]byte("abcdef"))
		assert.Equal(t, 6, n)
		_, _ = c.Write([]byte("gh"))
		assert.Equal(t, "abcde", c.String())
		assert.True(t, c.Truncated())
	})

	t.Run("BinaryDetection", func(t *testing.T) {
		c := newCollector(10)
		_, _ = c.Write([]byte("ok "))
		_, _ = c.Write([]byte{'a', 0, 'b'})
		_, _ = c.Write([]byte("more"))
		assert.Equal(t, BinaryOutput, c.String())
		assert.True(t, c.Truncated())
	})

	t.Run("NULAfterSampleWindowIsKept", func(t *testing.T) {
		c := newCollector(content.BinarySampleSize + 10)
		_, _ = c.Write(bytes.Repeat([]byte("x"), content.BinarySampleSize))
		_, _ = c.Write([]byte{0})
		assert.Len(t, c.String(), content.BinarySampleSize+1)
		assert.False(t, c.Truncated())
	})
}
