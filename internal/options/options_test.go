package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type decodeSettings struct {
	workers  int
	strategy string
}

func withWorkers(n int) Option[*decodeSettings] {
	return New(func(s *decodeSettings) error {
		if n < 1 {
			return errors.New("workers must be positive")
		}
		s.workers = n

		return nil
	})
}

func withStrategy(name string) Option[*decodeSettings] {
	return NoError(func(s *decodeSettings) {
		s.strategy = name
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		s := &decodeSettings{}

		err := Apply(s, withWorkers(2), withStrategy("schema"), withWorkers(4))
		require.NoError(t, err)
		require.Equal(t, 4, s.workers)
		require.Equal(t, "schema", s.strategy)
	})

	t.Run("stops at first error", func(t *testing.T) {
		s := &decodeSettings{}

		err := Apply(s, withStrategy("auto"), withWorkers(0), withStrategy("differential"))
		require.EqualError(t, err, "workers must be positive")
		require.Equal(t, "auto", s.strategy)
	})

	t.Run("skips nil options", func(t *testing.T) {
		s := &decodeSettings{}

		require.NoError(t, Apply(s, nil, withWorkers(1)))
		require.Equal(t, 1, s.workers)
	})

	t.Run("no options", func(t *testing.T) {
		s := &decodeSettings{workers: 7}

		require.NoError(t, Apply(s))
		require.Equal(t, 7, s.workers)
	})
}
