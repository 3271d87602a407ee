package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Cleanup(func() {
		newProduction = zap.NewProduction
		newDevelopment = zap.NewDevelopment
	})

	l, err := New(false)
	require.NoError(t, err)
	require.NotNil(t, l)

	l, err = New(true)
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zap.DebugLevel))

	newProduction = func(...zap.Option) (*zap.Logger, error) { return nil, errors.New("boom") }
	_, err = New(false)
	require.Error(t, err)
}
