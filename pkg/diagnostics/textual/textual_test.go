package textual

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/christophe-duc/dagcache/pkg/cache"
)

func TestSparklineEmptyUntilInvalidateOrClear(t *testing.T) {
	l := NewDiscarding()
	assert.Empty(t, l.Sparkline())

	l.OnResolve(cache.BuilderID(1), false)
	l.OnBuild(cache.BuilderID(1), nil)
	assert.Empty(t, l.Sparkline(), "resolve/build alone do not feed the invalidation sparkline")

	l.OnInvalidate(cache.BuilderID(1), []cache.BuilderID{1})
	assert.NotEmpty(t, l.Sparkline())
}

func TestOnBuildErrorDoesNotPanic(t *testing.T) {
	l := NewDiscarding()
	assert.NotPanics(t, func() {
		l.OnBuild(cache.BuilderID(1), assertErr{})
	})
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
