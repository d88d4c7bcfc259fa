package xpine_test

import (
	"errors"
	"runtime"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xpine/pkg/observability/xpine"
)

func TestCaller(t *testing.T) {
	f, err := xpine.Caller(0)
	_, _, line, _ := runtime.Caller(0)
	require.NoError(t, err)

	site := xpine.ResolveFrame(f)
	assert.Equal(t, "github.com.omeyang.xpine.pkg.observability.xpine_test", site.Package)
	assert.Equal(t, "caller_test", site.Class)
	assert.Equal(t, "TestCaller", site.Method)
	assert.Equal(t, line-1, site.Line)
}

func TestCaller_Closure(t *testing.T) {
	var site xpine.CallSite
	func() {
		f, err := xpine.Caller(0)
		require.NoError(t, err)
		site = xpine.ResolveFrame(f)
	}()
	assert.Equal(t, "TestCaller_Closure", site.Method)
}

func TestCaller_RangeOverFunc(t *testing.T) {
	var sites []xpine.CallSite
	for range slices.Values([]int{1, 2}) {
		f, err := xpine.Caller(0)
		require.NoError(t, err)
		sites = append(sites, xpine.ResolveFrame(f))
	}
	require.Len(t, sites, 2)
	for _, site := range sites {
		assert.Equal(t, "caller_test", site.Class)
		assert.Equal(t, "TestCaller_RangeOverFunc", site.Method)
	}
}

type callerHelper struct{}

func (*callerHelper) capture(skip int) (xpine.Frame, error) {
	return xpine.Caller(skip)
}

func TestCaller_Method(t *testing.T) {
	f, err := (&callerHelper{}).capture(0)
	require.NoError(t, err)
	site := xpine.ResolveFrame(f)
	assert.Equal(t, "callerHelper", site.Class)
	assert.Equal(t, "capture", site.Method)

	// skip=1 越过 capture 落到测试函数
	f, err = (&callerHelper{}).capture(1)
	require.NoError(t, err)
	assert.Equal(t, "TestCaller_Method", xpine.ResolveFrame(f).Method)
}

func TestCaller_InvalidSkip(t *testing.T) {
	_, err := xpine.Caller(-1)
	assert.ErrorIs(t, err, xpine.ErrInvalidCallerSkip)
}

func TestCaller_StackTooShallow(t *testing.T) {
	_, err := xpine.Caller(1000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xpine.ErrStackShape))
}
