package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/use-agent/browserbridge/berrors"
	"github.com/use-agent/browserbridge/pagepool"
)

func TestResolveRejectsMalformedURL(t *testing.T) {
	pool := pagepool.New()
	_, err := resolve(pool, "not a url at all://::")
	assert.Error(t, err)
	berr, ok := err.(*berrors.Error)
	if assert.True(t, ok) {
		assert.Equal(t, berrors.CodeInvalidArgument, berr.Code)
	}
}

func TestResolveRejectsURLWithoutHost(t *testing.T) {
	pool := pagepool.New()
	_, err := resolve(pool, "/just/a/path")
	assert.Error(t, err)
	berr, ok := err.(*berrors.Error)
	if assert.True(t, ok) {
		assert.Equal(t, berrors.CodeInvalidArgument, berr.Code)
	}
}

func TestResolveReportsNoActivePage(t *testing.T) {
	pool := pagepool.New()
	_, err := resolve(pool, "https://example.com/dashboard")
	assert.Error(t, err)
	berr, ok := err.(*berrors.Error)
	if assert.True(t, ok) {
		assert.Equal(t, berrors.CodeNoActivePage, berr.Code)
	}
}

func TestCloseTabReportsNoTabFoundWithoutError(t *testing.T) {
	pool := pagepool.New()
	hostname, found, err := CloseTab(pool, "https://example.com/dashboard")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, hostname)
}

func TestCloseTabRejectsMalformedURL(t *testing.T) {
	pool := pagepool.New()
	_, _, err := CloseTab(pool, "not a url at all://::")
	assert.Error(t, err)
	berr, ok := err.(*berrors.Error)
	if assert.True(t, ok) {
		assert.Equal(t, berrors.CodeInvalidArgument, berr.Code)
	}
}
