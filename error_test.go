package amzcrawl_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/amzcrawl"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := amzcrawl.Errorf(amzcrawl.ENOTFOUND, "product %q not found", "B000000000")

	assert.Equal(t, amzcrawl.ENOTFOUND, amzcrawl.ErrorCode(err))
	assert.Equal(t, "product \"B000000000\" not found", amzcrawl.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, amzcrawl.ErrorCode(nil))
	})

	t.Run("returns internal for foreign errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, amzcrawl.EINTERNAL, amzcrawl.ErrorCode(errors.New("boom")))
	})

	t.Run("unwraps wrapped application errors", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("fetch page 2: %w", amzcrawl.Errorf(amzcrawl.EBLOCKED, "blocked"))

		assert.Equal(t, amzcrawl.EBLOCKED, amzcrawl.ErrorCode(err))
		assert.Equal(t, "blocked", amzcrawl.ErrorMessage(err))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Empty(t, amzcrawl.ErrorMessage(nil))
	assert.Equal(t, "Internal error.", amzcrawl.ErrorMessage(errors.New("boom")))
}

func TestBlockKind_Err(t *testing.T) {
	t.Parallel()

	t.Run("clean page has no error", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, amzcrawl.BlockNone.Err())
	})

	t.Run("captcha advises proxy or waiting", func(t *testing.T) {
		t.Parallel()

		err := amzcrawl.BlockCaptcha.Err()

		assert.Equal(t, amzcrawl.EBLOCKED, amzcrawl.ErrorCode(err))
		assert.Contains(t, amzcrawl.ErrorMessage(err), "CAPTCHA")
		assert.Contains(t, amzcrawl.ErrorMessage(err), "proxy")
	})

	t.Run("service page reports temporary unavailability", func(t *testing.T) {
		t.Parallel()

		err := amzcrawl.BlockServicePage.Err()

		assert.Equal(t, amzcrawl.EBLOCKED, amzcrawl.ErrorCode(err))
		assert.Contains(t, amzcrawl.ErrorMessage(err), "503")
		assert.Contains(t, amzcrawl.ErrorMessage(err), "temporarily unavailable")
	})

	t.Run("kinds have stable names", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "none", amzcrawl.BlockNone.String())
		assert.Equal(t, "captcha", amzcrawl.BlockCaptcha.String())
		assert.Equal(t, "service_page", amzcrawl.BlockServicePage.String())
	})
}
