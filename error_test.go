package clinicdir_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/clinicdir"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := clinicdir.Errorf(clinicdir.ECONFLICT, "clinic %q already visited", "https://example.com/a")

	assert.Equal(t, clinicdir.ECONFLICT, clinicdir.ErrorCode(err))
	assert.Equal(t, "clinic \"https://example.com/a\" already visited", clinicdir.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, clinicdir.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, clinicdir.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch: %w", clinicdir.Errorf(clinicdir.EUNAVAILABLE, "gave up"))

	assert.Equal(t, clinicdir.EUNAVAILABLE, clinicdir.ErrorCode(err))
	assert.Equal(t, "gave up", clinicdir.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, clinicdir.EINTERNAL, clinicdir.ErrorCode(err))
	assert.Equal(t, "Internal error.", clinicdir.ErrorMessage(err))
}
