package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ardanlabs/fraudledger/business/web/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrusted(t *testing.T) {
	base := errors.New("transaction abc not found")
	err := fmt.Errorf("handler: %w", errs.NewTrusted(base, http.StatusNotFound))

	require.True(t, errs.IsTrusted(err))

	te := errs.GetTrusted(err)
	require.NotNil(t, te)
	assert.Equal(t, http.StatusNotFound, te.Status)
	assert.ErrorIs(t, err, base)

	assert.Equal(t, http.StatusNotFound, errs.GetTrusted(errs.NotFound("actor %s not found", "0xA")).Status)
	assert.Equal(t, http.StatusBadRequest, errs.GetTrusted(errs.BadRequest(base)).Status)

	assert.False(t, errs.IsTrusted(base))
	assert.Nil(t, errs.GetTrusted(base))
}
