package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"storekeeper/internal/errs"
)

func TestIsMatchesByCode(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := fmt.Errorf("list: %w", errs.Wrap(errs.CodeStorageUnavailable, cause, "list products"))

	assert.ErrorIs(t, err, errs.StorageUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, errs.NotFound)
	assert.Equal(t, errs.CodeStorageUnavailable, errs.CodeOf(err))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, errs.CodeInternal, errs.CodeOf(errors.New("boom")))
}

func TestMetadataFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, errs.MetadataFor(errs.CodeNotFound).HTTPStatus)
	assert.Equal(t, http.StatusServiceUnavailable, errs.MetadataFor(errs.CodeStorageUnavailable).HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, errs.MetadataFor("UNKNOWN").HTTPStatus)
	assert.True(t, errs.MetadataFor(errs.CodeValidation).DetailsAllowed)
}

func TestWithDetails(t *testing.T) {
	err := errs.New(errs.CodeValidation, "validation failed").WithDetails(map[string]string{"name": "Product name is required"})
	e, ok := errs.As(err)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"name": "Product name is required"}, e.Details())
	assert.Equal(t, "VALIDATION_ERROR: validation failed", err.Error())
}
