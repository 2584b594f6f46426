package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/kidsisland/pkg/errs"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{errs.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("products: %w", errs.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: bad id", errs.ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("%w: dial tcp", errs.ErrUpstream), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, errs.StatusCode(tc.err), "err=%v", tc.err)
	}
}

func TestMessageHidesUpstreamDetail(t *testing.T) {
	err := fmt.Errorf("%w: connection refused 10.0.0.5:27017", errs.ErrUpstream)
	assert.Equal(t, "upstream service unavailable", errs.Message(err))
	assert.Equal(t, "Internal Server Error", errs.Message(errors.New("secret detail")))

	bad := fmt.Errorf("%w: malformed id \"xyz\"", errs.ErrInvalidArgument)
	assert.Equal(t, bad.Error(), errs.Message(bad))
}
