package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteList(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"route:list"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	listing := out.String()
	assert.Contains(t, listing, "METHOD")
	assert.Regexp(t, `GET\s+/products/\{id\}\s+products.show`, listing)
	assert.Regexp(t, `PUT\s+/users/admin\s+users.promote`, listing)
	assert.Regexp(t, `POST\s+/create-payment-intent\s+payments.intent`, listing)
}
