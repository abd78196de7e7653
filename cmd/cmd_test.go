package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecuteDispatch(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, Execute(ctx, []string{"arkiv"}))
	assert.NoError(t, Execute(ctx, []string{"arkiv", "unknown"}))
	assert.NoError(t, Execute(ctx, []string{"arkiv", "version"}))
	assert.NoError(t, Execute(ctx, []string{"arkiv", "help", "build"}))
	assert.Error(t, Execute(ctx, []string{"arkiv", "build"}))
	assert.Error(t, Execute(ctx, []string{"arkiv", "help", "nope"}))
}
