package support

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateRequiresText(t *testing.T) {
	r := &Repo{}
	_, err := r.Create(context.Background(), "u-1", "")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = r.Create(context.Background(), "u-1", "  \n ")
	assert.ErrorIs(t, err, ErrEmptyText)
}
