package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateRequiresMessage(t *testing.T) {
	r := &Repo{}
	_, err := r.Create(context.Background(), Feedback{Name: "Asha", Email: "asha@example.com"})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = r.Create(context.Background(), Feedback{Message: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}
