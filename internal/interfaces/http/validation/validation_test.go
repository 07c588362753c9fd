package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transitionRequest struct {
	TargetState string `validate:"required,ticket_state"`
}

func TestTicketStateTag(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	tests := []struct {
		state string
		valid bool
	}{
		{"open", true},
		{"in_progress", true},
		{"for_review", true},
		{"approved", true},
		{"published", true},
		{"archived", false},
		{"OPEN", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			err := v.Struct(transitionRequest{TargetState: tt.state})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

type articleFilter struct {
	State string `validate:"omitempty,article_state"`
}

func TestArticleStateTag(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	assert.NoError(t, v.Struct(articleFilter{State: "draft"}))
	assert.NoError(t, v.Struct(articleFilter{State: "published"}))
	assert.NoError(t, v.Struct(articleFilter{}))
	assert.Error(t, v.Struct(articleFilter{State: "shredded"}))
}

func TestRegister_GinEngine(t *testing.T) {
	assert.NoError(t, Register())
}
