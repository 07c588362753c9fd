package article

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArticleVersion(t *testing.T) {
	v, err := NewArticleVersion(3, 1, "first draft", 2)
	require.NoError(t, err)
	assert.Equal(t, uint(3), v.ArticleID())
	assert.Equal(t, 1, v.Number())
	assert.Equal(t, "first draft", v.Content())
	assert.Equal(t, uint(2), v.CreatedBy())
	assert.False(t, v.CreatedAt().IsZero())
}

func TestNewArticleVersion_Validation(t *testing.T) {
	_, err := NewArticleVersion(0, 1, "c", 1)
	assert.Error(t, err)
	_, err = NewArticleVersion(1, 0, "c", 1)
	assert.Error(t, err)
	_, err = NewArticleVersion(1, 1, "c", 0)
	assert.Error(t, err)
}

func TestArticleVersion_Next(t *testing.T) {
	v, err := ReconstructArticleVersion(10, 3, 4, "body", 2, time.Now())
	require.NoError(t, err)

	next, err := v.Next("body v5", 9)
	require.NoError(t, err)
	assert.Equal(t, 5, next.Number())
	assert.Equal(t, uint(3), next.ArticleID())
	assert.Equal(t, uint(9), next.CreatedBy())
	assert.Zero(t, next.ID())
}

func TestArticleVersion_HasContent(t *testing.T) {
	v, err := NewArticleVersion(1, 1, "Hello", 1)
	require.NoError(t, err)

	assert.True(t, v.HasContent("Hello"))
	assert.False(t, v.HasContent("hello"))
	assert.False(t, v.HasContent("Hello "))
}

func TestArticleVersion_SetID(t *testing.T) {
	v, err := NewArticleVersion(1, 1, "Hello", 1)
	require.NoError(t, err)
	require.NoError(t, v.SetID(4))
	assert.Error(t, v.SetID(5))
}
