package catalog

import (
	"testing"

	"feature-prioritizer/internal/entity"
	"feature-prioritizer/pkg/prioritization"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSamples(t *testing.T) {
	c := Default()

	rice, err := c.Samples(entity.FrameworkRice)
	require.NoError(t, err)
	require.Len(t, rice, 8)
	assert.Equal(t, prioritization.RiceDraft{
		Name: "Social Login (Google/Facebook)", Reach: 1200, Impact: 2, Confidence: 95, Effort: 2,
	}, rice[0])

	moscow, err := c.Samples(entity.FrameworkMoscow)
	require.NoError(t, err)
	require.Len(t, moscow, 11)
	assert.Equal(t, prioritization.MoscowDraft{Name: "AR/VR Integration", Category: entity.CategoryWont}, moscow[10])

	_, err = c.Samples("kano")
	assert.ErrorIs(t, err, prioritization.ErrUnknownFramework)
}

func TestTemplates(t *testing.T) {
	c := Default()

	tests := []struct {
		key   string
		name  string
		first string
	}{
		{"mobile-app", "Mobile App Features", "Push Notifications"},
		{"saas-platform", "SaaS Platform Features", "Advanced Analytics"},
		{"e-commerce", "E-commerce Features", "One-Click Checkout"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			tpl, ok := c.Template(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.name, tpl.Name)
			require.Len(t, tpl.Drafts(), 4)
			assert.Equal(t, tt.first, tpl.Drafts()[0].DraftName())
		})
	}

	_, ok := c.Template("desktop")
	assert.False(t, ok)
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse([]byte("templates: [unterminated"))
	assert.Error(t, err)
}
