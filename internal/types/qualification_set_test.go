package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualificationSet_Add(t *testing.T) {
	tests := []struct {
		name     string
		inputs   []string
		expected []string
	}{
		{
			name:     "keeps first-seen order",
			inputs:   []string{"Python experience", "Docker knowledge"},
			expected: []string{"Python experience", "Docker knowledge"},
		},
		{
			name:     "case-insensitive duplicates keep first spelling",
			inputs:   []string{"Go programming", "GO PROGRAMMING", "  go programming  "},
			expected: []string{"Go programming"},
		},
		{
			name:     "drops short entries",
			inputs:   []string{"Go", "  SQL  ", "Kafka"},
			expected: []string{},
		},
		{
			name:     "trims whitespace",
			inputs:   []string{"\tBachelor's degree\n"},
			expected: []string{"Bachelor's degree"},
		},
		{
			name:     "multibyte entries are measured in characters",
			inputs:   []string{"日本語", "ÉÉÉ", "Résumé"},
			expected: []string{"Résumé"},
		},
		{
			name:     "six characters is enough",
			inputs:   []string{"Python"},
			expected: []string{"Python"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewQualificationSet()
			for _, in := range tt.inputs {
				set.Add(in)
			}
			assert.Equal(t, tt.expected, set.Items())
			assert.Equal(t, len(tt.expected), set.Len())
		})
	}
}

func TestQualificationSet_AddReportsInsertion(t *testing.T) {
	set := NewQualificationSet()
	assert.True(t, set.Add("Terraform modules"))
	assert.False(t, set.Add("terraform modules"))
	assert.False(t, set.Add("AWS"))
}

func TestQualificationSet_ZeroValue(t *testing.T) {
	var set QualificationSet
	assert.True(t, set.Add("Kubernetes operations"))
	assert.Equal(t, 1, set.Len())
}

func TestQualificationSet_ItemsReturnsCopy(t *testing.T) {
	set := NewQualificationSet()
	set.Add("Distributed systems")

	items := set.Items()
	items[0] = "changed"

	assert.Equal(t, []string{"Distributed systems"}, set.Items())
}
