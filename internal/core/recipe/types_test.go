package recipe

import (
	"testing"

	"kind-kitchen/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		recipe  Recipe
		wantErr bool
	}{
		{
			name:   "valid",
			recipe: Recipe{Name: "Soup", Instructions: "Boil water. Add salt.", Ingredients: []string{"water", "salt"}},
		},
		{
			name:    "name too short",
			recipe:  Recipe{Name: "S", Instructions: "Boil water."},
			wantErr: true,
		},
		{
			name:    "instructions too short",
			recipe:  Recipe{Name: "Soup", Instructions: "mix"},
			wantErr: true,
		},
		{
			name:    "empty ingredient",
			recipe:  Recipe{Name: "Soup", Instructions: "Boil water.", Ingredients: []string{"water", "  "}},
			wantErr: true,
		},
		{
			name:    "relative image url",
			recipe:  Recipe{Name: "Soup", Instructions: "Boil water.", ImageURL: "images/soup.png"},
			wantErr: true,
		},
		{
			name:   "absolute image url",
			recipe: Recipe{Name: "Soup", Instructions: "Boil water.", ImageURL: "https://example.com/soup.png"},
		},
		{
			name:   "empty image url is valid",
			recipe: Recipe{Name: "Soup", Instructions: "Boil water.", ImageURL: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.recipe.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, common.IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTrimsFields(t *testing.T) {
	r := Recipe{
		Name:         "  Soup  ",
		Instructions: " Boil water. ",
		Ingredients:  []string{" water "},
	}
	assert.NoError(t, r.Validate())
	assert.Equal(t, "Soup", r.Name)
	assert.Equal(t, "Boil water.", r.Instructions)
	assert.Equal(t, []string{"water"}, r.Ingredients)
}

func TestApplyOnlyNonNilFields(t *testing.T) {
	r := Recipe{Name: "Soup", Instructions: "Boil water.", Category: "Main Course"}

	newName := "Hot Soup"
	fav := true
	r.Apply(Update{Name: &newName, Favorite: &fav})

	assert.Equal(t, "Hot Soup", r.Name)
	assert.True(t, r.Favorite)
	// 未提供的欄位不變
	assert.Equal(t, "Main Course", r.Category)
	assert.Equal(t, "Boil water.", r.Instructions)
}

func TestSplitSteps(t *testing.T) {
	tests := []struct {
		name         string
		instructions string
		want         []string
	}{
		{
			name:         "sentences",
			instructions: "Boil water. Add salt. Serve",
			want:         []string{"Boil water", "Add salt", "Serve"},
		},
		{
			name:         "newlines and arrows",
			instructions: "Chop onions\nFry => Stir",
			want:         []string{"Chop onions", "Fry", "Stir"},
		},
		{
			name:         "empty segments dropped",
			instructions: "..\n\nDone.",
			want:         []string{"Done"},
		},
		{
			name:         "empty input",
			instructions: "",
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSteps(tt.instructions))
		})
	}
}
