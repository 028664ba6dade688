package models_test

import (
	"testing"

	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCan(t *testing.T) {
	user := &models.User{Role: models.Role{Name: "User", Permissions: 0x07}}
	moderator := &models.User{Role: models.Role{Name: "Moderator", Permissions: 0x0F}}
	admin := &models.User{Role: models.Role{Name: "Administrator", Permissions: 0xFF}}

	assert.True(t, user.Can(models.PermFollow))
	assert.True(t, user.Can(models.PermComment))
	assert.True(t, user.Can(models.PermWriteArticles))
	assert.False(t, user.Can(models.PermModerateComments))
	assert.False(t, user.IsAdministrator())

	assert.True(t, moderator.Can(models.PermModerateComments))
	assert.False(t, moderator.IsAdministrator())

	assert.True(t, admin.Can(models.PermModerateComments))
	assert.True(t, admin.IsAdministrator())

	// Every bit of the mask must be present.
	assert.False(t, user.Can(models.PermFollow|models.PermAdminister))
	assert.True(t, admin.Can(models.PermFollow|models.PermModerateComments))
}

func TestUserCanNil(t *testing.T) {
	var anon *models.User

	assert.False(t, anon.Can(models.PermFollow))
	assert.False(t, anon.IsAdministrator())
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		total      int
		wantPage   int
		wantPages  int
		wantOffset int
	}{
		{"first page", 1, 20, 45, 1, 3, 0},
		{"middle page", 2, 20, 45, 2, 3, 20},
		{"zero page clamps", 0, 20, 45, 1, 3, 0},
		{"negative page clamps", -3, 20, 45, 1, 3, 0},
		{"beyond last stays", 9, 20, 45, 9, 3, 160},
		{"empty set", 1, 20, 0, 1, 0, 0},
		{"exact multiple", 1, 10, 30, 1, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.NewPagination(tt.page, tt.perPage, tt.total)

			require.Equal(t, tt.wantPage, p.Page)
			require.Equal(t, tt.wantPages, p.TotalPages)
			require.Equal(t, tt.wantOffset, p.Offset())
		})
	}
}

func TestPaginationNavigation(t *testing.T) {
	p := models.NewPagination(2, 10, 35)

	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.PrevPage())
	assert.Equal(t, 3, p.NextPage())

	first := models.NewPagination(1, 10, 35)
	assert.False(t, first.HasPrev())

	last := models.NewPagination(4, 10, 35)
	assert.False(t, last.HasNext())
}

func TestLastPage(t *testing.T) {
	assert.Equal(t, 1, models.LastPage(0, 30))
	assert.Equal(t, 1, models.LastPage(30, 30))
	assert.Equal(t, 2, models.LastPage(31, 30))
	assert.Equal(t, 4, models.LastPage(100, 30))
}
