package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestUser_Apply(t *testing.T) {
	role := RoleParent

	tests := []struct {
		name     string
		user     User
		patch    UserPatch
		expected User
	}{
		{
			name:     "empty patch changes nothing",
			user:     User{ID: 1, FirstName: "Sara", Role: RoleTeacher},
			patch:    UserPatch{},
			expected: User{ID: 1, FirstName: "Sara", Role: RoleTeacher},
		},
		{
			name: "names and email",
			user: User{ID: 1, FirstName: "Sara", LastName: "Karimi", Email: "old@example.com"},
			patch: UserPatch{
				FirstName: strPtr("Zahra"),
				Email:     strPtr("new@example.com"),
			},
			expected: User{ID: 1, FirstName: "Zahra", LastName: "Karimi", Email: "new@example.com"},
		},
		{
			name: "role and permissions",
			user: User{ID: 1, Role: RoleTeacher, Permissions: []string{"manage_classes"}},
			patch: UserPatch{
				Role:        &role,
				Permissions: []string{"view_child_progress"},
			},
			expected: User{ID: 1, Role: RoleParent, Permissions: []string{"view_child_progress"}},
		},
		{
			name: "current school replaced by copy",
			user: User{ID: 1, CurrentSchool: &School{ID: 3, Name: "North"}},
			patch: UserPatch{
				CurrentSchool: &School{ID: 5, Name: "South"},
			},
			expected: User{ID: 1, CurrentSchool: &School{ID: 5, Name: "South"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.user.Apply(tt.patch)
			assert.Equal(t, tt.expected, tt.user)
		})
	}
}

func TestLoginResponse_User(t *testing.T) {
	resp := &LoginResponse{
		Success:       true,
		Token:         "tok",
		ID:            7,
		UserID:        "u-7",
		Email:         "t@example.com",
		FirstName:     "Amir",
		LastName:      "Hosseini",
		Role:          RoleTeacher,
		Permissions:   []string{"manage_classes"},
		CurrentSchool: &School{ID: 5, Name: "Central"},
		AvailableSchools: []School{
			{ID: 5, Name: "Central"},
			{ID: 9, Name: "West"},
		},
	}

	user := resp.User()

	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "u-7", user.UserID)
	assert.Equal(t, RoleTeacher, user.Role)
	assert.Equal(t, "Amir", user.FirstName)
	assert.Equal(t, resp.CurrentSchool, user.CurrentSchool)
	assert.Len(t, user.AvailableSchools, 2)
}
