package authz

import (
	"testing"

	"github.com/wibisana/marketing-tracker/internal/domain/entity"
)

// Shared fixture: one activity, one task, and the cast of users whose rights
// differ. The creator is deliberately neither assigned nor the Activity PIC.
func fixture() (*entity.Task, []*entity.Activity, map[string]*entity.User) {
	activities := []*entity.Activity{
		{
			ID:            "act-1",
			Name:          "Product Launch",
			ActivityPicID: "u-act-pic",
			PicIDs:        []string{"u-act-pic", "u-assigned"},
		},
	}

	task := &entity.Task{
		ID:         "task-1",
		ActivityID: "act-1",
		Title:      "Design banner",
		Pics:       []entity.PicRef{{ID: "u-assigned", Name: "Assigned"}},
		Status:     entity.StatusInProgress,
		CreatorID:  "u-creator",
	}

	users := map[string]*entity.User{
		"leader":   {ID: "u-leader", Name: "Leader", Role: entity.RoleLeader},
		"act-pic":  {ID: "u-act-pic", Name: "Activity PIC", Role: entity.RolePIC},
		"assigned": {ID: "u-assigned", Name: "Assigned", Role: entity.RolePIC},
		"creator":  {ID: "u-creator", Name: "Creator", Role: entity.RolePIC},
		"random":   {ID: "u-random", Name: "Random", Role: entity.RolePIC},
	}

	return task, activities, users
}

func TestFindActivity(t *testing.T) {
	_, activities, _ := fixture()

	if got := FindActivity(activities, "act-1"); got == nil || got.ID != "act-1" {
		t.Errorf("FindActivity(act-1) = %v, want act-1", got)
	}
	if got := FindActivity(activities, "act-missing"); got != nil {
		t.Errorf("FindActivity(act-missing) = %v, want nil", got)
	}
}

func TestIsActivityPicFor(t *testing.T) {
	_, activities, _ := fixture()

	tests := []struct {
		name       string
		userID     string
		activityID string
		expected   bool
	}{
		{"designated activity pic", "u-act-pic", "act-1", true},
		{"plain member", "u-assigned", "act-1", false},
		{"unknown activity fails closed", "u-act-pic", "act-missing", false},
		{"empty user", "", "act-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsActivityPicFor(activities, tt.userID, tt.activityID); got != tt.expected {
				t.Errorf("IsActivityPicFor(%q, %q) = %v, want %v", tt.userID, tt.activityID, got, tt.expected)
			}
		})
	}
}

func TestIsActivityPicFor_EmptyDesignation(t *testing.T) {
	activities := []*entity.Activity{{ID: "act-2", ActivityPicID: ""}}

	// An activity without a designated PIC grants the role to nobody,
	// including a user whose ID is also empty.
	if IsActivityPicFor(activities, "", "act-2") {
		t.Error("empty ActivityPicID should never match")
	}
}

func TestCanEditStatus(t *testing.T) {
	task, activities, users := fixture()

	tests := []struct {
		user     string
		expected bool
	}{
		{"leader", true},
		{"act-pic", true},
		{"assigned", true},
		{"creator", false},
		{"random", false},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			if got := CanEditStatus(users[tt.user], activities, task); got != tt.expected {
				t.Errorf("CanEditStatus(%s) = %v, want %v", tt.user, got, tt.expected)
			}
		})
	}
}

func TestCanManagePics(t *testing.T) {
	task, activities, users := fixture()

	tests := []struct {
		user     string
		expected bool
	}{
		{"leader", true},
		{"act-pic", true},
		{"assigned", false},
		{"creator", false},
		{"random", false},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			if got := CanManagePics(users[tt.user], activities, task); got != tt.expected {
				t.Errorf("CanManagePics(%s) = %v, want %v", tt.user, got, tt.expected)
			}
		})
	}
}

func TestCanAddPicOnly(t *testing.T) {
	task, activities, users := fixture()

	tests := []struct {
		user     string
		expected bool
	}{
		{"leader", false},
		{"act-pic", false},
		{"assigned", true},
		{"creator", true},
		{"random", false},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			if got := CanAddPicOnly(users[tt.user], activities, task); got != tt.expected {
				t.Errorf("CanAddPicOnly(%s) = %v, want %v", tt.user, got, tt.expected)
			}
		})
	}
}

// Full management and add-only are mutually exclusive for every user in the
// fixture, whatever their standing.
func TestManageAndAddOnlyAreExclusive(t *testing.T) {
	task, activities, users := fixture()

	for name, user := range users {
		if CanManagePics(user, activities, task) && CanAddPicOnly(user, activities, task) {
			t.Errorf("user %s holds both full management and add-only rights", name)
		}
	}
}

func TestCanEditTask(t *testing.T) {
	task, _, users := fixture()

	tests := []struct {
		user     string
		expected bool
	}{
		{"leader", true},
		{"creator", true},
		{"act-pic", false},
		{"assigned", false},
		{"random", false},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			if got := CanEditTask(users[tt.user], task); got != tt.expected {
				t.Errorf("CanEditTask(%s) = %v, want %v", tt.user, got, tt.expected)
			}
		})
	}
}

func TestCanEditTask_ArchivedBlocksEveryone(t *testing.T) {
	task, _, users := fixture()
	task = task.Clone()
	task.Status = entity.StatusArchived

	for name, user := range users {
		if CanEditTask(user, task) {
			t.Errorf("user %s may edit an archived task", name)
		}
	}
}

func TestCanDeleteTask(t *testing.T) {
	task, _, users := fixture()

	tests := []struct {
		user     string
		expected bool
	}{
		{"leader", true},
		{"creator", true},
		{"act-pic", false},
		{"assigned", false},
		{"random", false},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			if got := CanDeleteTask(users[tt.user], task); got != tt.expected {
				t.Errorf("CanDeleteTask(%s) = %v, want %v", tt.user, got, tt.expected)
			}
		})
	}
}

func TestCanDeleteTask_ArchivalDoesNotBlock(t *testing.T) {
	task, _, users := fixture()
	task = task.Clone()
	task.Status = entity.StatusArchived

	if !CanDeleteTask(users["creator"], task) {
		t.Error("creator should still be able to delete an archived task")
	}
}

func TestCanReview(t *testing.T) {
	_, _, users := fixture()

	if !CanReview(users["leader"]) {
		t.Error("leader should be a reviewer")
	}
	for _, name := range []string{"act-pic", "assigned", "creator", "random"} {
		if CanReview(users[name]) {
			t.Errorf("user %s should not be a reviewer", name)
		}
	}
}
