// Package authz is the single source of permission rules for tasks. Every
// mutating call site asks one of the named predicates here instead of
// re-deriving role logic inline.
package authz

import "github.com/wibisana/marketing-tracker/internal/domain/entity"

// FindActivity returns the activity with the given ID, or nil if it does not
// exist in the snapshot.
func FindActivity(activities []*entity.Activity, activityID string) *entity.Activity {
	for _, a := range activities {
		if a.ID == activityID {
			return a
		}
	}
	return nil
}

// IsActivityPicFor returns true iff the activity exists and its designated
// Activity PIC is the given user. An unknown activity yields false: the
// check fails closed rather than erroring.
func IsActivityPicFor(activities []*entity.Activity, userID, activityID string) bool {
	a := FindActivity(activities, activityID)
	if a == nil {
		return false
	}
	return a.ActivityPicID != "" && a.ActivityPicID == userID
}

// IsCreatorOf returns true iff the user created the task.
func IsCreatorOf(userID string, task *entity.Task) bool {
	return task.CreatorID == userID
}

// IsAssignedTo returns true iff the user appears in the task's PIC list.
func IsAssignedTo(userID string, task *entity.Task) bool {
	return task.HasPic(userID)
}

// CanEditStatus reports whether the user may change the task's status.
// Status changes are operational: Leaders, the Activity PIC and any assigned
// PIC may all move the task along the workflow.
func CanEditStatus(user *entity.User, activities []*entity.Activity, task *entity.Task) bool {
	if user.IsLeader() {
		return true
	}
	if IsActivityPicFor(activities, user.ID, task.ActivityID) {
		return true
	}
	return IsAssignedTo(user.ID, task)
}

// CanManagePics reports whether the user holds full PIC management rights,
// both add and remove. Leaders and the Activity PIC only.
func CanManagePics(user *entity.User, activities []*entity.Activity, task *entity.Task) bool {
	return user.IsLeader() || IsActivityPicFor(activities, user.ID, task.ActivityID)
}

// CanAddPicOnly reports whether the user holds the strictly lesser add-only
// right: creators and assigned PICs who are neither Leader nor Activity PIC
// may add a PIC but never remove one. Full management supersedes this right,
// so CanManagePics and CanAddPicOnly are mutually exclusive for any user.
func CanAddPicOnly(user *entity.User, activities []*entity.Activity, task *entity.Task) bool {
	if CanManagePics(user, activities, task) {
		return false
	}
	return IsCreatorOf(user.ID, task) || IsAssignedTo(user.ID, task)
}

// CanEditTask reports whether the user may edit the task's own fields
// (title, schedule, priority). Narrower than status rights: Leaders and the
// creator only, and never once the task is archived.
func CanEditTask(user *entity.User, task *entity.Task) bool {
	if task.Status == entity.StatusArchived {
		return false
	}
	return user.IsLeader() || IsCreatorOf(user.ID, task)
}

// CanDeleteTask reports whether the user may delete the task. Leaders and
// the creator; unlike CanEditTask, archival does not block deletion.
func CanDeleteTask(user *entity.User, task *entity.Task) bool {
	return user.IsLeader() || IsCreatorOf(user.ID, task)
}

// CanReview reports whether the user may issue approve/revision decisions.
// Leaders are the reviewer role; activity approver lists are advisory data
// and not enforced here.
func CanReview(user *entity.User) bool {
	return user.IsLeader()
}
