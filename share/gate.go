package share

import (
	"planboard/domain"
)

// Action names form the public vocabulary of the share endpoint.
const (
	ActionVerify     = "verify"
	ActionGetData    = "get_data"
	ActionCreatePost = "create_post"
	ActionUpdatePost = "update_post"
	ActionDeletePost = "delete_post"
	ActionAddComment = "add_comment"
	ActionAddReview  = "add_review"
)

// requiredLevel maps each action to the minimum access level that may perform
// it. Commenting is deliberately view-gated: read-only reviewers can leave
// feedback, while approve/reject decisions and content mutation need edit.
var requiredLevel = map[string]string{
	ActionVerify:     domain.AccessView,
	ActionGetData:    domain.AccessView,
	ActionCreatePost: domain.AccessEdit,
	ActionUpdatePost: domain.AccessEdit,
	ActionDeletePost: domain.AccessEdit,
	ActionAddComment: domain.AccessView,
	ActionAddReview:  domain.AccessEdit,
}

// Check decides whether the grant's access level covers the action. Actions
// outside the table are denied outright, so an unrecognized name can never
// slip through as allowed.
func Check(grant domain.ShareGrant, action string) error {
	required, ok := requiredLevel[action]
	if !ok {
		return domain.ErrUnknownAction
	}
	if required == domain.AccessEdit && grant.AccessLevel != domain.AccessEdit {
		return domain.ErrForbidden
	}
	return nil
}
