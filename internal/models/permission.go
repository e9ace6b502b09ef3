package models

// Action names a mutating operation gated by the authorization matrix.
type Action string

const (
	ActionCategoryWrite    Action = "category.write"
	ActionProductCreate    Action = "product.create"
	ActionProductUpdate    Action = "product.update"
	ActionProductDelete    Action = "product.delete"
	ActionReviewCreate     Action = "review.create"
	ActionReviewDelete     Action = "review.delete"
	ActionPermissionToggle Action = "permission.toggle"
	ActionUserDeactivate   Action = "user.deactivate"
)

// AllActions lists every action known to the matrix.
var AllActions = []Action{
	ActionCategoryWrite,
	ActionProductCreate,
	ActionProductUpdate,
	ActionProductDelete,
	ActionReviewCreate,
	ActionReviewDelete,
	ActionPermissionToggle,
	ActionUserDeactivate,
}
