package domain

import "time"

// AuthEventType names a security-relevant account action.
type AuthEventType string

const (
	EventUserRegistered  AuthEventType = "user.registered"
	EventLoginSucceeded  AuthEventType = "user.login_succeeded"
	EventLoginFailed     AuthEventType = "user.login_failed"
	EventUserUpdated     AuthEventType = "user.updated"
	EventUserRoleChanged AuthEventType = "user.role_changed"
	EventUserDeleted     AuthEventType = "user.deleted"
)

// AuthEvent is one entry of the audit trail.
// Subject is the user id when known, otherwise the login email.
type AuthEvent struct {
	ID         string            `json:"id" bson:"_id"`
	Type       AuthEventType     `json:"type" bson:"type"`
	Subject    string            `json:"subject" bson:"subject"`
	ActorID    string            `json:"actorId,omitempty" bson:"actor_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" bson:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt" bson:"occurred_at"`
}
