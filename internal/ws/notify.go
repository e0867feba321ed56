package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ReviewAssignedEvent struct {
	Type       string    `json:"type"`
	ReviewID   uuid.UUID `json:"review_id"`
	ReviewerID uuid.UUID `json:"reviewer_id"`
	RevieweeID uuid.UUID `json:"reviewee_id"`
	ProjectID  uuid.UUID `json:"project_id"`
	Timestamp  string    `json:"timestamp"`
}

type ProjectCreatedEvent struct {
	Type      string      `json:"type"`
	ProjectID uuid.UUID   `json:"project_id"`
	Name      string      `json:"name"`
	MemberIDs []uuid.UUID `json:"member_ids"`
	Timestamp string      `json:"timestamp"`
}

// HubNotifier pushes domain events through the hub. Broadcast never blocks,
// so callers can notify inline.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) ReviewAssigned(reviewID, reviewerID, revieweeID, projectID uuid.UUID) {
	if n == nil || n.hub == nil {
		return
	}
	evt := ReviewAssignedEvent{
		Type:       "review_assigned",
		ReviewID:   reviewID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		ProjectID:  projectID,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}

func (n *HubNotifier) ProjectCreated(projectID uuid.UUID, name string, memberIDs []uuid.UUID) {
	if n == nil || n.hub == nil {
		return
	}
	evt := ProjectCreatedEvent{
		Type:      "project_created",
		ProjectID: projectID,
		Name:      name,
		MemberIDs: memberIDs,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
